package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kidlost1412/shopchinh/internal/exporter"
	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/kidlost1412/shopchinh/internal/parser"
	"github.com/kidlost1412/shopchinh/internal/query"
	"go.uber.org/zap"
)

const (
	defaultOrderLimit = 50
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// OrderListResponse 订单列表
type OrderListResponse struct {
	Orders     []*model.Order   `json:"orders"`
	Total      int              `json:"total"`
	Pagination query.Pagination `json:"pagination"`
}

// applyOrderFilters 状态 + 关键字过滤
func applyOrderFilters(c *gin.Context, orders []*model.Order) []*model.Order {
	if status := c.Query("status"); status != "" {
		orders = query.FilterByStatus(orders, status)
	}
	if term := c.Query("search"); term != "" {
		orders = query.Search(orders, term)
	}
	return orders
}

// ListOrders 订单列表（status, startDate, endDate, search, page, limit）
func (h *Handler) ListOrders(c *gin.Context) {
	orders, batch, fetched, loaded := h.loadOrders(c)
	if !loaded {
		return
	}
	orders = applyOrderFilters(c, orders)

	page, limit := pageFromQuery(c)
	items, pagination := query.Paginate(orders, page, limit, defaultOrderLimit)
	c.JSON(http.StatusOK, Response{
		Success:     true,
		Data:        OrderListResponse{Orders: items, Total: len(orders), Pagination: pagination},
		Warnings:    batch.Warnings,
		LastUpdated: fetched,
	})
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	batch, err := h.importer.LoadOrders(c.Request.Context())
	if err != nil {
		h.fail(c, err, "failed to load orders")
		return
	}
	fetched := h.touch(parser.DatasetOrders)

	id := c.Param("id")
	for _, o := range batch.Orders {
		if o.ID == id {
			c.JSON(http.StatusOK, Response{Success: true, Data: o, LastUpdated: fetched})
			return
		}
	}
	c.JSON(http.StatusNotFound, Response{Success: false, Error: "order not found"})
}

// ExportOrders 按与列表相同的过滤条件导出 Excel
func (h *Handler) ExportOrders(c *gin.Context) {
	orders, _, _, loaded := h.loadOrders(c)
	if !loaded {
		return
	}
	orders = applyOrderFilters(c, orders)

	f, err := h.exporter.Export(orders, exporter.ExportOptions{
		Progress: func(e exporter.ProgressEvent) {
			h.logger.Debug("export progress", zap.String("stage", string(e.Stage)), zap.Int("percent", e.Percent), zap.Int("written", e.Written))
		},
	})
	if err != nil {
		h.fail(c, err, "failed to export orders")
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.fail(c, err, "failed to write export file")
		return
	}

	filename := h.exporter.Filename()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	h.logger.Info("orders exported", zap.String("filename", filename), zap.Int("orders", len(orders)))
}
