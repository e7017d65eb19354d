package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kidlost1412/shopchinh/internal/calculator"
	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/kidlost1412/shopchinh/internal/parser"
	"github.com/kidlost1412/shopchinh/internal/query"
	"github.com/shopspring/decimal"
)

// HealthResponse 健康检查
type HealthResponse struct {
	Status             string     `json:"status"`
	Timestamp          time.Time  `json:"timestamp"`
	Database           string     `json:"database"`
	LastOrdersFetch    *time.Time `json:"lastFetchTime"`
	LastAffiliateFetch *time.Time `json:"lastAffFetchTime"`
	LastLedgerFetch    *time.Time `json:"lastLedgerFetchTime"`
}

// Health 服务与数据库状态
func (h *Handler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:             "ok",
		Timestamp:          h.now(),
		Database:           "ok",
		LastOrdersFetch:    h.lastFetched(parser.DatasetOrders),
		LastAffiliateFetch: h.lastFetched(parser.DatasetAffiliate),
		LastLedgerFetch:    h.lastFetched(parser.DatasetLedger),
	}
	if err := h.store.Ping(c.Request.Context()); err != nil {
		resp.Database = err.Error()
	}
	writeOK(c, resp)
}

// loadOrders 读取订单并按日期区间过滤；失败时已写出响应
func (h *Handler) loadOrders(c *gin.Context) ([]*model.Order, *parser.OrderBatch, *time.Time, bool) {
	period, err := periodFromQuery(c)
	if err != nil {
		badRequest(c, err.Error())
		return nil, nil, nil, false
	}
	batch, err := h.importer.LoadOrders(c.Request.Context())
	if err != nil {
		h.fail(c, err, "failed to load orders")
		return nil, nil, nil, false
	}
	fetched := h.touch(parser.DatasetOrders)
	orders := batch.Orders
	if !period.Unbounded() {
		orders = query.FilterByDateRange(orders, period)
	}
	return orders, batch, fetched, true
}

// DashboardMetricsResponse 看板卡片
type DashboardMetricsResponse struct {
	Metrics     *calculator.OrderMetrics `json:"metrics"`
	TotalOrders int                      `json:"totalOrders"`
	Target      *model.MonthlyTarget     `json:"target"`
	Progress    *decimal.Decimal         `json:"targetProgress,omitempty"` // 全部订单收入 / 月目标 * 100
}

// DashboardMetrics 状态卡片 + 月目标
func (h *Handler) DashboardMetrics(c *gin.Context) {
	orders, batch, fetched, loaded := h.loadOrders(c)
	if !loaded {
		return
	}
	target, err := h.store.GetTarget()
	if err != nil {
		h.fail(c, err, "failed to load monthly target")
		return
	}

	metrics := calculator.AggregateOrders(orders)
	resp := DashboardMetricsResponse{Metrics: metrics, TotalOrders: len(orders), Target: target}
	if target.MonthlyTarget.IsPositive() {
		p := metrics.Bucket(model.LabelAllOrders).Revenue.Div(target.MonthlyTarget).Mul(decimal.NewFromInt(100)).Round(2)
		resp.Progress = &p
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: resp, Warnings: batch.Warnings, LastUpdated: fetched})
}

// ChartsResponse 看板图表
type ChartsResponse struct {
	RevenueData []calculator.TrendPoint  `json:"revenueData"`
	StatusData  []calculator.StatusSlice `json:"statusData"`
}

// DashboardCharts 收入趋势 + 状态分布
func (h *Handler) DashboardCharts(c *gin.Context) {
	orders, _, fetched, loaded := h.loadOrders(c)
	if !loaded {
		return
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: ChartsResponse{
			RevenueData: calculator.RevenueTrend(orders),
			StatusData:  calculator.StatusDistribution(orders),
		},
		LastUpdated: fetched,
	})
}

// ProductAnalysis 商品维度汇总，countOnlyShippedOrders=true 时只统计已发货/已签收
func (h *Handler) ProductAnalysis(c *gin.Context) {
	orders, _, fetched, loaded := h.loadOrders(c)
	if !loaded {
		return
	}
	shippedOnly := c.Query("countOnlyShippedOrders") == "true"
	products := calculator.ProductAnalysis(orders, shippedOnly)
	c.JSON(http.StatusOK, Response{Success: true, Data: products, LastUpdated: fetched})
}

// ProductOrders 包含某商品的订单
func (h *Handler) ProductOrders(c *gin.Context) {
	orders, _, fetched, loaded := h.loadOrders(c)
	if !loaded {
		return
	}
	shippedOnly := c.Query("countOnlyShippedOrders") == "true"
	matched := calculator.ProductOrders(orders, c.Param("productName"), shippedOnly)
	c.JSON(http.StatusOK, Response{Success: true, Data: matched, LastUpdated: fetched})
}

// GetTarget 读取月目标
func (h *Handler) GetTarget(c *gin.Context) {
	target, err := h.store.GetTarget()
	if err != nil {
		h.fail(c, err, "failed to load monthly target")
		return
	}
	writeOK(c, target)
}

// SetTargetRequest 设置月目标
type SetTargetRequest struct {
	MonthlyTarget *decimal.Decimal `json:"monthlyTarget"`
	UpdatedBy     string           `json:"updatedBy"`
}

// SetTarget 设置月目标
func (h *Handler) SetTarget(c *gin.Context) {
	var req SetTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.MonthlyTarget == nil {
		badRequest(c, "monthlyTarget is required")
		return
	}
	if req.MonthlyTarget.IsNegative() {
		badRequest(c, "monthlyTarget must not be negative")
		return
	}
	if req.UpdatedBy == "" {
		req.UpdatedBy = "user"
	}

	target, err := h.store.SetTarget(*req.MonthlyTarget, req.UpdatedBy)
	if err != nil {
		h.fail(c, err, "failed to update monthly target")
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: target, Message: "target updated"})
}
