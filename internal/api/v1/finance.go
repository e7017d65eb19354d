package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kidlost1412/shopchinh/internal/finance"
	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/kidlost1412/shopchinh/internal/parser"
	"github.com/kidlost1412/shopchinh/internal/query"
	"github.com/shopspring/decimal"
)

const defaultFeeOrderLimit = 10

// FinanceResponse 财务对账报表
type FinanceResponse struct {
	ReportID string                `json:"reportId"`
	Snapshot model.FinanceSnapshot `json:"report"`

	TotalOrdersInput   int `json:"totalOrdersInput"`
	WithdrawalRecords  int `json:"withdrawalRecords"`
	AdvertisingRecords int `json:"advertisingRecords"`
}

// Finance 对账快照；钱包余额与 GVM 为全周期，其余按区间
func (h *Handler) Finance(c *gin.Context) {
	period, err := periodFromQuery(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	in, err := h.importer.LoadFinance(c.Request.Context())
	if err != nil {
		h.fail(c, err, "failed to load finance data")
		return
	}
	h.touch(parser.DatasetLedger)
	fetched := h.touch(parser.DatasetOrders)

	snap := finance.Reconcile(in.Orders.Orders, in.Ledgers.Ledgers, period)
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: FinanceResponse{
			ReportID:           uuid.NewString(),
			Snapshot:           snap,
			TotalOrdersInput:   len(in.Orders.Orders),
			WithdrawalRecords:  len(in.Ledgers.Ledgers.Withdrawals),
			AdvertisingRecords: len(in.Ledgers.Ledgers.Advertising),
		},
		Warnings:    in.Warnings(),
		LastUpdated: fetched,
	})
}

// FeeOrdersResponse 某费用类别的订单明细
type FeeOrdersResponse struct {
	FeeType    model.FeeType    `json:"feeType"`
	Orders     []*model.Order   `json:"orders"`
	Total      int              `json:"total"`
	TotalFee   decimal.Decimal  `json:"totalFee"`
	Pagination query.Pagination `json:"pagination"`
}

// FinanceOrders 区间内已签收且该费用非零的订单，与成本卡片口径一致
func (h *Handler) FinanceOrders(c *gin.Context) {
	fee, valid := model.ParseFeeType(c.Param("feeType"))
	if !valid {
		badRequest(c, "unknown fee type: "+c.Param("feeType"))
		return
	}
	period, err := periodFromQuery(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	batch, err := h.importer.LoadOrders(c.Request.Context())
	if err != nil {
		h.fail(c, err, "failed to load orders")
		return
	}
	fetched := h.touch(parser.DatasetOrders)

	received := finance.ReceivedOrders(finance.FilterOrders(batch.Orders, period))
	withFee := finance.OrdersWithFee(received, fee)
	matched := withFee
	if term := c.Query("search"); term != "" {
		matched = query.Search(withFee, term)
	}

	page, limit := pageFromQuery(c)
	items, pagination := query.Paginate(matched, page, limit, defaultFeeOrderLimit)
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: FeeOrdersResponse{
			FeeType:    fee,
			Orders:     items,
			Total:      len(matched),
			TotalFee:   finance.TotalFee(withFee, fee),
			Pagination: pagination,
		},
		LastUpdated: fetched,
	})
}

// RefreshResponse 刷新结果
type RefreshResponse struct {
	TotalOrders int `json:"totalOrders"`
}

// Refresh 清除订单与账本缓存并重新读取订单
func (h *Handler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.importer.Refresh(ctx, parser.DatasetOrders, parser.DatasetLedger); err != nil {
		h.fail(c, err, "failed to refresh data")
		return
	}
	batch, err := h.importer.LoadOrders(ctx)
	if err != nil {
		h.fail(c, err, "failed to refresh data")
		return
	}
	c.JSON(http.StatusOK, Response{
		Success:     true,
		Data:        RefreshResponse{TotalOrders: len(batch.Orders)},
		Warnings:    batch.Warnings,
		LastUpdated: h.touch(parser.DatasetOrders),
		Message:     "data refreshed",
	})
}
