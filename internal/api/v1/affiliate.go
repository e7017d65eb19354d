package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kidlost1412/shopchinh/internal/calculator"
	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/kidlost1412/shopchinh/internal/parser"
	"github.com/kidlost1412/shopchinh/internal/query"
)

const (
	defaultCreatorLimit        = 1000
	defaultAffiliateOrderLimit = 10
)

// loadAffiliate 读取联盟订单并按下单时间过滤；失败时已写出响应
func (h *Handler) loadAffiliate(c *gin.Context) ([]*model.AffiliateOrder, *parser.AffiliateBatch, *time.Time, bool) {
	period, err := periodFromQuery(c)
	if err != nil {
		badRequest(c, err.Error())
		return nil, nil, nil, false
	}
	batch, err := h.importer.LoadAffiliate(c.Request.Context())
	if err != nil {
		h.fail(c, err, "failed to load affiliate orders")
		return nil, nil, nil, false
	}
	fetched := h.touch(parser.DatasetAffiliate)
	orders := batch.Orders
	if !period.Unbounded() {
		orders = query.FilterAffiliateByDateRange(orders, period)
	}
	return orders, batch, fetched, true
}

// AffiliateMetricsResponse 联盟看板
type AffiliateMetricsResponse struct {
	Metrics      *calculator.AffiliateMetrics `json:"metrics"`
	TotalOrders  int                          `json:"totalOrders"`
	RawRows      int                          `json:"rawRows"`
	UniqueOrders int                          `json:"uniqueOrderIds"`
}

// AffiliateMetrics 五张卡片 + 前三名达人
func (h *Handler) AffiliateMetrics(c *gin.Context) {
	orders, batch, fetched, loaded := h.loadAffiliate(c)
	if !loaded {
		return
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: AffiliateMetricsResponse{
			Metrics:      calculator.AggregateAffiliate(orders),
			TotalOrders:  len(orders),
			RawRows:      batch.Rows,
			UniqueOrders: batch.Groups,
		},
		Warnings:    batch.Warnings,
		LastUpdated: fetched,
	})
}

// CreatorDetailsResponse 达人明细表
type CreatorDetailsResponse struct {
	Creators   []calculator.CreatorDetail `json:"affDetails"`
	Total      int                        `json:"total"`
	Pagination query.Pagination           `json:"pagination"`
}

// AffiliateDetails 达人明细，按总佣金降序分页
func (h *Handler) AffiliateDetails(c *gin.Context) {
	orders, _, fetched, loaded := h.loadAffiliate(c)
	if !loaded {
		return
	}
	details := calculator.CreatorDetails(orders)
	page, limit := pageFromQuery(c)
	items, pagination := query.Paginate(details, page, limit, defaultCreatorLimit)
	c.JSON(http.StatusOK, Response{
		Success:     true,
		Data:        CreatorDetailsResponse{Creators: items, Total: len(details), Pagination: pagination},
		LastUpdated: fetched,
	})
}

// CreatorOrdersResponse 某达人某状态的订单
type CreatorOrdersResponse struct {
	Creator    string                  `json:"affName"`
	Status     string                  `json:"status"`
	Orders     []*model.AffiliateOrder `json:"orders"`
	Total      int                     `json:"total"`
	Pagination query.Pagination        `json:"pagination"`
}

// AffiliateOrders status 为 total 或非规范值时不按状态过滤
func (h *Handler) AffiliateOrders(c *gin.Context) {
	orders, _, fetched, loaded := h.loadAffiliate(c)
	if !loaded {
		return
	}
	creator, status := c.Param("affName"), c.Param("status")
	matched := query.FilterAffiliate(orders, creator, status)
	if term := c.Query("search"); term != "" {
		matched = query.SearchAffiliate(matched, term)
	}

	page, limit := pageFromQuery(c)
	items, pagination := query.Paginate(matched, page, limit, defaultAffiliateOrderLimit)
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: CreatorOrdersResponse{
			Creator:    creator,
			Status:     status,
			Orders:     items,
			Total:      len(matched),
			Pagination: pagination,
		},
		LastUpdated: fetched,
	})
}

// CreatorAnalysisResponse 达人内容分析
type CreatorAnalysisResponse struct {
	Creator         string                       `json:"affName"`
	ContentAnalysis []calculator.ContentAnalysis `json:"contentAnalysis"`
	TopProducts     []calculator.CreatorProduct  `json:"top3Products"`
	TotalAnalyzed   int                          `json:"totalAnalyzed"`
}

// AffiliateAnalysis 内容类型拆分 + 销量前三商品
func (h *Handler) AffiliateAnalysis(c *gin.Context) {
	orders, _, fetched, loaded := h.loadAffiliate(c)
	if !loaded {
		return
	}
	creator := c.Param("affName")
	analysis := calculator.AnalyzeCreatorContent(orders, creator)
	products := calculator.TopCreatorProducts(orders, creator)
	if products == nil {
		products = []calculator.CreatorProduct{}
	}

	total := 0
	for _, a := range analysis {
		total += a.OrderCount
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: CreatorAnalysisResponse{
			Creator:         creator,
			ContentAnalysis: analysis,
			TopProducts:     products,
			TotalAnalyzed:   total,
		},
		LastUpdated: fetched,
	})
}

// RefreshAffiliate 清除联盟缓存并重新读取
func (h *Handler) RefreshAffiliate(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.importer.Refresh(ctx, parser.DatasetAffiliate); err != nil {
		h.fail(c, err, "failed to refresh affiliate data")
		return
	}
	batch, err := h.importer.LoadAffiliate(ctx)
	if err != nil {
		h.fail(c, err, "failed to refresh affiliate data")
		return
	}
	c.JSON(http.StatusOK, Response{
		Success:     true,
		Data:        RefreshResponse{TotalOrders: len(batch.Orders)},
		Warnings:    batch.Warnings,
		LastUpdated: h.touch(parser.DatasetAffiliate),
		Message:     "affiliate data refreshed",
	})
}
