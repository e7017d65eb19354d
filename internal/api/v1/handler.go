package v1

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kidlost1412/shopchinh/internal/exporter"
	"github.com/kidlost1412/shopchinh/internal/importer"
	"github.com/kidlost1412/shopchinh/internal/parser"
	"github.com/kidlost1412/shopchinh/internal/store"
	"go.uber.org/zap"
)

// Handler V1 API 处理器
type Handler struct {
	importer *importer.Coordinator
	store    *store.Store
	exporter *exporter.Exporter
	logger   *zap.Logger
	now      func() time.Time

	mu        sync.RWMutex
	lastFetch map[parser.Dataset]time.Time
}

// NewHandler 创建 V1 API 处理器
func NewHandler(imp *importer.Coordinator, st *store.Store, exp *exporter.Exporter, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		importer:  imp,
		store:     st,
		exporter:  exp,
		logger:    logger.Named("api"),
		now:       time.Now,
		lastFetch: make(map[parser.Dataset]time.Time),
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)

	// 看板
	router.GET("/dashboard/metrics", h.DashboardMetrics)
	router.GET("/dashboard/charts", h.DashboardCharts)
	router.GET("/analytics/products", h.ProductAnalysis)
	router.GET("/analytics/products/:productName/orders", h.ProductOrders)

	// 订单
	router.GET("/orders", h.ListOrders)
	router.GET("/orders/export", h.ExportOrders)
	router.GET("/orders/:id", h.GetOrder)

	// 月目标
	router.GET("/target", h.GetTarget)
	router.POST("/target", h.SetTarget)

	// 财务对账
	router.GET("/finance", h.Finance)
	router.GET("/finance/orders/:feeType", h.FinanceOrders)
	router.POST("/refresh", h.Refresh)

	// 达人联盟
	router.GET("/aff/metrics", h.AffiliateMetrics)
	router.GET("/aff/details", h.AffiliateDetails)
	router.GET("/aff/orders/:affName/:status", h.AffiliateOrders)
	router.GET("/aff/analysis/:affName", h.AffiliateAnalysis)
	router.POST("/aff/refresh", h.RefreshAffiliate)

	// 导入
	router.POST("/import/preview", h.PreviewImport)
	router.GET("/imports", h.ListImports)
	router.GET("/imports/:id/warnings", h.ListImportWarnings)
}

// touch 记录数据集最近一次成功读取的时间
func (h *Handler) touch(d parser.Dataset) *time.Time {
	t := h.now()
	h.mu.Lock()
	h.lastFetch[d] = t
	h.mu.Unlock()
	return &t
}

func (h *Handler) lastFetched(d parser.Dataset) *time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	t, ok := h.lastFetch[d]
	if !ok {
		return nil
	}
	return &t
}
