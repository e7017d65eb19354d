package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kidlost1412/shopchinh/internal/model"
	"github.com/kidlost1412/shopchinh/internal/parser"
	"github.com/kidlost1412/shopchinh/internal/source"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Success     bool             `json:"success"`
	Data        any              `json:"data,omitempty"`
	Warnings    []parser.Warning `json:"warnings,omitempty"`
	LastUpdated *time.Time       `json:"lastUpdated,omitempty"`
	Message     string           `json:"message,omitempty"`
	Error       string           `json:"error,omitempty"`
}

func writeOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: msg})
}

// fail 数据源不可用返回 503，其余返回 500
func (h *Handler) fail(c *gin.Context, err error, msg string) {
	status := http.StatusInternalServerError
	if errors.Is(err, source.ErrSourceUnavailable) {
		status = http.StatusServiceUnavailable
	}
	h.logger.Error(msg,
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", status),
	)
	c.JSON(status, Response{Success: false, Error: msg})
}

// periodFromQuery 解析 startDate/endDate（YYYY-MM-DD），缺省表示不限
func periodFromQuery(c *gin.Context) (model.Period, error) {
	var p model.Period
	if raw := strings.TrimSpace(c.Query("startDate")); raw != "" {
		t := parser.ParseISODate(raw)
		if t == nil {
			return p, errors.New("invalid startDate, expected YYYY-MM-DD")
		}
		p.Start = *t
	}
	if raw := strings.TrimSpace(c.Query("endDate")); raw != "" {
		t := parser.ParseISODate(raw)
		if t == nil {
			return p, errors.New("invalid endDate, expected YYYY-MM-DD")
		}
		p.End = *t
	}
	if !p.Start.IsZero() && !p.End.IsZero() && p.End.Before(p.Start) {
		return p, errors.New("endDate is before startDate")
	}
	return p, nil
}

// pageFromQuery 解析 page/limit，非法值交给 query.Paginate 处理
func pageFromQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return page, limit
}
