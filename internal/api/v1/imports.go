package v1

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kidlost1412/shopchinh/internal/parser"
	"go.uber.org/zap"
)

// maxUploadSize 预览上传文件大小上限
const maxUploadSize = 20 << 20

// PreviewImport 识别上传文件（xlsx/csv）的数据集与列映射，不写入任何状态
// POST /api/import/preview
func (h *Handler) PreviewImport(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "invalid multipart form")
		return
	}
	files := form.File["file"]
	if len(files) == 0 {
		badRequest(c, "missing upload field \"file\"")
		return
	}
	uploaded := files[0]
	if uploaded.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, Response{Success: false, Error: "file too large"})
		return
	}

	f, err := uploaded.Open()
	if err != nil {
		h.fail(c, err, "failed to open uploaded file")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
	if err != nil {
		h.fail(c, err, "failed to read uploaded file")
		return
	}

	result, err := h.importer.Preview(data, uploaded.Filename)
	if err != nil {
		h.logger.Warn("preview rejected", zap.String("filename", uploaded.Filename), zap.Error(err))
		badRequest(c, err.Error())
		return
	}
	writeOK(c, result)
}

// ListImports 最近的导入记录，可按 dataset 过滤
func (h *Handler) ListImports(c *gin.Context) {
	var dataset parser.Dataset
	if raw := c.Query("dataset"); raw != "" {
		if dataset = parser.ParseDataset(raw); dataset == parser.DatasetUnknown {
			badRequest(c, "unknown dataset: "+raw)
			return
		}
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := h.store.ListImportLogs(string(dataset), limit)
	if err != nil {
		h.fail(c, err, "failed to list import logs")
		return
	}
	writeOK(c, logs)
}

// ListImportWarnings 某次导入记录的告警
func (h *Handler) ListImportWarnings(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid import log id")
		return
	}
	warnings, err := h.store.ListImportWarnings(id)
	if err != nil {
		h.fail(c, err, "failed to list import warnings")
		return
	}
	writeOK(c, warnings)
}
