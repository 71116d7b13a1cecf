package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/exporter/internal/application/exports"
	"github.com/erp/exporter/internal/domain/export"
	"github.com/erp/exporter/internal/infrastructure/spreadsheet"
	"github.com/erp/exporter/internal/interfaces/http/router"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StatusInfo carries the static connection facts shown on the status endpoint.
type StatusInfo struct {
	BaseURL    string
	ClientType string
}

// ExportHandler serves the export catalog and workbook generation endpoints.
type ExportHandler struct {
	BaseHandler
	registry  *exports.Registry
	service   *exports.Service
	companyID string
	info      StatusInfo
	log       *zap.Logger
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(registry *exports.Registry, service *exports.Service, companyID string, info StatusInfo, log *zap.Logger) *ExportHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExportHandler{registry: registry, service: service, companyID: companyID, info: info, log: log}
}

var _ router.RouteRegistrar = (*ExportHandler)(nil)

// RegisterRoutes registers export routes
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/status", h.Status)
	ex := rg.Group("/exports")
	{
		ex.GET("", h.List)
		ex.POST("/run", h.RunSelected)
		ex.POST("/:key/run", h.RunOne)
	}
}

// StatusResponse reports whether live extraction is available.
type StatusResponse struct {
	LiveAPI    bool   `json:"live_api"`
	Configured bool   `json:"api_configured"`
	BaseURL    string `json:"base_url,omitempty"`
	ClientType string `json:"client_type,omitempty"`
	Exports    int    `json:"exports"`
}

// Status returns the service readiness summary.
func (h *ExportHandler) Status(c *gin.Context) {
	h.Success(c, StatusResponse{
		LiveAPI:    h.registry.LiveEnabled(),
		Configured: h.registry.ClientConfigured(),
		BaseURL:    h.info.BaseURL,
		ClientType: h.info.ClientType,
		Exports:    len(h.registry.List("")),
	})
}

// ExportInfo is one catalog entry.
type ExportInfo struct {
	Key         string `json:"key"`
	Category    string `json:"category"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// List returns the export catalog, optionally filtered by category.
func (h *ExportHandler) List(c *gin.Context) {
	resources := h.registry.List(c.Query("category"))
	infos := make([]ExportInfo, 0, len(resources))
	for _, res := range resources {
		infos = append(infos, ExportInfo{
			Key:         res.Key,
			Category:    res.Category,
			Label:       res.Label,
			Description: res.Description,
		})
	}
	h.Success(c, infos)
}

// RunRequest selects the exports for a batch.
type RunRequest struct {
	Keys []string `json:"keys" binding:"required,min=1"`
}

// RunSelected generates the requested exports and streams them back as one
// xlsx workbook attachment.
func (h *ExportHandler) RunSelected(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "keys must be a non-empty list of export keys")
		return
	}
	h.runAndServe(c, req.Keys)
}

// RunOne generates a single export as an xlsx workbook attachment.
func (h *ExportHandler) RunOne(c *gin.Context) {
	h.runAndServe(c, []string{c.Param("key")})
}

func (h *ExportHandler) runAndServe(c *gin.Context, keys []string) {
	results, err := h.service.RunBatch(c.Request.Context(), keys, h.companyID)
	if err != nil {
		h.exportError(c, err)
		return
	}

	data, err := spreadsheet.BuildWorkbook(results)
	if err != nil {
		h.log.Error("workbook generation failed", zap.Error(err))
		h.Internal(c, "failed to build workbook")
		return
	}

	filename := fmt.Sprintf("unleashed_export_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *ExportHandler) exportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, export.ErrUnknownExport):
		h.NotFound(c, err.Error())
	case errors.Is(err, export.ErrNotConfigured):
		h.BadRequest(c, err.Error())
	case errors.Is(err, export.ErrUpstreamUnavailable),
		errors.Is(err, export.ErrRequestFailed),
		errors.Is(err, export.ErrInvalidResponse):
		h.log.Error("upstream extraction failed", zap.Error(err))
		h.BadGateway(c, err.Error())
	default:
		h.log.Error("export failed", zap.Error(err))
		h.Internal(c, "export failed")
	}
}
