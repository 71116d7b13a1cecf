package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/erp/exporter/internal/application/exports"
	"github.com/erp/exporter/internal/infrastructure/schedule"
	"github.com/erp/exporter/internal/interfaces/http/router"
)

// ScheduleHandler manages recurring report schedules.
type ScheduleHandler struct {
	BaseHandler
	store    *schedule.Store
	registry *exports.Registry
}

// NewScheduleHandler creates a ScheduleHandler.
func NewScheduleHandler(store *schedule.Store, registry *exports.Registry) *ScheduleHandler {
	return &ScheduleHandler{store: store, registry: registry}
}

var _ router.RouteRegistrar = (*ScheduleHandler)(nil)

// RegisterRoutes registers schedule routes
func (h *ScheduleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	s := rg.Group("/schedules")
	{
		s.GET("", h.List)
		s.POST("", h.Create)
		s.DELETE("/:id", h.Delete)
	}
}

// List returns all schedules, newest first.
func (h *ScheduleHandler) List(c *gin.Context) {
	h.Success(c, h.store.List())
}

// CreateScheduleRequest is the new-schedule payload.
type CreateScheduleRequest struct {
	ReportKey string `json:"report_key" binding:"required"`
	Frequency string `json:"frequency" binding:"required,oneof=daily weekly monthly"`
}

// Create registers a new schedule for a known export key.
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "report_key and a frequency of daily, weekly or monthly are required")
		return
	}
	if _, ok := h.registry.Get(req.ReportKey); !ok {
		h.NotFound(c, "unknown export key: "+req.ReportKey)
		return
	}

	sched, err := h.store.Add(req.ReportKey, req.Frequency)
	if err != nil {
		h.Internal(c, "failed to persist schedule")
		return
	}
	h.Created(c, sched)
}

// Delete removes a schedule by identifier.
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			h.NotFound(c, err.Error())
			return
		}
		h.Internal(c, "failed to delete schedule")
		return
	}
	h.NoContent(c)
}
