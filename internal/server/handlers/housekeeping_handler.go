package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/residence/internal/domain/models"
)

// HousekeepingService is the housekeeping surface exposed over HTTP.
type HousekeepingService interface {
	ListStatuses(ctx context.Context) ([]models.ApartmentStatus, error)
	StatusByNumber(ctx context.Context, number string) (models.ApartmentStatus, error)
	UpdateStatus(ctx context.Context, number string, status models.CleaningStatus, building string) (models.ApartmentStatus, error)
	Stats(ctx context.Context) (models.HousekeepingStats, error)
}

// HousekeepingHandler serves apartment cleaning endpoints.
type HousekeepingHandler struct {
	svc    HousekeepingService
	logger *zap.Logger
}

// NewHousekeepingHandler constructs the HTTP handler adapter.
func NewHousekeepingHandler(svc HousekeepingService, logger *zap.Logger) *HousekeepingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HousekeepingHandler{svc: svc, logger: logger}
}

type statusRequest struct {
	Status   string `json:"status" binding:"required"`
	Building string `json:"building"`
}

// List returns every apartment status.
func (h *HousekeepingHandler) List(c *gin.Context) {
	statuses, err := h.svc.ListStatuses(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// Stats returns status counts overall and per building.
func (h *HousekeepingHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Get returns the status of one apartment.
func (h *HousekeepingHandler) Get(c *gin.Context) {
	status, err := h.svc.StatusByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Update sets the status of one apartment.
func (h *HousekeepingHandler) Update(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	status, err := models.ParseCleaningStatus(req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	record, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("number"), status, req.Building)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
