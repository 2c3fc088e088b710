package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/residence/internal/domain/models"
)

// ApartmentService is the apartment directory surface exposed over HTTP.
type ApartmentService interface {
	List(ctx context.Context) ([]models.Apartment, error)
	Exists(ctx context.Context, number string) (bool, error)
	Add(ctx context.Context, number, building string) (models.Apartment, error)
	Delete(ctx context.Context, id string) error
}

// ApartmentHandler serves apartment directory endpoints.
type ApartmentHandler struct {
	svc    ApartmentService
	logger *zap.Logger
}

// NewApartmentHandler constructs the HTTP handler adapter.
func NewApartmentHandler(svc ApartmentService, logger *zap.Logger) *ApartmentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApartmentHandler{svc: svc, logger: logger}
}

type apartmentRequest struct {
	Number   string `json:"number" binding:"required"`
	Building string `json:"building"`
}

// List returns the apartment directory.
func (h *ApartmentHandler) List(c *gin.Context) {
	apartments, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, apartments)
}

// Exists reports whether an apartment number is registered.
func (h *ApartmentHandler) Exists(c *gin.Context) {
	ok, err := h.svc.Exists(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": ok})
}

// Add registers an apartment.
func (h *ApartmentHandler) Add(c *gin.Context) {
	var req apartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	apartment, err := h.svc.Add(c.Request.Context(), req.Number, req.Building)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, apartment)
}

// Delete removes an apartment.
func (h *ApartmentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
