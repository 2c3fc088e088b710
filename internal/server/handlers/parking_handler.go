package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/residence/internal/domain/models"
	"github.com/mamadbah2/residence/internal/service/parking"
)

// ParkingService is the parking surface exposed over HTTP.
type ParkingService interface {
	ListByBuilding(ctx context.Context, building models.Building) ([]models.ParkingClient, error)
	SearchByPlate(ctx context.Context, building models.Building, term string) ([]models.ParkingClient, error)
	AddClient(ctx context.Context, req parking.NewClient) (string, error)
	UpdateClient(ctx context.Context, id string, upd models.ParkingClientUpdate) (models.ParkingClient, error)
	RemoveClient(ctx context.Context, id string) error
	CancelReservation(ctx context.Context, id string) error
	ConfirmReservation(ctx context.Context, id, plate, model string) (models.ParkingClient, error)
	Stats(ctx context.Context, building models.Building, date time.Time) (models.ParkingStats, error)
	AllStats(ctx context.Context, date time.Time) (map[models.Building]models.ParkingStats, error)
}

// ParkingHandler serves car park endpoints.
type ParkingHandler struct {
	svc    ParkingService
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewParkingHandler constructs the HTTP handler adapter.
func NewParkingHandler(svc ParkingService, loc *time.Location, logger *zap.Logger) *ParkingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ParkingHandler{svc: svc, loc: loc, logger: logger, now: time.Now}
}

type confirmRequest struct {
	Plate        string `json:"plate"`
	VehicleModel string `json:"vehicleModel"`
}

// AllStats returns occupancy of every building.
func (h *ParkingHandler) AllStats(c *gin.Context) {
	date, _, err := queryDate(c, h.loc, h.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	stats, err := h.svc.AllStats(c.Request.Context(), date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Stats returns occupancy of one building.
func (h *ParkingHandler) Stats(c *gin.Context) {
	building, err := models.ParseBuilding(c.Param("building"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	date, _, err := queryDate(c, h.loc, h.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), building, date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Clients lists the clients of a building, filtered by plate when asked.
func (h *ParkingHandler) Clients(c *gin.Context) {
	building, err := models.ParseBuilding(c.Param("building"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var clients []models.ParkingClient
	if plate, ok := c.GetQuery("plate"); ok {
		clients, err = h.svc.SearchByPlate(c.Request.Context(), building, plate)
	} else {
		clients, err = h.svc.ListByBuilding(c.Request.Context(), building)
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// AddClient registers a client or a reservation.
func (h *ParkingHandler) AddClient(c *gin.Context) {
	var req parking.NewClient
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	id, err := h.svc.AddClient(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateClient applies a partial update.
func (h *ParkingHandler) UpdateClient(c *gin.Context) {
	var upd models.ParkingClientUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	client, err := h.svc.UpdateClient(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// RemoveClient deletes a client, or cancels a reservation with ?reservation=true.
func (h *ParkingHandler) RemoveClient(c *gin.Context) {
	remove := h.svc.RemoveClient
	if c.Query("reservation") == "true" {
		remove = h.svc.CancelReservation
	}
	if err := remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Confirm turns a reservation into a present client.
func (h *ParkingHandler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	client, err := h.svc.ConfirmReservation(c.Request.Context(), c.Param("id"), req.Plate, req.VehicleModel)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, client)
}
