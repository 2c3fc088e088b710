package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/residence/internal/domain/models"
	"github.com/mamadbah2/residence/internal/service/bakery"
)

// BakeryService is the bakery pre-order surface exposed over HTTP.
type BakeryService interface {
	Products() []models.Product
	ListOrders(ctx context.Context) ([]models.Order, error)
	OrdersByDate(ctx context.Context, date time.Time) ([]models.Order, error)
	PendingToday(ctx context.Context) ([]models.Order, error)
	ProductionTotals(ctx context.Context, date time.Time) (map[string]int, error)
	AddOrder(ctx context.Context, req bakery.NewOrder) (string, error)
	UpdateOrder(ctx context.Context, id string, upd models.OrderUpdate) (models.Order, error)
	MarkDelivered(ctx context.Context, id string, delivered bool) (models.Order, error)
	MarkPaid(ctx context.Context, id string, paid bool, method string) (models.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

// BakeryHandler serves bakery endpoints.
type BakeryHandler struct {
	svc    BakeryService
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewBakeryHandler constructs the HTTP handler adapter.
func NewBakeryHandler(svc BakeryService, loc *time.Location, logger *zap.Logger) *BakeryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &BakeryHandler{svc: svc, loc: loc, logger: logger, now: time.Now}
}

type deliveredRequest struct {
	Delivered bool `json:"delivered"`
}

type paymentRequest struct {
	Paid          bool   `json:"paid"`
	PaymentMethod string `json:"paymentMethod"`
}

// Products returns the catalogue.
func (h *BakeryHandler) Products(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Products())
}

// Orders lists every order, or the orders of one day when date is given.
func (h *BakeryHandler) Orders(c *gin.Context) {
	date, filtered, err := queryDate(c, h.loc, h.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var orders []models.Order
	if filtered {
		orders, err = h.svc.OrdersByDate(c.Request.Context(), date)
	} else {
		orders, err = h.svc.ListOrders(c.Request.Context())
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// PendingToday lists today's orders not yet handed out.
func (h *BakeryHandler) PendingToday(c *gin.Context) {
	orders, err := h.svc.PendingToday(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Production returns the quantity to bake per product for a day.
func (h *BakeryHandler) Production(c *gin.Context) {
	date, _, err := queryDate(c, h.loc, h.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	totals, err := h.svc.ProductionTotals(c.Request.Context(), date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date.Format(dateLayout), "totals": totals})
}

// AddOrder places a pre-order.
func (h *BakeryHandler) AddOrder(c *gin.Context) {
	var req bakery.NewOrder
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	id, err := h.svc.AddOrder(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateOrder applies a partial update.
func (h *BakeryHandler) UpdateOrder(c *gin.Context) {
	var upd models.OrderUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	order, err := h.svc.UpdateOrder(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// MarkDelivered records whether the order was handed out.
func (h *BakeryHandler) MarkDelivered(c *gin.Context) {
	var req deliveredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	order, err := h.svc.MarkDelivered(c.Request.Context(), c.Param("id"), req.Delivered)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// MarkPaid records payment status.
func (h *BakeryHandler) MarkPaid(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	order, err := h.svc.MarkPaid(c.Request.Context(), c.Param("id"), req.Paid, req.PaymentMethod)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder removes an order.
func (h *BakeryHandler) DeleteOrder(c *gin.Context) {
	if err := h.svc.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
