package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/residence/internal/domain/models"
)

// LinenService is the linen ledger surface exposed over HTTP.
type LinenService interface {
	GetStock(ctx context.Context) (models.StockItem, error)
	GetKitsStock(ctx context.Context) (models.KitsStock, error)
	GetMaxKitsPossible(ctx context.Context) (models.MaxKits, error)
	UpdateStockItem(ctx context.Context, item models.LinenItem, quantity int, op models.StockOperation) (models.StockItem, error)
	AssembleKits(ctx context.Context, kit models.KitType, quantity int) (models.Ledgers, error)
	RemoveKit(ctx context.Context, kit models.KitType, quantity int) (models.KitsStock, error)
}

// LinenHandler serves raw stock and kit endpoints.
type LinenHandler struct {
	svc    LinenService
	logger *zap.Logger
}

// NewLinenHandler constructs the HTTP handler adapter.
func NewLinenHandler(svc LinenService, logger *zap.Logger) *LinenHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinenHandler{svc: svc, logger: logger}
}

type stockUpdateRequest struct {
	Item      string `json:"item" binding:"required"`
	Quantity  int    `json:"quantity"`
	Operation string `json:"operation" binding:"required"`
}

type kitRequest struct {
	Kit      string `json:"kit" binding:"required"`
	Quantity int    `json:"quantity"`
}

// Stock returns the raw linen ledger.
func (h *LinenHandler) Stock(c *gin.Context) {
	stock, err := h.svc.GetStock(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// Kits returns the assembled kits ledger.
func (h *LinenHandler) Kits(c *gin.Context) {
	kits, err := h.svc.GetKitsStock(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, kits)
}

// MaxKits returns how many kits of each type the raw stock can still build.
func (h *LinenHandler) MaxKits(c *gin.Context) {
	maxKits, err := h.svc.GetMaxKitsPossible(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, maxKits)
}

// UpdateStock adds to or removes from one raw item.
func (h *LinenHandler) UpdateStock(c *gin.Context) {
	var req stockUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	item, err := models.ParseLinenItem(req.Item)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	op, err := models.ParseStockOperation(req.Operation)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	stock, err := h.svc.UpdateStockItem(c.Request.Context(), item, req.Quantity, op)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// Assemble builds kits out of raw stock.
func (h *LinenHandler) Assemble(c *gin.Context) {
	var req kitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	kit, err := models.ParseKitType(req.Kit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	ledgers, err := h.svc.AssembleKits(c.Request.Context(), kit, req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": ledgers.Stock, "kits": ledgers.Kits})
}

// Issue hands assembled kits out.
func (h *LinenHandler) Issue(c *gin.Context) {
	var req kitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	kit, err := models.ParseKitType(req.Kit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	kits, err := h.svc.RemoveKit(c.Request.Context(), kit, req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, kits)
}
