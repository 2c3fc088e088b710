package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/residence/internal/domain/models"
)

const dateLayout = "2006-01-02"

// respondError maps a service error onto an HTTP status and JSON body.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var stockErr *models.InsufficientStockError
	var kitsErr *models.InsufficientKitsError

	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "max": stockErr.Max})
	case errors.As(err, &kitsErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "available": kitsErr.Available})
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrUnknownItem),
		errors.Is(err, models.ErrUnknownKit),
		errors.Is(err, models.ErrUnknownOperation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrStoreUnavailable), errors.Is(err, models.ErrUninitializedLedger):
		logger.Error("store unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func invalidBody(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

// queryDate reads the date query parameter (YYYY-MM-DD) in loc, defaulting to now.
func queryDate(c *gin.Context, loc *time.Location, now time.Time) (time.Time, bool, error) {
	raw := c.Query("date")
	if raw == "" {
		return now, false, nil
	}
	date, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return time.Time{}, true, fmt.Errorf("%w: date %q must be YYYY-MM-DD: %v", models.ErrInvalidInput, raw, err)
	}
	return date, true, nil
}
