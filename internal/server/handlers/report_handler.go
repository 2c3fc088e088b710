package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/residence/internal/scheduler"
)

// ReportHandler triggers the daily report on demand.
type ReportHandler struct {
	reporter scheduler.DailyReporter
	loc      *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(reporter scheduler.DailyReporter, loc *time.Location, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReportHandler{reporter: reporter, loc: loc, logger: logger, now: time.Now}
}

// Daily runs the daily report for today, or for ?date= when given.
func (h *ReportHandler) Daily(c *gin.Context) {
	date, _, err := queryDate(c, h.loc, h.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	report, err := h.reporter.RunDailyReport(c.Request.Context(), date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
