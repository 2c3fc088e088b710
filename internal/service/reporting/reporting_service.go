package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/residence/internal/domain/models"
)

const dateLayout = "2006-01-02"

// LinenSource exposes the linen ledgers.
type LinenSource interface {
	GetStock(ctx context.Context) (models.StockItem, error)
	GetKitsStock(ctx context.Context) (models.KitsStock, error)
	GetMaxKitsPossible(ctx context.Context) (models.MaxKits, error)
}

// ParkingSource exposes parking occupancy.
type ParkingSource interface {
	AllStats(ctx context.Context, date time.Time) (map[models.Building]models.ParkingStats, error)
}

// BakerySource exposes bakery orders per day.
type BakerySource interface {
	OrdersByDate(ctx context.Context, date time.Time) ([]models.Order, error)
}

// HousekeepingSource exposes housekeeping counters.
type HousekeepingSource interface {
	Stats(ctx context.Context) (models.HousekeepingStats, error)
}

// ReportStore persists reports.
type ReportStore interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}

// Exporter publishes a report outside the database.
type Exporter interface {
	ExportDailyReport(ctx context.Context, report models.DailyReport) error
}

// Notifier delivers a text message.
type Notifier interface {
	Notify(ctx context.Context, to, message string) error
}

// Sources groups the services a daily report reads from.
type Sources struct {
	Linen        LinenSource
	Parking      ParkingSource
	Bakery       BakerySource
	Housekeeping HousekeepingSource
}

// Service builds and dispatches the daily operations report.
type Service struct {
	sources   Sources
	store     ReportStore
	exporter  Exporter
	notifier  Notifier
	recipient string
	loc       *time.Location
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new reporting service instance. exporter and notifier may
// be nil; recipient may be empty to skip notifications.
func NewService(sources Sources, store ReportStore, exporter Exporter, notifier Notifier, recipient string, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		sources:   sources,
		store:     store,
		exporter:  exporter,
		notifier:  notifier,
		recipient: recipient,
		loc:       loc,
		logger:    logger,
		now:       time.Now,
	}
}

// BuildDailyReport gathers the snapshot for the day of date. Bakery figures
// cover the orders due the following day, which are baked overnight.
func (s *Service) BuildDailyReport(ctx context.Context, date time.Time) (models.DailyReport, error) {
	day := models.StartOfDay(date, s.loc)
	report := models.DailyReport{Date: day, CreatedAt: s.now()}

	var err error
	if report.Stock, err = s.sources.Linen.GetStock(ctx); err != nil {
		return models.DailyReport{}, fmt.Errorf("load stock: %w", err)
	}
	if report.Kits, err = s.sources.Linen.GetKitsStock(ctx); err != nil {
		return models.DailyReport{}, fmt.Errorf("load kits: %w", err)
	}
	if report.MaxKits, err = s.sources.Linen.GetMaxKitsPossible(ctx); err != nil {
		return models.DailyReport{}, fmt.Errorf("load max kits: %w", err)
	}
	if report.Parking, err = s.sources.Parking.AllStats(ctx, day); err != nil {
		return models.DailyReport{}, fmt.Errorf("load parking stats: %w", err)
	}

	orders, err := s.sources.Bakery.OrdersByDate(ctx, day.AddDate(0, 0, 1))
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("load bakery orders: %w", err)
	}
	amount := decimal.Zero
	for _, o := range orders {
		amount = amount.Add(decimal.NewFromFloat(o.Total))
	}
	report.BakeryOrders = len(orders)
	report.BakeryAmount = amount.Round(2).InexactFloat64()

	housekeeping, err := s.sources.Housekeeping.Stats(ctx)
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("load housekeeping stats: %w", err)
	}
	report.Housekeeping = housekeeping.All

	return report, nil
}

// RunDailyReport builds the report for date, saves it, then exports and sends
// it. Export and notification failures are logged and do not fail the run.
func (s *Service) RunDailyReport(ctx context.Context, date time.Time) (models.DailyReport, error) {
	report, err := s.BuildDailyReport(ctx, date)
	if err != nil {
		return models.DailyReport{}, err
	}

	if err := s.store.SaveDailyReport(ctx, report); err != nil {
		return models.DailyReport{}, fmt.Errorf("save daily report: %w", err)
	}

	if s.exporter != nil {
		if err := s.exporter.ExportDailyReport(ctx, report); err != nil {
			s.logger.Warn("daily report export failed", zap.Error(err))
		}
	}

	if s.notifier != nil && s.recipient != "" {
		if err := s.notifier.Notify(ctx, s.recipient, FormatDailyReport(report)); err != nil {
			s.logger.Warn("daily report notification failed", zap.Error(err))
		}
	}

	s.logger.Info("daily report generated",
		zap.String("date", report.Date.Format(dateLayout)),
		zap.Int("bakery_orders", report.BakeryOrders))
	return report, nil
}

// FormatDailyReport renders report as a short text message.
func FormatDailyReport(report models.DailyReport) string {
	var b strings.Builder
	st := report.Stock

	fmt.Fprintf(&b, "Daily report %s\n\n", report.Date.Format(dateLayout))
	fmt.Fprintf(&b, "Linen: single sheets %d, single covers %d, double sheets %d, double covers %d, pillowcases %d, large towels %d, small towels %d\n",
		st.SingleSheets, st.SingleCovers, st.DoubleSheets, st.DoubleCovers, st.Pillowcases, st.LargeTowels, st.SmallTowels)
	fmt.Fprintf(&b, "Kits ready: single %d, double %d, towel %d\n",
		report.Kits.Single, report.Kits.Double, report.Kits.Towel)
	fmt.Fprintf(&b, "Kits possible: single %d, double %d, towel %d\n",
		report.MaxKits.Single, report.MaxKits.Double, report.MaxKits.Towel)

	for _, building := range models.Buildings {
		p := report.Parking[building]
		fmt.Fprintf(&b, "Parking %s: %d/%d used (%d%%)\n", building, p.UsedSpaces, p.TotalSpaces, p.PercentUsed)
	}

	fmt.Fprintf(&b, "Bakery tomorrow: %d orders, %.2f EUR\n", report.BakeryOrders, report.BakeryAmount)
	fmt.Fprintf(&b, "Housekeeping: %d dirty, %d clean, %d verified",
		report.Housekeeping.Dirty, report.Housekeeping.Clean, report.Housekeeping.Verified)

	return b.String()
}
