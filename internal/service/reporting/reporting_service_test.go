package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/residence/internal/domain/models"
)

type stubLinen struct{ err error }

func (s stubLinen) GetStock(context.Context) (models.StockItem, error) {
	return models.StockItem{SingleSheets: 5, SingleCovers: 3, Pillowcases: 10}, s.err
}

func (s stubLinen) GetKitsStock(context.Context) (models.KitsStock, error) {
	return models.KitsStock{Single: 2}, nil
}

func (s stubLinen) GetMaxKitsPossible(context.Context) (models.MaxKits, error) {
	return models.MaxKits{Single: 3}, nil
}

type stubParking struct{ date time.Time }

func (s *stubParking) AllStats(_ context.Context, date time.Time) (map[models.Building]models.ParkingStats, error) {
	s.date = date
	return map[models.Building]models.ParkingStats{
		models.BuildingCimes:  {TotalSpaces: 50, UsedSpaces: 25, FreeSpaces: 25, PercentUsed: 50},
		models.BuildingVallon: {TotalSpaces: 50, UsedSpaces: 10, FreeSpaces: 40, PercentUsed: 20},
	}, nil
}

type stubBakery struct{ date time.Time }

func (s *stubBakery) OrdersByDate(_ context.Context, date time.Time) ([]models.Order, error) {
	s.date = date
	return []models.Order{{Total: 8.7}, {Total: 4.9}, {Total: 0.1}}, nil
}

type stubHousekeeping struct{}

func (stubHousekeeping) Stats(context.Context) (models.HousekeepingStats, error) {
	return models.HousekeepingStats{All: models.StatusCounts{Dirty: 1, Clean: 2, Verified: 3}}, nil
}

type MockStore struct{ mock.Mock }

func (m *MockStore) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	return m.Called(ctx, report).Error(0)
}

type MockExporter struct{ mock.Mock }

func (m *MockExporter) ExportDailyReport(ctx context.Context, report models.DailyReport) error {
	return m.Called(ctx, report).Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

var now = time.Date(2026, 10, 18, 21, 0, 0, 0, time.UTC)

func newTestService(linen LinenSource, store ReportStore, exporter Exporter, notifier Notifier, recipient string) (*Service, *stubParking, *stubBakery) {
	parking := &stubParking{}
	bakery := &stubBakery{}
	svc := NewService(Sources{
		Linen:        linen,
		Parking:      parking,
		Bakery:       bakery,
		Housekeeping: stubHousekeeping{},
	}, store, exporter, notifier, recipient, time.UTC, nil)
	svc.now = func() time.Time { return now }
	return svc, parking, bakery
}

func TestService_BuildDailyReport(t *testing.T) {
	svc, parking, bakery := newTestService(stubLinen{}, nil, nil, nil, "")

	report, err := svc.BuildDailyReport(context.Background(), now)
	require.NoError(t, err)

	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, day, report.Date)
	assert.Equal(t, day, parking.date)
	assert.Equal(t, day.AddDate(0, 0, 1), bakery.date)
	assert.Equal(t, 5, report.Stock.SingleSheets)
	assert.Equal(t, 2, report.Kits.Single)
	assert.Equal(t, 3, report.MaxKits.Single)
	assert.Equal(t, 3, report.BakeryOrders)
	assert.Equal(t, 13.7, report.BakeryAmount)
	assert.Equal(t, models.StatusCounts{Dirty: 1, Clean: 2, Verified: 3}, report.Housekeeping)
	assert.Equal(t, 25, report.Parking[models.BuildingCimes].UsedSpaces)
	assert.Equal(t, now, report.CreatedAt)
}

func TestService_BuildDailyReport_SourceFailure(t *testing.T) {
	boom := errors.New("store down")
	svc, _, _ := newTestService(stubLinen{err: boom}, nil, nil, nil, "")

	_, err := svc.BuildDailyReport(context.Background(), now)
	assert.ErrorIs(t, err, boom)
}

func TestService_RunDailyReport(t *testing.T) {
	ctx := context.Background()

	t.Run("saves exports and notifies", func(t *testing.T) {
		store := new(MockStore)
		exporter := new(MockExporter)
		notifier := new(MockNotifier)
		svc, _, _ := newTestService(stubLinen{}, store, exporter, notifier, "33600000000")

		store.On("SaveDailyReport", ctx, mock.Anything).Return(nil)
		exporter.On("ExportDailyReport", ctx, mock.Anything).Return(nil)
		notifier.On("Notify", ctx, "33600000000", mock.MatchedBy(func(msg string) bool {
			return assert.Contains(t, msg, "Daily report 2026-10-18") &&
				assert.Contains(t, msg, "Parking Cimes: 25/50 used (50%)") &&
				assert.Contains(t, msg, "Bakery tomorrow: 3 orders, 13.70 EUR")
		})).Return(nil)

		_, err := svc.RunDailyReport(ctx, now)
		require.NoError(t, err)
		store.AssertExpectations(t)
		exporter.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("save failure stops the run", func(t *testing.T) {
		store := new(MockStore)
		exporter := new(MockExporter)
		svc, _, _ := newTestService(stubLinen{}, store, exporter, nil, "")

		store.On("SaveDailyReport", ctx, mock.Anything).Return(models.ErrStoreUnavailable)

		_, err := svc.RunDailyReport(ctx, now)
		assert.ErrorIs(t, err, models.ErrStoreUnavailable)
		exporter.AssertNotCalled(t, "ExportDailyReport", mock.Anything, mock.Anything)
	})

	t.Run("export and notify failures are tolerated", func(t *testing.T) {
		store := new(MockStore)
		exporter := new(MockExporter)
		notifier := new(MockNotifier)
		svc, _, _ := newTestService(stubLinen{}, store, exporter, notifier, "33600000000")

		store.On("SaveDailyReport", ctx, mock.Anything).Return(nil)
		exporter.On("ExportDailyReport", ctx, mock.Anything).Return(errors.New("quota"))
		notifier.On("Notify", ctx, mock.Anything, mock.Anything).Return(errors.New("unauthorized"))

		_, err := svc.RunDailyReport(ctx, now)
		assert.NoError(t, err)
	})

	t.Run("no recipient skips notification", func(t *testing.T) {
		store := new(MockStore)
		notifier := new(MockNotifier)
		svc, _, _ := newTestService(stubLinen{}, store, nil, notifier, "")

		store.On("SaveDailyReport", ctx, mock.Anything).Return(nil)

		_, err := svc.RunDailyReport(ctx, now)
		require.NoError(t, err)
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	})
}
