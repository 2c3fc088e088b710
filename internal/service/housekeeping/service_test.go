package housekeeping

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/residence/internal/domain/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]models.ApartmentStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ApartmentStatus), args.Error(1)
}

func (m *MockRepository) GetByNumber(ctx context.Context, number string) (models.ApartmentStatus, error) {
	args := m.Called(ctx, number)
	return args.Get(0).(models.ApartmentStatus), args.Error(1)
}

func (m *MockRepository) Upsert(ctx context.Context, status models.ApartmentStatus) error {
	return m.Called(ctx, status).Error(0)
}

var now = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *Service {
	svc := NewService(repo, nil)
	svc.now = func() time.Time { return now }
	svc.newID = func() string { return "status-1" }
	return svc
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes number and stamps time", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		expected := models.ApartmentStatus{
			ID:         "status-1",
			Number:     "C12",
			Building:   "Cimes",
			Status:     models.StatusClean,
			ModifiedAt: now,
		}
		repo.On("Upsert", ctx, expected).Return(nil)

		got, err := svc.UpdateStatus(ctx, "  c12 ", models.StatusClean, " Cimes ")
		require.NoError(t, err)
		assert.Equal(t, expected, got)
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		_, err := svc.UpdateStatus(ctx, "C12", models.CleaningStatus("brillant"), "")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("rejects blank number", func(t *testing.T) {
		svc := newTestService(new(MockRepository))
		_, err := svc.UpdateStatus(ctx, "   ", models.StatusDirty, "")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestService_StatusByNumber(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("GetByNumber", ctx, "V3").Return(models.ApartmentStatus{Number: "V3", Status: models.StatusVerified}, nil)
	repo.On("GetByNumber", ctx, "V4").Return(models.ApartmentStatus{}, models.ErrNotFound)

	status, err := svc.StatusByNumber(ctx, "v3")
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, status.Status)

	_, err = svc.StatusByNumber(ctx, "v4")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestService_Stats(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("List", ctx).Return([]models.ApartmentStatus{
		{Number: "C1", Building: "Cimes", Status: models.StatusDirty},
		{Number: "C2", Building: "Cimes", Status: models.StatusClean},
		{Number: "C3", Building: "Cimes", Status: models.StatusClean},
		{Number: "V1", Building: "Vallon", Status: models.StatusVerified},
		{Number: "X1", Status: models.StatusDirty},
	}, nil)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCounts{Dirty: 2, Clean: 2, Verified: 1}, stats.All)
	assert.Equal(t, map[string]models.StatusCounts{
		"Cimes":  {Dirty: 1, Clean: 2},
		"Vallon": {Verified: 1},
	}, stats.ByBuilding)
}
