package apartments

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

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]models.Apartment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Apartment), args.Error(1)
}

func (m *MockRepository) Exists(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Insert(ctx context.Context, apartment models.Apartment) error {
	return m.Called(ctx, apartment).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	newService := func(repo Repository) *Service {
		svc := NewService(repo, nil)
		svc.now = func() time.Time { return now }
		svc.newID = func() string { return "apt-1" }
		return svc
	}

	t.Run("stores normalized number", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)

		repo.On("Exists", ctx, "B7").Return(false, nil)
		repo.On("Insert", ctx, models.Apartment{ID: "apt-1", Number: "B7", Building: "Vallon", CreatedAt: now}).Return(nil)

		apt, err := svc.Add(ctx, " b7 ", "Vallon")
		require.NoError(t, err)
		assert.Equal(t, "B7", apt.Number)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)

		repo.On("Exists", ctx, "B7").Return(true, nil)

		_, err := svc.Add(ctx, "b7", "")
		assert.ErrorIs(t, err, models.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("duplicate detected at insert", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)

		repo.On("Exists", ctx, "B7").Return(false, nil)
		repo.On("Insert", ctx, mock.Anything).Return(models.ErrAlreadyExists)

		_, err := svc.Add(ctx, "B7", "")
		assert.ErrorIs(t, err, models.ErrAlreadyExists)
	})

	t.Run("blank number", func(t *testing.T) {
		svc := newService(new(MockRepository))
		_, err := svc.Add(ctx, "  ", "")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestService_Exists(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("Exists", ctx, "C12").Return(true, nil)
	repo.On("Exists", ctx, "C13").Return(false, errors.New("boom"))

	ok, err := svc.Exists(ctx, "c12")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Exists(ctx, "c13")
	assert.Error(t, err)
}
