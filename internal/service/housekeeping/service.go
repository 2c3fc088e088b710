package housekeeping

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/residence/internal/domain/models"
)

// Repository persists housekeeping statuses keyed by apartment number.
type Repository interface {
	List(ctx context.Context) ([]models.ApartmentStatus, error)
	GetByNumber(ctx context.Context, number string) (models.ApartmentStatus, error)
	Upsert(ctx context.Context, status models.ApartmentStatus) error
}

// Service tracks the cleaning state of apartments.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires a new housekeeping service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now, newID: uuid.NewString}
}

// ListStatuses returns every apartment status ordered by number.
func (s *Service) ListStatuses(ctx context.Context) ([]models.ApartmentStatus, error) {
	statuses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	return statuses, nil
}

// StatusByNumber returns the status of one apartment.
func (s *Service) StatusByNumber(ctx context.Context, number string) (models.ApartmentStatus, error) {
	number = models.NormalizeApartmentNumber(number)
	if number == "" {
		return models.ApartmentStatus{}, fmt.Errorf("%w: apartment number is required", models.ErrInvalidInput)
	}

	status, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return models.ApartmentStatus{}, fmt.Errorf("status of %s: %w", number, err)
	}
	return status, nil
}

// UpdateStatus sets the status of an apartment, creating its record when needed.
func (s *Service) UpdateStatus(ctx context.Context, number string, status models.CleaningStatus, building string) (models.ApartmentStatus, error) {
	number = models.NormalizeApartmentNumber(number)
	if number == "" {
		return models.ApartmentStatus{}, fmt.Errorf("%w: apartment number is required", models.ErrInvalidInput)
	}
	if _, err := models.ParseCleaningStatus(string(status)); err != nil {
		return models.ApartmentStatus{}, err
	}

	record := models.ApartmentStatus{
		ID:         s.newID(),
		Number:     number,
		Building:   strings.TrimSpace(building),
		Status:     status,
		ModifiedAt: s.now(),
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return models.ApartmentStatus{}, fmt.Errorf("update status of %s: %w", number, err)
	}

	s.logger.Info("housekeeping status updated",
		zap.String("apartment", number),
		zap.String("status", string(status)))
	return record, nil
}

// Stats counts apartments per status, overall and per building. Records with
// no building are only counted overall.
func (s *Service) Stats(ctx context.Context) (models.HousekeepingStats, error) {
	statuses, err := s.ListStatuses(ctx)
	if err != nil {
		return models.HousekeepingStats{}, err
	}

	stats := models.HousekeepingStats{ByBuilding: map[string]models.StatusCounts{}}
	for _, st := range statuses {
		stats.All.Add(st.Status)
		if st.Building == "" {
			continue
		}
		counts := stats.ByBuilding[st.Building]
		counts.Add(st.Status)
		stats.ByBuilding[st.Building] = counts
	}
	return stats, nil
}
