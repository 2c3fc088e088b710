package apartments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/residence/internal/domain/models"
)

// Repository persists the apartment directory.
type Repository interface {
	List(ctx context.Context) ([]models.Apartment, error)
	Exists(ctx context.Context, number string) (bool, error)
	Insert(ctx context.Context, apartment models.Apartment) error
	Delete(ctx context.Context, id string) error
}

// Service manages the list of known apartments.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires a new apartment directory service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now, newID: uuid.NewString}
}

// List returns every registered apartment.
func (s *Service) List(ctx context.Context) ([]models.Apartment, error) {
	apartments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list apartments: %w", err)
	}
	return apartments, nil
}

// Exists reports whether number is a registered apartment.
func (s *Service) Exists(ctx context.Context, number string) (bool, error) {
	number = models.NormalizeApartmentNumber(number)
	if number == "" {
		return false, nil
	}

	ok, err := s.repo.Exists(ctx, number)
	if err != nil {
		return false, fmt.Errorf("check apartment %s: %w", number, err)
	}
	return ok, nil
}

// Add registers an apartment. Registering the same number twice fails with
// models.ErrAlreadyExists.
func (s *Service) Add(ctx context.Context, number, building string) (models.Apartment, error) {
	number = models.NormalizeApartmentNumber(number)
	if number == "" {
		return models.Apartment{}, fmt.Errorf("%w: apartment number is required", models.ErrInvalidInput)
	}

	exists, err := s.Exists(ctx, number)
	if err != nil {
		return models.Apartment{}, err
	}
	if exists {
		return models.Apartment{}, fmt.Errorf("apartment %s: %w", number, models.ErrAlreadyExists)
	}

	apartment := models.Apartment{
		ID:        s.newID(),
		Number:    number,
		Building:  strings.TrimSpace(building),
		CreatedAt: s.now(),
	}
	if err := s.repo.Insert(ctx, apartment); err != nil {
		return models.Apartment{}, fmt.Errorf("add apartment %s: %w", number, err)
	}

	s.logger.Info("apartment added", zap.String("number", number))
	return apartment, nil
}

// Delete removes an apartment from the directory.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete apartment: %w", err)
	}
	s.logger.Info("apartment deleted", zap.String("id", id))
	return nil
}
