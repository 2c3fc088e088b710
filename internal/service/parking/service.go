package parking

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/residence/internal/domain/models"
)

// Repository persists parking clients.
type Repository interface {
	ListByBuilding(ctx context.Context, building models.Building) ([]models.ParkingClient, error)
	Get(ctx context.Context, id string) (models.ParkingClient, error)
	Insert(ctx context.Context, client models.ParkingClient) error
	Replace(ctx context.Context, client models.ParkingClient) error
	Delete(ctx context.Context, id string) error
}

// NewClient is the payload used to register a client or a reservation.
type NewClient struct {
	Name         string     `json:"name" binding:"required"`
	Apartment    string     `json:"apartment"`
	Plate        string     `json:"plate"`
	VehicleModel string     `json:"vehicleModel"`
	Paid         bool       `json:"paid"`
	StartDate    time.Time  `json:"startDate" binding:"required"`
	EndDate      *time.Time `json:"endDate"`
	Building     string     `json:"building" binding:"required"`
}

// Service manages parking occupancy for both buildings.
type Service struct {
	repo       Repository
	capacities map[models.Building]int
	loc        *time.Location
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
}

// NewService wires a new parking service instance.
func NewService(repo Repository, capacities map[models.Building]int, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:       repo,
		capacities: capacities,
		loc:        loc,
		logger:     logger,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// ListByBuilding returns the clients of building with their reservation flag
// recomputed against today.
func (s *Service) ListByBuilding(ctx context.Context, building models.Building) ([]models.ParkingClient, error) {
	if _, err := models.ParseBuilding(string(building)); err != nil {
		return nil, err
	}

	clients, err := s.repo.ListByBuilding(ctx, building)
	if err != nil {
		return nil, fmt.Errorf("list parking clients: %w", err)
	}

	today := s.today()
	for i := range clients {
		clients[i].IsReservation = s.day(clients[i].StartDate).After(today)
	}
	return clients, nil
}

// AddClient registers a present client or a future reservation and returns its id.
func (s *Service) AddClient(ctx context.Context, req NewClient) (string, error) {
	building, err := models.ParseBuilding(req.Building)
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", models.ErrInvalidInput)
	}
	if req.StartDate.IsZero() {
		return "", fmt.Errorf("%w: start date is required", models.ErrInvalidInput)
	}
	if req.EndDate != nil && s.day(*req.EndDate).Before(s.day(req.StartDate)) {
		return "", fmt.Errorf("%w: end date precedes start date", models.ErrInvalidInput)
	}

	plate := strings.TrimSpace(req.Plate)
	model := strings.TrimSpace(req.VehicleModel)
	isReservation := s.day(req.StartDate).After(s.today())
	if !isReservation && plate == "" && model == "" {
		return "", fmt.Errorf("%w: a present client needs a plate or a vehicle model", models.ErrInvalidInput)
	}

	client := models.ParkingClient{
		ID:            s.newID(),
		Name:          name,
		Apartment:     strings.TrimSpace(req.Apartment),
		Plate:         plate,
		VehicleModel:  model,
		Paid:          req.Paid && !isReservation,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Building:      building,
		IsReservation: isReservation,
		Confirmed:     false,
	}

	if err := s.repo.Insert(ctx, client); err != nil {
		return "", fmt.Errorf("add parking client: %w", err)
	}

	s.logger.Info("parking client added",
		zap.String("id", client.ID),
		zap.String("building", string(building)),
		zap.Bool("reservation", isReservation))
	return client.ID, nil
}

// UpdateClient applies a partial update to a client.
func (s *Service) UpdateClient(ctx context.Context, id string, upd models.ParkingClientUpdate) (models.ParkingClient, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.ParkingClient{}, fmt.Errorf("load parking client: %w", err)
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return models.ParkingClient{}, fmt.Errorf("%w: name is required", models.ErrInvalidInput)
		}
		client.Name = name
	}
	if upd.Apartment != nil {
		client.Apartment = strings.TrimSpace(*upd.Apartment)
	}
	if upd.Plate != nil {
		client.Plate = strings.TrimSpace(*upd.Plate)
	}
	if upd.VehicleModel != nil {
		client.VehicleModel = strings.TrimSpace(*upd.VehicleModel)
	}
	if upd.Paid != nil {
		client.Paid = *upd.Paid
	}
	if upd.StartDate != nil {
		client.StartDate = *upd.StartDate
	}
	if upd.ClearEndDate {
		client.EndDate = nil
	} else if upd.EndDate != nil {
		client.EndDate = upd.EndDate
	}
	client.IsReservation = s.day(client.StartDate).After(s.today())

	if err := s.repo.Replace(ctx, client); err != nil {
		return models.ParkingClient{}, fmt.Errorf("update parking client: %w", err)
	}
	return client, nil
}

// RemoveClient deletes a client or cancels a reservation.
func (s *Service) RemoveClient(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove parking client: %w", err)
	}
	s.logger.Info("parking client removed", zap.String("id", id))
	return nil
}

// CancelReservation removes a client whose start day is still ahead.
func (s *Service) CancelReservation(ctx context.Context, id string) error {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load parking client: %w", err)
	}
	if !s.day(client.StartDate).After(s.today()) {
		return fmt.Errorf("%w: client %s is not a reservation", models.ErrInvalidInput, id)
	}
	return s.RemoveClient(ctx, id)
}

// ConfirmReservation turns a reservation into a present client starting today.
// At least one of plate or model must be provided.
func (s *Service) ConfirmReservation(ctx context.Context, id, plate, model string) (models.ParkingClient, error) {
	plate = strings.TrimSpace(plate)
	model = strings.TrimSpace(model)
	if plate == "" && model == "" {
		return models.ParkingClient{}, fmt.Errorf("%w: a plate or a vehicle model is required", models.ErrInvalidInput)
	}

	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.ParkingClient{}, fmt.Errorf("load parking client: %w", err)
	}

	client.Confirmed = true
	client.IsReservation = false
	client.StartDate = s.today()
	if plate != "" {
		client.Plate = plate
	}
	if model != "" {
		client.VehicleModel = model
	}

	if err := s.repo.Replace(ctx, client); err != nil {
		return models.ParkingClient{}, fmt.Errorf("confirm reservation: %w", err)
	}

	s.logger.Info("reservation confirmed", zap.String("id", id))
	return client, nil
}

// Stats computes occupancy of building on date.
func (s *Service) Stats(ctx context.Context, building models.Building, date time.Time) (models.ParkingStats, error) {
	clients, err := s.ListByBuilding(ctx, building)
	if err != nil {
		return models.ParkingStats{}, err
	}

	day := s.day(date)
	used := 0
	for _, c := range clients {
		if s.day(c.StartDate).After(day) {
			continue
		}
		if c.EndDate != nil && s.day(*c.EndDate).Before(day) {
			continue
		}
		used++
	}

	total := s.capacities[building]
	stats := models.ParkingStats{
		TotalSpaces: total,
		UsedSpaces:  used,
		FreeSpaces:  max(0, total-used),
	}
	if total > 0 {
		stats.PercentUsed = int(math.Round(float64(used) / float64(total) * 100))
	}
	return stats, nil
}

// AllStats computes occupancy of every building on date.
func (s *Service) AllStats(ctx context.Context, date time.Time) (map[models.Building]models.ParkingStats, error) {
	all := make(map[models.Building]models.ParkingStats, len(models.Buildings))
	for _, b := range models.Buildings {
		stats, err := s.Stats(ctx, b, date)
		if err != nil {
			return nil, err
		}
		all[b] = stats
	}
	return all, nil
}

// SearchByPlate filters the clients of building by a case-insensitive plate fragment.
func (s *Service) SearchByPlate(ctx context.Context, building models.Building, term string) ([]models.ParkingClient, error) {
	clients, err := s.ListByBuilding(ctx, building)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return clients, nil
	}

	matches := []models.ParkingClient{}
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Plate), term) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

func (s *Service) today() time.Time {
	return models.StartOfDay(s.now(), s.loc)
}

func (s *Service) day(t time.Time) time.Time {
	return models.StartOfDay(t, s.loc)
}
