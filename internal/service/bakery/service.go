package bakery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/residence/internal/domain/models"
)

// Repository persists bakery orders.
type Repository interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id string) (models.Order, error)
	Insert(ctx context.Context, order models.Order) error
	Replace(ctx context.Context, order models.Order) error
	Delete(ctx context.Context, id string) error
}

// NewOrder is the payload used to place a pre-order.
type NewOrder struct {
	Apartment     string             `json:"apartment" binding:"required"`
	CustomerName  string             `json:"customerName"`
	Lines         []models.OrderLine `json:"lines" binding:"required"`
	OrderDate     time.Time          `json:"orderDate" binding:"required"`
	Paid          bool               `json:"paid"`
	PaymentMethod string             `json:"paymentMethod"`
}

// Service manages bakery pre-orders.
type Service struct {
	repo   Repository
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires a new bakery service instance.
func NewService(repo Repository, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, logger: logger, now: time.Now, newID: uuid.NewString}
}

// Products returns the bakery catalogue.
func (s *Service) Products() []models.Product {
	return models.Catalogue
}

// ListOrders returns every order sorted by order date, then creation date.
func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].OrderDate.Equal(orders[j].OrderDate) {
			return orders[i].OrderDate.Before(orders[j].OrderDate)
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders, nil
}

// OrdersByDate returns the orders due on the calendar day of date.
func (s *Service) OrdersByDate(ctx context.Context, date time.Time) ([]models.Order, error) {
	orders, err := s.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	due := []models.Order{}
	for _, o := range orders {
		if models.SameDay(o.OrderDate, date, s.loc) {
			due = append(due, o)
		}
	}
	return due, nil
}

// PendingToday returns today's orders not yet handed to the guest.
func (s *Service) PendingToday(ctx context.Context) ([]models.Order, error) {
	orders, err := s.OrdersByDate(ctx, s.now())
	if err != nil {
		return nil, err
	}

	pending := []models.Order{}
	for _, o := range orders {
		if !o.Delivered {
			pending = append(pending, o)
		}
	}
	return pending, nil
}

// ProductionTotals sums the quantity ordered per product for the day of date.
func (s *Service) ProductionTotals(ctx context.Context, date time.Time) (map[string]int, error) {
	orders, err := s.OrdersByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	totals := map[string]int{}
	for _, o := range orders {
		for _, line := range o.Lines {
			totals[line.ProductID] += line.Quantity
		}
	}
	return totals, nil
}

// AddOrder validates and stores a pre-order, returning its id. Orders are taken
// for tomorrow at the earliest.
func (s *Service) AddOrder(ctx context.Context, req NewOrder) (string, error) {
	apartment := strings.TrimSpace(req.Apartment)
	if apartment == "" {
		return "", fmt.Errorf("%w: apartment is required", models.ErrInvalidInput)
	}

	lines, err := validLines(req.Lines)
	if err != nil {
		return "", err
	}

	if !models.StartOfDay(req.OrderDate, s.loc).After(models.StartOfDay(s.now(), s.loc)) {
		return "", fmt.Errorf("%w: order date must be tomorrow or later", models.ErrInvalidInput)
	}

	method := strings.TrimSpace(req.PaymentMethod)
	if req.Paid && method == "" {
		return "", fmt.Errorf("%w: payment method is required for a paid order", models.ErrInvalidInput)
	}
	if !req.Paid {
		method = ""
	}

	order := models.Order{
		ID:            s.newID(),
		Apartment:     apartment,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		Lines:         lines,
		OrderDate:     req.OrderDate,
		Paid:          req.Paid,
		PaymentMethod: method,
		Delivered:     false,
		CreatedAt:     s.now(),
		Total:         models.OrderTotal(lines).InexactFloat64(),
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		return "", fmt.Errorf("add order: %w", err)
	}

	s.logger.Info("bakery order added",
		zap.String("id", order.ID),
		zap.String("apartment", apartment),
		zap.Float64("total", order.Total))
	return order.ID, nil
}

// UpdateOrder applies a partial update, recomputing the total when lines change.
func (s *Service) UpdateOrder(ctx context.Context, id string, upd models.OrderUpdate) (models.Order, error) {
	return s.mutate(ctx, id, func(o *models.Order) error {
		if upd.Apartment != nil {
			apartment := strings.TrimSpace(*upd.Apartment)
			if apartment == "" {
				return fmt.Errorf("%w: apartment is required", models.ErrInvalidInput)
			}
			o.Apartment = apartment
		}
		if upd.CustomerName != nil {
			o.CustomerName = strings.TrimSpace(*upd.CustomerName)
		}
		if upd.OrderDate != nil {
			o.OrderDate = *upd.OrderDate
		}
		if upd.Lines != nil {
			lines, err := validLines(upd.Lines)
			if err != nil {
				return err
			}
			o.Lines = lines
			o.Total = models.OrderTotal(lines).InexactFloat64()
		}
		return nil
	})
}

// MarkDelivered flags whether the order was handed to the guest.
func (s *Service) MarkDelivered(ctx context.Context, id string, delivered bool) (models.Order, error) {
	return s.mutate(ctx, id, func(o *models.Order) error {
		o.Delivered = delivered
		return nil
	})
}

// MarkPaid records payment. A paid order needs a method; an unpaid one loses it.
func (s *Service) MarkPaid(ctx context.Context, id string, paid bool, method string) (models.Order, error) {
	method = strings.TrimSpace(method)
	if paid && method == "" {
		return models.Order{}, fmt.Errorf("%w: payment method is required", models.ErrInvalidInput)
	}

	return s.mutate(ctx, id, func(o *models.Order) error {
		o.Paid = paid
		if paid {
			o.PaymentMethod = method
		} else {
			o.PaymentMethod = ""
		}
		return nil
	})
}

// DeleteOrder removes an order.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	s.logger.Info("bakery order deleted", zap.String("id", id))
	return nil
}

func (s *Service) mutate(ctx context.Context, id string, fn func(o *models.Order) error) (models.Order, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Order{}, fmt.Errorf("load order: %w", err)
	}
	if err := fn(&order); err != nil {
		return models.Order{}, err
	}
	if err := s.repo.Replace(ctx, order); err != nil {
		return models.Order{}, fmt.Errorf("update order: %w", err)
	}
	return order, nil
}

func validLines(lines []models.OrderLine) ([]models.OrderLine, error) {
	valid := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		if _, ok := models.FindProduct(line.ProductID); !ok {
			return nil, fmt.Errorf("%w: unknown product %q", models.ErrInvalidInput, line.ProductID)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity of %s must be positive", models.ErrInvalidInput, line.ProductID)
		}
		valid = append(valid, line)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: at least one product is required", models.ErrInvalidInput)
	}
	return valid, nil
}
