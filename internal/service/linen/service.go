package linen

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/residence/internal/domain/models"
)

// LedgerStore persists the two singleton ledgers.
type LedgerStore interface {
	EnsureLedgers(ctx context.Context) error
	LoadStock(ctx context.Context) (models.StockItem, error)
	LoadKits(ctx context.Context) (models.KitsStock, error)
	// Update runs fn as one atomic read-modify-write over both ledgers.
	Update(ctx context.Context, fn func(l *models.Ledgers) error) error
}

// Service manages raw linen stock and assembled kits.
type Service struct {
	store  LedgerStore
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new linen service instance.
func NewService(store LedgerStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// EnsureInitialized creates both ledgers with zero counts when either is absent.
func (s *Service) EnsureInitialized(ctx context.Context) error {
	if err := s.store.EnsureLedgers(ctx); err != nil {
		return fmt.Errorf("%w: %w", models.ErrUninitializedLedger, err)
	}
	return nil
}

// GetStock returns the current raw stock.
func (s *Service) GetStock(ctx context.Context) (models.StockItem, error) {
	stock, err := s.store.LoadStock(ctx)
	if errors.Is(err, models.ErrNotFound) {
		if err := s.EnsureInitialized(ctx); err != nil {
			return models.StockItem{}, err
		}
		stock, err = s.store.LoadStock(ctx)
	}
	if err != nil {
		return models.StockItem{}, fmt.Errorf("load stock: %w", err)
	}
	return stock, nil
}

// GetKitsStock returns the current assembled kit counts.
func (s *Service) GetKitsStock(ctx context.Context) (models.KitsStock, error) {
	kits, err := s.store.LoadKits(ctx)
	if errors.Is(err, models.ErrNotFound) {
		if err := s.EnsureInitialized(ctx); err != nil {
			return models.KitsStock{}, err
		}
		kits, err = s.store.LoadKits(ctx)
	}
	if err != nil {
		return models.KitsStock{}, fmt.Errorf("load kits: %w", err)
	}
	return kits, nil
}

// GetMaxKitsPossible derives the kit maxima from the current raw stock.
func (s *Service) GetMaxKitsPossible(ctx context.Context) (models.MaxKits, error) {
	stock, err := s.GetStock(ctx)
	if err != nil {
		return models.MaxKits{}, err
	}
	return MaxKitsPossible(stock), nil
}

// UpdateStockItem adds to or removes from one raw item. Removal floors at zero
// instead of failing.
func (s *Service) UpdateStockItem(ctx context.Context, item models.LinenItem, quantity int, op models.StockOperation) (models.StockItem, error) {
	if quantity <= 0 {
		return models.StockItem{}, models.ErrInvalidQuantity
	}
	if _, err := models.ParseStockOperation(string(op)); err != nil {
		return models.StockItem{}, err
	}

	var result models.StockItem
	err := s.update(ctx, func(l *models.Ledgers) error {
		field, err := l.Stock.Field(item)
		if err != nil {
			return err
		}

		switch op {
		case models.OperationAdd:
			if err := addCount(field, quantity); err != nil {
				return err
			}
		case models.OperationRemove:
			if quantity > *field {
				s.logger.Warn("stock removal floored at zero",
					zap.String("item", string(item)),
					zap.Int("requested", quantity),
					zap.Int("available", *field))
			}
			*field = max(0, *field-quantity)
		}
		l.Stock.UpdatedAt = s.now()
		result = l.Stock
		return nil
	})
	if err != nil {
		return models.StockItem{}, err
	}

	s.logger.Info("stock updated",
		zap.String("item", string(item)),
		zap.String("operation", string(op)),
		zap.Int("quantity", quantity))
	return result, nil
}

// AssembleKits converts raw stock into quantity kits of the given type. The check
// against the derivable maximum and both writes happen in one atomic update.
func (s *Service) AssembleKits(ctx context.Context, kit models.KitType, quantity int) (models.Ledgers, error) {
	if quantity <= 0 {
		return models.Ledgers{}, models.ErrInvalidQuantity
	}
	recipe, ok := models.Recipes[kit]
	if !ok {
		return models.Ledgers{}, fmt.Errorf("%w: %q", models.ErrUnknownKit, kit)
	}

	var result models.Ledgers
	err := s.update(ctx, func(l *models.Ledgers) error {
		maxPossible, err := MaxKitsPossible(l.Stock).Get(kit)
		if err != nil {
			return err
		}
		if quantity > maxPossible {
			return &models.InsufficientStockError{Kit: kit, Requested: quantity, Max: maxPossible}
		}

		for _, component := range recipe {
			field, err := l.Stock.Field(component.Item)
			if err != nil {
				return err
			}
			*field -= component.Quantity * quantity
		}

		kitField, err := l.Kits.Field(kit)
		if err != nil {
			return err
		}
		if err := addCount(kitField, quantity); err != nil {
			return err
		}

		now := s.now()
		l.Stock.UpdatedAt = now
		l.Kits.UpdatedAt = now
		result = *l
		return nil
	})
	if err != nil {
		return models.Ledgers{}, err
	}

	s.logger.Info("kits assembled", zap.String("kit", string(kit)), zap.Int("quantity", quantity))
	return result, nil
}

// RemoveKit issues quantity kits to guests. Consumed components are not returned
// to the raw stock.
func (s *Service) RemoveKit(ctx context.Context, kit models.KitType, quantity int) (models.KitsStock, error) {
	if quantity <= 0 {
		return models.KitsStock{}, models.ErrInvalidQuantity
	}

	var result models.KitsStock
	err := s.update(ctx, func(l *models.Ledgers) error {
		field, err := l.Kits.Field(kit)
		if err != nil {
			return err
		}
		if quantity > *field {
			return &models.InsufficientKitsError{Kit: kit, Requested: quantity, Available: *field}
		}

		*field -= quantity
		l.Kits.UpdatedAt = s.now()
		result = l.Kits
		return nil
	})
	if err != nil {
		return models.KitsStock{}, err
	}

	s.logger.Info("kits issued", zap.String("kit", string(kit)), zap.Int("quantity", quantity))
	return result, nil
}

// update runs fn through the store, creating the ledgers first if they are missing.
func (s *Service) update(ctx context.Context, fn func(l *models.Ledgers) error) error {
	err := s.store.Update(ctx, fn)
	if errors.Is(err, models.ErrNotFound) {
		if err := s.EnsureInitialized(ctx); err != nil {
			return err
		}
		err = s.store.Update(ctx, fn)
	}
	return err
}

// addCount increments a ledger counter. A negative stored value counts as zero and
// a sum past math.MaxInt is rejected.
func addCount(field *int, quantity int) error {
	current := nonNegative(*field)
	if quantity > math.MaxInt-current {
		return fmt.Errorf("%w: adding %d to %d overflows", models.ErrInvalidQuantity, quantity, current)
	}
	*field = current + quantity
	return nil
}
