package models

import (
	"errors"
	"fmt"
	"time"
)

// LinenItem identifies one raw linen field of the stock ledger.
type LinenItem string

const (
	ItemSingleSheet LinenItem = "drapsSimple"
	ItemSingleCover LinenItem = "housseSimple"
	ItemDoubleSheet LinenItem = "drapsDouble"
	ItemDoubleCover LinenItem = "housseDouble"
	ItemPillowcase  LinenItem = "taieOreiller"
	ItemLargeTowel  LinenItem = "grandeServiette"
	ItemSmallTowel  LinenItem = "petiteServiette"
)

// LinenItems lists every stock ledger field in display order.
var LinenItems = []LinenItem{
	ItemSingleSheet,
	ItemSingleCover,
	ItemDoubleSheet,
	ItemDoubleCover,
	ItemPillowcase,
	ItemLargeTowel,
	ItemSmallTowel,
}

// KitType identifies one assembled kit field of the kit ledger.
type KitType string

const (
	KitSingle KitType = "kitSimple"
	KitDouble KitType = "kitDouble"
	KitTowel  KitType = "kitServiette"
)

// KitTypes lists every kit ledger field in display order.
var KitTypes = []KitType{KitSingle, KitDouble, KitTowel}

// StockOperation is the direction of a raw stock adjustment.
type StockOperation string

const (
	OperationAdd    StockOperation = "add"
	OperationRemove StockOperation = "remove"
)

var (
	// ErrInsufficientStock matches every *InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInsufficientKits matches every *InsufficientKitsError.
	ErrInsufficientKits = errors.New("insufficient kits")

	// ErrUninitializedLedger is returned when a ledger document is absent and could not be created.
	ErrUninitializedLedger = errors.New("ledger not initialized")

	// ErrStoreUnavailable wraps failures of the underlying document store.
	ErrStoreUnavailable = errors.New("store unavailable")
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrUnknownItem      = errors.New("unknown linen item")
	ErrUnknownKit       = errors.New("unknown kit type")
	ErrUnknownOperation = errors.New("unknown stock operation")
)

// InsufficientStockError reports an assembly that exceeds what the raw stock can build.
type InsufficientStockError struct {
	Kit       KitType
	Requested int
	Max       int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("cannot assemble %d %s: maximum possible is %d", e.Requested, e.Kit, e.Max)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// InsufficientKitsError reports an issue of more kits than are on hand.
type InsufficientKitsError struct {
	Kit       KitType
	Requested int
	Available int
}

func (e *InsufficientKitsError) Error() string {
	return fmt.Sprintf("cannot issue %d %s: only %d available", e.Requested, e.Kit, e.Available)
}

func (e *InsufficientKitsError) Is(target error) bool { return target == ErrInsufficientKits }

// StockItem is the raw linen ledger stored under stock/current.
type StockItem struct {
	SingleSheets int       `bson:"drapsSimple" json:"drapsSimple"`
	SingleCovers int       `bson:"housseSimple" json:"housseSimple"`
	DoubleSheets int       `bson:"drapsDouble" json:"drapsDouble"`
	DoubleCovers int       `bson:"housseDouble" json:"housseDouble"`
	Pillowcases  int       `bson:"taieOreiller" json:"taieOreiller"`
	LargeTowels  int       `bson:"grandeServiette" json:"grandeServiette"`
	SmallTowels  int       `bson:"petiteServiette" json:"petiteServiette"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// KitsStock is the assembled kit ledger stored under stock/kits.
type KitsStock struct {
	Single    int       `bson:"kitSimple" json:"kitSimple"`
	Double    int       `bson:"kitDouble" json:"kitDouble"`
	Towel     int       `bson:"kitServiette" json:"kitServiette"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Ledgers pairs both singleton documents for a single read-modify-write.
type Ledgers struct {
	Stock StockItem
	Kits  KitsStock
}

// Component is one raw item consumed by a kit recipe.
type Component struct {
	Item     LinenItem
	Quantity int
}

// Recipes maps every kit type to the raw components one unit consumes.
var Recipes = map[KitType][]Component{
	KitSingle: {
		{Item: ItemSingleSheet, Quantity: 1},
		{Item: ItemSingleCover, Quantity: 1},
		{Item: ItemPillowcase, Quantity: 1},
	},
	KitDouble: {
		{Item: ItemDoubleSheet, Quantity: 1},
		{Item: ItemDoubleCover, Quantity: 1},
		{Item: ItemPillowcase, Quantity: 2},
	},
	KitTowel: {
		{Item: ItemLargeTowel, Quantity: 1},
		{Item: ItemSmallTowel, Quantity: 1},
	},
}

// MaxKits is the number of each kit the current raw stock can still produce.
type MaxKits struct {
	Single int `bson:"kitSimple" json:"kitSimple"`
	Double int `bson:"kitDouble" json:"kitDouble"`
	Towel  int `bson:"kitServiette" json:"kitServiette"`
}

// ParseLinenItem maps a field identifier to its LinenItem.
func ParseLinenItem(value string) (LinenItem, error) {
	for _, item := range LinenItems {
		if string(item) == value {
			return item, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownItem, value)
}

// ParseKitType maps a field identifier to its KitType.
func ParseKitType(value string) (KitType, error) {
	for _, kit := range KitTypes {
		if string(kit) == value {
			return kit, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKit, value)
}

// ParseStockOperation maps "add" or "remove" to a StockOperation.
func ParseStockOperation(value string) (StockOperation, error) {
	switch StockOperation(value) {
	case OperationAdd, OperationRemove:
		return StockOperation(value), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, value)
}

// Field returns a pointer to the counter backing item.
func (s *StockItem) Field(item LinenItem) (*int, error) {
	switch item {
	case ItemSingleSheet:
		return &s.SingleSheets, nil
	case ItemSingleCover:
		return &s.SingleCovers, nil
	case ItemDoubleSheet:
		return &s.DoubleSheets, nil
	case ItemDoubleCover:
		return &s.DoubleCovers, nil
	case ItemPillowcase:
		return &s.Pillowcases, nil
	case ItemLargeTowel:
		return &s.LargeTowels, nil
	case ItemSmallTowel:
		return &s.SmallTowels, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownItem, item)
}

// Get returns the count held for item.
func (s StockItem) Get(item LinenItem) (int, error) {
	p, err := s.Field(item)
	if err != nil {
		return 0, err
	}
	return *p, nil
}

// Field returns a pointer to the counter backing kit.
func (k *KitsStock) Field(kit KitType) (*int, error) {
	switch kit {
	case KitSingle:
		return &k.Single, nil
	case KitDouble:
		return &k.Double, nil
	case KitTowel:
		return &k.Towel, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKit, kit)
}

// Get returns the count held for kit.
func (k KitsStock) Get(kit KitType) (int, error) {
	p, err := k.Field(kit)
	if err != nil {
		return 0, err
	}
	return *p, nil
}

// Get returns the derived maximum for kit.
func (m MaxKits) Get(kit KitType) (int, error) {
	switch kit {
	case KitSingle:
		return m.Single, nil
	case KitDouble:
		return m.Double, nil
	case KitTowel:
		return m.Towel, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKit, kit)
}
