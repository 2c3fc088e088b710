package mongodb

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/residence/internal/domain/models"
)

const (
	stockDocID = "current"
	kitsDocID  = "kits"
)

// LedgerRepository persists the linen stock and kit ledgers as two singleton documents.
type LedgerRepository struct {
	store *Store
	now   func() time.Time
}

// NewLedgerRepository builds the ledger repository.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store, now: time.Now}
}

// EnsureLedgers creates stock/current and stock/kits with zero counts when absent.
func (r *LedgerRepository) EnsureLedgers(ctx context.Context) error {
	coll := r.store.collection(stockCollection)
	now := r.now()

	seeds := []struct {
		id  string
		doc interface{}
	}{
		{id: stockDocID, doc: models.StockItem{UpdatedAt: now}},
		{id: kitsDocID, doc: models.KitsStock{UpdatedAt: now}},
	}

	for _, seed := range seeds {
		_, err := coll.UpdateOne(ctx,
			bson.M{"_id": seed.id},
			bson.M{"$setOnInsert": seed.doc},
			options.Update().SetUpsert(true))
		if err != nil {
			return storeErr(fmt.Sprintf("initialize ledger %s", seed.id), err)
		}
	}
	return nil
}

// LoadStock reads stock/current. Returns models.ErrNotFound when absent.
func (r *LedgerRepository) LoadStock(ctx context.Context) (models.StockItem, error) {
	raw, err := r.findRaw(ctx, stockDocID)
	if err != nil {
		return models.StockItem{}, err
	}
	return decodeStock(raw), nil
}

// LoadKits reads stock/kits. Returns models.ErrNotFound when absent.
func (r *LedgerRepository) LoadKits(ctx context.Context) (models.KitsStock, error) {
	raw, err := r.findRaw(ctx, kitsDocID)
	if err != nil {
		return models.KitsStock{}, err
	}
	return decodeKits(raw), nil
}

// Update runs fn against both ledgers inside a single transaction and writes back
// whichever document fn changed. An error from fn aborts without writing.
func (r *LedgerRepository) Update(ctx context.Context, fn func(l *models.Ledgers) error) error {
	sess, err := r.store.client.StartSession()
	if err != nil {
		return storeErr("start session", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		stockRaw, err := r.findRaw(sc, stockDocID)
		if err != nil {
			return nil, err
		}
		kitsRaw, err := r.findRaw(sc, kitsDocID)
		if err != nil {
			return nil, err
		}

		before := models.Ledgers{Stock: decodeStock(stockRaw), Kits: decodeKits(kitsRaw)}
		after := before
		if err := fn(&after); err != nil {
			return nil, err
		}

		coll := r.store.collection(stockCollection)
		if after.Stock != before.Stock {
			if _, err := coll.UpdateOne(sc, bson.M{"_id": stockDocID}, bson.M{"$set": after.Stock}); err != nil {
				return nil, storeErr("write stock ledger", err)
			}
		}
		if after.Kits != before.Kits {
			if _, err := coll.UpdateOne(sc, bson.M{"_id": kitsDocID}, bson.M{"$set": after.Kits}); err != nil {
				return nil, storeErr("write kits ledger", err)
			}
		}
		return nil, nil
	})
	return err
}

func (r *LedgerRepository) findRaw(ctx context.Context, id string) (bson.M, error) {
	var raw bson.M
	err := r.store.collection(stockCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		return nil, storeErr(fmt.Sprintf("read ledger %s", id), err)
	}
	return raw, nil
}

func decodeStock(raw bson.M) models.StockItem {
	return models.StockItem{
		SingleSheets: intField(raw, string(models.ItemSingleSheet)),
		SingleCovers: intField(raw, string(models.ItemSingleCover)),
		DoubleSheets: intField(raw, string(models.ItemDoubleSheet)),
		DoubleCovers: intField(raw, string(models.ItemDoubleCover)),
		Pillowcases:  intField(raw, string(models.ItemPillowcase)),
		LargeTowels:  intField(raw, string(models.ItemLargeTowel)),
		SmallTowels:  intField(raw, string(models.ItemSmallTowel)),
		UpdatedAt:    timeField(raw, "updatedAt"),
	}
}

func decodeKits(raw bson.M) models.KitsStock {
	return models.KitsStock{
		Single:    intField(raw, string(models.KitSingle)),
		Double:    intField(raw, string(models.KitDouble)),
		Towel:     intField(raw, string(models.KitTowel)),
		UpdatedAt: timeField(raw, "updatedAt"),
	}
}

// intField reads a stored counter; anything missing or not a number counts as zero.
func intField(raw bson.M, key string) int {
	switch v := raw[key].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return int(v)
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int(n)
	}
	return 0
}

func timeField(raw bson.M, key string) time.Time {
	switch v := raw[key].(type) {
	case time.Time:
		return v
	case interface{ Time() time.Time }:
		return v.Time()
	}
	return time.Time{}
}
