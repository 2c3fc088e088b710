package mongodb

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/mamadbah2/residence/internal/domain/models"
)

func TestIntField(t *testing.T) {
	raw := bson.M{
		"int32":    int32(12),
		"int64":    int64(40),
		"int":      7,
		"float":    3.9,
		"nan":      math.NaN(),
		"inf":      math.Inf(1),
		"numeric":  "15",
		"decimal":  "2.5",
		"garbage":  "beaucoup",
		"boolean":  true,
		"negative": int32(-4),
	}

	tests := []struct {
		key  string
		want int
	}{
		{"int32", 12},
		{"int64", 40},
		{"int", 7},
		{"float", 3},
		{"nan", 0},
		{"inf", 0},
		{"numeric", 15},
		{"decimal", 2},
		{"garbage", 0},
		{"boolean", 0},
		{"negative", -4},
		{"missing", 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, intField(raw, tt.key))
		})
	}
}

func TestTimeField(t *testing.T) {
	at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

	assert.True(t, at.Equal(timeField(bson.M{"updatedAt": at}, "updatedAt")))
	assert.True(t, at.Equal(timeField(bson.M{"updatedAt": primitive.NewDateTimeFromTime(at)}, "updatedAt")))
	assert.True(t, timeField(bson.M{"updatedAt": "yesterday"}, "updatedAt").IsZero())
	assert.True(t, timeField(bson.M{}, "updatedAt").IsZero())
}

func TestDecodeStock(t *testing.T) {
	raw := bson.M{
		"_id":             stockDocID,
		"drapsSimple":     int32(20),
		"housseSimple":    int64(18),
		"drapsDouble":     "9",
		"housseDouble":    8.0,
		"taieOreiller":    int32(30),
		"grandeServiette": "n/a",
	}

	got := decodeStock(raw)

	assert.Equal(t, models.StockItem{
		SingleSheets: 20,
		SingleCovers: 18,
		DoubleSheets: 9,
		DoubleCovers: 8,
		Pillowcases:  30,
	}, got)
}

func TestDecodeKits(t *testing.T) {
	at := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	raw := bson.M{
		"_id":          kitsDocID,
		"kitSimple":    int32(3),
		"kitDouble":    "2",
		"kitServiette": nil,
		"updatedAt":    primitive.NewDateTimeFromTime(at),
	}

	got := decodeKits(raw)

	assert.Equal(t, 3, got.Single)
	assert.Equal(t, 2, got.Double)
	assert.Equal(t, 0, got.Towel)
	assert.True(t, at.Equal(got.UpdatedAt))
}

func TestStoreErr(t *testing.T) {
	assert.NoError(t, storeErr("read", nil))
	assert.ErrorIs(t, storeErr("read", mongo.ErrNoDocuments), models.ErrNotFound)

	err := storeErr("read", errors.New("connection reset"))
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NotErrorIs(t, err, models.ErrNotFound)
}

func commandNames(mt *mtest.T) []string {
	var names []string
	for _, evt := range mt.GetAllStartedEvents() {
		names = append(names, evt.CommandName)
	}
	return names
}

func ledgerDocs(stock, kits bson.D) []bson.D {
	ns := testDB + "." + stockCollection
	return []bson.D{
		mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, stock),
		mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, kits),
	}
}

func TestLedgerRepository_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	stockDoc := bson.D{
		{Key: "_id", Value: stockDocID},
		{Key: "drapsSimple", Value: int32(5)},
		{Key: "housseSimple", Value: int32(3)},
		{Key: "taieOreiller", Value: int32(10)},
	}
	kitsDoc := bson.D{
		{Key: "_id", Value: kitsDocID},
		{Key: "kitSimple", Value: int32(1)},
	}

	mt.Run("writes both ledgers and commits", func(mt *mtest.T) {
		mt.AddMockResponses(ledgerDocs(stockDoc, kitsDoc)...)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(),
		)
		repo := NewLedgerRepository(NewStoreFromClient(mt.Client, testDB))

		var seen models.Ledgers
		err := repo.Update(context.Background(), func(l *models.Ledgers) error {
			seen = *l
			l.Stock.SingleSheets -= 2
			l.Kits.Single += 2
			return nil
		})

		require.NoError(mt, err)
		assert.Equal(mt, 5, seen.Stock.SingleSheets)
		assert.Equal(mt, 1, seen.Kits.Single)
		assert.Equal(mt, []string{"find", "find", "update", "update", "commitTransaction"}, commandNames(mt))

		events := mt.GetAllStartedEvents()
		assert.Equal(mt, stockDocID, events[2].Command.Lookup("updates", "0", "q", "_id").StringValue())
		_, err = events[2].Command.LookupErr("updates", "0", "u", "$set", "drapsSimple")
		assert.NoError(mt, err)
		assert.Equal(mt, kitsDocID, events[3].Command.Lookup("updates", "0", "q", "_id").StringValue())
		_, err = events[3].Command.LookupErr("updates", "0", "u", "$set", "kitSimple")
		assert.NoError(mt, err)
	})

	mt.Run("writes only the changed ledger", func(mt *mtest.T) {
		mt.AddMockResponses(ledgerDocs(stockDoc, kitsDoc)...)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(),
		)
		repo := NewLedgerRepository(NewStoreFromClient(mt.Client, testDB))

		err := repo.Update(context.Background(), func(l *models.Ledgers) error {
			l.Kits.Single--
			return nil
		})

		require.NoError(mt, err)
		assert.Equal(mt, []string{"find", "find", "update", "commitTransaction"}, commandNames(mt))
		assert.Equal(mt, kitsDocID, mt.GetAllStartedEvents()[2].Command.Lookup("updates", "0", "q", "_id").StringValue())
	})

	mt.Run("callback error aborts without writing", func(mt *mtest.T) {
		mt.AddMockResponses(ledgerDocs(stockDoc, kitsDoc)...)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewLedgerRepository(NewStoreFromClient(mt.Client, testDB))

		refusal := &models.InsufficientStockError{Kit: models.KitSingle, Requested: 9, Max: 3}
		err := repo.Update(context.Background(), func(l *models.Ledgers) error {
			return refusal
		})

		assert.ErrorIs(mt, err, models.ErrInsufficientStock)
		assert.Equal(mt, []string{"find", "find", "abortTransaction"}, commandNames(mt))
	})

	mt.Run("missing kits ledger", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, testDB+"."+stockCollection, mtest.FirstBatch, stockDoc),
			mtest.CreateCursorResponse(0, testDB+"."+stockCollection, mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)
		repo := NewLedgerRepository(NewStoreFromClient(mt.Client, testDB))

		called := false
		err := repo.Update(context.Background(), func(l *models.Ledgers) error {
			called = true
			return nil
		})

		assert.ErrorIs(mt, err, models.ErrNotFound)
		assert.False(mt, called)
		assert.NotContains(mt, commandNames(mt), "update")
	})
}

func TestLedgerRepository_EnsureLedgers(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upserts both ledgers without overwriting", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)
		at := time.Date(2026, 10, 18, 7, 0, 0, 0, time.UTC)
		repo := NewLedgerRepository(NewStoreFromClient(mt.Client, testDB))
		repo.now = func() time.Time { return at }

		require.NoError(mt, repo.EnsureLedgers(context.Background()))

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 2)
		for i, id := range []string{stockDocID, kitsDocID} {
			cmd := events[i].Command
			assert.Equal(mt, "update", events[i].CommandName)
			assert.Equal(mt, id, cmd.Lookup("updates", "0", "q", "_id").StringValue())
			assert.True(mt, cmd.Lookup("updates", "0", "upsert").Boolean())
			assert.True(mt, at.Equal(cmd.Lookup("updates", "0", "u", "$setOnInsert", "updatedAt").Time()))
			_, err := cmd.LookupErr("updates", "0", "u", "$set")
			assert.Error(mt, err)
		}
	})

	mt.Run("store failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on residence",
		}))
		repo := NewLedgerRepository(NewStoreFromClient(mt.Client, testDB))

		assert.ErrorIs(mt, repo.EnsureLedgers(context.Background()), models.ErrStoreUnavailable)
	})
}
