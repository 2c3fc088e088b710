package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/mamadbah2/residence/internal/domain/models"
)

const testDB = "residence"

func TestParkingRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get decodes a stored client", func(mt *mtest.T) {
		start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+"."+parkingCollection, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "c1"},
			{Key: "nom", Value: "Durand"},
			{Key: "plaqueImmatriculation", Value: "AB-123-CD"},
			{Key: "paye", Value: true},
			{Key: "dateDebut", Value: primitive.NewDateTimeFromTime(start)},
			{Key: "batiment", Value: "Cimes"},
		}))
		repo := NewParkingRepository(NewStoreFromClient(mt.Client, testDB))

		client, err := repo.Get(context.Background(), "c1")

		require.NoError(mt, err)
		assert.Equal(mt, "Durand", client.Name)
		assert.Equal(mt, models.BuildingCimes, client.Building)
		assert.True(mt, client.Paid)
		assert.True(mt, start.Equal(client.StartDate))
		assert.Nil(mt, client.EndDate)
	})

	mt.Run("get missing client is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+"."+parkingCollection, mtest.FirstBatch))
		repo := NewParkingRepository(NewStoreFromClient(mt.Client, testDB))

		_, err := repo.Get(context.Background(), "missing")

		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("replace of unknown client is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		repo := NewParkingRepository(NewStoreFromClient(mt.Client, testDB))

		err := repo.Replace(context.Background(), models.ParkingClient{ID: "ghost"})

		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		repo := NewParkingRepository(NewStoreFromClient(mt.Client, testDB))

		assert.NoError(mt, repo.Delete(context.Background(), "c1"))
	})

	mt.Run("server error is a store failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on residence",
		}))
		repo := NewParkingRepository(NewStoreFromClient(mt.Client, testDB))

		_, err := repo.ListByBuilding(context.Background(), models.BuildingVallon)

		assert.ErrorIs(mt, err, models.ErrStoreUnavailable)
	})
}

func TestApartmentRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("exists", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+"."+apartmentsCollection, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "a1"},
			{Key: "numero", Value: "A12"},
		}))
		repo := NewApartmentRepository(NewStoreFromClient(mt.Client, testDB))

		ok, err := repo.Exists(context.Background(), "A12")

		require.NoError(mt, err)
		assert.True(mt, ok)
	})

	mt.Run("does not exist", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+"."+apartmentsCollection, mtest.FirstBatch))
		repo := NewApartmentRepository(NewStoreFromClient(mt.Client, testDB))

		ok, err := repo.Exists(context.Background(), "Z99")

		require.NoError(mt, err)
		assert.False(mt, ok)
	})

	mt.Run("duplicate number", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))
		repo := NewApartmentRepository(NewStoreFromClient(mt.Client, testDB))

		err := repo.Insert(context.Background(), models.Apartment{ID: "a2", Number: "A12"})

		assert.ErrorIs(mt, err, models.ErrAlreadyExists)
	})

	mt.Run("delete unknown apartment", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewApartmentRepository(NewStoreFromClient(mt.Client, testDB))

		err := repo.Delete(context.Background(), "ghost")

		assert.ErrorIs(mt, err, models.ErrNotFound)
	})
}

func TestLedgerRepository_LoadStock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("tolerant decoding", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+"."+stockCollection, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: stockDocID},
			{Key: "drapsSimple", Value: int32(14)},
			{Key: "housseSimple", Value: "11"},
			{Key: "taieOreiller", Value: 6.0},
		}))
		repo := NewLedgerRepository(NewStoreFromClient(mt.Client, testDB))

		stock, err := repo.LoadStock(context.Background())

		require.NoError(mt, err)
		assert.Equal(mt, 14, stock.SingleSheets)
		assert.Equal(mt, 11, stock.SingleCovers)
		assert.Equal(mt, 6, stock.Pillowcases)
		assert.Zero(mt, stock.SmallTowels)
	})

	mt.Run("missing ledger", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+"."+stockCollection, mtest.FirstBatch))
		repo := NewLedgerRepository(NewStoreFromClient(mt.Client, testDB))

		_, err := repo.LoadStock(context.Background())

		assert.ErrorIs(mt, err, models.ErrNotFound)
	})
}

func TestStore_CheckTransactions(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("replica set member", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "setName", Value: "rs0"}))

		assert.NoError(mt, NewStoreFromClient(mt.Client, testDB).CheckTransactions(context.Background()))
	})

	mt.Run("mongos router", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "msg", Value: "isdbgrid"}))

		assert.NoError(mt, NewStoreFromClient(mt.Client, testDB).CheckTransactions(context.Background()))
	})

	mt.Run("standalone server", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "isWritablePrimary", Value: true}))

		err := NewStoreFromClient(mt.Client, testDB).CheckTransactions(context.Background())
		assert.ErrorIs(mt, err, models.ErrStoreUnavailable)
		assert.ErrorContains(mt, err, "standalone")
	})
}
