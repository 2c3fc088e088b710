package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/residence/internal/domain/models"
)

const (
	stockCollection        = "stock"
	parkingCollection      = "parking-clients"
	ordersCollection       = "boulangerie-commandes"
	housekeepingCollection = "menage"
	apartmentsCollection   = "appartements"
	reportsCollection      = "daily_reports"
)

// Store owns the MongoDB client shared by every repository.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return NewStoreFromClient(client, dbName), nil
}

// NewStoreFromClient wraps an already connected client.
func NewStoreFromClient(client *mongo.Client, dbName string) *Store {
	return &Store{client: client, db: client.Database(dbName)}
}

// EnsureIndexes creates the indexes the repositories rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string]mongo.IndexModel{
		apartmentsCollection: {
			Keys:    bson.D{{Key: "numero", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		housekeepingCollection: {
			Keys:    bson.D{{Key: "numero", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		parkingCollection: {
			Keys: bson.D{{Key: "batiment", Value: 1}},
		},
	}

	for name, model := range indexes {
		if _, err := s.collection(name).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", name, err)
		}
	}
	return nil
}

// CheckTransactions fails when the deployment is a standalone server, which rejects
// the multi-document transactions used by the ledgers.
func (s *Store) CheckTransactions(ctx context.Context) error {
	var hello struct {
		SetName string `bson:"setName"`
		Msg     string `bson:"msg"`
	}
	if err := s.client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		return storeErr("hello", err)
	}
	if hello.SetName == "" && hello.Msg != "isdbgrid" {
		return fmt.Errorf("%w: mongodb deployment is standalone, ledger transactions need a replica set or mongos", models.ErrStoreUnavailable)
	}
	return nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// storeErr tags driver failures so callers can tell them from domain errors.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ErrNotFound
	}
	return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
}
