package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/residence/internal/domain/models"
)

// ParkingRepository stores parking clients and reservations.
type ParkingRepository struct {
	store *Store
}

// NewParkingRepository builds the parking repository.
func NewParkingRepository(store *Store) *ParkingRepository {
	return &ParkingRepository{store: store}
}

// ListByBuilding returns every client registered for building.
func (r *ParkingRepository) ListByBuilding(ctx context.Context, building models.Building) ([]models.ParkingClient, error) {
	cursor, err := r.store.collection(parkingCollection).Find(ctx, bson.M{"batiment": building})
	if err != nil {
		return nil, storeErr("find parking clients", err)
	}

	clients := []models.ParkingClient{}
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, storeErr("decode parking clients", err)
	}
	return clients, nil
}

// Get returns one client by id.
func (r *ParkingRepository) Get(ctx context.Context, id string) (models.ParkingClient, error) {
	var client models.ParkingClient
	if err := r.store.collection(parkingCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&client); err != nil {
		return models.ParkingClient{}, storeErr("find parking client", err)
	}
	return client, nil
}

// Insert stores a new client.
func (r *ParkingRepository) Insert(ctx context.Context, client models.ParkingClient) error {
	_, err := r.store.collection(parkingCollection).InsertOne(ctx, client)
	return storeErr("insert parking client", err)
}

// Replace overwrites an existing client document.
func (r *ParkingRepository) Replace(ctx context.Context, client models.ParkingClient) error {
	res, err := r.store.collection(parkingCollection).ReplaceOne(ctx, bson.M{"_id": client.ID}, client)
	if err != nil {
		return storeErr("replace parking client", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a client.
func (r *ParkingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.store.collection(parkingCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("delete parking client", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
