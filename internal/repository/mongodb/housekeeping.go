package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/residence/internal/domain/models"
)

// HousekeepingRepository stores one housekeeping status per apartment number.
type HousekeepingRepository struct {
	store *Store
}

// NewHousekeepingRepository builds the housekeeping repository.
func NewHousekeepingRepository(store *Store) *HousekeepingRepository {
	return &HousekeepingRepository{store: store}
}

// List returns every status ordered by apartment number.
func (r *HousekeepingRepository) List(ctx context.Context) ([]models.ApartmentStatus, error) {
	opts := options.Find().SetSort(bson.D{{Key: "numero", Value: 1}})
	cursor, err := r.store.collection(housekeepingCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeErr("find statuses", err)
	}

	statuses := []models.ApartmentStatus{}
	if err := cursor.All(ctx, &statuses); err != nil {
		return nil, storeErr("decode statuses", err)
	}
	return statuses, nil
}

// GetByNumber returns the status of one apartment.
func (r *HousekeepingRepository) GetByNumber(ctx context.Context, number string) (models.ApartmentStatus, error) {
	var status models.ApartmentStatus
	if err := r.store.collection(housekeepingCollection).FindOne(ctx, bson.M{"numero": number}).Decode(&status); err != nil {
		return models.ApartmentStatus{}, storeErr("find status", err)
	}
	return status, nil
}

// Upsert writes status keyed by apartment number, creating the document with
// status.ID when none exists yet.
func (r *HousekeepingRepository) Upsert(ctx context.Context, status models.ApartmentStatus) error {
	set := bson.M{
		"numero":           status.Number,
		"statut":           status.Status,
		"dateModification": status.ModifiedAt,
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"_id": status.ID},
	}
	if status.Building != "" {
		set["batiment"] = status.Building
	} else {
		update["$unset"] = bson.M{"batiment": ""}
	}

	_, err := r.store.collection(housekeepingCollection).UpdateOne(ctx,
		bson.M{"numero": status.Number},
		update,
		options.Update().SetUpsert(true))
	return storeErr("upsert status", err)
}
