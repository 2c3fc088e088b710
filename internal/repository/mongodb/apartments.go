package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/residence/internal/domain/models"
)

// ApartmentRepository stores the apartment directory.
type ApartmentRepository struct {
	store *Store
}

// NewApartmentRepository builds the apartment repository.
func NewApartmentRepository(store *Store) *ApartmentRepository {
	return &ApartmentRepository{store: store}
}

// List returns every apartment ordered by number.
func (r *ApartmentRepository) List(ctx context.Context) ([]models.Apartment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "numero", Value: 1}})
	cursor, err := r.store.collection(apartmentsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeErr("find apartments", err)
	}

	apartments := []models.Apartment{}
	if err := cursor.All(ctx, &apartments); err != nil {
		return nil, storeErr("decode apartments", err)
	}
	return apartments, nil
}

// Exists reports whether an apartment with number is registered.
func (r *ApartmentRepository) Exists(ctx context.Context, number string) (bool, error) {
	err := r.store.collection(apartmentsCollection).FindOne(ctx, bson.M{"numero": number}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, storeErr("find apartment", err)
	}
	return true, nil
}

// Insert stores a new apartment.
func (r *ApartmentRepository) Insert(ctx context.Context, apartment models.Apartment) error {
	_, err := r.store.collection(apartmentsCollection).InsertOne(ctx, apartment)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrAlreadyExists
	}
	return storeErr("insert apartment", err)
}

// Delete removes an apartment.
func (r *ApartmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.store.collection(apartmentsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("delete apartment", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
