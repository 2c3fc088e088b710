package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/residence/internal/domain/models"
)

// OrderRepository stores bakery pre-orders.
type OrderRepository struct {
	store *Store
}

// NewOrderRepository builds the bakery order repository.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// List returns every order. Sorting is left to the caller so no index is required.
func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	cursor, err := r.store.collection(ordersCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr("find orders", err)
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, storeErr("decode orders", err)
	}
	return orders, nil
}

// Get returns one order by id.
func (r *OrderRepository) Get(ctx context.Context, id string) (models.Order, error) {
	var order models.Order
	if err := r.store.collection(ordersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return models.Order{}, storeErr("find order", err)
	}
	return order, nil
}

// Insert stores a new order.
func (r *OrderRepository) Insert(ctx context.Context, order models.Order) error {
	_, err := r.store.collection(ordersCollection).InsertOne(ctx, order)
	return storeErr("insert order", err)
}

// Replace overwrites an existing order document.
func (r *OrderRepository) Replace(ctx context.Context, order models.Order) error {
	res, err := r.store.collection(ordersCollection).ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return storeErr("replace order", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes an order.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.store.collection(ordersCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("delete order", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
