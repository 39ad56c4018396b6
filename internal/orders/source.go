package orders

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"backoffice/internal/models"
)

// Source is the narrow accessor the aggregation engines read orders through.
// Keeping it to one method lets the analytics and client packages run against
// fixtures instead of a live collection.
type Source interface {
	Orders(ctx context.Context, filter bson.M) ([]models.Order, error)
}

type CollectionSource struct {
	Coll *mongo.Collection
}

func (s CollectionSource) Orders(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := s.Coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchOrders, err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchOrders, err)
	}
	return orders, nil
}
