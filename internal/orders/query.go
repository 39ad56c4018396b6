// Package orders implements the admin order query engine: paginated, filtered,
// sorted retrieval plus an unpaginated export variant.
//
// The two paths deliberately filter on different date fields: the paginated
// table filters deliveryDay (what the kitchen plans around) while the export
// filters createdAt (what accounting reconciles). Do not unify them.
package orders

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backoffice/internal/models"
)

// ErrFetchOrders wraps every query failure; callers surface it as-is and let
// the operator retry manually.
var ErrFetchOrders = errors.New("could not fetch orders")

type SortField struct {
	ID   string `json:"id"`
	Desc bool   `json:"desc"`
}

type ListParams struct {
	PageIndex int
	PageSize  int
	Search    string
	Sorting   []SortField
	From      *time.Time
	To        *time.Time
	OrderType string
}

type ExportParams struct {
	Search    string
	From      *time.Time
	To        *time.Time
	OrderType string
}

// Sort ids come from the dashboard table columns and map onto document paths.
var sortPaths = map[string]string{
	"user":          "user.name",
	"lastName":      "user.lastName",
	"email":         "user.email",
	"total":         "total",
	"subTotal":      "subTotal",
	"status":        "status",
	"paymentMethod": "paymentMethod",
	"orderType":     "orderType",
	"deliveryDay":   "deliveryDay",
	"createdAt":     "createdAt",
	"city":          "address.city",
}

// List returns one page of orders plus total and page counts. The count and
// the page run as parallel $facet branches over a single $match.
func List(ctx context.Context, coll *mongo.Collection, params ListParams) ([]models.Order, int64, int64, error) {
	if params.PageSize < 1 {
		params.PageSize = 20
	}
	if params.PageIndex < 0 {
		params.PageIndex = 0
	}

	filter := listFilter(params)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$sort", Value: sortDoc(params.Sorting)}},
		bson.D{{Key: "$facet", Value: bson.M{
			"data": []bson.M{
				{"$skip": int64(params.PageIndex) * int64(params.PageSize)},
				{"$limit": int64(params.PageSize)},
			},
			"total": []bson.M{
				{"$count": "count"},
			},
		}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrFetchOrders, err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Data  []models.Order `bson:"data"`
		Total []struct {
			Count int64 `bson:"count"`
		} `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrFetchOrders, err)
	}
	if len(results) == 0 {
		return []models.Order{}, 0, 0, nil
	}

	data := dedupByID(results[0].Data)
	var total int64
	if len(results[0].Total) > 0 {
		total = results[0].Total[0].Count
	}
	pageCount := int64(math.Ceil(float64(total) / float64(params.PageSize)))

	return data, total, pageCount, nil
}

// ExportList returns every matching order, unpaginated, newest first.
func ExportList(ctx context.Context, coll *mongo.Collection, params ExportParams) ([]models.Order, error) {
	filter := exportFilter(params)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchOrders, err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchOrders, err)
	}

	return dedupByID(orders), nil
}

func listFilter(params ListParams) bson.M {
	clauses := make([]bson.M, 0, 3)

	if params.OrderType != "" {
		clauses = append(clauses, bson.M{"orderType": params.OrderType})
	}
	if rangeFilter := dateRange("deliveryDay", params.From, params.To); rangeFilter != nil {
		clauses = append(clauses, rangeFilter)
	}
	if search := SearchFilter(params.Search); len(search) > 0 {
		clauses = append(clauses, search)
	}

	return combine(clauses)
}

func exportFilter(params ExportParams) bson.M {
	clauses := make([]bson.M, 0, 3)

	if params.OrderType != "" {
		clauses = append(clauses, bson.M{"orderType": params.OrderType})
	}
	if rangeFilter := dateRange("createdAt", params.From, params.To); rangeFilter != nil {
		clauses = append(clauses, rangeFilter)
	}
	if search := SearchFilter(params.Search); len(search) > 0 {
		clauses = append(clauses, search)
	}

	return combine(clauses)
}

func combine(clauses []bson.M) bson.M {
	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}

func dateRange(field string, from, to *time.Time) bson.M {
	if from == nil && to == nil {
		return nil
	}
	bounds := bson.M{}
	if from != nil {
		start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		bounds["$gte"] = start
	}
	if to != nil {
		end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
		bounds["$lt"] = end
	}
	return bson.M{field: bounds}
}

func sortDoc(sorting []SortField) bson.D {
	doc := bson.D{}
	for _, field := range sorting {
		path, ok := sortPaths[field.ID]
		if !ok {
			continue
		}
		direction := 1
		if field.Desc {
			direction = -1
		}
		doc = append(doc, bson.E{Key: path, Value: direction})
	}
	if len(doc) == 0 {
		doc = bson.D{{Key: "deliveryDay", Value: -1}}
	}
	return doc
}

// dedupByID guards against the facet pipeline occasionally yielding the same
// document twice. First occurrence wins, order preserved.
func dedupByID(orders []models.Order) []models.Order {
	seen := make(map[string]struct{}, len(orders))
	out := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		key := order.ID.Hex()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, order)
	}
	return out
}
