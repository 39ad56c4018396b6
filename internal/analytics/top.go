package analytics

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"

	"backoffice/internal/models"
	"backoffice/internal/orders"
)

const DefaultTopLimit = 10

// TopProducts returns the highest-quantity products across all matching
// orders, capped at limit.
func TopProducts(ctx context.Context, src orders.Source, status StatusFilter, limit int) ([]models.TopEntry, error) {
	all, err := src.Orders(ctx, statusOnlyFilter(status))
	if err != nil {
		return nil, err
	}
	return rollupTop(all, func(_ models.Order, item models.OrderItem) string {
		return item.Name
	}, limit), nil
}

// TopCategories returns the semantic buckets ranked by quantity.
func TopCategories(ctx context.Context, src orders.Source, status StatusFilter, limit int) ([]models.TopEntry, error) {
	all, err := src.Orders(ctx, statusOnlyFilter(status))
	if err != nil {
		return nil, err
	}
	return rollupTop(all, func(_ models.Order, item models.OrderItem) string {
		return Classify(item.Name)
	}, limit), nil
}

// TopPayments returns payment methods ranked by item quantity sold through
// them.
func TopPayments(ctx context.Context, src orders.Source, status StatusFilter, limit int) ([]models.TopEntry, error) {
	all, err := src.Orders(ctx, statusOnlyFilter(status))
	if err != nil {
		return nil, err
	}
	return rollupTop(all, func(order models.Order, _ models.OrderItem) string {
		return order.PaymentMethod
	}, limit), nil
}

func statusOnlyFilter(status StatusFilter) bson.M {
	return status.clause()
}

type topAccumulator struct {
	name     string
	quantity int
	revenue  float64
	orders   map[string]struct{}
	products map[string]struct{}
}

// rollupTop groups line-item options by key and ranks groups by quantity.
// Sort is stable: groups tied on quantity keep their first-seen order; no
// secondary key is promised.
func rollupTop(all []models.Order, key func(models.Order, models.OrderItem) string, limit int) []models.TopEntry {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	byKey := make(map[string]*topAccumulator)
	arrival := make([]string, 0)

	for _, order := range all {
		orderID := order.ID.Hex()
		for _, item := range order.Items {
			k := key(order, item)
			acc, ok := byKey[k]
			if !ok {
				acc = &topAccumulator{
					name:     k,
					orders:   make(map[string]struct{}),
					products: make(map[string]struct{}),
				}
				byKey[k] = acc
				arrival = append(arrival, k)
			}
			for _, option := range item.Options {
				acc.quantity += option.Quantity
				acc.revenue += option.Price * float64(option.Quantity)
			}
			acc.orders[orderID] = struct{}{}
			acc.products[item.Name] = struct{}{}
		}
	}

	entries := make([]models.TopEntry, 0, len(byKey))
	for _, k := range arrival {
		acc := byKey[k]
		avgPrice := 0.0
		if acc.quantity > 0 {
			avgPrice = acc.revenue / float64(acc.quantity)
		}
		entries = append(entries, models.TopEntry{
			Name:             acc.name,
			Quantity:         acc.quantity,
			Revenue:          acc.revenue,
			OrderCount:       len(acc.orders),
			DistinctProducts: len(acc.products),
			AvgPrice:         avgPrice,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Quantity > entries[j].Quantity
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
