package analytics

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"backoffice/internal/models"
	"backoffice/internal/orders"
)

// StatusFilter narrows which orders feed a rollup. "confirmed" includes
// delivered orders: once delivered, a sale stays a sale.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusConfirmed StatusFilter = "confirmed"
)

func ParseStatusFilter(raw string) StatusFilter {
	switch StatusFilter(raw) {
	case StatusPending, StatusConfirmed:
		return StatusFilter(raw)
	default:
		return StatusAll
	}
}

func (f StatusFilter) clause() bson.M {
	switch f {
	case StatusPending:
		return bson.M{"status": models.StatusPending}
	case StatusConfirmed:
		return bson.M{"status": bson.M{"$in": []string{models.StatusConfirmed, models.StatusDelivered}}}
	default:
		return bson.M{}
	}
}

func rangeFilter(from, to time.Time, status StatusFilter) bson.M {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)

	filter := bson.M{"createdAt": bson.M{"$gte": start, "$lt": end}}
	for key, value := range status.clause() {
		filter[key] = value
	}
	return filter
}

// ProductsByPeriod rolls item quantities and revenue into semantic category
// buckets per period.
func ProductsByPeriod(ctx context.Context, src orders.Source, from, to time.Time, status StatusFilter) ([]models.ProductPeriodRow, error) {
	all, err := src.Orders(ctx, rangeFilter(from, to, status))
	if err != nil {
		return nil, err
	}
	return BucketProducts(all, from, to), nil
}

// BucketProducts is the pure aggregation core behind ProductsByPeriod. Rows
// come back sorted by bucket start; periods with no orders are omitted.
func BucketProducts(all []models.Order, from, to time.Time) []models.ProductPeriodRow {
	granularity := PickGranularity(from, to)
	rows := make(map[string]*models.ProductPeriodRow)

	for _, order := range all {
		label, start := PeriodKey(order.CreatedAt, granularity)
		row, ok := rows[label]
		if !ok {
			row = &models.ProductPeriodRow{Period: label, Date: start}
			rows[label] = row
		}

		for _, item := range order.Items {
			bucket := Classify(item.Name)
			for _, option := range item.Options {
				quantity := option.Quantity
				revenue := option.Price * float64(option.Quantity)
				addToBucket(row, bucket, quantity, revenue)
				row.TotalQuantity += quantity
				row.TotalRevenue += revenue
			}
		}
	}

	return sortedProductRows(rows)
}

func addToBucket(row *models.ProductPeriodRow, bucket string, quantity int, revenue float64) {
	switch bucket {
	case BucketPerro:
		row.PerroQuantity += quantity
		row.PerroRevenue += revenue
	case BucketGato:
		row.GatoQuantity += quantity
		row.GatoRevenue += revenue
	case BucketHuesos:
		row.HuesosQuantity += quantity
		row.HuesosRevenue += revenue
	case BucketComplementos:
		row.ComplementosQuantity += quantity
		row.ComplementosRevenue += revenue
	default:
		row.OtrosQuantity += quantity
		row.OtrosRevenue += revenue
	}
}

func sortedProductRows(rows map[string]*models.ProductPeriodRow) []models.ProductPeriodRow {
	out := make([]models.ProductPeriodRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// PaymentsByPeriod rolls order counts and order revenue per payment method
// into period buckets.
func PaymentsByPeriod(ctx context.Context, src orders.Source, from, to time.Time, status StatusFilter) ([]models.PaymentPeriodRow, error) {
	all, err := src.Orders(ctx, rangeFilter(from, to, status))
	if err != nil {
		return nil, err
	}
	return BucketPayments(all, from, to), nil
}

// BucketPayments is the pure aggregation core behind PaymentsByPeriod.
func BucketPayments(all []models.Order, from, to time.Time) []models.PaymentPeriodRow {
	granularity := PickGranularity(from, to)
	rows := make(map[string]*models.PaymentPeriodRow)

	for _, order := range all {
		label, start := PeriodKey(order.CreatedAt, granularity)
		row, ok := rows[label]
		if !ok {
			row = &models.PaymentPeriodRow{
				Period:  label,
				Date:    start,
				Methods: make(map[string]models.MethodTotals),
			}
			rows[label] = row
		}

		totals := row.Methods[order.PaymentMethod]
		totals.Quantity++
		totals.Revenue += order.Total
		row.Methods[order.PaymentMethod] = totals

		row.TotalQuantity++
		row.TotalRevenue += order.Total
	}

	out := make([]models.PaymentPeriodRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
