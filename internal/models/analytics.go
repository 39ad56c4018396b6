package models

import (
	"encoding/json"
	"time"
)

// ProductPeriodRow is one time bucket of the product-category rollup. Rows are
// sparse: periods with no matching orders are omitted entirely.
type ProductPeriodRow struct {
	Period               string    `json:"period"`
	Date                 time.Time `json:"date"`
	PerroQuantity        int       `json:"perroQuantity"`
	PerroRevenue         float64   `json:"perroRevenue"`
	GatoQuantity         int       `json:"gatoQuantity"`
	GatoRevenue          float64   `json:"gatoRevenue"`
	HuesosQuantity       int       `json:"huesosQuantity"`
	HuesosRevenue        float64   `json:"huesosRevenue"`
	ComplementosQuantity int       `json:"complementosQuantity"`
	ComplementosRevenue  float64   `json:"complementosRevenue"`
	OtrosQuantity        int       `json:"otrosQuantity"`
	OtrosRevenue         float64   `json:"otrosRevenue"`
	TotalQuantity        int       `json:"totalQuantity"`
	TotalRevenue         float64   `json:"totalRevenue"`
}

// MethodTotals is the per-payment-method cell of a payment period row.
type MethodTotals struct {
	Quantity int
	Revenue  float64
}

// PaymentPeriodRow buckets order counts and revenue per payment method for one
// period. Payment methods are free text, so the row flattens to
// "<method>Quantity"/"<method>Revenue" keys at marshal time to match the table
// contract.
type PaymentPeriodRow struct {
	Period        string
	Date          time.Time
	Methods       map[string]MethodTotals
	TotalQuantity int
	TotalRevenue  float64
}

func (r PaymentPeriodRow) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"period":        r.Period,
		"date":          r.Date,
		"totalQuantity": r.TotalQuantity,
		"totalRevenue":  r.TotalRevenue,
	}
	for method, totals := range r.Methods {
		out[method+"Quantity"] = totals.Quantity
		out[method+"Revenue"] = totals.Revenue
	}
	return json.Marshal(out)
}

// TopEntry is a non-bucketed rollup row for top products, categories or
// payment methods, sorted by quantity descending.
type TopEntry struct {
	Name             string  `json:"name"`
	Quantity         int     `json:"quantity"`
	Revenue          float64 `json:"revenue"`
	OrderCount       int     `json:"orderCount"`
	DistinctProducts int     `json:"distinctProducts"`
	AvgPrice         float64 `json:"avgPrice"`
}
