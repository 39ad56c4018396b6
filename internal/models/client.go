package models

import "time"

// Behavior categories describe a client's recency/frequency pattern.
const (
	BehaviorNew              = "new"
	BehaviorTracking         = "tracking"
	BehaviorActive           = "active"
	BehaviorPossibleInactive = "possible-inactive"
	BehaviorLost             = "lost"
	BehaviorRecovered        = "recovered"
)

// Spending categories are based on trailing-30-day purchased weight, not
// lifetime spend, despite the name.
const (
	SpendingPremium  = "premium"
	SpendingStandard = "standard"
	SpendingBasic    = "basic"
)

// ClientCategorization is derived per distinct client identity on every
// request; it is never persisted.
type ClientCategorization struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	LastAddress         string    `json:"lastAddress"`
	TotalOrders         int       `json:"totalOrders"`
	TotalSpent          float64   `json:"totalSpent"`
	TotalWeight         float64   `json:"totalWeight"`
	Last30DaysWeight    float64   `json:"last30DaysWeight"`
	FirstOrder          time.Time `json:"firstOrder"`
	LastOrder           time.Time `json:"lastOrder"`
	DaysSinceFirstOrder int       `json:"daysSinceFirstOrder"`
	DaysSinceLastOrder  int       `json:"daysSinceLastOrder"`
	AvgOrderValue       float64   `json:"avgOrderValue"`
	MonthlySpend        float64   `json:"monthlySpend"`
	BehaviorCategory    string    `json:"behaviorCategory"`
	SpendingCategory    string    `json:"spendingCategory"`
}

// ClientTableRow is the flattened record the dashboard table consumes.
type ClientTableRow struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	LastOrder        time.Time `json:"lastOrder"`
	TotalSpent       float64   `json:"totalSpent"`
	TotalOrders      int       `json:"totalOrders"`
	BehaviorCategory string    `json:"behaviorCategory"`
	SpendingCategory string    `json:"spendingCategory"`
}

// CategoryStat summarizes one bucket of a partition (behavior or spending).
type CategoryStat struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	TotalSpent float64 `json:"totalSpent"`
	AvgSpent   float64 `json:"avgSpent"`
	Percentage float64 `json:"percentage"`
}

// ClientStats aggregates both partitions plus global summary numbers.
type ClientStats struct {
	TotalClients       int            `json:"totalClients"`
	BehaviorStats      []CategoryStat `json:"behaviorStats"`
	SpendingStats      []CategoryStat `json:"spendingStats"`
	AvgOrderValue      float64        `json:"avgOrderValue"`
	RepeatCustomerRate float64        `json:"repeatCustomerRate"`
	AvgOrdersPerClient float64        `json:"avgOrdersPerClient"`
	AvgMonthlySpend    float64        `json:"avgMonthlySpend"`
}
