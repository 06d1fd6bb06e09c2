package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesResult represents paid sales for a single local day
type DailySalesResult struct {
	Date    time.Time
	Revenue decimal.Decimal
}

// CategorySalesResult represents sales aggregated by catalog category
type CategorySalesResult struct {
	Category string
	Amount   decimal.Decimal
}

// TopItemResult represents an item's sales performance
type TopItemResult struct {
	ItemID   string
	Name     string
	Quantity decimal.Decimal
	Revenue  decimal.Decimal
}

// DaySummary holds the per-day figures of the analytics screen
type DaySummary struct {
	PaidCount     int64
	ItemsSold     decimal.Decimal
	TaxCollected  decimal.Decimal
	DueCount      int64
	SalesCategory []CategorySalesResult
	TopItems      []TopItemResult
}

// AnalyticsSnapshot is every aggregate read in one consistent pass
type AnalyticsSnapshot struct {
	Daily           []DailySalesResult
	Today           DaySummary
	DuesOutstanding decimal.Decimal
}

// AnalyticsRepository defines the aggregation queries over durable bills
type AnalyticsRepository interface {
	// GetSnapshot reads all aggregates inside one read transaction.
	// Daily covers `days` local days ending with the day that contains now,
	// oldest first; Today is the day that contains now.
	GetSnapshot(ctx context.Context, now time.Time, days, topItems int) (*AnalyticsSnapshot, error)
}
