// Package queries contains read-only operations for retrieving system state.
// Implements the Query pattern for the read side of the CQRS architecture.
// Query handlers bypass the aggregates and read projections straight from
// the database.
package queries

import (
	"errors"

	"orderboard/internal/pkg/guard"
)

var ErrGetAnalyticsQueryIsNotConstructed = errors.New(
	"GetAnalyticsQuery must be created via NewGetAnalyticsQuery constructor",
)

// GetAnalyticsQuery computes the rollup over order history that feeds the
// analytics endpoint and the admin dashboard broadcast.
//
// Example:
//
//	query := NewGetAnalyticsQuery()
//	handler := NewGetAnalyticsQueryHandler(db)
//
//	analytics, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to compute analytics: %w", err)
//	}
//	fmt.Printf("%d orders in the last 24 hours\n", analytics.OrdersToday)
type GetAnalyticsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAnalyticsQuery creates a query for the analytics rollup.
// This is a parameterless query over the whole order history.
func NewGetAnalyticsQuery() GetAnalyticsQuery {
	return GetAnalyticsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAnalyticsQueryIsNotConstructed if validation fails.
func (q GetAnalyticsQuery) Validate() error {
	return q.guard.Validate(ErrGetAnalyticsQueryIsNotConstructed)
}

// HourBucketResponse is one bar of the hourly order-creation histogram.
type HourBucketResponse struct {
	Hour   int
	Orders int
}

// GetAnalyticsResponse carries order counts, rolling-window activity,
// revenue, and stage timing averages. Averages cover completed orders only
// and are zero when nothing has completed yet.
type GetAnalyticsResponse struct {
	TotalOrders     int
	OrdersToday     int
	OrdersThisWeek  int
	OrdersThisMonth int
	StatusCounts    map[string]int

	TotalRevenue    float64
	RevenueToday    float64
	RevenueThisWeek float64

	AvgMinutesToPreparing float64
	AvgMinutesToReady     float64
	AvgMinutesToComplete  float64
	AvgMinutesTotal       float64

	HourlyActivity []HourBucketResponse
}
