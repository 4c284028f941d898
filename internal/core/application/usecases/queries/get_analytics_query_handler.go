package queries

import (
	"context"
	"database/sql"
	"time"

	"orderboard/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// hoursPerHistogramWindow is the number of buckets in the hourly activity
// histogram, one per hour of the current day.
const hoursPerHistogramWindow = 24

// GetAnalyticsQueryHandler computes the analytics rollup from the database.
// All aggregation happens in SQL; the handler only assembles the response.
//
// Example:
//
//	handler := NewGetAnalyticsQueryHandler(db)
//	query := NewGetAnalyticsQuery()
//
//	analytics, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to compute analytics: %v", err)
//	    return err
//	}
//	fmt.Printf("Total revenue: %.2f\n", analytics.TotalRevenue)
type GetAnalyticsQueryHandler struct {
	db *gorm.DB
}

// NewGetAnalyticsQueryHandler creates a handler for analytics queries.
// Requires a GORM database connection for query execution.
func NewGetAnalyticsQueryHandler(db *gorm.DB) GetAnalyticsQueryHandler {
	return GetAnalyticsQueryHandler{db: db}
}

// Handle executes the rollup. The rolling windows are the 24 hours, 7 days
// and 30 days before now. Revenue covers completed orders only and joins
// order lines against the menu.
func (h GetAnalyticsQueryHandler) Handle(
	ctx context.Context,
	query GetAnalyticsQuery,
) (GetAnalyticsResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAnalyticsResponse{}, err
	}

	now := time.Now().UTC()
	response := GetAnalyticsResponse{
		StatusCounts:   make(map[string]int),
		HourlyActivity: make([]HourBucketResponse, 0, hoursPerHistogramWindow),
	}

	if err := h.readOrderCounts(ctx, now, &response); err != nil {
		return GetAnalyticsResponse{}, err
	}
	if err := h.readStatusCounts(ctx, &response); err != nil {
		return GetAnalyticsResponse{}, err
	}
	if err := h.readRevenue(ctx, now, &response); err != nil {
		return GetAnalyticsResponse{}, err
	}
	if err := h.readStageAverages(ctx, &response); err != nil {
		return GetAnalyticsResponse{}, err
	}
	if err := h.readHourlyActivity(ctx, now, &response); err != nil {
		return GetAnalyticsResponse{}, err
	}

	return response, nil
}

func (h GetAnalyticsQueryHandler) readOrderCounts(
	ctx context.Context,
	now time.Time,
	response *GetAnalyticsResponse,
) error {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= ?),
			COUNT(*) FILTER (WHERE created_at >= ?),
			COUNT(*) FILTER (WHERE created_at >= ?)
		FROM orders
	`,
		now.Add(-24*time.Hour),
		now.AddDate(0, 0, -7),
		now.AddDate(0, 0, -30),
	).Row()

	return row.Scan(
		&response.TotalOrders,
		&response.OrdersToday,
		&response.OrdersThisWeek,
		&response.OrdersThisMonth,
	)
}

func (h GetAnalyticsQueryHandler) readStatusCounts(
	ctx context.Context,
	response *GetAnalyticsResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err = rows.Scan(&status, &count); err != nil {
			return err
		}
		response.StatusCounts[status] = count
	}

	return rows.Err()
}

// readRevenue sums line values of completed orders only. An order still in
// the kitchen is not revenue yet.
func (h GetAnalyticsQueryHandler) readRevenue(
	ctx context.Context,
	now time.Time,
	response *GetAnalyticsResponse,
) error {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(mi.value * ol.quantity), 0),
			COALESCE(SUM(mi.value * ol.quantity) FILTER (WHERE o.created_at >= ?), 0),
			COALESCE(SUM(mi.value * ol.quantity) FILTER (WHERE o.created_at >= ?), 0)
		FROM order_lines ol
		JOIN orders o ON o.id = ol.order_id
		JOIN menu_items mi ON mi.id = ol.menu_item_id
		WHERE o.status = ?
	`,
		now.Add(-24*time.Hour),
		now.AddDate(0, 0, -7),
		order.Complete.String(),
	).Row()

	return row.Scan(
		&response.TotalRevenue,
		&response.RevenueToday,
		&response.RevenueThisWeek,
	)
}

// readStageAverages computes per-stage timing averages over completed orders.
// AVG over zero rows yields NULL, which maps to zero in the response.
func (h GetAnalyticsQueryHandler) readStageAverages(
	ctx context.Context,
	response *GetAnalyticsResponse,
) error {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			AVG(EXTRACT(EPOCH FROM (preparing_at - created_at)) / 60),
			AVG(EXTRACT(EPOCH FROM (ready_at - preparing_at)) / 60),
			AVG(EXTRACT(EPOCH FROM (completed_at - ready_at)) / 60),
			AVG(EXTRACT(EPOCH FROM (completed_at - created_at)) / 60)
		FROM orders
		WHERE status = ?
	`, order.Complete.String()).Row()

	var toPreparing, toReady, toComplete, total sql.NullFloat64
	if err := row.Scan(&toPreparing, &toReady, &toComplete, &total); err != nil {
		return err
	}

	response.AvgMinutesToPreparing = toPreparing.Float64
	response.AvgMinutesToReady = toReady.Float64
	response.AvgMinutesToComplete = toComplete.Float64
	response.AvgMinutesTotal = total.Float64

	return nil
}

// readHourlyActivity buckets the current day's order creations by hour.
// Yesterday's orders never fold into today's bars.
func (h GetAnalyticsQueryHandler) readHourlyActivity(
	ctx context.Context,
	now time.Time,
	response *GetAnalyticsResponse,
) error {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(HOUR FROM created_at)::int, COUNT(*)
		FROM orders
		WHERE created_at >= ?
		GROUP BY 1
		ORDER BY 1
	`, startOfDay).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var hour, count int
		if err = rows.Scan(&hour, &count); err != nil {
			return err
		}
		counts[hour] = count
	}
	if err = rows.Err(); err != nil {
		return err
	}

	// Every hour of the day gets a bucket, zero or not, so charts stay stable.
	for hour := range hoursPerHistogramWindow {
		response.HourlyActivity = append(response.HourlyActivity, HourBucketResponse{
			Hour:   hour,
			Orders: counts[hour],
		})
	}

	return nil
}
