package http

import (
	"time"

	"orderboard/internal/core/application/usecases/queries"
	"orderboard/internal/core/domain/model/order"
)

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CheckoutRequest identifies the customer whose cart is being checked out.
type CheckoutRequest struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
}

// TransitionRequest names the lifecycle stage the order should move to.
type TransitionRequest struct {
	Status string `json:"status"`
}

// OrderResponse mirrors the order aggregate for command responses.
type OrderResponse struct {
	ID            int64   `json:"id"`
	RefCode       string  `json:"ref_code"`
	DisplayNumber int     `json:"display_number"`
	CustomerID    int64   `json:"user_id"`
	CustomerName  string  `json:"user_name"`
	Status        string  `json:"status"`
	DateOrdered   string  `json:"date_ordered"`
	DatePreparing *string `json:"date_preparing"`
	DateReady     *string `json:"date_ready"`
	DateComplete  *string `json:"date_complete"`
}

// KitchenQueueResponse groups active orders by lifecycle stage.
type KitchenQueueResponse struct {
	PendingOrders   []OrderCard `json:"pending_orders"`
	PreparingOrders []OrderCard `json:"preparing_orders"`
	ReadyOrders     []OrderCard `json:"ready_orders"`
}

// OrderCard is the per-order view on the kitchen queue endpoint.
type OrderCard struct {
	ID             int64          `json:"id"`
	DisplayNumber  int            `json:"display_number"`
	RefCode        string         `json:"ref_code"`
	CustomerName   string         `json:"customer_name"`
	Status         string         `json:"status"`
	TotalValue     float64        `json:"total_value"`
	TotalTickets   int            `json:"total_tickets"`
	ItemCount      int            `json:"item_count"`
	ItemsSummary   map[string]int `json:"items_summary"`
	DateOrdered    string         `json:"date_ordered"`
	WaitingMinutes int            `json:"waiting_time"`
}

// UserOrderResponse is one entry of a customer's order history.
type UserOrderResponse struct {
	ID            int64          `json:"id"`
	RefCode       string         `json:"ref_code"`
	DisplayNumber int            `json:"display_number"`
	Status        string         `json:"status"`
	TotalValue    float64        `json:"total_value"`
	ItemsSummary  map[string]int `json:"items_summary"`
	DateOrdered   string         `json:"date_ordered"`
}

// HourBucket is one bar of the hourly activity histogram.
type HourBucket struct {
	Hour   int `json:"hour"`
	Orders int `json:"orders"`
}

// AnalyticsResponse is the order rollup served on the analytics endpoint.
type AnalyticsResponse struct {
	TotalOrders     int            `json:"total_orders"`
	OrdersToday     int            `json:"orders_today"`
	OrdersThisWeek  int            `json:"orders_this_week"`
	OrdersThisMonth int            `json:"orders_this_month"`
	StatusCounts    map[string]int `json:"status_counts"`

	TotalRevenue    float64 `json:"total_revenue"`
	RevenueToday    float64 `json:"revenue_today"`
	RevenueThisWeek float64 `json:"revenue_this_week"`

	AvgMinutesToPreparing float64 `json:"avg_time_to_preparing"`
	AvgMinutesToReady     float64 `json:"avg_time_to_ready"`
	AvgMinutesToComplete  float64 `json:"avg_time_to_complete"`
	AvgMinutesTotal       float64 `json:"avg_total_time"`

	HourlyActivity []HourBucket `json:"hourly_activity"`
}

func orderResponseFrom(aggregate *order.Order) OrderResponse {
	return OrderResponse{
		ID:            aggregate.ID(),
		RefCode:       aggregate.RefCode().String(),
		DisplayNumber: aggregate.DisplayNumber().Value(),
		CustomerID:    aggregate.CustomerID(),
		CustomerName:  aggregate.CustomerName(),
		Status:        aggregate.Status().String(),
		DateOrdered:   formatTime(aggregate.CreatedAt()),
		DatePreparing: formatTimePtr(aggregate.PreparingAt()),
		DateReady:     formatTimePtr(aggregate.ReadyAt()),
		DateComplete:  formatTimePtr(aggregate.CompletedAt()),
	}
}

func orderCardsFrom(cards []queries.OrderCardResponse) []OrderCard {
	out := make([]OrderCard, 0, len(cards))
	for _, card := range cards {
		out = append(out, OrderCard{
			ID:             card.ID,
			DisplayNumber:  card.DisplayNumber,
			RefCode:        card.RefCode,
			CustomerName:   card.CustomerName,
			Status:         card.Status,
			TotalValue:     card.TotalValue,
			TotalTickets:   card.TotalTickets,
			ItemCount:      card.ItemCount,
			ItemsSummary:   card.ItemsSummary,
			DateOrdered:    formatTime(card.DateOrdered),
			WaitingMinutes: card.WaitingMinutes,
		})
	}
	return out
}

func analyticsResponseFrom(rollup queries.GetAnalyticsResponse) AnalyticsResponse {
	hourly := make([]HourBucket, 0, len(rollup.HourlyActivity))
	for _, bucket := range rollup.HourlyActivity {
		hourly = append(hourly, HourBucket{Hour: bucket.Hour, Orders: bucket.Orders})
	}

	return AnalyticsResponse{
		TotalOrders:           rollup.TotalOrders,
		OrdersToday:           rollup.OrdersToday,
		OrdersThisWeek:        rollup.OrdersThisWeek,
		OrdersThisMonth:       rollup.OrdersThisMonth,
		StatusCounts:          rollup.StatusCounts,
		TotalRevenue:          rollup.TotalRevenue,
		RevenueToday:          rollup.RevenueToday,
		RevenueThisWeek:       rollup.RevenueThisWeek,
		AvgMinutesToPreparing: rollup.AvgMinutesToPreparing,
		AvgMinutesToReady:     rollup.AvgMinutesToReady,
		AvgMinutesToComplete:  rollup.AvgMinutesToComplete,
		AvgMinutesTotal:       rollup.AvgMinutesTotal,
		HourlyActivity:        hourly,
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := formatTime(*t)
	return &formatted
}
