// Package events defines the closed set of domain events flowing from the
// order lifecycle to live viewers. Events are immutable once constructed and
// serialized only at the transport boundary, so every consumer gets
// compile-time exhaustiveness over the event kinds instead of loosely typed
// payload maps.
package events

import "time"

// Wire type tags. These are the "type" field of the JSON envelope and are
// part of the client contract.
const (
	TypeOrderCreated      = "new_order"
	TypeStatusChanged     = "order_status_change"
	TypeKitchenSnapshot   = "kitchen_update"
	TypeDashboardSnapshot = "dashboard_update"
)

// Event is the closed sum of domain events this core publishes.
// The unexported method keeps the set closed to this package.
type Event interface {
	// Type returns the wire type tag of the event.
	Type() string

	// OccurredAt returns when the event was constructed.
	OccurredAt() time.Time

	isEvent()
}

// OrderCreated is emitted once when a cart is converted into an order.
type OrderCreated struct {
	OrderID       int64
	RefCode       string
	DisplayNumber int
	CustomerID    int64
	CustomerName  string
	TotalValue    float64
	TotalTickets  int
	ItemCount     int
	At            time.Time
}

func (OrderCreated) isEvent() {}

// Type returns the wire type tag.
func (OrderCreated) Type() string { return TypeOrderCreated }

// OccurredAt returns the event construction time.
func (e OrderCreated) OccurredAt() time.Time { return e.At }

// StatusChanged is emitted on every accepted lifecycle transition.
type StatusChanged struct {
	OrderID      int64
	RefCode      string
	CustomerID   int64
	CustomerName string
	OldStatus    string
	NewStatus    string
	At           time.Time
}

func (StatusChanged) isEvent() {}

// Type returns the wire type tag.
func (StatusChanged) Type() string { return TypeStatusChanged }

// OccurredAt returns the event construction time.
func (e StatusChanged) OccurredAt() time.Time { return e.At }

// OrderCard is the per-order payload shown on kitchen and dashboard views.
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
	DateOrdered    time.Time      `json:"date_ordered"`
	WaitingMinutes int            `json:"waiting_time"`
}

// KitchenSnapshot is the full queue state pushed to the kitchen display:
// on connect, after every order/status event, and on the periodic refresh.
type KitchenSnapshot struct {
	PendingOrders   []OrderCard
	PreparingOrders []OrderCard
	ReadyOrders     []OrderCard
	At              time.Time
}

func (KitchenSnapshot) isEvent() {}

// Type returns the wire type tag.
func (KitchenSnapshot) Type() string { return TypeKitchenSnapshot }

// OccurredAt returns the snapshot computation time.
func (e KitchenSnapshot) OccurredAt() time.Time { return e.At }

// HourBucket is one bar of the hourly order-creation histogram.
type HourBucket struct {
	Hour   int `json:"hour"`
	Orders int `json:"orders"`
}

// AnalyticsSnapshot is the read-only rollup over order history consumed by
// both the analytics endpoint and the dashboard broadcast.
type AnalyticsSnapshot struct {
	TotalOrders     int            `json:"total_orders"`
	OrdersToday     int            `json:"orders_today"`
	OrdersThisWeek  int            `json:"orders_this_week"`
	OrdersThisMonth int            `json:"orders_this_month"`
	StatusCounts    map[string]int `json:"status_counts"`

	TotalRevenue    float64 `json:"total_revenue"`
	RevenueToday    float64 `json:"revenue_today"`
	RevenueThisWeek float64 `json:"revenue_this_week"`

	// Average minutes per stage, computed only over completed orders.
	// Zero when no order has completed yet.
	AvgMinutesToPreparing float64 `json:"avg_time_to_preparing"`
	AvgMinutesToReady     float64 `json:"avg_time_to_ready"`
	AvgMinutesToComplete  float64 `json:"avg_time_to_complete"`
	AvgMinutesTotal       float64 `json:"avg_total_time"`

	HourlyActivity []HourBucket `json:"hourly_activity"`
}

// DashboardSnapshot wraps an analytics rollup for broadcast to the admin
// dashboard channel.
type DashboardSnapshot struct {
	Analytics AnalyticsSnapshot
	At        time.Time
}

func (DashboardSnapshot) isEvent() {}

// Type returns the wire type tag.
func (DashboardSnapshot) Type() string { return TypeDashboardSnapshot }

// OccurredAt returns the snapshot computation time.
func (e DashboardSnapshot) OccurredAt() time.Time { return e.At }
