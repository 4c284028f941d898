package queries

import (
	"errors"
	"time"

	"orderboard/internal/pkg/guard"
)

var ErrGetKitchenQueueQueryIsNotConstructed = errors.New(
	"GetKitchenQueueQuery must be created via NewGetKitchenQueueQuery constructor",
)

// GetKitchenQueueQuery retrieves every order still moving through the
// kitchen, grouped by stage. Completed orders never appear here.
//
// Example:
//
//	query := NewGetKitchenQueueQuery()
//	handler := NewGetKitchenQueueQueryHandler(db)
//
//	queue, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get kitchen queue: %w", err)
//	}
//	fmt.Printf("%d orders waiting to be started\n", len(queue.PendingOrders))
type GetKitchenQueueQuery struct {
	guard guard.ConstructorGuard
}

// NewGetKitchenQueueQuery creates a query for the active kitchen queue.
// This is a parameterless query that fetches all non-completed orders.
func NewGetKitchenQueueQuery() GetKitchenQueueQuery {
	return GetKitchenQueueQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetKitchenQueueQueryIsNotConstructed if validation fails.
func (q GetKitchenQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetKitchenQueueQueryIsNotConstructed)
}

// OrderCardResponse is the per-order view consumed by kitchen and dashboard
// read sides. Totals and the item summary are computed from the order lines
// joined against the menu; nothing denormalized is read.
type OrderCardResponse struct {
	ID             int64
	RefCode        string
	DisplayNumber  int
	CustomerName   string
	Status         string
	TotalValue     float64
	TotalTickets   int
	ItemCount      int
	ItemsSummary   map[string]int
	DateOrdered    time.Time
	WaitingMinutes int
}

// GetKitchenQueueResponse groups active orders by lifecycle stage.
// Each group is sorted oldest first so the kitchen works in arrival order.
type GetKitchenQueueResponse struct {
	PendingOrders   []OrderCardResponse
	PreparingOrders []OrderCardResponse
	ReadyOrders     []OrderCardResponse
}
