package queries

import (
	"context"
	"database/sql"
	"time"

	"orderboard/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetKitchenQueueQueryHandler retrieves the active kitchen queue from the
// database. Orders are read first, then their lines are joined against the
// menu in a second query and folded into per-order summaries.
//
// Example:
//
//	handler := NewGetKitchenQueueQueryHandler(db)
//	query := NewGetKitchenQueueQuery()
//
//	queue, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get kitchen queue: %v", err)
//	    return err
//	}
//	fmt.Printf("%d orders in preparation\n", len(queue.PreparingOrders))
type GetKitchenQueueQueryHandler struct {
	db *gorm.DB
}

// NewGetKitchenQueueQueryHandler creates a handler for kitchen queue queries.
// Requires a GORM database connection for query execution.
func NewGetKitchenQueueQueryHandler(db *gorm.DB) GetKitchenQueueQueryHandler {
	return GetKitchenQueueQueryHandler{db: db}
}

// Handle executes the query and returns active orders grouped by stage,
// each group sorted oldest first. Waiting time is minutes spent in the
// current stage, computed at read time.
func (h GetKitchenQueueQueryHandler) Handle(
	ctx context.Context,
	query GetKitchenQueueQuery,
) (GetKitchenQueueResponse, error) {
	if err := query.Validate(); err != nil {
		return GetKitchenQueueResponse{}, err
	}

	cards, err := h.readActiveCards(ctx)
	if err != nil {
		return GetKitchenQueueResponse{}, err
	}

	response := GetKitchenQueueResponse{
		PendingOrders:   make([]OrderCardResponse, 0),
		PreparingOrders: make([]OrderCardResponse, 0),
		ReadyOrders:     make([]OrderCardResponse, 0),
	}

	for _, card := range cards {
		switch card.Status {
		case order.Pending.String():
			response.PendingOrders = append(response.PendingOrders, card)
		case order.Preparing.String():
			response.PreparingOrders = append(response.PreparingOrders, card)
		case order.Ready.String():
			response.ReadyOrders = append(response.ReadyOrders, card)
		}
	}

	return response, nil
}

func (h GetKitchenQueueQueryHandler) readActiveCards(ctx context.Context) ([]OrderCardResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			ref_code,
			display_number,
			customer_name,
			status,
			created_at,
			preparing_at,
			ready_at
		FROM orders
		WHERE status IN (?, ?, ?)
		ORDER BY created_at
	`, order.Pending.String(), order.Preparing.String(), order.Ready.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now().UTC()
	cards := make([]OrderCardResponse, 0)
	ids := make([]int64, 0)

	for rows.Next() {
		var card OrderCardResponse
		var preparingAt, readyAt sql.NullTime
		err = rows.Scan(
			&card.ID,
			&card.RefCode,
			&card.DisplayNumber,
			&card.CustomerName,
			&card.Status,
			&card.DateOrdered,
			&preparingAt,
			&readyAt,
		)
		if err != nil {
			return nil, err
		}

		card.ItemsSummary = make(map[string]int)
		card.WaitingMinutes = waitingMinutes(now, card, preparingAt, readyAt)

		cards = append(cards, card)
		ids = append(ids, card.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = foldLineSummaries(ctx, h.db, ids, cards); err != nil {
		return nil, err
	}

	return cards, nil
}

// waitingMinutes measures how long an order has sat in its current stage,
// counted from the stage's entered-at timestamp rather than checkout time.
func waitingMinutes(now time.Time, card OrderCardResponse, preparingAt, readyAt sql.NullTime) int {
	since := card.DateOrdered
	switch card.Status {
	case order.Preparing.String():
		if preparingAt.Valid {
			since = preparingAt.Time
		}
	case order.Ready.String():
		if readyAt.Valid {
			since = readyAt.Time
		}
	}

	minutes := int(now.Sub(since).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// foldLineSummaries reads the lines of the given orders joined against the
// menu and accumulates item summaries and totals into the matching cards.
func foldLineSummaries(ctx context.Context, db *gorm.DB, ids []int64, cards []OrderCardResponse) error {
	if len(ids) == 0 {
		return nil
	}

	byID := make(map[int64]*OrderCardResponse, len(cards))
	for i := range cards {
		byID[cards[i].ID] = &cards[i]
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			ol.order_id,
			mi.name,
			ol.quantity,
			mi.value,
			mi.tickets
		FROM order_lines ol
		JOIN menu_items mi ON mi.id = ol.menu_item_id
		WHERE ol.order_id IN ?
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var name string
		var quantity, tickets int
		var value float64

		if err = rows.Scan(&orderID, &name, &quantity, &value, &tickets); err != nil {
			return err
		}

		card, ok := byID[orderID]
		if !ok {
			continue
		}

		card.ItemsSummary[name] += quantity
		card.TotalValue += value * float64(quantity)
		card.TotalTickets += tickets * quantity
		card.ItemCount++
	}

	return rows.Err()
}
