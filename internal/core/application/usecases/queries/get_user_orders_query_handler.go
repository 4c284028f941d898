package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetUserOrdersQueryHandler retrieves a customer's order history from the
// database, newest first, with per-order item summaries.
type GetUserOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUserOrdersQueryHandler creates a handler for order history queries.
// Requires a GORM database connection for query execution.
func NewGetUserOrdersQueryHandler(db *gorm.DB) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{db: db}
}

// Handle executes the query and returns at most Limit orders belonging to
// the customer, most recent first.
func (h GetUserOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUserOrdersQuery,
) ([]UserOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			ref_code,
			display_number,
			status,
			created_at
		FROM orders
		WHERE customer_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, query.CustomerID(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]UserOrderResponse, 0)
	ids := make([]int64, 0)

	for rows.Next() {
		var orderResp UserOrderResponse
		err = rows.Scan(
			&orderResp.ID,
			&orderResp.RefCode,
			&orderResp.DisplayNumber,
			&orderResp.Status,
			&orderResp.DateOrdered,
		)
		if err != nil {
			return nil, err
		}

		orderResp.ItemsSummary = make(map[string]int)
		orders = append(orders, orderResp)
		ids = append(ids, orderResp.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = h.foldHistoryLines(ctx, ids, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (h GetUserOrdersQueryHandler) foldHistoryLines(
	ctx context.Context,
	ids []int64,
	orders []UserOrderResponse,
) error {
	if len(ids) == 0 {
		return nil
	}

	byID := make(map[int64]*UserOrderResponse, len(orders))
	for i := range orders {
		byID[orders[i].ID] = &orders[i]
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			ol.order_id,
			mi.name,
			ol.quantity,
			mi.value
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
		var quantity int
		var value float64

		if err = rows.Scan(&orderID, &name, &quantity, &value); err != nil {
			return err
		}

		orderResp, ok := byID[orderID]
		if !ok {
			continue
		}

		orderResp.ItemsSummary[name] += quantity
		orderResp.TotalValue += value * float64(quantity)
	}

	return rows.Err()
}
