package queries

import (
	"errors"
	"time"

	"orderboard/internal/pkg/guard"
)

var (
	ErrGetUserOrdersQueryIsNotConstructed = errors.New(
		"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor",
	)
	ErrQueryCustomerIDIsInvalid = errors.New("customer id must be greater than 0")
)

// defaultUserOrdersLimit caps order history reads when the caller does not
// ask for a specific page size.
const defaultUserOrdersLimit = 20

// GetUserOrdersQuery retrieves a customer's order history, newest first.
//
// Example:
//
//	query, err := NewGetUserOrdersQuery(42, 10)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order history: %w", err)
//	}
//	fmt.Printf("Customer has %d recent orders\n", len(orders))
type GetUserOrdersQuery struct { //nolint:recvcheck //using for validation
	customerID int64
	limit      int

	guard guard.ConstructorGuard
}

// NewGetUserOrdersQuery creates a query for a customer's recent orders.
// A non-positive limit falls back to the default page size.
func NewGetUserOrdersQuery(customerID int64, limit int) (GetUserOrdersQuery, error) {
	userOrdersQuery := GetUserOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := userOrdersQuery.setCustomerID(customerID); err != nil {
		return GetUserOrdersQuery{}, err
	}
	userOrdersQuery.setLimit(limit)

	return userOrdersQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUserOrdersQueryIsNotConstructed if validation fails.
func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

// CustomerID returns the identifier of the customer whose history is read.
func (q GetUserOrdersQuery) CustomerID() int64 {
	return q.customerID
}

// Limit returns the maximum number of orders to return.
func (q GetUserOrdersQuery) Limit() int {
	return q.limit
}

func (q *GetUserOrdersQuery) setCustomerID(customerID int64) error {
	if customerID <= 0 {
		return ErrQueryCustomerIDIsInvalid
	}

	q.customerID = customerID
	return nil
}

func (q *GetUserOrdersQuery) setLimit(limit int) {
	if limit <= 0 {
		limit = defaultUserOrdersLimit
	}

	q.limit = limit
}

// UserOrderResponse is one entry of a customer's order history.
type UserOrderResponse struct {
	ID            int64
	RefCode       string
	DisplayNumber int
	Status        string
	TotalValue    float64
	ItemsSummary  map[string]int
	DateOrdered   time.Time
}
