package ports

import (
	"context"

	"orderboard/internal/core/domain/model/cart"
)

// CartRepository reads and clears the externally owned cart. This core only
// touches it inside the checkout unit of work: one snapshot read, one clear.
type CartRepository interface {
	// GetSnapshot reads the customer's current cart as a value.
	// A customer without a cart gets an empty snapshot, not an error.
	GetSnapshot(ctx context.Context, customerID int64) (cart.Snapshot, error)

	// Clear removes all lines from the customer's cart.
	// Clearing an already empty cart is a no-op.
	Clear(ctx context.Context, customerID int64) error
}
