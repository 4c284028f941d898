package ports

import (
	"context"
	"errors"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
)

// ErrStoreConflict is returned when a write loses to a concurrent one: a
// unique-constraint violation on insert, or a stale status precondition on
// update. Callers may retry the whole unit of work with freshly allocated
// identifiers or freshly loaded state.
var ErrStoreConflict = errors.New("store conflict")

// OrderRepository defines the persistence contract for order aggregates.
// The store's uniqueness constraints on reference code and display number are
// the last line of defense behind the allocator's existence checks; the
// repository surfaces their violation as ErrStoreConflict.
type OrderRepository interface {
	// Add persists a new order aggregate together with its lines and assigns
	// the store-generated numeric key to the aggregate.
	// Returns ErrStoreConflict on a uniqueness violation.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateStatus persists the aggregate's status and stage timestamps,
	// guarded by the status the transition started from. A concurrent
	// transition that already moved the row off `from` causes
	// ErrStoreConflict instead of a silent overwrite.
	UpdateStatus(ctx context.Context, aggregate *order.Order, from order.Status) error

	// GetByID retrieves an order aggregate with its lines by numeric key.
	GetByID(ctx context.Context, id int64) (*order.Order, error)

	// GetByRefCode retrieves an order aggregate with its lines by reference code.
	GetByRefCode(ctx context.Context, refCode kernel.RefCode) (*order.Order, error)

	// ListByStatus retrieves all orders in the given status, oldest first.
	ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// MaxDisplayNumber returns the highest display number currently assigned,
	// or zero when no orders exist.
	MaxDisplayNumber(ctx context.Context) (int, error)

	// ExistsDisplayNumber reports whether any order currently holds n.
	ExistsDisplayNumber(ctx context.Context, n int) (bool, error)

	// ExistsRefCode reports whether any order holds the given reference code.
	ExistsRefCode(ctx context.Context, refCode kernel.RefCode) (bool, error)

	// SumLineValues computes the order's monetary value and ticket count by
	// joining its lines against the menu. Nothing denormalized is read.
	SumLineValues(ctx context.Context, orderID int64) (value float64, tickets int, err error)
}
