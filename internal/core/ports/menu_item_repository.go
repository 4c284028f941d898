package ports

import "context"

// MenuItem is the catalog view of one orderable item. The catalog is owned
// by the menu service; this core only reads it to validate cart lines and
// price orders.
type MenuItem struct {
	ID      int64
	Name    string
	Value   float64
	Tickets int
}

// MenuItemRepository defines read-only access to the menu catalog.
type MenuItemRepository interface {
	// GetByIDs returns the menu items with the given identifiers, keyed by
	// identifier. Unknown identifiers are simply absent from the result.
	GetByIDs(ctx context.Context, ids []int64) (map[int64]MenuItem, error)
}
