package order

import (
	"fmt"

	"orderboard/internal/pkg/errs"
)

// Line is a single position on an order: a menu item reference plus a
// quantity. Lines are owned exclusively by their Order, created at assembly
// time and never mutated afterward; quantity changes happen on the cart
// before checkout, not on the order.
//
// A line references the menu item by identifier only. Monetary totals are
// always recomputed by joining the menu item's current value, so no
// denormalized total can drift.
type Line struct {
	menuItemID int64
	quantity   int
}

// NewLine creates an order line. The menu item reference must be set and the
// quantity must be at least 1.
func NewLine(menuItemID int64, quantity int) (Line, error) {
	if menuItemID <= 0 {
		return Line{}, errs.NewValueIsRequiredError("menuItemID")
	}
	if quantity < 1 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", quantity))
	}

	return Line{
		menuItemID: menuItemID,
		quantity:   quantity,
	}, nil
}

// MenuItemID returns the referenced menu item's identifier.
func (l Line) MenuItemID() int64 {
	return l.menuItemID
}

// Quantity returns the ordered quantity.
func (l Line) Quantity() int {
	return l.quantity
}
