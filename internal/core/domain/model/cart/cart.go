// Package cart models the cart snapshot consumed at checkout. The cart itself
// is owned by an external collaborator; this core reads it as a value to
// transform into an order and clears it within the same unit of work.
package cart

import (
	"errors"
	"fmt"

	"orderboard/internal/pkg/errs"
)

// ErrEmptyCart is returned when checkout is attempted on a cart with no lines.
// This is user-correctable input, not a system failure.
var ErrEmptyCart = errors.New("cart is empty")

// Line is a (menu item, quantity) pair as it sits in the cart at checkout.
type Line struct {
	menuItemID int64
	quantity   int
}

// NewLine creates a cart line. Quantity must be at least 1.
func NewLine(menuItemID int64, quantity int) (Line, error) {
	if menuItemID <= 0 {
		return Line{}, errs.NewValueIsRequiredError("menuItemID")
	}
	if quantity < 1 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", quantity))
	}
	return Line{menuItemID: menuItemID, quantity: quantity}, nil
}

// MenuItemID returns the referenced menu item's identifier.
func (l Line) MenuItemID() int64 {
	return l.menuItemID
}

// Quantity returns the quantity in the cart.
func (l Line) Quantity() int {
	return l.quantity
}

// Snapshot is the point-in-time content of a customer's cart, read once at
// checkout. It is a plain value: the assembler does not synchronize on the
// live cart beyond the checkout transaction.
type Snapshot struct {
	customerID int64
	lines      []Line
}

// NewSnapshot creates a cart snapshot for a customer. An empty line set is
// allowed here; emptiness is rejected at checkout with ErrEmptyCart so the
// caller gets the domain error rather than a construction failure.
func NewSnapshot(customerID int64, lines []Line) (Snapshot, error) {
	if customerID <= 0 {
		return Snapshot{}, errs.NewValueIsRequiredError("customerID")
	}

	s := Snapshot{customerID: customerID, lines: make([]Line, len(lines))}
	copy(s.lines, lines)
	return s, nil
}

// CustomerID returns the cart owner's identifier.
func (s Snapshot) CustomerID() int64 {
	return s.customerID
}

// Lines returns a copy of the snapshot's lines.
func (s Snapshot) Lines() []Line {
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// IsEmpty reports whether the cart had no lines at snapshot time.
func (s Snapshot) IsEmpty() bool {
	return len(s.lines) == 0
}
