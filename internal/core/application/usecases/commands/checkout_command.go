package commands

import (
	"errors"

	"orderboard/internal/pkg/guard"
)

var (
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
	ErrCustomerIDIsInvalid    = errors.New("customer id must be greater than 0")
	ErrCustomerNameIsRequired = errors.New("customer name is required")
)

// CheckoutCommand represents a request to convert a customer's cart into an
// order. The cart contents are not part of the command; the handler reads
// them inside the checkout transaction so the snapshot cannot go stale
// between read and insert.
//
// Example:
//
//	cmd, err := NewCheckoutCommand(42, "Ada Lovelace")
//	if err != nil {
//	    return fmt.Errorf("invalid checkout data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("checkout failed: %w", err)
//	}
//	fmt.Printf("Order %s is number %d", created.RefCode(), created.DisplayNumber().Value())
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	customerID   int64
	customerName string

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a command to check out a customer's cart.
// Validates that the customer id is positive and the name is not empty.
func NewCheckoutCommand(customerID int64, customerName string) (CheckoutCommand, error) {
	checkoutCommand := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		checkoutCommand.setCustomerID(customerID),
		checkoutCommand.setCustomerName(customerName),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return checkoutCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCheckoutCommandIsNotConstructed if validation fails.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// CustomerID returns the identifier of the customer checking out.
func (c CheckoutCommand) CustomerID() int64 {
	return c.customerID
}

// CustomerName returns the display name recorded on the order.
func (c CheckoutCommand) CustomerName() string {
	return c.customerName
}

func (c *CheckoutCommand) setCustomerID(customerID int64) error {
	if customerID <= 0 {
		return ErrCustomerIDIsInvalid
	}

	c.customerID = customerID
	return nil
}

func (c *CheckoutCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = customerName
	return nil
}
