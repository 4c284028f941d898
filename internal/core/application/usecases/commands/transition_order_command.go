package commands

import (
	"errors"

	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
	ErrOrderIDIsInvalid = errors.New("order id must be greater than 0")
)

// TransitionOrderCommand represents a request to advance an order one step
// along its lifecycle. The target status arrives as the external string form
// and is parsed here, so handlers only ever see a well-formed status.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	target  order.Status

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to move an order to the given
// status. Returns order.ErrInvalidStatus when the status string is not one of
// the known lifecycle stages.
func NewTransitionOrderCommand(orderID int64, target string) (TransitionOrderCommand, error) {
	transitionCommand := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setOrderID(orderID),
		transitionCommand.setTarget(target),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionOrderCommandIsNotConstructed if validation fails.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to advance.
func (c TransitionOrderCommand) OrderID() int64 {
	return c.orderID
}

// Target returns the parsed status the order should move to.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

func (c *TransitionOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return ErrOrderIDIsInvalid
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target string) error {
	status, err := order.StatusFromString(target)
	if err != nil {
		return err
	}

	c.target = status
	return nil
}
