package order

import (
	"errors"
	"fmt"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrIDAlreadyAssigned is returned when SetID is called on an order that
	// already carries a store-assigned identifier.
	ErrIDAlreadyAssigned = errors.New("order ID is already assigned")
)

// Order represents a completed checkout tracked through a fixed status
// lifecycle. It is the aggregate root of this core.
//
// Order follows these invariants:
//   - Reference code and display number are each unique across all orders
//     at any instant (enforced together with the store's constraints)
//   - Status transitions are strictly linear: pending -> preparing -> ready -> complete
//   - Stage timestamps are populated monotonically and only for stages the
//     order has actually passed through
//   - Lines are immutable once the order is created, and there is at least one
//
// The struct uses private fields to maintain its invariants through
// validated methods; it can only be created via NewOrder or RestoreOrder.
type Order struct {
	// id is the internal numeric key, assigned by the store on insert.
	// Zero until the order has been persisted.
	id int64

	// refCode is the globally unique opaque identifier.
	refCode kernel.RefCode

	// displayNumber is the short recyclable kitchen ticket number.
	displayNumber kernel.DisplayNumber

	customerID   int64
	customerName string

	// status is the current state in the order lifecycle.
	status Status

	createdAt          time.Time
	preparingAt        *time.Time
	readyAt            *time.Time
	completedAt        *time.Time
	lastStatusChangeAt time.Time

	lines []Line

	// isConstructed ensures the order was created via a constructor.
	isConstructed bool
}

// NewOrder creates a pending order at checkout time. The identifiers must
// already be allocated; lines must be non-empty. The creation timestamp also
// initializes the last-status-change timestamp.
func NewOrder(
	refCode kernel.RefCode,
	displayNumber kernel.DisplayNumber,
	customerID int64,
	customerName string,
	lines []Line,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:             Pending,
		createdAt:          now,
		lastStatusChangeAt: now,
		isConstructed:      true,
	}

	if err := errors.Join(
		o.setRefCode(refCode),
		o.setDisplayNumber(displayNumber),
		o.setCustomer(customerID, customerName),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. It re-validates the
// identifier formats and checks that the stage timestamps are consistent with
// the status: an order never carries a timestamp for a stage it has not
// passed through, and never lacks one for a stage it has.
func RestoreOrder(
	id int64,
	refCode kernel.RefCode,
	displayNumber kernel.DisplayNumber,
	customerID int64,
	customerName string,
	status Status,
	createdAt time.Time,
	preparingAt, readyAt, completedAt *time.Time,
	lastStatusChangeAt time.Time,
	lines []Line,
) (*Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsRequiredError("id")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		id:                 id,
		status:             status,
		createdAt:          createdAt,
		preparingAt:        preparingAt,
		readyAt:            readyAt,
		completedAt:        completedAt,
		lastStatusChangeAt: lastStatusChangeAt,
		isConstructed:      true,
	}

	if err := errors.Join(
		o.setRefCode(refCode),
		o.setDisplayNumber(displayNumber),
		o.setCustomer(customerID, customerName),
		o.setLines(lines),
		o.validateStageTimestamps(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by reference code, which is stable across the
// persistence boundary while the numeric key may not be assigned yet.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.refCode.IsEqual(other.refCode)
}

// ID returns the store-assigned numeric key, or zero before persistence.
func (o *Order) ID() int64 {
	return o.id
}

// SetID records the store-assigned numeric key after insert.
// It can only be called once.
func (o *Order) SetID(id int64) error {
	if o.id != 0 {
		return ErrIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsRequiredError("id")
	}
	o.id = id
	return nil
}

// RefCode returns the order's globally unique reference code.
func (o *Order) RefCode() kernel.RefCode {
	return o.refCode
}

// DisplayNumber returns the order's kitchen ticket number.
func (o *Order) DisplayNumber() kernel.DisplayNumber {
	return o.displayNumber
}

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() int64 {
	return o.customerID
}

// CustomerName returns the name shown on tickets and feeds.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the checkout timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// PreparingAt returns when the order entered preparing, or nil.
func (o *Order) PreparingAt() *time.Time {
	return o.preparingAt
}

// ReadyAt returns when the order entered ready, or nil.
func (o *Order) ReadyAt() *time.Time {
	return o.readyAt
}

// CompletedAt returns when the order entered complete, or nil.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// LastStatusChangeAt returns the time of the most recent accepted transition,
// or the creation time if none has occurred.
func (o *Order) LastStatusChangeAt() time.Time {
	return o.lastStatusChangeAt
}

// Lines returns a copy of the order's lines in their original order.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// TransitionTo advances the order to the requested status.
//
// The request is rejected with ErrInvalidStatus if target is not a known
// value, and with ErrIllegalTransition if it is not the immediate successor
// of the current status. A rejected transition leaves the order untouched.
//
// An accepted transition stamps the stage's entered-at timestamp with now and
// updates the last-status-change timestamp.
func (o *Order) TransitionTo(target Status, now time.Time) error {
	if err := o.status.ValidateTransitionTo(target); err != nil {
		return err
	}

	switch target {
	case Preparing:
		o.preparingAt = &now
	case Ready:
		o.readyAt = &now
	case Complete:
		o.completedAt = &now
	default:
		// Unreachable: ValidateTransitionTo only admits forward stages.
		return fmt.Errorf("%w: %s", ErrInvalidStatus, target)
	}

	o.status = target
	o.lastStatusChangeAt = now
	return nil
}

func (o *Order) setRefCode(refCode kernel.RefCode) error {
	if err := refCode.Validate(); err != nil {
		return err
	}
	o.refCode = refCode
	return nil
}

func (o *Order) setDisplayNumber(displayNumber kernel.DisplayNumber) error {
	if err := displayNumber.Validate(); err != nil {
		return err
	}
	o.displayNumber = displayNumber
	return nil
}

func (o *Order) setCustomer(customerID int64, customerName string) error {
	if customerID <= 0 {
		return errs.NewValueIsRequiredError("customerID")
	}
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerID = customerID
	o.customerName = customerName
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}

// validateStageTimestamps checks the presence of stage timestamps against the
// status an order was restored with.
func (o *Order) validateStageTimestamps() error {
	stamped := func(ts *time.Time) bool { return ts != nil }

	var wantPreparing, wantReady, wantComplete bool
	switch o.status {
	case Pending:
	case Preparing:
		wantPreparing = true
	case Ready:
		wantPreparing, wantReady = true, true
	case Complete:
		wantPreparing, wantReady, wantComplete = true, true, true
	default:
		return fmt.Errorf("%w: %d", ErrInvalidStatus, o.status)
	}

	if stamped(o.preparingAt) != wantPreparing ||
		stamped(o.readyAt) != wantReady ||
		stamped(o.completedAt) != wantComplete {
		return errs.NewValueIsInvalidErrorWithCause("stage timestamps",
			fmt.Errorf("inconsistent with status %s", o.status))
	}
	return nil
}
