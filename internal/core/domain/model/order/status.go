package order

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStatus is returned when a status value is not one of the
	// four known lifecycle states.
	ErrInvalidStatus = errors.New("status is not a known value")

	// ErrIllegalTransition is returned when a requested transition is not the
	// immediate successor of the current status. The lifecycle is strictly
	// linear: no skipping, no reverse transitions, no cycles.
	ErrIllegalTransition = errors.New("status transition is not allowed")
)

// Status represents the lifecycle state of an order.
// It implements a strictly linear state machine:
//
//	Pending ──> Preparing ──> Ready ──> Complete
//
// Every transition must advance to the immediate successor; Complete is a
// final state. Status is a value object that validates transitions and
// provides string representations for persistence and the wire format.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned at checkout.
	// Orders in this status are waiting for the kitchen to pick them up.
	Pending

	// Preparing indicates the kitchen is working on the order.
	Preparing

	// Ready indicates the order is ready for pickup by the customer.
	Ready

	// Complete indicates the order has been handed over.
	// This is a final state with no further transitions allowed.
	Complete
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Preparing: "preparing",
		Ready:     "ready",
		Complete:  "complete",
	}
}

// getValidStatusStrings returns only valid Status values, to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Preparing: "preparing",
		Ready:     "ready",
		Complete:  "complete",
	}
}

// StatusFromString parses a status from its wire/persistence form.
// Returns ErrInvalidStatus for anything other than the four known values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Validate checks if the Status value is one of the four known states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, s)
	}
	return nil
}

// String returns the lowercase name of the status. It implements fmt.Stringer
// and is safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Next returns the immediate successor in the lifecycle.
// Returns ErrIllegalTransition when called on Complete, which is final,
// and ErrInvalidStatus on an unknown value.
func (s Status) Next() (Status, error) {
	switch s {
	case Pending:
		return Preparing, nil
	case Preparing:
		return Ready, nil
	case Ready:
		return Complete, nil
	case Complete:
		return Unknown, fmt.Errorf("%w: %s is final", ErrIllegalTransition, s)
	default:
		return Unknown, fmt.Errorf("%w: %d", ErrInvalidStatus, s)
	}
}

// ValidateTransitionTo checks that target is the immediate successor of s
// without performing the transition. Out-of-sequence requests, including
// reverse transitions and skips, are rejected with ErrIllegalTransition.
func (s Status) ValidateTransitionTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	next, err := s.Next()
	if err != nil {
		return err
	}

	if target != next {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s, target)
	}
	return nil
}
