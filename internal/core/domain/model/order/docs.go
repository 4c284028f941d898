// Package order provides domain entities and business logic for the order
// lifecycle. It implements the Order aggregate root with identifier
// invariants, strictly linear state transitions, and per-transition
// timestamps used by analytics.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, lines, and lifecycle
//   - Line: An immutable order position referencing a menu item with a quantity
//   - Status: A state machine that enforces valid status transitions
//
// Key business rules:
//   - Orders carry a globally unique reference code and a recyclable display number
//   - Status follows a fixed workflow: pending -> preparing -> ready -> complete
//   - Out-of-sequence transition requests are rejected and leave the order untouched
//   - Each accepted transition stamps its entered-at timestamp exactly once
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
