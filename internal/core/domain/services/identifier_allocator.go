// Package services provides domain services that orchestrate business
// operations spanning the order aggregate and the store's uniqueness
// guarantees.
//
// The package includes:
//   - IdentifierAllocator: allocates the reference code and display number
//     for a new order against the current order population.
package services

import (
	"context"
	"errors"
	"fmt"

	"orderboard/internal/core/domain/model/kernel"
)

var (
	// ErrAllocationExhausted is returned when every display number in
	// 1..999 is currently assigned. Extremely rare; surfaced as a retryable
	// server error rather than silently degrading uniqueness.
	ErrAllocationExhausted = errors.New("all display numbers are in use")

	// ErrRefCodeSpaceContended is returned when repeated reference-code
	// generations all collided with existing orders. With 36^16 possible
	// codes this indicates a broken random source, not a full code space.
	ErrRefCodeSpaceContended = errors.New("could not generate an unused reference code")
)

// maxRefCodeAttempts bounds the generate-and-check loop.
const maxRefCodeAttempts = 10

// AllocationStore is the slice of the order store the allocator needs for its
// existence checks. ports.OrderRepository satisfies it.
//
// The checks here close only the common race window; the store's uniqueness
// constraints remain the last line of defense, and the caller must treat
// their violation at commit time as a retryable conflict.
type AllocationStore interface {
	MaxDisplayNumber(ctx context.Context) (int, error)
	ExistsDisplayNumber(ctx context.Context, n int) (bool, error)
	ExistsRefCode(ctx context.Context, refCode kernel.RefCode) (bool, error)
}

// IdentifierAllocator allocates the two identifiers of a new order: the
// opaque reference code and the short kitchen display number.
//
// Both allocations must run inside the same unit of work as the order insert;
// the allocator itself holds no state between calls.
type IdentifierAllocator struct{}

// NewIdentifierAllocator creates a new IdentifierAllocator instance.
func NewIdentifierAllocator() IdentifierAllocator {
	return IdentifierAllocator{}
}

// AllocateRefCode generates reference codes until the store confirms the code
// is unused. Collisions are astronomically unlikely, but correctness requires
// the existence check, not just randomness.
func (a IdentifierAllocator) AllocateRefCode(ctx context.Context, store AllocationStore) (kernel.RefCode, error) {
	for range maxRefCodeAttempts {
		code, err := kernel.GenerateRefCode()
		if err != nil {
			return kernel.RefCode{}, err
		}

		exists, err := store.ExistsRefCode(ctx, code)
		if err != nil {
			return kernel.RefCode{}, fmt.Errorf("check reference code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}

	return kernel.RefCode{}, ErrRefCodeSpaceContended
}

// AllocateDisplayNumber picks the next kitchen ticket number.
//
// With no orders it returns 1; while the maximum assigned number is below 999
// it returns max+1. Once 999 has been reached it recycles freed numbers with
// a linear gap scan from 1 upward, returning the first unassigned number.
// When all 999 numbers are in use it returns ErrAllocationExhausted.
func (a IdentifierAllocator) AllocateDisplayNumber(ctx context.Context, store AllocationStore) (kernel.DisplayNumber, error) {
	maxAssigned, err := store.MaxDisplayNumber(ctx)
	if err != nil {
		return kernel.DisplayNumber{}, fmt.Errorf("scan display numbers: %w", err)
	}

	if maxAssigned < kernel.MaxDisplayNumber {
		return kernel.NewDisplayNumber(maxAssigned + 1)
	}

	// The top of the range is taken: recycle the lowest freed number.
	for n := kernel.MinDisplayNumber; n <= kernel.MaxDisplayNumber; n++ {
		taken, err := store.ExistsDisplayNumber(ctx, n)
		if err != nil {
			return kernel.DisplayNumber{}, fmt.Errorf("scan display numbers: %w", err)
		}
		if !taken {
			return kernel.NewDisplayNumber(n)
		}
	}

	return kernel.DisplayNumber{}, ErrAllocationExhausted
}
