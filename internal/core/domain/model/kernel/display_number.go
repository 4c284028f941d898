package kernel

import "orderboard/internal/pkg/errs"

// Display number bounds. Kitchen ticket numbers stay within three digits so
// they remain scannable on a wall display; freed numbers are recycled by the
// allocator rather than growing past MaxDisplayNumber.
const (
	MinDisplayNumber = 1
	MaxDisplayNumber = 999
)

// DisplayNumber is the short, human-facing order number printed on kitchen
// tickets. Unlike RefCode it is only unique among currently known orders and
// may be reused after an order leaves the active set.
type DisplayNumber struct {
	value int
}

// NewDisplayNumber creates a DisplayNumber, rejecting values outside 1..999.
func NewDisplayNumber(n int) (DisplayNumber, error) {
	if n < MinDisplayNumber || n > MaxDisplayNumber {
		return DisplayNumber{}, errs.NewValueIsOutOfRangeError(
			"displayNumber", n, MinDisplayNumber, MaxDisplayNumber)
	}
	return DisplayNumber{value: n}, nil
}

// Value returns the numeric value.
func (d DisplayNumber) Value() int {
	return d.value
}

// IsEqual compares two display numbers for equality.
func (d DisplayNumber) IsEqual(other DisplayNumber) bool {
	return d.value == other.value
}

// Validate rejects the zero value, which is outside the allowed range.
func (d DisplayNumber) Validate() error {
	if d.value < MinDisplayNumber || d.value > MaxDisplayNumber {
		return errs.NewValueIsOutOfRangeError(
			"displayNumber", d.value, MinDisplayNumber, MaxDisplayNumber)
	}
	return nil
}
