package kernel

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"orderboard/internal/pkg/errs"
)

// RefCodeLength is the fixed length of an order reference code.
const RefCodeLength = 16

// refCodeAlphabet is the character set reference codes are drawn from.
// Lowercase letters and digits keep codes URL-safe and easy to read aloud.
const refCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// ErrRefCodeIsNotConstructed indicates a zero-value RefCode that bypassed
// GenerateRefCode or RefCodeFromString.
var ErrRefCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"RefCode must be created via GenerateRefCode or RefCodeFromString")

// RefCode is the globally unique, opaque string identifier of an order.
// It is a value object: immutable once constructed and safe for concurrent use.
//
// A RefCode alone does not guarantee uniqueness; the allocator must confirm
// with the store that no existing order holds the generated code before use.
//
// Example:
//
//	code, err := kernel.GenerateRefCode()
//	if err != nil {
//	    return err
//	}
//	fmt.Println(code.String()) // e.g. "k3x09qm2a7fzp1wd"
type RefCode struct {
	value string
}

// GenerateRefCode draws a fresh 16-character code from a cryptographically
// strong random source. Each character is chosen uniformly from [a-z0-9].
func GenerateRefCode() (RefCode, error) {
	alphabetSize := big.NewInt(int64(len(refCodeAlphabet)))

	buf := make([]byte, RefCodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return RefCode{}, fmt.Errorf("read random source: %w", err)
		}
		buf[i] = refCodeAlphabet[n.Int64()]
	}

	return RefCode{value: string(buf)}, nil
}

// RefCodeFromString reconstructs a RefCode from its string form, typically
// when loading an order from persistence or parsing a lookup URL.
// Returns an error if the string is not exactly 16 characters of [a-z0-9].
func RefCodeFromString(s string) (RefCode, error) {
	if len(s) != RefCodeLength {
		return RefCode{}, errs.NewValueIsInvalidErrorWithCause(
			"refCode",
			fmt.Errorf("length must be %d, got %d", RefCodeLength, len(s)),
		)
	}

	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return RefCode{}, errs.NewValueIsInvalidErrorWithCause(
				"refCode",
				fmt.Errorf("character %q is outside [a-z0-9]", c),
			)
		}
	}

	return RefCode{value: s}, nil
}

// String returns the code's string form.
func (r RefCode) String() string {
	return r.value
}

// IsEqual compares two reference codes for equality.
func (r RefCode) IsEqual(other RefCode) bool {
	return r.value == other.value
}

// Validate returns ErrRefCodeIsNotConstructed for a zero-value RefCode.
func (r RefCode) Validate() error {
	if r.value == "" {
		return ErrRefCodeIsNotConstructed
	}
	return nil
}
