package kernel

import (
	"strings"

	"dispatch/internal/pkg/errs"
)

// ErrPhoneIsNotConstructed indicates that a Phone was not created through
// NewPhone. This error is returned when validating a zero-value Phone.
var ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("phone must be created via NewPhone")

// Phone is the identity of a delivery agent. The same number arrives
// formatted differently from different entry points (login form, admin
// board, order records), so every comparison goes through this value
// object, which keeps only the digits.
//
// Phone is immutable; the zero value is invalid and must be constructed
// via NewPhone.
type Phone struct {
	digits        string
	isConstructed bool
}

// NewPhone normalizes a raw phone number to its digits and returns the
// resulting value object. Formatting characters (spaces, dashes, plus
// signs, parentheses) are discarded.
//
// Returns a ValueIsRequiredError when the input contains no digits at all.
func NewPhone(raw string) (Phone, error) {
	digits := NormalizePhone(raw)
	if digits == "" {
		return Phone{}, errs.NewValueIsRequiredError("phone")
	}

	return Phone{digits: digits, isConstructed: true}, nil
}

// NormalizePhone strips every non-digit character from raw. It is the
// single normalization point for phone identity in the system; callers
// that hold plain strings (DTOs, query filters) must use it before any
// equality check.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate ensures the Phone was created via NewPhone.
func (p Phone) Validate() error {
	if !p.isConstructed {
		return ErrPhoneIsNotConstructed
	}
	return nil
}

// String returns the digits-only representation.
func (p Phone) String() string {
	return p.digits
}

// IsEqual compares two phones by their normalized digits.
func (p Phone) IsEqual(other Phone) bool {
	return p.digits == other.digits
}
