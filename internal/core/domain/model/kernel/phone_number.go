package kernel

import (
	"errors"
	"fmt"
	"strings"

	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
)

// PhoneNumberMinDigits is the shortest accepted phone number after normalization.
const PhoneNumberMinDigits = 9

var ErrPhoneNumberIsNotConstructed = errors.New("PhoneNumber must be created via NewPhoneNumber")

// PhoneNumber is a customer phone normalized to its digits. Equality, storage and
// the uniqueness check all use the digit string, so "926 060 863" and
// "926060863" are the same number.
type PhoneNumber struct { //nolint:recvcheck //using for validation
	digits string
	guard  guard.ConstructorGuard
}

// NewPhoneNumber strips every non-digit character from raw. Blank input and
// results shorter than PhoneNumberMinDigits are rejected.
//
// Example:
//
//	phone, err := kernel.NewPhoneNumber("+351 926-060-863")
//	// phone.String() == "351926060863"
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	if strings.TrimSpace(raw) == "" {
		return PhoneNumber{}, errs.NewValueIsRequiredError("phone number")
	}

	digits := strings.Map(func(r rune) rune {
		if isDigit(r) {
			return r
		}
		return -1
	}, raw)

	if len(digits) < PhoneNumberMinDigits {
		return PhoneNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"phone number",
			fmt.Errorf("phone number is too short: %d digits, at least %d required", len(digits), PhoneNumberMinDigits),
		)
	}

	return PhoneNumber{
		digits: digits,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// CountPhoneDigits returns how many ASCII digits raw contains.
func CountPhoneDigits(raw string) int {
	n := 0
	for _, r := range raw {
		if isDigit(r) {
			n++
		}
	}
	return n
}

// String returns the normalized digits.
func (p PhoneNumber) String() string {
	return p.digits
}

// IsEqual compares normalized digits.
func (p PhoneNumber) IsEqual(other PhoneNumber) bool {
	return p.digits == other.digits
}

func (p PhoneNumber) Validate() error {
	return p.guard.Validate(ErrPhoneNumberIsNotConstructed)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
