package kernel

import (
	"errors"
	"strings"

	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
)

var ErrLabelTokenIsNotConstructed = errors.New("LabelToken must be created via NewLabelToken")

// LabelToken is the value encoded on a cylinder's QR tag. It is trimmed and
// upper-cased, so scans compare case-insensitively.
type LabelToken struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewLabelToken normalizes raw. Input that is blank after trimming is rejected.
func NewLabelToken(raw string) (LabelToken, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return LabelToken{}, errs.NewValueIsRequiredError("label token")
	}

	return LabelToken{
		value: strings.ToUpper(trimmed),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (t LabelToken) String() string {
	return t.value
}

func (t LabelToken) IsEqual(other LabelToken) bool {
	return t.value == other.value
}

func (t LabelToken) Validate() error {
	return t.guard.Validate(ErrLabelTokenIsNotConstructed)
}
