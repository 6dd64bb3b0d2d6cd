package kernel_test

import (
	"testing"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLabelToken(t *testing.T) {
	t.Run("should trim and upper-case", func(t *testing.T) {
		token, err := kernel.NewLabelToken("  bt-0042a ")

		require.NoError(t, err)
		require.NoError(t, token.Validate())
		assert.Equal(t, "BT-0042A", token.String())
	})

	t.Run("should compare case-insensitively", func(t *testing.T) {
		lower, _ := kernel.NewLabelToken("qr7")
		upper, _ := kernel.NewLabelToken("QR7")

		assert.True(t, lower.IsEqual(upper))
	})

	t.Run("should reject blank input", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "\t\n"} {
			_, err := kernel.NewLabelToken(raw)

			require.ErrorIs(t, err, errs.ErrValueIsRequired)
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var token kernel.LabelToken

		require.ErrorIs(t, token.Validate(), kernel.ErrLabelTokenIsNotConstructed)
	})
}
