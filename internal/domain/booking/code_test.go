//go:build unit

package booking_test

import (
	"strings"
	"testing"

	"stayhub/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	t.Run("generated codes round-trip through parse", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			code := booking.NewCode()
			parsed, err := booking.ParseCode(code.String())
			require.NoError(t, err)
			assert.Equal(t, code, parsed)
		}
	})

	t.Run("generated codes avoid ambiguous characters", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			suffix := strings.TrimPrefix(booking.NewCode().String(), "HS-")
			assert.NotContains(t, suffix, "0")
			assert.NotContains(t, suffix, "O")
			assert.NotContains(t, suffix, "1")
			assert.NotContains(t, suffix, "I")
		}
	})

	t.Run("parse rejects malformed codes", func(t *testing.T) {
		for _, s := range []string{
			"",
			"HS-",
			"HS-ABC",
			"HS-ABCDEFGHI",
			"hs-ABCDEFGH",
			"XX-ABCDEFGH",
			"HS-abcdefgh",
			" HS-ABCDEFGH",
		} {
			_, err := booking.ParseCode(s)
			assert.ErrorIs(t, err, booking.ErrInvalidBookingCode, "input %q", s)
		}
	})
}
