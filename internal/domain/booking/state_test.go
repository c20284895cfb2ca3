//go:build unit

package booking_test

import (
	"testing"

	"shareit/internal/domain/booking"
	"shareit/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	t.Run("recognized tokens in any case", func(t *testing.T) {
		testCases := map[string]booking.State{
			"ALL":      booking.StateAll,
			"all":      booking.StateAll,
			"Current":  booking.StateCurrent,
			"past":     booking.StatePast,
			"FuTuRe":   booking.StateFuture,
			"waiting":  booking.StateWaiting,
			"REJECTED": booking.StateRejected,
		}
		for token, want := range testCases {
			got, err := booking.ParseState(token)
			require.NoError(t, err, token)
			assert.Equal(t, want, got, token)
		}
	})

	t.Run("every variant round-trips through its name", func(t *testing.T) {
		for _, s := range booking.States() {
			got, err := booking.ParseState(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, got)
		}
	})

	t.Run("unknown tokens carry the fixed sentinel message", func(t *testing.T) {
		for _, token := range []string{"SSS", "", " ALL", "APPROVED", "CANCELED", "UNSUPPORTED_STATUS"} {
			_, err := booking.ParseState(token)
			require.Error(t, err, token)
			assert.Equal(t, "Unknown state: UNSUPPORTED_STATUS", err.Error())
			assert.True(t, errs.Is(err, errs.ErrUnsupportedState))
		}
	})
}
