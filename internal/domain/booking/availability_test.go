//go:build unit

package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentfleet/internal/domain/booking"
)

func mustRange(t *testing.T, pickup, ret string) booking.DateRange {
	t.Helper()
	r, err := booking.ParseDateRange(pickup, ret)
	require.NoError(t, err)
	return r
}

func span(t *testing.T, pickup, ret string, status booking.Status) booking.Span {
	t.Helper()
	return booking.Span{Range: mustRange(t, pickup, ret), Status: status}
}

func TestAvailableUnits(t *testing.T) {
	june := func(from, to string) booking.DateRange { return mustRange(t, from, to) }

	t.Run("no bookings leaves all units free", func(t *testing.T) {
		got := booking.AvailableUnits(2, june("2024-06-01", "2024-06-04"), nil)
		assert.Equal(t, 2, got)
	})

	t.Run("each overlapping booking consumes one unit", func(t *testing.T) {
		spans := []booking.Span{
			span(t, "2024-06-02", "2024-06-05", booking.StatusConfirmed),
		}
		got := booking.AvailableUnits(2, june("2024-06-01", "2024-06-04"), spans)
		assert.Equal(t, 1, got)
	})

	t.Run("zero total units short-circuits to zero", func(t *testing.T) {
		got := booking.AvailableUnits(0, june("2024-06-01", "2024-06-04"), nil)
		assert.Equal(t, 0, got)
	})

	t.Run("negative total units is treated as zero", func(t *testing.T) {
		got := booking.AvailableUnits(-3, june("2024-06-01", "2024-06-04"), nil)
		assert.Equal(t, 0, got)
	})

	t.Run("back-to-back ranges do not conflict", func(t *testing.T) {
		// Return on the 5th, pickup on the 5th: half-open, no overlap.
		spans := []booking.Span{
			span(t, "2024-06-01", "2024-06-05", booking.StatusActive),
		}
		got := booking.AvailableUnits(1, june("2024-06-05", "2024-06-08"), spans)
		assert.Equal(t, 1, got)
	})

	t.Run("only pending confirmed and active count", func(t *testing.T) {
		overlapping := func(status booking.Status) booking.Span {
			return span(t, "2024-06-01", "2024-06-10", status)
		}

		cases := []struct {
			status booking.Status
			want   int
		}{
			{booking.StatusPending, 0},
			{booking.StatusConfirmed, 0},
			{booking.StatusActive, 0},
			{booking.StatusCompleted, 1},
			{booking.StatusCancelled, 1},
			{booking.StatusRefunded, 1},
		}
		for _, tc := range cases {
			got := booking.AvailableUnits(1, june("2024-06-03", "2024-06-06"), []booking.Span{overlapping(tc.status)})
			assert.Equal(t, tc.want, got, "status %s", tc.status)
		}
	})

	t.Run("result never goes negative", func(t *testing.T) {
		spans := []booking.Span{
			span(t, "2024-06-01", "2024-06-10", booking.StatusConfirmed),
			span(t, "2024-06-01", "2024-06-10", booking.StatusConfirmed),
			span(t, "2024-06-01", "2024-06-10", booking.StatusPending),
		}
		got := booking.AvailableUnits(2, june("2024-06-03", "2024-06-06"), spans)
		assert.Equal(t, 0, got)
	})

	t.Run("monotonicity: adding a booking never raises availability", func(t *testing.T) {
		requested := june("2024-06-03", "2024-06-08")
		spans := []booking.Span{}
		prev := booking.AvailableUnits(5, requested, spans)

		add := []booking.Span{
			span(t, "2024-06-01", "2024-06-04", booking.StatusConfirmed),
			span(t, "2024-06-07", "2024-06-12", booking.StatusPending),
			span(t, "2024-06-10", "2024-06-15", booking.StatusActive), // no overlap
			span(t, "2024-06-05", "2024-06-06", booking.StatusConfirmed),
		}
		for _, s := range add {
			spans = append(spans, s)
			cur := booking.AvailableUnits(5, requested, spans)
			assert.LessOrEqual(t, cur, prev)
			prev = cur
		}
	})
}
