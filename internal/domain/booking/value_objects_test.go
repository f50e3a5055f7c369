//go:build unit

package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentfleet/internal/domain/booking"
)

func TestParseDateRange(t *testing.T) {
	t.Run("valid range parses to UTC midnight", func(t *testing.T) {
		r, err := booking.ParseDateRange("2024-06-01", "2024-06-05")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), r.Pickup())
		assert.Equal(t, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), r.Return())
	})

	t.Run("same-day range is rejected", func(t *testing.T) {
		_, err := booking.ParseDateRange("2024-06-01", "2024-06-01")
		assert.ErrorIs(t, err, booking.ErrInvalidDateRange)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		_, err := booking.ParseDateRange("2024-06-05", "2024-06-01")
		assert.ErrorIs(t, err, booking.ErrInvalidDateRange)
	})

	t.Run("garbage dates are rejected", func(t *testing.T) {
		_, err := booking.ParseDateRange("June 1st", "2024-06-05")
		assert.Error(t, err)
		_, err = booking.ParseDateRange("2024-06-01", "05/06/2024")
		assert.Error(t, err)
	})
}

func TestNewDateRangeTruncation(t *testing.T) {
	pickup := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)
	ret := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	r, err := booking.NewDateRange(pickup, ret)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), r.Pickup())
	assert.Equal(t, 2, r.Days())
}

func TestDateRangeDays(t *testing.T) {
	cases := []struct {
		name   string
		pickup string
		ret    string
		want   int
	}{
		{"three days", "2024-06-01", "2024-06-04", 3},
		{"one day", "2024-06-01", "2024-06-02", 1},
		{"one week", "2024-06-01", "2024-06-08", 7},
		{"thirty days", "2024-06-01", "2024-07-01", 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := booking.ParseDateRange(tc.pickup, tc.ret)
			require.NoError(t, err)
			assert.Equal(t, tc.want, r.Days())
		})
	}

	t.Run("degenerate range still charges one day", func(t *testing.T) {
		day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		r := booking.DateRangeOf(day, day)
		assert.Equal(t, 1, r.Days())
	})
}

func TestDateRangeOverlaps(t *testing.T) {
	base, err := booking.ParseDateRange("2024-06-01", "2024-06-05")
	require.NoError(t, err)

	cases := []struct {
		name   string
		pickup string
		ret    string
		want   bool
	}{
		{"fully inside", "2024-06-02", "2024-06-04", true},
		{"fully covering", "2024-05-01", "2024-07-01", true},
		{"partial front", "2024-05-30", "2024-06-02", true},
		{"partial back", "2024-06-04", "2024-06-10", true},
		{"adjacent after", "2024-06-05", "2024-06-08", false},
		{"adjacent before", "2024-05-28", "2024-06-01", false},
		{"disjoint", "2024-07-01", "2024-07-05", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			other, err := booking.ParseDateRange(tc.pickup, tc.ret)
			require.NoError(t, err)
			assert.Equal(t, tc.want, base.Overlaps(other))
			assert.Equal(t, tc.want, other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestDateRangeContainsWeekend(t *testing.T) {
	cases := []struct {
		name   string
		pickup string
		ret    string
		want   bool
	}{
		// 2024-06-03 is a Monday.
		{"monday to friday", "2024-06-03", "2024-06-07", false},
		{"friday to saturday excludes saturday", "2024-06-07", "2024-06-08", false},
		{"friday to sunday includes saturday", "2024-06-07", "2024-06-09", true},
		{"saturday pickup", "2024-06-08", "2024-06-10", true},
		{"sunday only", "2024-06-09", "2024-06-10", true},
		{"spanning full week", "2024-06-03", "2024-06-10", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := booking.ParseDateRange(tc.pickup, tc.ret)
			require.NoError(t, err)
			assert.Equal(t, tc.want, r.ContainsWeekend())
		})
	}
}

func TestStatusCountsAgainstCapacity(t *testing.T) {
	counting := []booking.Status{booking.StatusPending, booking.StatusConfirmed, booking.StatusActive}
	for _, s := range counting {
		assert.True(t, s.CountsAgainstCapacity(), "status %s", s)
	}

	terminal := []booking.Status{booking.StatusCompleted, booking.StatusCancelled, booking.StatusRefunded}
	for _, s := range terminal {
		assert.False(t, s.CountsAgainstCapacity(), "status %s", s)
	}
}
