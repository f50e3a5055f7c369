//go:build unit

package booking_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentfleet/internal/domain/booking"
)

func newPendingBooking(t *testing.T) *booking.Booking {
	t.Helper()
	b, err := booking.NewBooking(uuid.New(), uuid.New(), mustRange(t, "2024-06-01", "2024-06-05"), booking.NewMoney(20000))
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	t.Run("starts pending with the quoted price", func(t *testing.T) {
		b := newPendingBooking(t)
		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, int64(20000), b.Price().Cents())
		assert.False(t, b.IsPaid())
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := booking.NewBooking(uuid.New(), uuid.New(), mustRange(t, "2024-06-01", "2024-06-05"), booking.NewMoney(-1))
		assert.ErrorIs(t, err, booking.ErrNegativePrice)
	})
}

func TestBookingConfirm(t *testing.T) {
	t.Run("pending booking confirms with payment ref", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Confirm("sim_abc"))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		require.NotNil(t, b.PaymentRef())
		assert.Equal(t, "sim_abc", *b.PaymentRef())
		assert.True(t, b.IsPaid())
	})

	t.Run("double confirm is rejected", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Confirm("sim_abc"))
		assert.ErrorIs(t, b.Confirm("sim_def"), booking.ErrInvalidTransition)
	})
}

func TestBookingCancel(t *testing.T) {
	// before the 2024-06-05 return date of newPendingBooking
	now := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)

	t.Run("unpaid pending booking cancels", func(t *testing.T) {
		b := newPendingBooking(t)
		status, err := b.Cancel(now)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, status)
	})

	t.Run("paid booking refunds instead", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Confirm("sim_abc"))

		status, err := b.Cancel(now)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusRefunded, status)
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		b := newPendingBooking(t)
		_, err := b.Cancel(now)
		require.NoError(t, err)

		_, err = b.Cancel(now)
		assert.ErrorIs(t, err, booking.ErrAlreadyCancelled)
	})

	t.Run("completed rental cannot be cancelled", func(t *testing.T) {
		b := booking.ReconstructBooking(
			uuid.New(), uuid.New(), uuid.New(),
			mustRange(t, "2024-06-01", "2024-06-05"),
			booking.StatusCompleted,
			booking.NewMoney(20000),
			nil,
			time.Now(), time.Now(),
		)
		_, err := b.Cancel(now)
		assert.ErrorIs(t, err, booking.ErrNotCancellable)
	})

	t.Run("rental past its return date cannot be cancelled", func(t *testing.T) {
		b := newPendingBooking(t)
		_, err := b.Cancel(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, err, booking.ErrNotCancellable)
		assert.Equal(t, booking.StatusPending, b.Status())
	})
}

func TestBookingHasEnded(t *testing.T) {
	b := newPendingBooking(t)
	assert.False(t, b.HasEnded(time.Date(2024, 6, 4, 23, 0, 0, 0, time.UTC)))
	assert.True(t, b.HasEnded(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)))
}
