package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrNotCancellable    = errors.New("booking can no longer be cancelled")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

type Booking struct {
	id         uuid.UUID
	vehicleID  uuid.UUID
	userID     uuid.UUID
	period     DateRange
	status     Status
	price      Money
	paymentRef *string
	createdAt  time.Time
	updatedAt  time.Time
}

func NewBooking(
	vehicleID, userID uuid.UUID,
	period DateRange,
	price Money,
) (*Booking, error) {
	if price.Cents() < 0 {
		return nil, ErrNegativePrice
	}

	return &Booking{
		id:        uuid.New(),
		vehicleID: vehicleID,
		userID:    userID,
		period:    period,
		status:    StatusPending,
		price:     price,
	}, nil
}

func ReconstructBooking(
	id, vehicleID, userID uuid.UUID,
	period DateRange,
	status Status,
	price Money,
	paymentRef *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		vehicleID:  vehicleID,
		userID:     userID,
		period:     period,
		status:     status,
		price:      price,
		paymentRef: paymentRef,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Confirm records a successful payment capture.
func (b *Booking) Confirm(paymentRef string) error {
	if b.status != StatusPending {
		return ErrInvalidTransition
	}
	b.status = StatusConfirmed
	b.paymentRef = &paymentRef
	return nil
}

// Cancel transitions to cancelled, or refunded when payment was captured.
// Completed rentals and rentals whose period has already ended cannot be
// cancelled.
func (b *Booking) Cancel(now time.Time) (Status, error) {
	switch b.status {
	case StatusCancelled, StatusRefunded:
		return b.status, ErrAlreadyCancelled
	case StatusCompleted:
		return b.status, ErrNotCancellable
	}

	if b.HasEnded(now) {
		return b.status, ErrNotCancellable
	}

	switch b.status {
	case StatusConfirmed, StatusActive:
		b.status = StatusRefunded
	default:
		b.status = StatusCancelled
	}
	return b.status, nil
}

func (b *Booking) IsPaid() bool {
	return b.paymentRef != nil
}

func (b *Booking) HasEnded(now time.Time) bool {
	return !now.Before(b.period.Return())
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) VehicleID() uuid.UUID { return b.vehicleID }
func (b *Booking) UserID() uuid.UUID    { return b.userID }
func (b *Booking) Period() DateRange    { return b.period }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) Price() Money         { return b.price }
func (b *Booking) PaymentRef() *string  { return b.paymentRef }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
