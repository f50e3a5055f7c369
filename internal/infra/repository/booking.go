package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"
	"rentfleet/internal/pkg/pgconv"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	_, err := tx.Exec(ctx,
		`INSERT INTO bookings
		   (id, vehicle_id, user_id, pickup_date, return_date, status, price_cents, payment_ref, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`,
		b.ID(),
		b.VehicleID(),
		b.UserID(),
		pgconv.DateToPgtype(b.Period().Pickup()),
		pgconv.DateToPgtype(b.Period().Return()),
		b.Status().String(),
		b.Price().Cents(),
		pgconv.StringPtrToPgtype(b.PaymentRef()),
	)
	if err != nil {
		return uuid.Nil, classifyPgErr("failed to create booking", err)
	}

	return b.ID(), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error {
	tag, err := tx.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`,
		id, status.String())
	if err != nil {
		return classifyPgErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// FindForUpdate loads a booking inside a transaction with a row lock, for
// cancellation.
func (r *BookingRepository) FindForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	row := tx.QueryRow(ctx,
		`SELECT id, vehicle_id, user_id, pickup_date, return_date, status, price_cents, payment_ref, created_at, updated_at
		 FROM bookings WHERE id = $1 FOR UPDATE`, id)

	var (
		bookingID, vehicleID, userID uuid.UUID
		pickup, ret                  time.Time
		status                       string
		priceCents                   int64
		paymentRef                   *string
		createdAt, updatedAt         time.Time
	)
	err := row.Scan(&bookingID, &vehicleID, &userID, &pickup, &ret, &status, &priceCents, &paymentRef, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}

	parsedStatus, err := booking.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("booking row has unknown status", err)
	}

	return booking.ReconstructBooking(
		bookingID, vehicleID, userID,
		booking.DateRangeOf(pickup, ret),
		parsedStatus,
		booking.NewMoney(priceCents),
		paymentRef,
		createdAt, updatedAt,
	), nil
}
