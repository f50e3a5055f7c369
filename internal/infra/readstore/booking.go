package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"
	"rentfleet/internal/pkg/pgconv"
	"rentfleet/internal/usecase/queries"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT b.id, b.vehicle_id, v.name, b.user_id, u.email,
		        b.pickup_date, b.return_date, b.status, b.price_cents,
		        b.payment_ref, b.created_at, b.updated_at
		 FROM bookings b
		 JOIN vehicles v ON v.id = b.vehicle_id
		 JOIN users u ON u.id = b.user_id
		 WHERE b.id = $1`, id)

	var view queries.BookingView
	err := row.Scan(
		&view.ID,
		&view.VehicleID,
		&view.VehicleName,
		&view.UserID,
		&view.UserEmail,
		&view.PickupDate,
		&view.ReturnDate,
		&view.Status,
		&view.PriceCents,
		&view.PaymentRef,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return &view, nil
}

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, b.vehicle_id, v.name, b.pickup_date, b.return_date,
		        b.status, b.price_cents, b.created_at
		 FROM bookings b
		 JOIN vehicles v ON v.id = b.vehicle_id
		 WHERE b.user_id = $1
		 ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user bookings", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		err := rows.Scan(
			&item.ID,
			&item.VehicleID,
			&item.VehicleName,
			&item.PickupDate,
			&item.ReturnDate,
			&item.Status,
			&item.PriceCents,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}

	return result, nil
}

// ActiveSpansForVehicle loads the ranges that count against capacity. The
// overlap decision itself stays in the domain layer.
func (r *BookingReadStore) ActiveSpansForVehicle(ctx context.Context, vehicleID uuid.UUID) ([]booking.Span, error) {
	return activeSpans(ctx, r.db, vehicleID)
}

// ActiveSpansForVehicleTx is the same read bound to a transaction, used when
// booking creation re-validates availability under the vehicle row lock.
func (r *BookingReadStore) ActiveSpansForVehicleTx(ctx context.Context, tx db.DBTX, vehicleID uuid.UUID) ([]booking.Span, error) {
	return activeSpans(ctx, tx, vehicleID)
}

func activeSpans(ctx context.Context, dbtx db.DBTX, vehicleID uuid.UUID) ([]booking.Span, error) {
	rows, err := dbtx.Query(ctx,
		`SELECT pickup_date, return_date, status
		 FROM bookings
		 WHERE vehicle_id = $1 AND status IN ('pending', 'confirmed', 'active')`, vehicleID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking spans", err)
	}
	defer rows.Close()

	var spans []booking.Span
	for rows.Next() {
		var pickup, ret time.Time
		var status string
		if err := rows.Scan(&pickup, &ret, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking span", err)
		}
		spans = append(spans, booking.Span{
			Range:  booking.DateRangeOf(pickup, ret),
			Status: booking.Status(status),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking spans", err)
	}

	return spans, nil
}
