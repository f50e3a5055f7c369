package request

import (
	"github.com/google/uuid"

	"rentfleet/internal/domain/booking"
)

type CreateBookingRequest struct {
	VehicleID  uuid.UUID `json:"vehicle_id" binding:"required"`
	PickupDate string    `json:"pickup_date" binding:"required"`
	ReturnDate string    `json:"return_date" binding:"required"`
}

// ToDateRange validates ordering: return must be strictly after pickup.
// Same-day or inverted requests are rejected before the calculators run.
func (r CreateBookingRequest) ToDateRange() (booking.DateRange, error) {
	return booking.ParseDateRange(r.PickupDate, r.ReturnDate)
}

type QuoteRequest struct {
	PickupDate string `form:"pickup_date" binding:"required"`
	ReturnDate string `form:"return_date" binding:"required"`
}

func (r QuoteRequest) ToDateRange() (booking.DateRange, error) {
	return booking.ParseDateRange(r.PickupDate, r.ReturnDate)
}
