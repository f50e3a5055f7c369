package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/usecase/queries"
)

type BookingResponse struct {
	ID          uuid.UUID `json:"id"`
	VehicleID   uuid.UUID `json:"vehicleId"`
	VehicleName string    `json:"vehicleName"`
	UserID      uuid.UUID `json:"userId"`
	UserEmail   string    `json:"userEmail"`
	PickupDate  string    `json:"pickupDate"`
	ReturnDate  string    `json:"returnDate"`
	Status      string    `json:"status"`
	PriceCents  int64     `json:"priceCents"`
	PaymentRef  *string   `json:"paymentRef,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	ID          uuid.UUID `json:"id"`
	VehicleID   uuid.UUID `json:"vehicleId"`
	VehicleName string    `json:"vehicleName"`
	PickupDate  string    `json:"pickupDate"`
	ReturnDate  string    `json:"returnDate"`
	Status      string    `json:"status"`
	PriceCents  int64     `json:"priceCents"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	resp.PickupDate = view.PickupDate.Format(booking.DateLayout)
	resp.ReturnDate = view.ReturnDate.Format(booking.DateLayout)
	return &resp
}

func FromBookingListItem(item *queries.BookingListItem) *BookingListResponse {
	var resp BookingListResponse
	_ = copier.Copy(&resp, item)
	resp.PickupDate = item.PickupDate.Format(booking.DateLayout)
	resp.ReturnDate = item.ReturnDate.Format(booking.DateLayout)
	return &resp
}
