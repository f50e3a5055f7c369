package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type VehicleView struct {
	ID                 uuid.UUID      `json:"id"`
	Name               string         `json:"name"`
	Category           string         `json:"category"`
	TotalUnits         int32          `json:"total_units"`
	DailyRateCents     int64          `json:"daily_rate_cents"`
	RateRules          []RateRuleView `json:"rate_rules,omitempty"`
	WeeklyDiscountPct  float64        `json:"weekly_discount_pct"`
	MonthlyDiscountPct float64        `json:"monthly_discount_pct"`
	IsActive           bool           `json:"is_active"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

type RateRuleView struct {
	Kind            string     `json:"kind"`
	ExtraDailyCents int64      `json:"extra_daily_cents"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
}

type QuoteView struct {
	VehicleID      uuid.UUID `json:"vehicle_id"`
	PickupDate     time.Time `json:"pickup_date"`
	ReturnDate     time.Time `json:"return_date"`
	AvailableUnits int       `json:"available_units"`
	RentalDays     int       `json:"rental_days"`
	BaseCents      int64     `json:"base_cents"`
	SurchargeCents int64     `json:"surcharge_cents"`
	DiscountCents  int64     `json:"discount_cents"`
	FinalCents     int64     `json:"final_cents"`
}

type BookingView struct {
	ID          uuid.UUID `json:"id"`
	VehicleID   uuid.UUID `json:"vehicle_id"`
	VehicleName string    `json:"vehicle_name"`
	UserID      uuid.UUID `json:"user_id"`
	UserEmail   string    `json:"user_email"`
	PickupDate  time.Time `json:"pickup_date"`
	ReturnDate  time.Time `json:"return_date"`
	Status      string    `json:"status"`
	PriceCents  int64     `json:"price_cents"`
	PaymentRef  *string   `json:"payment_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID          uuid.UUID `json:"id"`
	VehicleID   uuid.UUID `json:"vehicle_id"`
	VehicleName string    `json:"vehicle_name"`
	PickupDate  time.Time `json:"pickup_date"`
	ReturnDate  time.Time `json:"return_date"`
	Status      string    `json:"status"`
	PriceCents  int64     `json:"price_cents"`
	CreatedAt   time.Time `json:"created_at"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

type IdempotencyKeyView struct {
	Key             uuid.UUID  `json:"key"`
	UserID          uuid.UUID  `json:"user_id"`
	Endpoint        string     `json:"endpoint"`
	RequestHash     string     `json:"request_hash"`
	Status          string     `json:"status"`
	ResultBookingID *uuid.UUID `json:"result_booking_id,omitempty"`
	ExpiresAt       time.Time  `json:"expires_at"`
}
