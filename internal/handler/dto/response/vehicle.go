package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/usecase/queries"
)

type RateRuleResponse struct {
	Kind            string  `json:"kind"`
	ExtraDailyCents int64   `json:"extraDailyCents"`
	StartDate       *string `json:"startDate,omitempty"`
	EndDate         *string `json:"endDate,omitempty"`
}

type VehicleResponse struct {
	ID                 uuid.UUID          `json:"id"`
	Name               string             `json:"name"`
	Category           string             `json:"category"`
	TotalUnits         int32              `json:"totalUnits"`
	DailyRateCents     int64              `json:"dailyRateCents"`
	RateRules          []RateRuleResponse `json:"rateRules,omitempty"`
	WeeklyDiscountPct  float64            `json:"weeklyDiscountPct"`
	MonthlyDiscountPct float64            `json:"monthlyDiscountPct"`
	IsActive           bool               `json:"isActive"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

type QuoteResponse struct {
	VehicleID      uuid.UUID `json:"vehicleId"`
	PickupDate     string    `json:"pickupDate"`
	ReturnDate     string    `json:"returnDate"`
	AvailableUnits int       `json:"availableUnits"`
	RentalDays     int       `json:"rentalDays"`
	BaseCents      int64     `json:"baseCents"`
	SurchargeCents int64     `json:"surchargeCents"`
	DiscountCents  int64     `json:"discountCents"`
	FinalCents     int64     `json:"finalCents"`
}

func FromVehicleView(view *queries.VehicleView) *VehicleResponse {
	var resp VehicleResponse
	_ = copier.Copy(&resp, view)
	resp.RateRules = make([]RateRuleResponse, len(view.RateRules))
	for i, rule := range view.RateRules {
		resp.RateRules[i] = RateRuleResponse{
			Kind:            rule.Kind,
			ExtraDailyCents: rule.ExtraDailyCents,
			StartDate:       formatDatePtr(rule.StartDate),
			EndDate:         formatDatePtr(rule.EndDate),
		}
	}
	return &resp
}

func FromQuoteView(view *queries.QuoteView) *QuoteResponse {
	var resp QuoteResponse
	_ = copier.Copy(&resp, view)
	resp.PickupDate = view.PickupDate.Format(booking.DateLayout)
	resp.ReturnDate = view.ReturnDate.Format(booking.DateLayout)
	return &resp
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(booking.DateLayout)
	return &s
}
