// Package pricing computes rental quotes from a vehicle's rate card. It is a
// stateless domain service: all vehicle and booking data arrive as inputs and
// the computation has no side effects.
package pricing

import (
	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/vehicle"
)

// Quote is the price breakdown for a prospective rental. DiscountCents is
// stored negative; FinalCents is floored at zero.
type Quote struct {
	RentalDays     int
	BaseCents      int64
	SurchargeCents int64
	DiscountCents  int64
	FinalCents     int64
}

const (
	weeklyDiscountMinDays  = 7
	monthlyDiscountMinDays = 30
)

type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate prices the stay:
//
//	base      = daily rate * rental days (days floored at 1)
//	surcharge = sum over applicable rules of extra daily amount * rental days
//	discount  = -(base+surcharge) * pct/100, monthly tier over weekly, never both
//
// A rule that applies surcharges the whole stay, including for weekend rules
// where only some days touch the weekend.
func (c *Calculator) Calculate(v *vehicle.Vehicle, period booking.DateRange) Quote {
	days := period.Days()
	base := v.DailyRateCents() * int64(days)

	var surcharge int64
	for _, rule := range v.RateRules() {
		if rule.AppliesTo(period) {
			surcharge += rule.ExtraDailyCents() * int64(days)
		}
	}

	subtotal := base + surcharge
	discount := -discountCents(subtotal, days, v.WeeklyDiscountPct(), v.MonthlyDiscountPct())

	final := subtotal + discount
	if final < 0 {
		final = 0
	}

	return Quote{
		RentalDays:     days,
		BaseCents:      base,
		SurchargeCents: surcharge,
		DiscountCents:  discount,
		FinalCents:     final,
	}
}

func discountCents(subtotal int64, days int, weeklyPct, monthlyPct float64) int64 {
	var pct float64
	switch {
	case days >= monthlyDiscountMinDays:
		pct = monthlyPct
	case days >= weeklyDiscountMinDays:
		pct = weeklyPct
	}
	if pct <= 0 {
		return 0
	}
	return int64(float64(subtotal) * pct / 100.0)
}
