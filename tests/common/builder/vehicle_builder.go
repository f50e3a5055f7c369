//go:build unit || e2e

package builder

import (
	"time"

	"rentfleet/internal/domain/vehicle"
)

type VehicleBuilder struct {
	name               string
	category           vehicle.Category
	totalUnits         int
	dailyRateCents     int64
	rateRules          []vehicle.RateRule
	weeklyDiscountPct  float64
	monthlyDiscountPct float64
}

func NewVehicleBuilder() *VehicleBuilder {
	return &VehicleBuilder{
		name:           "Compact Car",
		category:       vehicle.CategoryCar,
		totalUnits:     2,
		dailyRateCents: 5000,
	}
}

func (b *VehicleBuilder) WithName(name string) *VehicleBuilder {
	b.name = name
	return b
}

func (b *VehicleBuilder) WithCategory(category vehicle.Category) *VehicleBuilder {
	b.category = category
	return b
}

func (b *VehicleBuilder) WithTotalUnits(units int) *VehicleBuilder {
	b.totalUnits = units
	return b
}

func (b *VehicleBuilder) WithDailyRate(cents int64) *VehicleBuilder {
	b.dailyRateCents = cents
	return b
}

func (b *VehicleBuilder) WithWeekendRule(extraDailyCents int64) *VehicleBuilder {
	b.rateRules = append(b.rateRules, vehicle.NewWeekendRule(extraDailyCents))
	return b
}

func (b *VehicleBuilder) WithDateRangeRule(extraDailyCents int64, start, end time.Time) *VehicleBuilder {
	b.rateRules = append(b.rateRules, vehicle.NewDateRangeRule(extraDailyCents, start, end))
	return b
}

func (b *VehicleBuilder) WithRateRule(rule vehicle.RateRule) *VehicleBuilder {
	b.rateRules = append(b.rateRules, rule)
	return b
}

func (b *VehicleBuilder) WithWeeklyDiscount(pct float64) *VehicleBuilder {
	b.weeklyDiscountPct = pct
	return b
}

func (b *VehicleBuilder) WithMonthlyDiscount(pct float64) *VehicleBuilder {
	b.monthlyDiscountPct = pct
	return b
}

func (b *VehicleBuilder) BuildDomain() (*vehicle.Vehicle, error) {
	return vehicle.NewVehicle(
		b.name,
		b.category,
		b.totalUnits,
		b.dailyRateCents,
		b.rateRules,
		b.weeklyDiscountPct,
		b.monthlyDiscountPct,
	)
}
