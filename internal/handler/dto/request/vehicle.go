package request

import (
	"time"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/vehicle"
)

type RateRuleRequest struct {
	Kind            string `json:"kind" binding:"required,oneof=weekend date_range"`
	ExtraDailyCents int64  `json:"extra_daily_cents" binding:"required,gt=0"`
	StartDate       string `json:"start_date,omitempty"`
	EndDate         string `json:"end_date,omitempty"`
}

type CreateVehicleRequest struct {
	Name               string            `json:"name" binding:"required,max=255"`
	Category           string            `json:"category" binding:"required,oneof=car scooter"`
	TotalUnits         int               `json:"total_units" binding:"min=0"`
	DailyRateCents     int64             `json:"daily_rate_cents" binding:"min=0"`
	RateRules          []RateRuleRequest `json:"rate_rules,omitempty"`
	WeeklyDiscountPct  float64           `json:"weekly_discount_pct" binding:"min=0,max=100"`
	MonthlyDiscountPct float64           `json:"monthly_discount_pct" binding:"min=0,max=100"`
}

func (r CreateVehicleRequest) ToDomain() (*vehicle.Vehicle, error) {
	category, err := vehicle.NewCategory(r.Category)
	if err != nil {
		return nil, err
	}

	rules, err := toRateRules(r.RateRules)
	if err != nil {
		return nil, err
	}

	return vehicle.NewVehicle(
		r.Name,
		category,
		r.TotalUnits,
		r.DailyRateCents,
		rules,
		r.WeeklyDiscountPct,
		r.MonthlyDiscountPct,
	)
}

type UpdateVehicleRequest struct {
	Name               string            `json:"name" binding:"required,max=255"`
	Category           string            `json:"category" binding:"required,oneof=car scooter"`
	TotalUnits         int               `json:"total_units" binding:"min=0"`
	DailyRateCents     int64             `json:"daily_rate_cents" binding:"min=0"`
	RateRules          []RateRuleRequest `json:"rate_rules,omitempty"`
	WeeklyDiscountPct  float64           `json:"weekly_discount_pct" binding:"min=0,max=100"`
	MonthlyDiscountPct float64           `json:"monthly_discount_pct" binding:"min=0,max=100"`
	IsActive           bool              `json:"is_active"`
}

func (r UpdateVehicleRequest) RateRuleDomain() ([]vehicle.RateRule, error) {
	return toRateRules(r.RateRules)
}

func toRateRules(reqs []RateRuleRequest) ([]vehicle.RateRule, error) {
	rules := make([]vehicle.RateRule, 0, len(reqs))
	for _, req := range reqs {
		switch vehicle.RuleKind(req.Kind) {
		case vehicle.RuleWeekend:
			rules = append(rules, vehicle.NewWeekendRule(req.ExtraDailyCents))
		case vehicle.RuleDateRange:
			start, err := parseDate(req.StartDate)
			if err != nil {
				return nil, err
			}
			end, err := parseDate(req.EndDate)
			if err != nil {
				return nil, err
			}
			rules = append(rules, vehicle.NewDateRangeRule(req.ExtraDailyCents, start, end))
		}
	}
	return rules, nil
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(booking.DateLayout, s, time.UTC)
}
