package vehicle

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyVehicleName   = errors.New("vehicle name cannot be empty")
	ErrVehicleNameTooLong = errors.New("vehicle name is too long (max 255 characters)")
	ErrInvalidCategory    = errors.New("invalid vehicle category")
	ErrNegativeUnits      = errors.New("total units cannot be negative")
	ErrNegativeDailyRate  = errors.New("daily rate cannot be negative")
	ErrInvalidDiscountPct = errors.New("discount percentage must be between 0 and 100")
)

const MaxVehicleNameLength = 255

type Category string

const (
	CategoryCar     Category = "car"
	CategoryScooter Category = "scooter"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryCar, CategoryScooter:
		return true
	default:
		return false
	}
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Vehicle is a rentable model with a unit count and its rate card. Individual
// units are fungible; capacity is the count, not per-unit identity.
type Vehicle struct {
	id                 uuid.UUID
	name               string
	category           Category
	totalUnits         int
	dailyRateCents     int64
	rateRules          []RateRule
	weeklyDiscountPct  float64
	monthlyDiscountPct float64
	isActive           bool
	createdAt          time.Time
	updatedAt          time.Time
}

func NewVehicle(
	name string,
	category Category,
	totalUnits int,
	dailyRateCents int64,
	rateRules []RateRule,
	weeklyDiscountPct, monthlyDiscountPct float64,
) (*Vehicle, error) {
	v := &Vehicle{
		id:                 uuid.New(),
		name:               strings.TrimSpace(name),
		category:           category,
		totalUnits:         totalUnits,
		dailyRateCents:     dailyRateCents,
		rateRules:          rateRules,
		weeklyDiscountPct:  weeklyDiscountPct,
		monthlyDiscountPct: monthlyDiscountPct,
		isActive:           true,
	}
	if err := v.validate(); err != nil {
		return nil, err
	}
	return v, nil
}

func ReconstructVehicle(
	id uuid.UUID,
	name string,
	category Category,
	totalUnits int,
	dailyRateCents int64,
	rateRules []RateRule,
	weeklyDiscountPct, monthlyDiscountPct float64,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Vehicle {
	return &Vehicle{
		id:                 id,
		name:               name,
		category:           category,
		totalUnits:         totalUnits,
		dailyRateCents:     dailyRateCents,
		rateRules:          rateRules,
		weeklyDiscountPct:  weeklyDiscountPct,
		monthlyDiscountPct: monthlyDiscountPct,
		isActive:           isActive,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (v *Vehicle) Update(
	name string,
	category Category,
	totalUnits int,
	dailyRateCents int64,
	rateRules []RateRule,
	weeklyDiscountPct, monthlyDiscountPct float64,
	isActive bool,
) error {
	updated := *v
	updated.name = strings.TrimSpace(name)
	updated.category = category
	updated.totalUnits = totalUnits
	updated.dailyRateCents = dailyRateCents
	updated.rateRules = rateRules
	updated.weeklyDiscountPct = weeklyDiscountPct
	updated.monthlyDiscountPct = monthlyDiscountPct
	updated.isActive = isActive
	if err := updated.validate(); err != nil {
		return err
	}
	*v = updated
	return nil
}

func (v *Vehicle) validate() error {
	if v.name == "" {
		return ErrEmptyVehicleName
	}
	if len(v.name) > MaxVehicleNameLength {
		return ErrVehicleNameTooLong
	}
	if !v.category.IsValid() {
		return ErrInvalidCategory
	}
	if v.totalUnits < 0 {
		return ErrNegativeUnits
	}
	if v.dailyRateCents < 0 {
		return ErrNegativeDailyRate
	}
	if !validPct(v.weeklyDiscountPct) || !validPct(v.monthlyDiscountPct) {
		return ErrInvalidDiscountPct
	}
	return nil
}

func validPct(pct float64) bool {
	return pct >= 0 && pct <= 100
}

func (v *Vehicle) ID() uuid.UUID               { return v.id }
func (v *Vehicle) Name() string                { return v.name }
func (v *Vehicle) Category() Category          { return v.category }
func (v *Vehicle) TotalUnits() int             { return v.totalUnits }
func (v *Vehicle) DailyRateCents() int64       { return v.dailyRateCents }
func (v *Vehicle) RateRules() []RateRule       { return v.rateRules }
func (v *Vehicle) WeeklyDiscountPct() float64  { return v.weeklyDiscountPct }
func (v *Vehicle) MonthlyDiscountPct() float64 { return v.monthlyDiscountPct }
func (v *Vehicle) IsActive() bool              { return v.isActive }
func (v *Vehicle) CreatedAt() time.Time        { return v.createdAt }
func (v *Vehicle) UpdatedAt() time.Time        { return v.updatedAt }
