package queries

import (
	"context"

	"github.com/google/uuid"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/pricing"
	"rentfleet/internal/domain/vehicle"
	"rentfleet/internal/infra"
	"rentfleet/internal/pkg/errs"
)

var ErrVehicleNotFound = errs.New("vehicle not found")

type VehicleQueries interface {
	List(ctx context.Context) ([]*VehicleView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	// GetQuote combines the availability and pricing calculators for one
	// requested period.
	GetQuote(ctx context.Context, vehicleID uuid.UUID, period booking.DateRange) (*QuoteView, error)
}

type VehicleReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	ListActive(ctx context.Context) ([]*VehicleView, error)
}

type BookingSpanReadStore interface {
	// ActiveSpansForVehicle returns the date ranges of bookings whose status
	// still counts against capacity.
	ActiveSpansForVehicle(ctx context.Context, vehicleID uuid.UUID) ([]booking.Span, error)
}

type vehicleQueriesImpl struct {
	vehicles   VehicleReadStore
	spans      BookingSpanReadStore
	calculator *pricing.Calculator
}

func NewVehicleQueries(vehicles VehicleReadStore, spans BookingSpanReadStore, calculator *pricing.Calculator) VehicleQueries {
	return &vehicleQueriesImpl{
		vehicles:   vehicles,
		spans:      spans,
		calculator: calculator,
	}
}

func (q *vehicleQueriesImpl) List(ctx context.Context) ([]*VehicleView, error) {
	vehicles, err := q.vehicles.ListActive(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list vehicles")
	}
	return vehicles, nil
}

func (q *vehicleQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error) {
	view, err := q.vehicles.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, errs.Wrap(err, "failed to find vehicle")
	}
	return view, nil
}

func (q *vehicleQueriesImpl) GetQuote(ctx context.Context, vehicleID uuid.UUID, period booking.DateRange) (*QuoteView, error) {
	view, err := q.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	vehicleEntity := VehicleFromView(view)

	available := 0
	if vehicleEntity.TotalUnits() > 0 {
		spans, err := q.spans.ActiveSpansForVehicle(ctx, vehicleID)
		if err != nil {
			return nil, errs.Wrap(err, "failed to load booking spans")
		}
		available = booking.AvailableUnits(vehicleEntity.TotalUnits(), period, spans)
	}

	quote := q.calculator.Calculate(vehicleEntity, period)

	return &QuoteView{
		VehicleID:      vehicleID,
		PickupDate:     period.Pickup(),
		ReturnDate:     period.Return(),
		AvailableUnits: available,
		RentalDays:     quote.RentalDays,
		BaseCents:      quote.BaseCents,
		SurchargeCents: quote.SurchargeCents,
		DiscountCents:  quote.DiscountCents,
		FinalCents:     quote.FinalCents,
	}, nil
}

// VehicleFromView rebuilds the domain aggregate from its read model, for the
// pure calculators.
func VehicleFromView(view *VehicleView) *vehicle.Vehicle {
	rules := make([]vehicle.RateRule, len(view.RateRules))
	for i, r := range view.RateRules {
		rules[i] = vehicle.ReconstructRateRule(r.Kind, r.ExtraDailyCents, r.StartDate, r.EndDate)
	}
	return vehicle.ReconstructVehicle(
		view.ID,
		view.Name,
		vehicle.Category(view.Category),
		int(view.TotalUnits),
		view.DailyRateCents,
		rules,
		view.WeeklyDiscountPct,
		view.MonthlyDiscountPct,
		view.IsActive,
		view.CreatedAt,
		view.UpdatedAt,
	)
}
