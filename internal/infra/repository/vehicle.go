package repository

import (
	"context"

	"github.com/google/uuid"

	"rentfleet/internal/domain/vehicle"
	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"
	"rentfleet/internal/pkg/pgconv"
)

type VehicleRepository struct{}

func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{}
}

func (r *VehicleRepository) Create(ctx context.Context, tx db.DBTX, v *vehicle.Vehicle) (uuid.UUID, error) {
	_, err := tx.Exec(ctx,
		`INSERT INTO vehicles
		   (id, name, category, total_units, daily_rate_cents,
		    weekly_discount_pct, monthly_discount_pct, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`,
		v.ID(),
		v.Name(),
		string(v.Category()),
		v.TotalUnits(),
		v.DailyRateCents(),
		v.WeeklyDiscountPct(),
		v.MonthlyDiscountPct(),
		v.IsActive(),
	)
	if err != nil {
		return uuid.Nil, classifyPgErr("failed to create vehicle", err)
	}

	if err := r.replaceRateRules(ctx, tx, v.ID(), v.RateRules()); err != nil {
		return uuid.Nil, err
	}

	return v.ID(), nil
}

func (r *VehicleRepository) Update(ctx context.Context, tx db.DBTX, v *vehicle.Vehicle) error {
	tag, err := tx.Exec(ctx,
		`UPDATE vehicles
		 SET name = $2, category = $3, total_units = $4, daily_rate_cents = $5,
		     weekly_discount_pct = $6, monthly_discount_pct = $7, is_active = $8,
		     updated_at = now()
		 WHERE id = $1`,
		v.ID(),
		v.Name(),
		string(v.Category()),
		v.TotalUnits(),
		v.DailyRateCents(),
		v.WeeklyDiscountPct(),
		v.MonthlyDiscountPct(),
		v.IsActive(),
	)
	if err != nil {
		return classifyPgErr("failed to update vehicle", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}

	return r.replaceRateRules(ctx, tx, v.ID(), v.RateRules())
}

// LockUnits takes the per-vehicle row lock that serializes concurrent booking
// attempts, and returns the unit count. Two requests racing for the last unit
// cannot both pass the availability re-check behind this lock.
func (r *VehicleRepository) LockUnits(ctx context.Context, tx db.DBTX, id uuid.UUID) (int, error) {
	row := tx.QueryRow(ctx,
		`SELECT total_units FROM vehicles WHERE id = $1 AND is_active FOR UPDATE`, id)

	var totalUnits int
	if err := row.Scan(&totalUnits); err != nil {
		if pgconv.IsNoRows(err) {
			return 0, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to lock vehicle", err)
	}

	return totalUnits, nil
}

func (r *VehicleRepository) replaceRateRules(ctx context.Context, tx db.DBTX, vehicleID uuid.UUID, rules []vehicle.RateRule) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM vehicle_rate_rules WHERE vehicle_id = $1`, vehicleID); err != nil {
		return classifyPgErr("failed to clear rate rules", err)
	}

	for position, rule := range rules {
		var start, end any
		if rule.Kind() == vehicle.RuleDateRange {
			start = pgconv.DateToPgtype(rule.Start())
			end = pgconv.DateToPgtype(rule.End())
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO vehicle_rate_rules
			   (id, vehicle_id, kind, extra_daily_cents, start_date, end_date, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New(), vehicleID, string(rule.Kind()), rule.ExtraDailyCents(), start, end, position)
		if err != nil {
			return classifyPgErr("failed to insert rate rule", err)
		}
	}

	return nil
}
