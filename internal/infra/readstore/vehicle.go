package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"
	"rentfleet/internal/pkg/pgconv"
	"rentfleet/internal/usecase/queries"
)

const vehicleColumns = `id, name, category, total_units, daily_rate_cents,
	weekly_discount_pct, monthly_discount_pct, is_active, created_at, updated_at`

type VehicleReadStore struct {
	db db.DBTX
}

func NewVehicleReadStore(dbtx db.DBTX) *VehicleReadStore {
	return &VehicleReadStore{db: dbtx}
}

func (r *VehicleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VehicleView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)

	view, err := scanVehicleRow(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find vehicle by ID", err)
	}

	rules, err := r.findRateRules(ctx, id)
	if err != nil {
		return nil, err
	}
	view.RateRules = rules

	return view, nil
}

func (r *VehicleReadStore) ListActive(ctx context.Context) ([]*queries.VehicleView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vehicles", err)
	}
	defer rows.Close()

	var result []*queries.VehicleView
	for rows.Next() {
		view, err := scanVehicleRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan vehicle row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate vehicles", err)
	}

	return result, nil
}

func (r *VehicleReadStore) findRateRules(ctx context.Context, vehicleID uuid.UUID) ([]queries.RateRuleView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT kind, extra_daily_cents, start_date, end_date
		 FROM vehicle_rate_rules
		 WHERE vehicle_id = $1
		 ORDER BY position`, vehicleID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load rate rules", err)
	}
	defer rows.Close()

	var rules []queries.RateRuleView
	for rows.Next() {
		var rule ruleRow
		if err := rows.Scan(&rule.Kind, &rule.ExtraDailyCents, &rule.StartDate, &rule.EndDate); err != nil {
			return nil, infra.WrapRepoErr("failed to scan rate rule row", err)
		}
		rules = append(rules, rule.toView())
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rate rules", err)
	}

	return rules, nil
}

type ruleRow struct {
	Kind            string
	ExtraDailyCents int64
	StartDate       pgtype.Date
	EndDate         pgtype.Date
}

func (r ruleRow) toView() queries.RateRuleView {
	return queries.RateRuleView{
		Kind:            r.Kind,
		ExtraDailyCents: r.ExtraDailyCents,
		StartDate:       pgconv.DatePtrFromPgtype(r.StartDate),
		EndDate:         pgconv.DatePtrFromPgtype(r.EndDate),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicleRow(row rowScanner) (*queries.VehicleView, error) {
	var view queries.VehicleView
	err := row.Scan(
		&view.ID,
		&view.Name,
		&view.Category,
		&view.TotalUnits,
		&view.DailyRateCents,
		&view.WeeklyDiscountPct,
		&view.MonthlyDiscountPct,
		&view.IsActive,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
