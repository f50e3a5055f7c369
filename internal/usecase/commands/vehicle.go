package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"rentfleet/internal/domain/vehicle"
	reqdto "rentfleet/internal/handler/dto/request"
	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"
	"rentfleet/internal/pkg/errs"
	"rentfleet/internal/usecase/queries"
)

var (
	ErrVehicleValidation  = errs.New("vehicle validation failed")
	ErrDuplicateVehicle   = errs.New("vehicle already exists")
	ErrVehicleWriteFailed = errs.New("vehicle write failed")
)

type VehicleRepository interface {
	Create(ctx context.Context, tx db.DBTX, v *vehicle.Vehicle) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, v *vehicle.Vehicle) error
}

type VehicleCommands interface {
	CreateVehicle(ctx context.Context, req reqdto.CreateVehicleRequest) (*queries.VehicleView, error)
	UpdateVehicle(ctx context.Context, id uuid.UUID, req reqdto.UpdateVehicleRequest) (*queries.VehicleView, error)
}

type vehicleCommandsImpl struct {
	vehicleRepo  VehicleRepository
	vehicleReads queries.VehicleReadStore
	pool         Pool
}

func NewVehicleCommands(vehicleRepo VehicleRepository, vehicleReads queries.VehicleReadStore, pool Pool) VehicleCommands {
	return &vehicleCommandsImpl{
		vehicleRepo:  vehicleRepo,
		vehicleReads: vehicleReads,
		pool:         pool,
	}
}

func (c *vehicleCommandsImpl) CreateVehicle(ctx context.Context, req reqdto.CreateVehicleRequest) (*queries.VehicleView, error) {
	vehicleEntity, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrVehicleValidation)
	}

	var vehicleID uuid.UUID
	err = c.withTx(ctx, func(tx db.DBTX) error {
		id, createErr := c.vehicleRepo.Create(ctx, tx, vehicleEntity)
		if createErr != nil {
			return createErr
		}
		vehicleID = id
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateVehicle
		}
		return nil, errs.Mark(err, ErrVehicleWriteFailed)
	}

	return c.vehicleReads.FindByID(ctx, vehicleID)
}

func (c *vehicleCommandsImpl) UpdateVehicle(ctx context.Context, id uuid.UUID, req reqdto.UpdateVehicleRequest) (*queries.VehicleView, error) {
	currentView, err := c.vehicleReads.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, errs.Mark(err, ErrVehicleWriteFailed)
	}

	category, err := vehicle.NewCategory(req.Category)
	if err != nil {
		return nil, errs.Mark(err, ErrVehicleValidation)
	}
	rules, err := req.RateRuleDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrVehicleValidation)
	}

	vehicleEntity := queries.VehicleFromView(currentView)
	if err := vehicleEntity.Update(
		req.Name,
		category,
		req.TotalUnits,
		req.DailyRateCents,
		rules,
		req.WeeklyDiscountPct,
		req.MonthlyDiscountPct,
		req.IsActive,
	); err != nil {
		return nil, errs.Mark(err, ErrVehicleValidation)
	}

	err = c.withTx(ctx, func(tx db.DBTX) error {
		return c.vehicleRepo.Update(ctx, tx, vehicleEntity)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, errs.Mark(err, ErrVehicleWriteFailed)
	}

	return c.vehicleReads.FindByID(ctx, id)
}

func (c *vehicleCommandsImpl) withTx(ctx context.Context, fn func(tx db.DBTX) error) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
