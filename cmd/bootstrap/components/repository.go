package components

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"rentfleet/internal/infra/db"
	"rentfleet/internal/infra/payment"
	"rentfleet/internal/infra/readstore"
	"rentfleet/internal/infra/repository"
	"rentfleet/internal/usecase/commands"
	"rentfleet/internal/usecase/queries"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			repository.NewVehicleRepository,
			fx.As(new(commands.VehicleRepository)),
			fx.As(new(commands.VehicleLockRepository)),
		),
		fx.Annotate(
			repository.NewIdempotencyRepository,
			fx.As(new(commands.IdempotencyRepository)),
		),
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewVehicleReadStore,
			fx.As(new(queries.VehicleReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
			fx.As(new(queries.BookingSpanReadStore)),
			fx.As(new(commands.BookingSpanRepository)),
		),
		fx.Annotate(
			readstore.NewIdempotencyReadStore,
			fx.As(new(commands.IdempotencyReadStore)),
		),
		fx.Annotate(
			payment.NewSimulator,
			fx.As(new(payment.Gateway)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
