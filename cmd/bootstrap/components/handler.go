package components

import (
	"go.uber.org/fx"

	"rentfleet/internal/handler"
	"rentfleet/internal/handler/api"
	"rentfleet/internal/handler/middleware"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewVehicleHandler,
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
