package bootstrap

import (
	"go.uber.org/fx"

	"rentfleet/internal/pkg/config"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		func(cfg config.Config) config.PaymentConfig { return cfg.Payment },
	),
)
