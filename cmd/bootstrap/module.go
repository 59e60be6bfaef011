package bootstrap

import (
	"slotbook/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// Core is everything the use cases need, without any listener or background worker.
var Core = fx.Options(
	ConfigModule,
	LoggerModule,
	FxLogger,
	JWTModule,
	StoreModule,
	NotifyModule,
	components.PersistenceModule,
	components.UseCaseModule,
)

var Module = fx.Options(
	Core,
	components.HandlerModule,
	ServerModule,
	WorkerModule,
)
