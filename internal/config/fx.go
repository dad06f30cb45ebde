package config

import "go.uber.org/fx"

// Module wires application and backend-proxy configuration.
var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewBackendConfigHolder),
)
