package auth

import (
	"github.com/crestline/irportal/internal/auth/repository"
	"github.com/crestline/irportal/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
