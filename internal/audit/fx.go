package audit

import (
	"github.com/crestline/irportal/internal/audit/repository"
	"github.com/crestline/irportal/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.New),
	fx.Provide(service.NewService),
)
