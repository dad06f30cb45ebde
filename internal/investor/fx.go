package investor

import (
	"github.com/crestline/irportal/internal/investor/repository"
	"github.com/crestline/irportal/internal/investor/service"
	"go.uber.org/fx"
)

var Module = fx.Module("investor.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
