package invitation

import (
	"github.com/crestline/irportal/internal/invitation/repository"
	"github.com/crestline/irportal/internal/invitation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invitation.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
