package seed

import (
	"github.com/crestline/irportal/internal/config"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Module seeds demo accounts outside production.
var Module = fx.Module("seed",
	fx.Invoke(func(cfg config.Config, db *gorm.DB) error {
		if cfg.IsProduction() {
			return nil
		}
		return EnsureDemoAccounts(db)
	}),
)
