// Package migration creates the portal schema on startup so local and
// self-hosted environments are usable out of the box.
package migration

import (
	"errors"

	auditdomain "github.com/crestline/irportal/internal/audit/domain"
	authdomain "github.com/crestline/irportal/internal/auth/domain"
	invitationdomain "github.com/crestline/irportal/internal/invitation/domain"
	investordomain "github.com/crestline/irportal/internal/investor/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Module runs schema migration before the server accepts traffic.
var Module = fx.Module("migrations",
	fx.Invoke(Run),
)

func Run(db *gorm.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	return db.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&invitationdomain.Invitation{},
		&investordomain.Profile{},
		&auditdomain.AuditLog{},
	)
}
