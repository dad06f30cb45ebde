// Package authorization enforces the admin/investor role partition at the API
// layer. Client-side redirects are navigation hints, not a security boundary;
// every protected route group is additionally checked here.
package authorization

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	authdomain "github.com/crestline/irportal/internal/auth/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectInvestor  = "investor"
	ObjectInvite    = "invite"
	ObjectKYC       = "kyc"
	ObjectNDA       = "nda"
	ObjectAgreement = "agreement"
	ObjectDocument  = "document"
	ObjectAuditLog  = "audit_log"
)

const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionRevoke = "revoke"
	ActionSubmit = "submit"
	ActionReview = "review"
	ActionSign   = "sign"
	ActionUpload = "upload"
)

var (
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidActor  = errors.New("invalid actor")
	ErrInvalidObject = errors.New("invalid object")
	ErrInvalidAction = errors.New("invalid action")
)

type Service interface {
	Authorize(ctx context.Context, role authdomain.Role, object string, action string) error
}

// Module wires the casbin enforcer and the authorization service.
var Module = fx.Module("authorization",
	fx.Provide(NewEnforcer),
	fx.Provide(NewService),
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	if err := enforcer.BuildRoleLinks(); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, role authdomain.Role, object string, action string) error {
	_ = ctx
	if !role.Valid() {
		return ErrInvalidActor
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	subject := fmt.Sprintf("role:%s", role)
	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Warn("authorization denied",
			zap.String("subject", subject),
			zap.String("object", object),
			zap.String("action", action))
		return ErrForbidden
	}
	return nil
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		// Admin permissions
		{"role:admin", ObjectInvestor, ActionView},
		{"role:admin", ObjectInvite, ActionView},
		{"role:admin", ObjectInvite, ActionCreate},
		{"role:admin", ObjectInvite, ActionRevoke},
		{"role:admin", ObjectKYC, ActionReview},
		{"role:admin", ObjectAgreement, ActionCreate},
		{"role:admin", ObjectDocument, ActionView},
		{"role:admin", ObjectDocument, ActionUpload},
		{"role:admin", ObjectAuditLog, ActionView},

		// Investor permissions
		{"role:investor", ObjectKYC, ActionSubmit},
		{"role:investor", ObjectNDA, ActionSign},
		{"role:investor", ObjectDocument, ActionView},
	}

	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return err
		}
	}
	return nil
}
