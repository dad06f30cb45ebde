// Package domain contains the append-only auth audit trail types.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Auth and onboarding actions recorded by the portal.
const (
	ActionLogin          = "user.login"
	ActionLoginFailed    = "user.login_failed"
	ActionLogout         = "user.logout"
	ActionSignup         = "user.signup"
	ActionPasswordForgot = "user.password_forgot"
	ActionKYCSubmit      = "investor.kyc_submit"
	ActionKYCReview      = "investor.kyc_review"
	ActionNDASign        = "investor.nda_sign"
	ActionInviteCreate   = "invite.create"
	ActionInviteRevoke   = "invite.revoke"
)

type AuditLog struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	ActorID    *string      `gorm:"column:actor_id;type:text" json:"actor_id,omitempty"`
	Action     string       `gorm:"column:action;type:text;not null;index" json:"action"`
	TargetType string       `gorm:"column:target_type;type:text;not null" json:"target_type"`
	TargetID   *string      `gorm:"column:target_id;type:text" json:"target_id,omitempty"`
	Metadata   string       `gorm:"column:metadata;type:text" json:"metadata,omitempty"`
	IPAddress  string       `gorm:"column:ip_address;type:text" json:"ip_address,omitempty"`
	UserAgent  string       `gorm:"column:user_agent;type:text" json:"user_agent,omitempty"`
	CreatedAt  time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (AuditLog) TableName() string { return "audit_logs" }

type Entry struct {
	ActorID    *string
	Action     string
	TargetType string
	TargetID   *string
	Metadata   map[string]any
	IPAddress  string
	UserAgent  string
}

type Service interface {
	Record(ctx context.Context, entry Entry) error
	List(ctx context.Context, action string, limit int) ([]AuditLog, error)
}

type Repository interface {
	Insert(ctx context.Context, entry *AuditLog) error
	List(ctx context.Context, action string, limit int) ([]AuditLog, error)
}

var ErrInvalidAction = errors.New("invalid_action")
