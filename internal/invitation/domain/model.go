// Package domain contains core types for investor invitations.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/crestline/irportal/internal/auth/domain"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRevoked  Status = "revoked"
)

// TTL is the absolute invite lifetime. Expiry never slides.
const TTL = 24 * time.Hour

// CookieName is the edge cookie carrying an invite code between the token
// gate redirect and the signup flow.
const CookieName = "invite_token"

// Invitation is a single-use signup grant for one email address.
type Invitation struct {
	ID         snowflake.ID    `gorm:"primaryKey" json:"id"`
	Email      string          `gorm:"not null;index" json:"email"`
	Role       authdomain.Role `gorm:"column:role;type:text;not null" json:"role"`
	Code       string          `gorm:"column:code;type:text;not null;uniqueIndex" json:"code"`
	Status     Status          `gorm:"column:status;type:text;not null" json:"status"`
	InvitedBy  snowflake.ID    `gorm:"column:invited_by" json:"invited_by"`
	ExpiresAt  time.Time       `gorm:"column:expires_at;not null" json:"expires_at"`
	AcceptedAt *time.Time      `gorm:"column:accepted_at" json:"accepted_at,omitempty"`
	CreatedAt  time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invitation) TableName() string { return "invitations" }
