package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/crestline/irportal/internal/auth/domain"
)

type CreateRequest struct {
	Email     string
	Role      authdomain.Role
	InvitedBy snowflake.ID
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Invitation, error)
	BatchCreate(ctx context.Context, reqs []CreateRequest) ([]*Invitation, error)
	List(ctx context.Context) ([]Invitation, error)
	// Validate returns the pending, unexpired invitation for code.
	Validate(ctx context.Context, code string) (*Invitation, error)
	// Accept consumes the invitation. A second Accept fails with ErrInviteConsumed.
	Accept(ctx context.Context, code string) (*Invitation, error)
	Revoke(ctx context.Context, id snowflake.ID) error
}

type Repository interface {
	Create(ctx context.Context, inv *Invitation) error
	FindByCode(ctx context.Context, code string) (*Invitation, error)
	FindByID(ctx context.Context, id snowflake.ID) (*Invitation, error)
	List(ctx context.Context) ([]Invitation, error)
	UpdateStatus(ctx context.Context, id snowflake.ID, fields map[string]any) error
}
