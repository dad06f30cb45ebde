// Package seed bootstraps demo accounts for non-production environments.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authdomain "github.com/crestline/irportal/internal/auth/domain"
	"github.com/crestline/irportal/internal/auth/password"
	investordomain "github.com/crestline/irportal/internal/investor/domain"
)

const (
	defaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "password"
	defaultAdminDisplay  = "Portal Admin"

	demoInvestorEmail    = "new-investor@example.com"
	demoInvestorPassword = "password"
	demoInvestorDisplay  = "Demo Investor"
)

// EnsureDemoAccounts seeds the demo admin and a fresh investor. Idempotent;
// existing accounts are left untouched.
func EnsureDemoAccounts(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUser(ctx, tx, node, defaultAdminEmail, defaultAdminPassword, defaultAdminDisplay, authdomain.RoleAdmin); err != nil {
			return err
		}
		return ensureUser(ctx, tx, node, demoInvestorEmail, demoInvestorPassword, demoInvestorDisplay, authdomain.RoleInvestor)
	})
}

func ensureUser(ctx context.Context, tx *gorm.DB, node *snowflake.Node, email, rawPassword, display string, role authdomain.Role) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing authdomain.User
	err := tx.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := &authdomain.User{
		ID:           node.Generate(),
		ExternalID:   uuid.NewString(),
		Email:        email,
		DisplayName:  display,
		Role:         role,
		PasswordHash: &hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	if role == authdomain.RoleInvestor {
		profile := investordomain.NewProfile(user.ID)
		if err := tx.WithContext(ctx).Create(profile).Error; err != nil {
			return err
		}
	}
	return nil
}
