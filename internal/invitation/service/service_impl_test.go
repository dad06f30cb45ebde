package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/crestline/irportal/internal/auth/domain"
	"github.com/crestline/irportal/internal/invitation/domain"
	"github.com/crestline/irportal/internal/invitation/repository"
	"github.com/crestline/irportal/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&domain.Invitation{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	return New(zap.NewNop(), repository.New(dbConn), node), dbConn
}

func TestCreateIssuesPendingInvite(t *testing.T) {
	svc, _ := newTestService(t)

	inv, err := svc.Create(context.Background(), domain.CreateRequest{
		Email: "Investor@Example.com",
		Role:  authdomain.RoleInvestor,
	})
	if err != nil {
		t.Fatalf("failed to create invite: %v", err)
	}
	if inv.Email != "investor@example.com" {
		t.Fatalf("expected lowercased email, got %q", inv.Email)
	}
	if inv.Status != domain.StatusPending {
		t.Fatalf("expected pending status, got %s", inv.Status)
	}
	if inv.Code == "" {
		t.Fatal("expected a code")
	}
	if until := time.Until(inv.ExpiresAt); until > domain.TTL || until < domain.TTL-time.Minute {
		t.Fatalf("expected 24h expiry, got %v", until)
	}
}

func TestCreateRejectsMalformedEmail(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Create(context.Background(), domain.CreateRequest{Email: "not-an-address"}); err != domain.ErrInvalidInviteToken {
		t.Fatalf("expected ErrInvalidInviteToken, got %v", err)
	}
}

func TestValidateUnknownCode(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Validate(context.Background(), "01J0000000000000000000000"); err != domain.ErrInvalidInviteToken {
		t.Fatalf("expected ErrInvalidInviteToken, got %v", err)
	}
	if _, err := svc.Validate(context.Background(), "  "); err != domain.ErrInvalidInviteToken {
		t.Fatalf("expected ErrInvalidInviteToken for blank code, got %v", err)
	}
}

func TestAcceptIsSingleUse(t *testing.T) {
	svc, _ := newTestService(t)

	inv, err := svc.Create(context.Background(), domain.CreateRequest{Email: "investor@example.com"})
	if err != nil {
		t.Fatalf("failed to create invite: %v", err)
	}

	accepted, err := svc.Accept(context.Background(), inv.Code)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted.Status != domain.StatusAccepted {
		t.Fatalf("expected accepted status, got %s", accepted.Status)
	}
	if accepted.AcceptedAt == nil {
		t.Fatal("expected accepted_at to be set")
	}

	if _, err := svc.Accept(context.Background(), inv.Code); err != domain.ErrInviteConsumed {
		t.Fatalf("expected ErrInviteConsumed on second accept, got %v", err)
	}
	if _, err := svc.Validate(context.Background(), inv.Code); err != domain.ErrInviteConsumed {
		t.Fatalf("expected ErrInviteConsumed on validate after accept, got %v", err)
	}
}

func TestExpiredInviteRejected(t *testing.T) {
	svc, dbConn := newTestService(t)

	inv, err := svc.Create(context.Background(), domain.CreateRequest{Email: "investor@example.com"})
	if err != nil {
		t.Fatalf("failed to create invite: %v", err)
	}

	past := time.Now().UTC().Add(-time.Hour)
	if err := dbConn.Model(&domain.Invitation{}).Where("id = ?", inv.ID).Update("expires_at", past).Error; err != nil {
		t.Fatalf("failed to backdate invite: %v", err)
	}

	if _, err := svc.Validate(context.Background(), inv.Code); err != domain.ErrInviteExpired {
		t.Fatalf("expected ErrInviteExpired, got %v", err)
	}
	if _, err := svc.Accept(context.Background(), inv.Code); err != domain.ErrInviteExpired {
		t.Fatalf("expected ErrInviteExpired on accept, got %v", err)
	}
}

func TestRevokePendingInvite(t *testing.T) {
	svc, _ := newTestService(t)

	inv, err := svc.Create(context.Background(), domain.CreateRequest{Email: "investor@example.com"})
	if err != nil {
		t.Fatalf("failed to create invite: %v", err)
	}

	if err := svc.Revoke(context.Background(), inv.ID); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if _, err := svc.Validate(context.Background(), inv.Code); err != domain.ErrInviteConsumed {
		t.Fatalf("expected ErrInviteConsumed after revoke, got %v", err)
	}

	// Already consumed invites cannot be revoked again.
	if err := svc.Revoke(context.Background(), inv.ID); err != domain.ErrInviteConsumed {
		t.Fatalf("expected ErrInviteConsumed on repeat revoke, got %v", err)
	}
}
