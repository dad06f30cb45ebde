package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/crestline/irportal/internal/audit/domain"
	"github.com/crestline/irportal/internal/audit/repository"
	"github.com/crestline/irportal/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) auditdomain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&auditdomain.AuditLog{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	return NewService(Params{Log: zap.NewNop(), GenID: node, Repo: repository.New(dbConn)})
}

func TestRecordAndList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	actor := "200"
	if err := svc.Record(ctx, auditdomain.Entry{
		ActorID:    &actor,
		Action:     auditdomain.ActionLogin,
		TargetType: "user",
		TargetID:   &actor,
		Metadata:   map[string]any{"ip": "10.0.0.1"},
	}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := svc.Record(ctx, auditdomain.Entry{
		Action:     auditdomain.ActionLoginFailed,
		TargetType: "user",
	}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	all, err := svc.List(ctx, "", 50)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}

	logins, err := svc.List(ctx, auditdomain.ActionLogin, 50)
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(logins) != 1 {
		t.Fatalf("expected 1 login entry, got %d", len(logins))
	}
	if logins[0].ActorID == nil || *logins[0].ActorID != "200" {
		t.Fatalf("expected actor 200, got %v", logins[0].ActorID)
	}
	if logins[0].Metadata == "" {
		t.Fatal("expected metadata to be serialized")
	}
}

func TestRecordRejectsEmptyAction(t *testing.T) {
	svc := newTestService(t)

	if err := svc.Record(context.Background(), auditdomain.Entry{Action: "  "}); err != auditdomain.ErrInvalidAction {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}
