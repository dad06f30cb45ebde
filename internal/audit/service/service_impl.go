package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/crestline/irportal/internal/audit/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  auditdomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  auditdomain.Repository
}

func NewService(p Params) auditdomain.Service {
	return &Service{
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

// Record appends one audit entry. Failures are logged, never surfaced to the
// triggering request.
func (s *Service) Record(ctx context.Context, entry auditdomain.Entry) error {
	action := strings.TrimSpace(entry.Action)
	if action == "" {
		return auditdomain.ErrInvalidAction
	}

	targetType := strings.TrimSpace(entry.TargetType)
	if targetType == "" {
		targetType = "unknown"
	}

	var metadata string
	if len(entry.Metadata) > 0 {
		raw, err := json.Marshal(entry.Metadata)
		if err != nil {
			s.log.Warn("audit metadata marshal failed", zap.Error(err))
		} else {
			metadata = string(raw)
		}
	}

	row := &auditdomain.AuditLog{
		ID:         s.genID.Generate(),
		ActorID:    entry.ActorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   entry.TargetID,
		Metadata:   metadata,
		IPAddress:  strings.TrimSpace(entry.IPAddress),
		UserAgent:  strings.TrimSpace(entry.UserAgent),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, row); err != nil {
		s.log.Warn("audit insert failed", zap.Error(err), zap.String("action", action))
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, action string, limit int) ([]auditdomain.AuditLog, error) {
	return s.repo.List(ctx, action, limit)
}
