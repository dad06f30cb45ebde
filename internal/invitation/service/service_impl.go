package service

import (
	"context"
	"crypto/rand"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/crestline/irportal/internal/auth/domain"
	"github.com/crestline/irportal/internal/invitation/domain"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

type Service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &Service{
		log:   log.Named("invitation.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Invitation, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return nil, domain.ErrInvalidInviteToken
	}
	role := req.Role
	if !role.Valid() {
		role = authdomain.RoleInvestor
	}

	now := time.Now().UTC()
	inv := &domain.Invitation{
		ID:        s.genID.Generate(),
		Email:     strings.ToLower(addr.Address),
		Role:      role,
		Code:      newCode(now),
		Status:    domain.StatusPending,
		InvitedBy: req.InvitedBy,
		ExpiresAt: now.Add(domain.TTL),
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.log.Info("invite created", zap.String("invite_id", inv.ID.String()))
	return inv, nil
}

func (s *Service) BatchCreate(ctx context.Context, reqs []domain.CreateRequest) ([]*domain.Invitation, error) {
	invs := make([]*domain.Invitation, 0, len(reqs))
	for _, req := range reqs {
		inv, err := s.Create(ctx, req)
		if err != nil {
			return invs, err
		}
		invs = append(invs, inv)
	}
	return invs, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Invitation, error) {
	return s.repo.List(ctx)
}

func (s *Service) Validate(ctx context.Context, code string) (*domain.Invitation, error) {
	inv, err := s.lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) Accept(ctx context.Context, code string) (*domain.Invitation, error) {
	inv, err := s.lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fields := map[string]any{
		"status":      domain.StatusAccepted,
		"accepted_at": &now,
		"updated_at":  now,
	}
	if err := s.repo.UpdateStatus(ctx, inv.ID, fields); err != nil {
		return nil, err
	}

	inv.Status = domain.StatusAccepted
	inv.AcceptedAt = &now
	return inv, nil
}

func (s *Service) Revoke(ctx context.Context, id snowflake.ID) error {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status != domain.StatusPending {
		return domain.ErrInviteConsumed
	}

	now := time.Now().UTC()
	return s.repo.UpdateStatus(ctx, inv.ID, map[string]any{
		"status":     domain.StatusRevoked,
		"updated_at": now,
	})
}

func (s *Service) lookup(ctx context.Context, code string) (*domain.Invitation, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidInviteToken
	}

	inv, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrInviteNotFound) {
			return nil, domain.ErrInvalidInviteToken
		}
		return nil, err
	}

	switch inv.Status {
	case domain.StatusAccepted, domain.StatusRevoked:
		return nil, domain.ErrInviteConsumed
	}
	if time.Now().UTC().After(inv.ExpiresAt) {
		return nil, domain.ErrInviteExpired
	}
	return inv, nil
}

func newCode(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), ulid.Monotonic(rand.Reader, 0)).String()
}
