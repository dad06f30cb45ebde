package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/crestline/irportal/internal/investor/domain"
	"go.uber.org/zap"
)

type Service struct {
	log  *zap.Logger
	repo domain.Repository
}

func New(log *zap.Logger, repo domain.Repository) domain.Service {
	return &Service{
		log:  log.Named("investor.service"),
		repo: repo,
	}
}

func (s *Service) CreateProfile(ctx context.Context, userID snowflake.ID) (*domain.Profile, error) {
	profile := domain.NewProfile(userID)
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Service) Get(ctx context.Context, userID snowflake.ID) (*domain.Profile, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]domain.Profile, error) {
	return s.repo.List(ctx)
}

func (s *Service) SubmitKYC(ctx context.Context, userID snowflake.ID) (*domain.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch profile.KYCStatus {
	case domain.KYCNotSubmitted, domain.KYCRejected:
	default:
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	fields := map[string]any{
		"kyc_status":       domain.KYCSubmitted,
		"kyc_submitted_at": &now,
		"updated_at":       now,
	}
	if err := s.repo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	profile.KYCStatus = domain.KYCSubmitted
	profile.KYCSubmittedAt = &now
	s.log.Info("kyc submitted", zap.String("user_id", userID.String()))
	return profile, nil
}

func (s *Service) ReviewKYC(ctx context.Context, userID snowflake.ID, review domain.KYCReview) (*domain.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.KYCStatus != domain.KYCSubmitted {
		return nil, domain.ErrInvalidTransition
	}

	next := domain.KYCApproved
	if review == domain.ReviewReject {
		next = domain.KYCRejected
	} else if review != domain.ReviewApprove {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	fields := map[string]any{
		"kyc_status":      next,
		"kyc_reviewed_at": &now,
		"updated_at":      now,
	}
	if err := s.repo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	profile.KYCStatus = next
	profile.KYCReviewedAt = &now
	s.log.Info("kyc reviewed",
		zap.String("user_id", userID.String()),
		zap.String("outcome", string(next)))
	return profile, nil
}

// SignNDA enforces the KYC-before-NDA ordering.
func (s *Service) SignNDA(ctx context.Context, userID snowflake.ID) (*domain.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.KYCStatus.Reached() {
		return nil, domain.ErrKYCRequired
	}
	if profile.NDAStatus == domain.NDASigned {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	fields := map[string]any{
		"nda_status":    domain.NDASigned,
		"nda_signed_at": &now,
		"updated_at":    now,
	}
	if err := s.repo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	profile.NDAStatus = domain.NDASigned
	profile.NDASignedAt = &now
	s.log.Info("nda signed", zap.String("user_id", userID.String()))
	return profile, nil
}

func (s *Service) AdvanceInvestment(ctx context.Context, userID snowflake.ID, status domain.InvestmentStatus) (*domain.Profile, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidTransition
	}

	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.OnboardingComplete() {
		return nil, domain.ErrKYCRequired
	}
	if !profile.InvestmentStatus.Before(status) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	fields := map[string]any{
		"investment_status": status,
		"updated_at":        now,
	}
	if err := s.repo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	profile.InvestmentStatus = status
	return profile, nil
}
