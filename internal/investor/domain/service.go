package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrNotFound          = errors.New("investor not found")
	ErrKYCRequired       = errors.New("kyc submission required")
	ErrInvalidTransition = errors.New("invalid onboarding transition")
)

type KYCReview string

const (
	ReviewApprove KYCReview = "approve"
	ReviewReject  KYCReview = "reject"
)

type Service interface {
	CreateProfile(ctx context.Context, userID snowflake.ID) (*Profile, error)
	Get(ctx context.Context, userID snowflake.ID) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	SubmitKYC(ctx context.Context, userID snowflake.ID) (*Profile, error)
	ReviewKYC(ctx context.Context, userID snowflake.ID, review KYCReview) (*Profile, error)
	SignNDA(ctx context.Context, userID snowflake.ID) (*Profile, error)
	AdvanceInvestment(ctx context.Context, userID snowflake.ID, status InvestmentStatus) (*Profile, error)
}

type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	FindByUserID(ctx context.Context, userID snowflake.ID) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	UpdateFields(ctx context.Context, userID snowflake.ID, fields map[string]any) error
}
