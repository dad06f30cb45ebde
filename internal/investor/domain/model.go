// Package domain contains the investor onboarding record and its state enums.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type KYCStatus string

const (
	KYCNotSubmitted KYCStatus = "not_submitted"
	KYCSubmitted    KYCStatus = "submitted"
	KYCApproved     KYCStatus = "approved"
	KYCRejected     KYCStatus = "rejected"
)

// Reached reports whether the status is at or beyond submission.
func (s KYCStatus) Reached() bool {
	return s == KYCSubmitted || s == KYCApproved
}

type NDAStatus string

const (
	NDANotSigned NDAStatus = "not_signed"
	NDASigned    NDAStatus = "signed"
)

type InvestmentStatus string

const (
	InvestmentNotStarted      InvestmentStatus = "not_started"
	InvestmentReviewing       InvestmentStatus = "reviewing"
	InvestmentAgreementSigned InvestmentStatus = "agreement_signed"
	InvestmentPaymentPending  InvestmentStatus = "payment_pending"
	InvestmentCompleted       InvestmentStatus = "completed"
)

// investmentOrder fixes the forward-only progression.
var investmentOrder = map[InvestmentStatus]int{
	InvestmentNotStarted:      0,
	InvestmentReviewing:       1,
	InvestmentAgreementSigned: 2,
	InvestmentPaymentPending:  3,
	InvestmentCompleted:       4,
}

func (s InvestmentStatus) Valid() bool {
	_, ok := investmentOrder[s]
	return ok
}

// Before reports whether s precedes other in the progression.
func (s InvestmentStatus) Before(other InvestmentStatus) bool {
	return investmentOrder[s] < investmentOrder[other]
}

// Profile tracks one investor through KYC, NDA and investment.
type Profile struct {
	UserID           snowflake.ID     `gorm:"primaryKey;column:user_id" json:"user_id"`
	KYCStatus        KYCStatus        `gorm:"column:kyc_status;type:text;not null" json:"kyc_status"`
	NDAStatus        NDAStatus        `gorm:"column:nda_status;type:text;not null" json:"nda_status"`
	InvestmentStatus InvestmentStatus `gorm:"column:investment_status;type:text;not null" json:"investment_status"`
	KYCSubmittedAt   *time.Time       `gorm:"column:kyc_submitted_at" json:"kyc_submitted_at,omitempty"`
	KYCReviewedAt    *time.Time       `gorm:"column:kyc_reviewed_at" json:"kyc_reviewed_at,omitempty"`
	NDASignedAt      *time.Time       `gorm:"column:nda_signed_at" json:"nda_signed_at,omitempty"`
	CreatedAt        time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Profile) TableName() string { return "investor_profiles" }

// NewProfile returns the initial onboarding record for a fresh investor.
func NewProfile(userID snowflake.ID) *Profile {
	return &Profile{
		UserID:           userID,
		KYCStatus:        KYCNotSubmitted,
		NDAStatus:        NDANotSigned,
		InvestmentStatus: InvestmentNotStarted,
	}
}

// OnboardingComplete reports whether the investor may reach investment pages.
func (p *Profile) OnboardingComplete() bool {
	return p.KYCStatus.Reached() && p.NDAStatus == NDASigned
}
