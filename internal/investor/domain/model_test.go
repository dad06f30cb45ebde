package domain

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
)

func TestKYCStatusReached(t *testing.T) {
	assert.False(t, KYCNotSubmitted.Reached())
	assert.False(t, KYCRejected.Reached())
	assert.True(t, KYCSubmitted.Reached())
	assert.True(t, KYCApproved.Reached())
}

func TestInvestmentOrderIsStrict(t *testing.T) {
	ordered := []InvestmentStatus{
		InvestmentNotStarted,
		InvestmentReviewing,
		InvestmentAgreementSigned,
		InvestmentPaymentPending,
		InvestmentCompleted,
	}

	for i, status := range ordered {
		assert.True(t, status.Valid(), "status %s", status)
		for _, later := range ordered[i+1:] {
			assert.True(t, status.Before(later), "%s should precede %s", status, later)
			assert.False(t, later.Before(status), "%s should not precede %s", later, status)
		}
		assert.False(t, status.Before(status), "%s is not before itself", status)
	}

	assert.False(t, InvestmentStatus("bogus").Valid())
}

func TestNewProfileStartsFresh(t *testing.T) {
	profile := NewProfile(snowflake.ID(100))

	assert.Equal(t, KYCNotSubmitted, profile.KYCStatus)
	assert.Equal(t, NDANotSigned, profile.NDAStatus)
	assert.Equal(t, InvestmentNotStarted, profile.InvestmentStatus)
	assert.False(t, profile.OnboardingComplete())
}

func TestOnboardingComplete(t *testing.T) {
	profile := NewProfile(snowflake.ID(100))

	profile.KYCStatus = KYCSubmitted
	assert.False(t, profile.OnboardingComplete())

	profile.NDAStatus = NDASigned
	assert.True(t, profile.OnboardingComplete(), "submitted KYC with signed NDA completes onboarding")

	profile.KYCStatus = KYCRejected
	assert.False(t, profile.OnboardingComplete())
}
