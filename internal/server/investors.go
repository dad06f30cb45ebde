package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	auditdomain "github.com/crestline/irportal/internal/audit/domain"
	investordomain "github.com/crestline/irportal/internal/investor/domain"
)

// SubmitKYC records the investor's KYC submission. Verification itself is
// performed by an admin review.
func (s *Server) SubmitKYC(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	profile, err := s.investorSvc.SubmitKYC(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	userID := user.ID.String()
	s.audit(c, auditdomain.Entry{
		ActorID:    &userID,
		Action:     auditdomain.ActionKYCSubmit,
		TargetType: "investor",
		TargetID:   &userID,
	})

	c.JSON(http.StatusOK, profile)
}

func (s *Server) SignNDA(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	profile, err := s.investorSvc.SignNDA(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	userID := user.ID.String()
	s.audit(c, auditdomain.Entry{
		ActorID:    &userID,
		Action:     auditdomain.ActionNDASign,
		TargetType: "investor",
		TargetID:   &userID,
	})

	c.JSON(http.StatusOK, profile)
}

func (s *Server) InvestorStatus(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	profile, err := s.investorProfile(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete(),
	})
}

type AdvanceInvestmentRequest struct {
	Status string `json:"status"`
}

func (s *Server) AdvanceInvestment(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req AdvanceInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	profile, err := s.investorSvc.AdvanceInvestment(c.Request.Context(), user.ID,
		investordomain.InvestmentStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (s *Server) ListInvestors(c *gin.Context) {
	profiles, err := s.investorSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investors": profiles})
}

func (s *Server) GetInvestor(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	profile, err := s.investorSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	user, err := s.userRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investor": gin.H{
			"id":           user.ID.String(),
			"email":        user.Email,
			"display_name": user.DisplayName,
		},
		"profile": profile,
	})
}

type KYCReviewRequest struct {
	Decision string `json:"decision"`
}

func (s *Server) ReviewKYC(c *gin.Context) {
	admin, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req KYCReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	review := investordomain.KYCReview(strings.TrimSpace(req.Decision))
	profile, err := s.investorSvc.ReviewKYC(c.Request.Context(), id, review)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	adminID := admin.ID.String()
	targetID := id.String()
	s.audit(c, auditdomain.Entry{
		ActorID:    &adminID,
		Action:     auditdomain.ActionKYCReview,
		TargetType: "investor",
		TargetID:   &targetID,
		Metadata:   map[string]any{"decision": string(review)},
	})

	c.JSON(http.StatusOK, profile)
}

func (s *Server) ListAuditLogs(c *gin.Context) {
	if s.auditSvc == nil {
		c.JSON(http.StatusOK, gin.H{"audit_logs": []any{}})
		return
	}

	logs, err := s.auditSvc.List(c.Request.Context(), c.Query("action"), 100)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audit_logs": logs})
}
