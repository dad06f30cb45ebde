package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	auditdomain "github.com/crestline/irportal/internal/audit/domain"
	authdomain "github.com/crestline/irportal/internal/auth/domain"
	invitationdomain "github.com/crestline/irportal/internal/invitation/domain"
	"github.com/crestline/irportal/internal/onboarding"
)

// Legacy cookies cleared on logout alongside the session cookie. Older portal
// clients set these; clearing them keeps logout absolute.
var logoutCookies = []string{
	invitationdomain.CookieName,
	"auth_token",
	"session_id",
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) Login(c *gin.Context) {
	if !s.loginLimiter.Allow(c.ClientIP()) {
		AbortWithError(c, ErrRateLimited)
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	email := strings.TrimSpace(req.Email)
	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:     email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		s.audit(c, auditdomain.Entry{
			Action:     auditdomain.ActionLoginFailed,
			TargetType: "user",
			Metadata:   map[string]any{"email": email},
		})
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)

	userID := result.User.ID.String()
	s.audit(c, auditdomain.Entry{
		ActorID:    &userID,
		Action:     auditdomain.ActionLogin,
		TargetType: "user",
		TargetID:   &userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"session":  result.Session,
		"redirect": onboarding.HomeFor(result.User.Role),
	})
}

// Logout revokes the session and clears every auth cookie. It succeeds even
// when no valid session exists so a client can always exit an
// authenticated-looking state.
func (s *Server) Logout(c *gin.Context) {
	if token, ok := s.sessions.ReadToken(c); ok {
		if err := s.authsvc.Logout(c.Request.Context(), token); err != nil &&
			!errors.Is(err, authdomain.ErrInvalidSession) {
			s.audit(c, auditdomain.Entry{
				Action:     auditdomain.ActionLogout,
				TargetType: "session",
				Metadata:   map[string]any{"revoke_failed": true},
			})
		} else {
			s.audit(c, auditdomain.Entry{
				Action:     auditdomain.ActionLogout,
				TargetType: "session",
			})
		}
	}

	s.sessions.Clear(c)
	s.clearEdgeCookies(c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "logged out",
	})
}

func (s *Server) clearEdgeCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	for _, name := range logoutCookies {
		c.SetCookie(name, "", -1, "/", "", s.cfg.AuthCookieSecure, true)
	}
}

type ForgotRequest struct {
	Email string `json:"email"`
}

// Forgot always reports success; whether the address is registered is never
// revealed to the caller.
func (s *Server) Forgot(c *gin.Context) {
	var req ForgotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		AbortWithError(c, newValidationError("email", "required", "email is required"))
		return
	}

	_ = s.authsvc.ForgotPassword(c.Request.Context(), email)

	s.audit(c, auditdomain.Entry{
		Action:     auditdomain.ActionPasswordForgot,
		TargetType: "user",
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If the account exists, a reset link has been sent.",
	})
}

func (s *Server) Me(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	payload := gin.H{
		"user": gin.H{
			"id":           user.ID.String(),
			"external_id":  user.ExternalID,
			"email":        user.Email,
			"display_name": user.DisplayName,
			"role":         user.Role,
		},
		"routes": onboarding.RoutesFor(user.Role),
	}

	if sess, ok := s.currentSession(c); ok {
		payload["session"] = gin.H{
			"expires_at":   sess.ExpiresAt,
			"last_seen_at": sess.LastSeenAt,
		}
	}

	if user.Role == authdomain.RoleInvestor {
		profile, err := s.investorProfile(c.Request.Context(), user.ID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		payload["onboarding"] = profile
		payload["onboarding_complete"] = profile.OnboardingComplete()
	}

	c.JSON(http.StatusOK, payload)
}

type ResendVerificationRequest struct {
	Email string `json:"email"`
}

func (s *Server) ResendVerification(c *gin.Context) {
	var req ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		AbortWithError(c, newValidationError("email", "required", "email is required"))
		return
	}

	if !s.resendLimiter.Allow(email) {
		AbortWithError(c, ErrRateLimited)
		return
	}

	// Delivery is owned by the external backend's verification flow.
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Verification email sent.",
	})
}

func (s *Server) audit(c *gin.Context, entry auditdomain.Entry) {
	if s.auditSvc == nil {
		return
	}
	entry.IPAddress = c.ClientIP()
	entry.UserAgent = c.Request.UserAgent()
	_ = s.auditSvc.Record(c.Request.Context(), entry)
}
