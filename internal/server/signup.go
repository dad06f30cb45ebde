package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	auditdomain "github.com/crestline/irportal/internal/audit/domain"
	authdomain "github.com/crestline/irportal/internal/auth/domain"
	invitationdomain "github.com/crestline/irportal/internal/invitation/domain"
	"github.com/crestline/irportal/internal/onboarding"
)

type SignupRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates an investor account from an invite. The invite code comes
// from the request body, falling back to the token-gate cookie.
func (s *Server) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	code := strings.TrimSpace(req.Token)
	if code == "" {
		if cookie, err := c.Cookie(invitationdomain.CookieName); err == nil {
			code = strings.TrimSpace(cookie)
		}
	}

	var invite *invitationdomain.Invitation
	if code != "" {
		inv, err := s.inviteSvc.Validate(c.Request.Context(), code)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		invite = inv
	} else if !s.cfg.OpenSignup {
		AbortWithError(c, invitationdomain.ErrInvalidInviteToken)
		return
	}

	user, err := s.authsvc.CreateUser(c.Request.Context(), authdomain.CreateUserRequest{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.Name,
		Role:        authdomain.RoleInvestor,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if _, err := s.investorSvc.CreateProfile(c.Request.Context(), user.ID); err != nil {
		AbortWithError(c, err)
		return
	}

	if invite != nil {
		if _, err := s.inviteSvc.Accept(c.Request.Context(), invite.Code); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:     user.Email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)

	// The invite cookie is single-use; drop it once consumed.
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(invitationdomain.CookieName, "", -1, "/", "", s.cfg.AuthCookieSecure, true)

	userID := user.ID.String()
	s.audit(c, auditdomain.Entry{
		ActorID:    &userID,
		Action:     auditdomain.ActionSignup,
		TargetType: "user",
		TargetID:   &userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"session":  result.Session,
		"redirect": onboarding.InvestorHome,
	})
}
