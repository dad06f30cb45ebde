package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authdomain "github.com/crestline/irportal/internal/auth/domain"
	investordomain "github.com/crestline/irportal/internal/investor/domain"
	"github.com/crestline/irportal/internal/onboarding"
)

// Navigation returns the menu for the current principal's role.
func (s *Server) Navigation(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"routes": onboarding.RoutesFor(user.Role),
		"home":   onboarding.HomeFor(user.Role),
	})
}

// NavigationDecision answers "may this user open path, and if not, where to".
// The client uses it for redirects; the API middleware enforces the same rules.
func (s *Server) NavigationDecision(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	path := strings.TrimSpace(c.Query("path"))
	if path == "" {
		AbortWithError(c, newValidationError("path", "required", "path is required"))
		return
	}

	var profile *investordomain.Profile
	if user.Role == authdomain.RoleInvestor {
		p, err := s.investorProfile(c.Request.Context(), user.ID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		profile = p
	}

	c.JSON(http.StatusOK, onboarding.Evaluate(user, profile, path))
}
