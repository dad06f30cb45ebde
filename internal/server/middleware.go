package server

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	authdomain "github.com/crestline/irportal/internal/auth/domain"
	investordomain "github.com/crestline/irportal/internal/investor/domain"
	"github.com/crestline/irportal/internal/onboarding"
)

const (
	contextUserKey    = "current_user"
	contextSessionKey = "current_session"
)

// AuthRequired resolves the session cookie before any guard or handler runs;
// downstream code can rely on the principal being present.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		user, err := s.userRepo.FindByID(c.Request.Context(), session.UserID)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(contextSessionKey, session)
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireRole rejects principals whose role is not in the allowed set. Runs
// after AuthRequired.
func (s *Server) RequireRole(roles ...authdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := s.currentUser(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		AbortWithError(c, ErrForbidden)
	}
}

// Authorize checks the casbin policy for the current principal's role.
func (s *Server) Authorize(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := s.currentUser(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if err := s.authzSvc.Authorize(c.Request.Context(), user.Role, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// OnboardingGate blocks investor API calls until the guard allows the
// corresponding page. guardPath is the page the API call belongs to; the 403
// body carries the guard's redirect target so clients can follow it.
func (s *Server) OnboardingGate(guardPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := s.currentUser(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if user.Role != authdomain.RoleInvestor {
			c.Next()
			return
		}

		profile, err := s.investorProfile(c.Request.Context(), user.ID)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		decision := onboarding.Evaluate(user, profile, guardPath)
		if !decision.Allow {
			c.AbortWithStatusJSON(403, gin.H{
				"error": gin.H{
					"type":    "onboarding_incomplete",
					"message": "onboarding step required",
				},
				"redirect": decision.Redirect,
			})
			return
		}
		c.Next()
	}
}

// investorProfile loads the current investor's onboarding record, recreating
// it when missing. A signup interrupted between account and profile creation
// must not strand the account; the recreated profile starts onboarding over.
func (s *Server) investorProfile(ctx context.Context, userID snowflake.ID) (*investordomain.Profile, error) {
	profile, err := s.investorSvc.Get(ctx, userID)
	if errors.Is(err, investordomain.ErrNotFound) {
		return s.investorSvc.CreateProfile(ctx, userID)
	}
	return profile, err
}

func (s *Server) currentUser(c *gin.Context) (*authdomain.User, bool) {
	raw, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := raw.(*authdomain.User)
	return user, ok && user != nil
}

func (s *Server) currentSession(c *gin.Context) (*authdomain.Session, bool) {
	raw, ok := c.Get(contextSessionKey)
	if !ok {
		return nil, false
	}
	session, ok := raw.(*authdomain.Session)
	return session, ok && session != nil
}
