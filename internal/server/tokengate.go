package server

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	invitationdomain "github.com/crestline/irportal/internal/invitation/domain"
)

// inviteCookieMaxAge matches the invite's absolute 24h lifetime.
const inviteCookieMaxAge = int(invitationdomain.TTL / time.Second)

// tokenShape rejects empty or junk path segments before they become cookies.
// Any non-empty URL-safe segment is a plausible token; validity is decided by
// the invite lookup at signup, not here.
var tokenShape = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// InviteTokenGate intercepts /invite/<token> links: the token is stored as a
// short-lived cookie and carried on the signup redirect as a query parameter
// for clients that cannot accept the cookie.
func (s *Server) InviteTokenGate(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if !tokenShape.MatchString(token) {
		c.Redirect(http.StatusFound, "/login?error=invalid_invite")
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(invitationdomain.CookieName, token, inviteCookieMaxAge, "/", "", s.cfg.AuthCookieSecure, true)

	c.Redirect(http.StatusFound, "/signup?token="+url.QueryEscape(token))
}

// VerifyEmailGate forwards verification links to the in-progress page; token
// validation belongs to that flow. The target lives outside /verify-email/ so
// the redirect can never be re-captured by this gate's own route.
func (s *Server) VerifyEmailGate(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if !tokenShape.MatchString(token) {
		c.Redirect(http.StatusFound, "/login?error=invalid_token")
		return
	}

	c.Redirect(http.StatusFound, "/verify-email-pending?token="+url.QueryEscape(token))
}
