package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/crestline/irportal/internal/config"
	invitationdomain "github.com/crestline/irportal/internal/invitation/domain"
)

func newGateRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	srv := &Server{cfg: config.Config{}}
	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/invite/:token", srv.InviteTokenGate)
	router.GET("/verify-email/:token", srv.VerifyEmailGate)
	return router
}

func TestInviteTokenGateRoundTrip(t *testing.T) {
	router := newGateRouter()

	req := httptest.NewRequest(http.MethodGet, "/invite/abc123", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "/signup?token=abc123" {
		t.Fatalf("expected signup redirect, got %q", loc)
	}

	var inviteCookie *http.Cookie
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == invitationdomain.CookieName {
			inviteCookie = cookie
		}
	}
	if inviteCookie == nil {
		t.Fatal("expected invite_token cookie")
	}
	if inviteCookie.Value != "abc123" {
		t.Fatalf("expected cookie to carry the token, got %q", inviteCookie.Value)
	}
	if inviteCookie.MaxAge != 86400 {
		t.Fatalf("expected 24h cookie, got max-age %d", inviteCookie.MaxAge)
	}
	if !inviteCookie.HttpOnly {
		t.Fatal("expected HttpOnly invite cookie")
	}
	if inviteCookie.SameSite != http.SameSiteStrictMode {
		t.Fatalf("expected SameSite=Strict, got %v", inviteCookie.SameSite)
	}
}

func TestInviteTokenGateAcceptsAnyURLSafeToken(t *testing.T) {
	router := newGateRouter()

	// Length is not a validity signal; one character up to 128 passes.
	for _, token := range []string{"a", "abc123", "01J0ZX7Y8K9M2N3P4Q5R6S7T8V", strings.Repeat("x", 128)} {
		req := httptest.NewRequest(http.MethodGet, "/invite/"+token, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusFound {
			t.Fatalf("token %q: expected status 302, got %d", token, resp.Code)
		}
		if loc := resp.Header().Get("Location"); loc != "/signup?token="+token {
			t.Fatalf("token %q: expected signup redirect, got %q", token, loc)
		}
	}
}

func TestInviteTokenGateRejectsJunkTokens(t *testing.T) {
	router := newGateRouter()

	for _, token := range []string{"has%20space", "bad$chars!", strings.Repeat("x", 129)} {
		req := httptest.NewRequest(http.MethodGet, "/invite/"+token, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusFound {
			t.Fatalf("token %q: expected status 302, got %d", token, resp.Code)
		}
		if loc := resp.Header().Get("Location"); loc != "/login?error=invalid_invite" {
			t.Fatalf("token %q: expected login redirect, got %q", token, loc)
		}
		for _, cookie := range resp.Result().Cookies() {
			if cookie.Name == invitationdomain.CookieName {
				t.Fatalf("token %q: no cookie should be set", token)
			}
		}
	}
}

func TestVerifyEmailGateForwardsToken(t *testing.T) {
	router := newGateRouter()

	req := httptest.NewRequest(http.MethodGet, "/verify-email/verify123", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", resp.Code)
	}
	location := resp.Header().Get("Location")
	if location != "/verify-email-pending?token=verify123" {
		t.Fatalf("expected pending redirect, got %q", location)
	}

	// Following the redirect must not land back in this gate; the pending
	// page is a client route, so this server simply does not know the path.
	follow := httptest.NewRequest(http.MethodGet, location, nil)
	followResp := httptest.NewRecorder()
	router.ServeHTTP(followResp, follow)

	if followResp.Code == http.StatusFound {
		t.Fatalf("redirect target was re-captured: %q", followResp.Header().Get("Location"))
	}
	if followResp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for client-routed page, got %d", followResp.Code)
	}
}
