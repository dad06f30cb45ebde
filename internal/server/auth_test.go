package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	authdomain "github.com/crestline/irportal/internal/auth/domain"
	"github.com/crestline/irportal/internal/auth/session"
	"github.com/crestline/irportal/internal/config"
	invitationdomain "github.com/crestline/irportal/internal/invitation/domain"
)

type fakeAuthService struct {
	users map[string]string

	logoutCalls int
	lastLogout  string
}

func newFakeAuthService() *fakeAuthService {
	return &fakeAuthService{users: map[string]string{}}
}

func (f *fakeAuthService) CreateUser(ctx context.Context, req authdomain.CreateUserRequest) (*authdomain.User, error) {
	_ = ctx
	if _, ok := f.users[req.Email]; ok {
		return nil, authdomain.ErrUserExists
	}
	f.users[req.Email] = req.Password
	return &authdomain.User{
		ID:    snowflake.ID(200),
		Email: req.Email,
		Role:  req.Role,
	}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	_ = ctx
	password, ok := f.users[req.Email]
	if !ok || password != req.Password {
		return nil, authdomain.ErrInvalidCredentials
	}
	return &authdomain.LoginResult{
		User: &authdomain.User{
			ID:    snowflake.ID(200),
			Email: req.Email,
			Role:  authdomain.RoleInvestor,
		},
		Session: &authdomain.SessionView{
			Metadata: map[string]any{"user_id": "200"},
		},
		RawToken:  "session-token",
		ExpiresAt: time.Now().Add(time.Hour),
		SessionID: snowflake.ID(300),
	}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, rawToken string) error {
	_ = ctx
	f.logoutCalls++
	f.lastLogout = rawToken
	return nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, rawToken string) (*authdomain.Session, error) {
	_ = ctx
	_ = rawToken
	return nil, authdomain.ErrInvalidSession
}

func (f *fakeAuthService) ForgotPassword(ctx context.Context, email string) error {
	_ = ctx
	_ = email
	return nil
}

func newAuthTestServer(authsvc authdomain.Service) (*Server, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		cfg:           config.Config{},
		authsvc:       authsvc,
		sessions:      session.NewManager(config.Config{}),
		loginLimiter:  newRateLimiter(10, time.Minute),
		resendLimiter: newRateLimiter(5, 10*time.Minute),
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/auth/login", srv.Login)
	router.POST("/auth/forgot", srv.Forgot)
	router.POST("/api/logout", srv.Logout)
	return srv, router
}

func postJSON(router *gin.Engine, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestLoginSetsSessionCookieAndRedirect(t *testing.T) {
	authsvc := newFakeAuthService()
	authsvc.users["alice@example.com"] = "correct-password"
	_, router := newAuthTestServer(authsvc)

	resp := postJSON(router, "/auth/login", `{"email":"alice@example.com","password":"correct-password"}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte(`"redirect":"/investor/dashboard"`)) {
		t.Fatalf("expected investor home redirect, got %s", resp.Body.String())
	}

	var sessionCookie *http.Cookie
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == session.DefaultCookieName {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected session cookie")
	}
	if sessionCookie.Value != "session-token" {
		t.Fatalf("expected raw token in cookie, got %q", sessionCookie.Value)
	}
	if !sessionCookie.HttpOnly {
		t.Fatal("expected HttpOnly session cookie")
	}
}

func TestLoginInvalidCredentialsReturns401(t *testing.T) {
	authsvc := newFakeAuthService()
	authsvc.users["alice@example.com"] = "correct-password"
	_, router := newAuthTestServer(authsvc)

	resp := postJSON(router, "/auth/login", `{"email":"alice@example.com","password":"wrong-password"}`)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == session.DefaultCookieName {
			t.Fatal("no session cookie on failed login")
		}
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	authsvc := newFakeAuthService()
	_, router := newAuthTestServer(authsvc)

	// No session cookie at all: still a success.
	first := postJSON(router, "/api/logout", `{}`)
	second := postJSON(router, "/api/logout", `{}`)

	for _, resp := range []*httptest.ResponseRecorder{first, second} {
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
		if !bytes.Contains(resp.Body.Bytes(), []byte(`"success":true`)) {
			t.Fatalf("expected success body, got %s", resp.Body.String())
		}
	}
	if first.Body.String() != second.Body.String() {
		t.Fatal("repeated logout must produce identical responses")
	}
	if authsvc.logoutCalls != 0 {
		t.Fatalf("expected no revocation without a cookie, got %d", authsvc.logoutCalls)
	}
}

func TestLogoutRevokesAndClearsEveryAuthCookie(t *testing.T) {
	authsvc := newFakeAuthService()
	_, router := newAuthTestServer(authsvc)

	resp := postJSON(router, "/api/logout", `{}`, &http.Cookie{Name: session.DefaultCookieName, Value: "session-token"})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if authsvc.logoutCalls != 1 || authsvc.lastLogout != "session-token" {
		t.Fatalf("expected one revocation for session-token, got %d (%q)", authsvc.logoutCalls, authsvc.lastLogout)
	}

	cleared := map[string]bool{}
	for _, cookie := range resp.Result().Cookies() {
		if cookie.MaxAge < 0 && cookie.Value == "" {
			cleared[cookie.Name] = true
		}
	}
	for _, name := range []string{session.DefaultCookieName, invitationdomain.CookieName, "auth_token", "session_id"} {
		if !cleared[name] {
			t.Fatalf("expected cookie %q to be cleared, got %v", name, cleared)
		}
	}
}

func TestForgotNeverRevealsAccounts(t *testing.T) {
	authsvc := newFakeAuthService()
	authsvc.users["alice@example.com"] = "correct-password"
	_, router := newAuthTestServer(authsvc)

	known := postJSON(router, "/auth/forgot", `{"email":"alice@example.com"}`)
	unknown := postJSON(router, "/auth/forgot", `{"email":"nobody@example.com"}`)

	if known.Code != http.StatusOK || unknown.Code != http.StatusOK {
		t.Fatalf("expected 200 for both, got %d and %d", known.Code, unknown.Code)
	}
	if known.Body.String() != unknown.Body.String() {
		t.Fatalf("responses must be indistinguishable: %s vs %s", known.Body.String(), unknown.Body.String())
	}
}

func TestForgotRequiresEmail(t *testing.T) {
	_, router := newAuthTestServer(newFakeAuthService())

	resp := postJSON(router, "/auth/forgot", `{"email":""}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}
