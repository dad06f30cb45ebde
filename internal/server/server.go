package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/crestline/irportal/internal/audit"
	auditdomain "github.com/crestline/irportal/internal/audit/domain"
	"github.com/crestline/irportal/internal/auth"
	authdomain "github.com/crestline/irportal/internal/auth/domain"
	"github.com/crestline/irportal/internal/auth/session"
	"github.com/crestline/irportal/internal/authorization"
	"github.com/crestline/irportal/internal/backend"
	"github.com/crestline/irportal/internal/config"
	"github.com/crestline/irportal/internal/invitation"
	invitationdomain "github.com/crestline/irportal/internal/invitation/domain"
	"github.com/crestline/irportal/internal/investor"
	investordomain "github.com/crestline/irportal/internal/investor/domain"
	"github.com/crestline/irportal/internal/onboarding"
)

var Module = fx.Module("http.server",
	fx.Provide(NewHTTPMetrics),
	fx.Provide(NewEngine),
	authorization.Module,
	audit.Module,
	auth.Module,
	session.Module,
	invitation.Module,
	investor.Module,
	backend.Module,
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogging(log))
	r.Use(MetricsMiddleware(metrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	authsvc       authdomain.Service
	userRepo      authdomain.Repository
	sessions      *session.Manager
	genID         *snowflake.Node
	authzSvc      authorization.Service
	auditSvc      auditdomain.Service
	inviteSvc     invitationdomain.Service
	investorSvc   investordomain.Service
	backendClient *backend.Client

	loginLimiter  *rateLimiter
	resendLimiter *rateLimiter
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	Authsvc       authdomain.Service
	UserRepo      authdomain.Repository
	Sessions      *session.Manager
	GenID         *snowflake.Node
	AuthzSvc      authorization.Service
	AuditSvc      auditdomain.Service `optional:"true"`
	InviteSvc     invitationdomain.Service
	InvestorSvc   investordomain.Service
	BackendClient *backend.Client
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		authsvc:       p.Authsvc,
		userRepo:      p.UserRepo,
		sessions:      p.Sessions,
		genID:         p.GenID,
		authzSvc:      p.AuthzSvc,
		auditSvc:      p.AuditSvc,
		inviteSvc:     p.InviteSvc,
		investorSvc:   p.InvestorSvc,
		backendClient: p.BackendClient,
		loginLimiter:  newRateLimiter(10, time.Minute),
		resendLimiter: newRateLimiter(5, 10*time.Minute),
	}

	svc.registerEdgeRoutes()
	svc.registerAuthRoutes()
	svc.registerNavigationRoutes()
	svc.registerInvestorRoutes()
	svc.registerAdminRoutes()
	svc.registerProxyRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerEdgeRoutes covers the invite and verification link interceptors.
func (s *Server) registerEdgeRoutes() {
	s.engine.GET("/invite/:token", s.InviteTokenGate)
	s.engine.GET("/verify-email/:token", s.VerifyEmailGate)
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/login", s.Login)
	auth.POST("/signup", s.Signup)
	auth.POST("/logout", s.Logout)
	auth.POST("/forgot", s.Forgot)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerNavigationRoutes() {
	nav := s.engine.Group("/navigation", s.AuthRequired())

	nav.GET("", s.Navigation)
	nav.GET("/decision", s.NavigationDecision)
}

func (s *Server) registerInvestorRoutes() {
	api := s.engine.Group("/api/investor")

	api.Use(s.AuthRequired())
	api.Use(s.RequireRole(authdomain.RoleInvestor))

	// KYC and NDA are the onboarding entry points; everything else is gated.
	api.POST("/kyc", s.Authorize(authorization.ObjectKYC, authorization.ActionSubmit), s.SubmitKYC)
	api.POST("/nda", s.Authorize(authorization.ObjectNDA, authorization.ActionSign), s.SignNDA)
	api.GET("/status", s.InvestorStatus)

	api.POST("/investment", s.OnboardingGate(onboarding.InvestorHome), s.AdvanceInvestment)
	api.GET("/documents", s.OnboardingGate("/investor/documents"), s.Authorize(authorization.ObjectDocument, authorization.ActionView), s.TOSDocuments)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/api/admin")

	admin.Use(s.AuthRequired())
	admin.Use(s.RequireRole(authdomain.RoleAdmin))

	admin.GET("/investors", s.Authorize(authorization.ObjectInvestor, authorization.ActionView), s.ListInvestors)
	admin.GET("/investors/:id", s.Authorize(authorization.ObjectInvestor, authorization.ActionView), s.GetInvestor)
	admin.POST("/investors/:id/kyc-review", s.Authorize(authorization.ObjectKYC, authorization.ActionReview), s.ReviewKYC)

	admin.GET("/invites", s.Authorize(authorization.ObjectInvite, authorization.ActionView), s.ListInvites)
	admin.POST("/invites", s.Authorize(authorization.ObjectInvite, authorization.ActionCreate), s.CreateInvites)
	admin.DELETE("/invites/:id", s.Authorize(authorization.ObjectInvite, authorization.ActionRevoke), s.RevokeInvite)

	admin.GET("/audit-logs", s.Authorize(authorization.ObjectAuditLog, authorization.ActionView), s.ListAuditLogs)
}

func (s *Server) registerProxyRoutes() {
	api := s.engine.Group("/api")

	api.POST("/logout", s.Logout)
	api.POST("/resend-verification", s.ResendVerification)
	api.GET("/tos/documents", s.TOSDocuments)

	api.POST("/investors/:id/generate-agreement",
		s.AuthRequired(),
		s.RequireRole(authdomain.RoleAdmin),
		s.Authorize(authorization.ObjectAgreement, authorization.ActionCreate),
		s.GenerateAgreement)
	api.POST("/tos/upload",
		s.AuthRequired(),
		s.RequireRole(authdomain.RoleAdmin),
		s.Authorize(authorization.ObjectDocument, authorization.ActionUpload),
		s.UploadTOS)
}
