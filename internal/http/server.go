// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/whistleblower/internal/auth/http"
	authService "github.com/allisson/whistleblower/internal/auth/service"
	"github.com/allisson/whistleblower/internal/config"
	"github.com/allisson/whistleblower/internal/metrics"
	orgHTTP "github.com/allisson/whistleblower/internal/organization/http"
	reportHTTP "github.com/allisson/whistleblower/internal/report/http"
)

const readinessTimeout = 2 * time.Second

// Server represents the HTTP server
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger

	// stopLimiters ends the cleanup goroutines of the rate limiters.
	stopLimiters context.CancelFunc
}

// Handlers groups the route handlers of every module.
type Handlers struct {
	Organization   *orgHTTP.OrganizationHandler
	Melder         *reportHTTP.MelderHandler
	Dashboard      *reportHTTP.DashboardHandler
	AdminAuth      *authHTTP.AdminAuthHandler
	ComplianceAuth *authHTTP.ComplianceAuthHandler
}

// Sessions groups the verifiers used by the authentication middlewares.
type Sessions struct {
	Admin      authService.AdminSessionService
	Compliance authService.ComplianceSessionService
}

// NewServer creates a new HTTP server
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter registers middlewares and routes. metricsProvider may be nil.
func (s *Server) SetupRouter(
	cfg *config.Config,
	handlers Handlers,
	sessions Sessions,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	limiterCtx, cancel := context.WithCancel(context.Background())
	s.stopLimiters = cancel
	writeLimit := s.rateLimit(limiterCtx, cfg)
	loginLimit := s.rateLimit(limiterCtx, cfg)

	v1 := router.Group("/v1")

	// Melder surface: no authentication, never tied to an identity.
	channels := v1.Group("/channels/:slug")
	channels.GET("", handlers.Organization.ChannelHandler)
	channels.POST("/reports", writeLimit, handlers.Melder.SubmitHandler)

	reports := v1.Group("/reports/token/:token")
	reports.GET("", handlers.Melder.GetByTokenHandler)
	reports.POST("/messages", writeLimit, handlers.Melder.AddMessageHandler)

	v1.POST("/onboarding", writeLimit, handlers.Organization.CreateHandler)

	auth := v1.Group("/auth")
	auth.POST("/login", loginLimit, handlers.ComplianceAuth.LoginHandler)
	auth.POST("/logout", handlers.ComplianceAuth.LogoutHandler)

	dashboard := v1.Group("/dashboard")
	dashboard.Use(authHTTP.ComplianceSessionMiddleware(sessions.Compliance, s.logger))
	dashboard.GET("/reports", handlers.Dashboard.ListHandler)
	dashboard.GET("/reports/:id", handlers.Dashboard.GetHandler)
	dashboard.PATCH("/reports/:id", handlers.Dashboard.UpdateStatusHandler)
	dashboard.POST("/reports/:id/messages", handlers.Dashboard.AddMessageHandler)

	admin := v1.Group("/admin")
	admin.POST("/auth/login", loginLimit, handlers.AdminAuth.LoginHandler)
	admin.POST("/auth/logout", handlers.AdminAuth.LogoutHandler)

	organizations := admin.Group("/organizations")
	organizations.Use(authHTTP.AdminSessionMiddleware(sessions.Admin, s.logger))
	organizations.GET("", handlers.Organization.ListHandler)
	organizations.POST("", handlers.Organization.CreateHandler)
	organizations.PATCH("/:id/subscription", handlers.Organization.UpdateSubscriptionHandler)

	s.router = router
}

// rateLimit returns the per-IP limiter or a pass-through when rate limiting is disabled.
func (s *Server) rateLimit(ctx context.Context, cfg *config.Config) gin.HandlerFunc {
	if !cfg.RateLimitEnabled {
		return func(c *gin.Context) { c.Next() }
	}
	return authHTTP.IPRateLimitMiddleware(ctx, cfg.RateLimitRequestsPerMin, cfg.RateLimitBurst, s.logger)
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if s.stopLimiters != nil {
		s.stopLimiters()
	}
	return s.server.Shutdown(ctx)
}

// healthHandler reports that the process is up.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if !s.databaseReady(c.Request.Context()) {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

func (s *Server) databaseReady(ctx context.Context) bool {
	if s.db == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("database ping failed", slog.Any("error", err))
		return false
	}
	return true
}
