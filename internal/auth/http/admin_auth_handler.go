package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/whistleblower/internal/auth/domain"
	"github.com/allisson/whistleblower/internal/auth/http/dto"
	authService "github.com/allisson/whistleblower/internal/auth/service"
	"github.com/allisson/whistleblower/internal/httputil"
	customValidation "github.com/allisson/whistleblower/internal/validation"
)

// AdminAuthHandler handles the platform administrator login and logout.
type AdminAuthHandler struct {
	credentials  authService.AdminCredentialVerifier
	sessions     authService.AdminSessionService
	secureCookie bool
	failureDelay time.Duration
	logger       *slog.Logger
}

// NewAdminAuthHandler creates a new administrator auth handler.
func NewAdminAuthHandler(
	credentials authService.AdminCredentialVerifier,
	sessions authService.AdminSessionService,
	secureCookie bool,
	logger *slog.Logger,
) *AdminAuthHandler {
	return &AdminAuthHandler{
		credentials:  credentials,
		sessions:     sessions,
		secureCookie: secureCookie,
		failureDelay: authDomain.FailedLoginDelay,
		logger:       logger,
	}
}

// LoginHandler checks the administrator credentials and sets the session cookie.
// POST /v1/admin/auth/login - Returns 200 with the session expiry, or 401 after a delay.
func (h *AdminAuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if !h.credentials.Verify(req.Email, req.Password) {
		h.logger.Warn("admin login failed", slog.String("client_ip", c.ClientIP()))
		h.delay(c)
		httputil.HandleErrorGin(c, authDomain.ErrInvalidCredentials, nil)
		return
	}

	session, err := h.sessions.Issue()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SetSessionCookie(c, authDomain.AdminCookieName, session.Token, time.Until(session.ExpiresAt), h.secureCookie)
	h.logger.Info("admin logged in", slog.String("client_ip", c.ClientIP()))

	c.JSON(http.StatusOK, dto.AdminLoginResponse{ExpiresAt: session.ExpiresAt})
}

// LogoutHandler clears the administrator session cookie.
// POST /v1/admin/auth/logout - Returns 204 No Content.
func (h *AdminAuthHandler) LogoutHandler(c *gin.Context) {
	httputil.ClearSessionCookie(c, authDomain.AdminCookieName, h.secureCookie)
	c.Status(http.StatusNoContent)
}

// delay slows down failed logins unless the client goes away first.
func (h *AdminAuthHandler) delay(c *gin.Context) {
	if h.failureDelay <= 0 {
		return
	}

	timer := time.NewTimer(h.failureDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-c.Request.Context().Done():
	}
}
