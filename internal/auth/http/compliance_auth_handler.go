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
	userUseCase "github.com/allisson/whistleblower/internal/user/usecase"
	customValidation "github.com/allisson/whistleblower/internal/validation"
)

// ComplianceAuthHandler handles compliance user login and logout.
type ComplianceAuthHandler struct {
	users        userUseCase.UseCase
	sessions     authService.ComplianceSessionService
	secureCookie bool
	logger       *slog.Logger
}

// NewComplianceAuthHandler creates a new compliance auth handler.
func NewComplianceAuthHandler(
	users userUseCase.UseCase,
	sessions authService.ComplianceSessionService,
	secureCookie bool,
	logger *slog.Logger,
) *ComplianceAuthHandler {
	return &ComplianceAuthHandler{
		users:        users,
		sessions:     sessions,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// LoginHandler authenticates a compliance user and sets the session cookie.
// POST /v1/auth/login - Returns 200 with the user and session expiry.
func (h *ComplianceAuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	session, err := h.sessions.Issue(&authDomain.Principal{
		UserID:         user.ID,
		OrganizationID: user.OrganizationID,
		Role:           string(user.Role),
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SetSessionCookie(
		c,
		authDomain.ComplianceCookieName,
		session.Token,
		time.Until(session.ExpiresAt),
		h.secureCookie,
	)

	c.JSON(http.StatusOK, dto.MapComplianceLoginResponse(user, session.ExpiresAt))
}

// LogoutHandler clears the compliance session cookie.
// POST /v1/auth/logout - Returns 204 No Content.
func (h *ComplianceAuthHandler) LogoutHandler(c *gin.Context) {
	httputil.ClearSessionCookie(c, authDomain.ComplianceCookieName, h.secureCookie)
	c.Status(http.StatusNoContent)
}
