package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/whistleblower/internal/auth/domain"
	authService "github.com/allisson/whistleblower/internal/auth/service"
	"github.com/allisson/whistleblower/internal/httputil"
)

// AdminSessionMiddleware requires a valid administrator session cookie.
//
// Error handling:
//   - Missing cookie → 401 Unauthorized
//   - Bad signature, malformed or expired token → 401 Unauthorized
func AdminSessionMiddleware(sessions authService.AdminSessionService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(authDomain.AdminCookieName)
		if err != nil || token == "" {
			logger.Debug("admin authentication failed: missing session cookie")
			httputil.HandleErrorGin(c, authDomain.ErrInvalidSession, logger)
			c.Abort()
			return
		}

		if !sessions.Verify(token) {
			logger.Debug("admin authentication failed: invalid session")
			httputil.HandleErrorGin(c, authDomain.ErrInvalidSession, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// ComplianceSessionMiddleware requires a valid compliance user session cookie and stores
// the principal in the request context. Handlers read the organization id from the
// principal only.
//
// Usage:
//
//	dashboard := router.Group("/v1/dashboard", ComplianceSessionMiddleware(sessions, logger))
//	dashboard.GET("/reports", func(c *gin.Context) {
//	    principal, _ := GetPrincipal(c.Request.Context())
//	    // principal.OrganizationID scopes every query
//	})
func ComplianceSessionMiddleware(sessions authService.ComplianceSessionService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(authDomain.ComplianceCookieName)
		if err != nil || token == "" {
			logger.Debug("compliance authentication failed: missing session cookie")
			httputil.HandleErrorGin(c, authDomain.ErrInvalidSession, logger)
			c.Abort()
			return
		}

		principal, err := sessions.Verify(token)
		if err != nil {
			logger.Debug("compliance authentication failed", slog.Any("error", err))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("compliance authentication successful",
			slog.String("user_id", principal.UserID.String()),
			slog.String("organization_id", principal.OrganizationID.String()))

		c.Next()
	}
}
