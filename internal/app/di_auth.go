package app

import (
	"time"

	authHTTP "github.com/allisson/whistleblower/internal/auth/http"
	authService "github.com/allisson/whistleblower/internal/auth/service"
)

type authComponents struct {
	adminCredentials      lazy[authService.AdminCredentialVerifier]
	adminSessions         lazy[authService.AdminSessionService]
	complianceSessions    lazy[authService.ComplianceSessionService]
	adminAuthHandler      lazy[*authHTTP.AdminAuthHandler]
	complianceAuthHandler lazy[*authHTTP.ComplianceAuthHandler]
}

// AdminCredentialVerifier returns the verifier for ADMIN_EMAIL and ADMIN_PASSWORD_HASH.
func (c *Container) AdminCredentialVerifier() authService.AdminCredentialVerifier {
	credentials, _ := c.adminCredentials.get(func() (authService.AdminCredentialVerifier, error) {
		return authService.NewAdminCredentialVerifier(c.config.AdminEmail, c.config.AdminPasswordHash), nil
	})
	return credentials
}

// AdminSessionService returns the HMAC session service for platform admins.
// Fails when ADMIN_SECRET_KEY is not set.
func (c *Container) AdminSessionService() (authService.AdminSessionService, error) {
	return c.adminSessions.get(func() (authService.AdminSessionService, error) {
		if err := c.config.RequireAdminSecret(); err != nil {
			return nil, err
		}
		return authService.NewAdminSessionService(c.config.AdminSecretKey, c.config.AdminSessionTTL, time.Now), nil
	})
}

// ComplianceSessionService returns the signed session service for compliance users.
// Fails when SESSION_SECRET is not set.
func (c *Container) ComplianceSessionService() (authService.ComplianceSessionService, error) {
	return c.complianceSessions.get(func() (authService.ComplianceSessionService, error) {
		if err := c.config.RequireSessionSecret(); err != nil {
			return nil, err
		}
		return authService.NewComplianceSessionService(c.config.SessionSecret, c.config.SessionTTL, time.Now), nil
	})
}

// AdminAuthHandler returns the platform admin login handler.
func (c *Container) AdminAuthHandler() (*authHTTP.AdminAuthHandler, error) {
	return c.adminAuthHandler.get(func() (*authHTTP.AdminAuthHandler, error) {
		sessions, err := c.AdminSessionService()
		if err != nil {
			return nil, err
		}
		return authHTTP.NewAdminAuthHandler(c.AdminCredentialVerifier(), sessions, c.config.CookieSecure, c.Logger()), nil
	})
}

// ComplianceAuthHandler returns the compliance user login handler.
func (c *Container) ComplianceAuthHandler() (*authHTTP.ComplianceAuthHandler, error) {
	return c.complianceAuthHandler.get(func() (*authHTTP.ComplianceAuthHandler, error) {
		users, err := c.UserUseCase()
		if err != nil {
			return nil, err
		}
		sessions, err := c.ComplianceSessionService()
		if err != nil {
			return nil, err
		}
		return authHTTP.NewComplianceAuthHandler(users, sessions, c.config.CookieSecure, c.Logger()), nil
	})
}
