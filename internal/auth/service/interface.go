// Package service provides credential hashing and session token services.
package service

import (
	authDomain "github.com/allisson/whistleblower/internal/auth/domain"
)

// PasswordHasher hashes compliance user passwords.
type PasswordHasher interface {
	// Hash returns "salt_hex:key_hex".
	Hash(password string) (string, error)

	// Verify reports whether password matches stored. Malformed input yields false.
	Verify(password, stored string) bool
}

// AdminCredentialVerifier checks the platform administrator login.
type AdminCredentialVerifier interface {
	// HashPassword returns a PHC string suitable for ADMIN_PASSWORD_HASH.
	HashPassword(password string) (string, error)

	// Verify checks email and password against the configured credentials.
	Verify(email, password string) bool
}

// AdminSessionService issues and verifies stateless administrator session tokens.
type AdminSessionService interface {
	Issue() (*authDomain.Session, error)

	Verify(token string) bool
}

// ComplianceSessionService issues and verifies compliance user session tokens.
type ComplianceSessionService interface {
	Issue(principal *authDomain.Principal) (*authDomain.Session, error)

	Verify(token string) (*authDomain.Principal, error)
}
