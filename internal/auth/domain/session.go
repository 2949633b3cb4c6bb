// Package domain defines the authentication types shared by the platform admin and
// compliance user session flows.
package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// AdminCookieName carries the platform administrator session token.
	AdminCookieName = "admin-session"

	// ComplianceCookieName carries the compliance user session token.
	ComplianceCookieName = "compliance-session"

	// DefaultSessionTTL is the lifetime of both session kinds.
	DefaultSessionTTL = 8 * time.Hour

	// FailedLoginDelay is waited before answering a failed admin login.
	FailedLoginDelay = 500 * time.Millisecond
)

// Principal is an authenticated compliance user as carried by a session token.
type Principal struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	Role           string
}

// Session is an issued session token and its expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}
