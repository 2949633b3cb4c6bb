// Package domain defines the compliance user entity. Compliance users belong to exactly one
// organization and read and answer the reports of that organization.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/whistleblower/internal/errors"
)

// Role is the permission level of a compliance user inside its organization.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleOfficer Role = "officer"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleOfficer
}

// User is a compliance user. PasswordHash holds the scrypt "salt:key" string.
type User struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Email          string
	PasswordHash   string
	Name           *string
	Role           Role
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NormalizeEmail lowercases and trims an e-mail address. Addresses are stored and looked up
// in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrEmailTaken indicates the e-mail address already belongs to a compliance user.
	ErrEmailTaken = errors.Wrap(errors.ErrConflict, "email already registered")

	// ErrOrganizationMissing indicates the user references an organization that does not exist.
	ErrOrganizationMissing = errors.Wrap(errors.ErrNotFound, "organization not found")
)
