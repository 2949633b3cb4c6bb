// Package usecase implements organization key provisioning and resolution on top
// of the key hierarchy primitives.
package usecase

import (
	"context"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/whistleblower/internal/crypto/domain"
)

// OrganizationKeyRepository reads persisted organization key material.
type OrganizationKeyRepository interface {
	// GetEncryptionKey returns the wrapped key and hash of an organization.
	// Returns apperrors.ErrNotFound when the organization does not exist.
	GetEncryptionKey(ctx context.Context, organizationID uuid.UUID) (*cryptoDomain.StoredOrganizationKey, error)
}

// OrganizationKeyUseCase manages per-organization encryption keys.
type OrganizationKeyUseCase interface {
	// Provision generates, wraps and hashes a new organization key. The caller owns
	// the plaintext in the result and must Close it.
	Provision(ctx context.Context) (*cryptoDomain.ProvisionedKey, error)

	// Resolve returns the plaintext key of an organization. The caller zeroes it
	// with cryptoDomain.Zero when the request ends.
	Resolve(ctx context.Context, organizationID uuid.UUID) ([]byte, error)

	// Verify reports whether keyHex is the organization's key.
	Verify(ctx context.Context, organizationID uuid.UUID, keyHex string) (bool, error)
}
