package domain

import "github.com/google/uuid"

// StoredOrganizationKey is the persisted key material of one organization.
type StoredOrganizationKey struct {
	OrganizationID uuid.UUID
	// Wrapped is the organization key encrypted under the master key, in the
	// EncryptedField JSON form.
	Wrapped string
	// Hash is hex(sha256(hex(key))), used to verify an unwrap or a recovery key.
	Hash string
}

// ProvisionedKey is a freshly generated organization key ready to be stored.
type ProvisionedKey struct {
	Key     []byte
	Wrapped string
	Hash    string
}

// Close zeroes the plaintext key.
func (p *ProvisionedKey) Close() {
	if p == nil {
		return
	}
	Zero(p.Key)
}
