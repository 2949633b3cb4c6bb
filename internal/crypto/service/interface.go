// Package service provides the cryptographic primitives of the key hierarchy: the
// AES-256-GCM field cipher, organization key wrapping, and KMS access.
package service

import (
	cryptoDomain "github.com/allisson/whistleblower/internal/crypto/domain"
)

// FieldCipher encrypts individual values into the persisted EncryptedField format.
type FieldCipher interface {
	// Encrypt seals plaintext under key with a fresh random IV.
	Encrypt(plaintext string, key []byte) (*cryptoDomain.EncryptedField, error)

	// Decrypt opens a field, failing closed when the tag does not verify.
	Decrypt(field *cryptoDomain.EncryptedField, key []byte) (string, error)

	// EncryptToString encrypts and serializes the field as a JSON object string.
	EncryptToString(plaintext string, key []byte) (string, error)

	// DecryptFromString parses a JSON object string and decrypts it.
	DecryptFromString(stored string, key []byte) (string, error)
}

// KeyManager creates and wraps organization keys.
type KeyManager interface {
	// GenerateOrganizationKey returns 32 random bytes.
	GenerateOrganizationKey() ([]byte, error)

	// Wrap encrypts an organization key under the master key.
	Wrap(orgKey []byte, masterKey *cryptoDomain.MasterKey) (string, error)

	// Unwrap reverses Wrap.
	Unwrap(wrapped string, masterKey *cryptoDomain.MasterKey) ([]byte, error)

	// HashKey returns the verification hash stored next to the wrapped key.
	HashKey(orgKey []byte) string
}
