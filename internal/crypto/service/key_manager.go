package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	cryptoDomain "github.com/allisson/whistleblower/internal/crypto/domain"
)

// keyManager implements KeyManager on top of a FieldCipher.
type keyManager struct {
	cipher FieldCipher
}

// NewKeyManager creates a KeyManager that wraps keys with the given cipher.
func NewKeyManager(cipher FieldCipher) KeyManager {
	return &keyManager{cipher: cipher}
}

// GenerateOrganizationKey returns 32 bytes from the OS RNG.
func (k *keyManager) GenerateOrganizationKey() ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate organization key: %w", err)
	}
	return key, nil
}

// Wrap encrypts the lowercase hex form of orgKey under the master key. Existing
// rows store the hex string as the wrapped plaintext, so the encoding is fixed.
func (k *keyManager) Wrap(orgKey []byte, masterKey *cryptoDomain.MasterKey) (string, error) {
	if masterKey == nil {
		return "", cryptoDomain.ErrMasterKeyUnavailable
	}
	if len(orgKey) != cryptoDomain.KeySize {
		return "", fmt.Errorf("%w: organization key must be %d bytes", cryptoDomain.ErrInvalidKey, cryptoDomain.KeySize)
	}

	return k.cipher.EncryptToString(hex.EncodeToString(orgKey), masterKey.Key)
}

// Unwrap decrypts a wrapped organization key.
func (k *keyManager) Unwrap(wrapped string, masterKey *cryptoDomain.MasterKey) ([]byte, error) {
	if masterKey == nil {
		return nil, cryptoDomain.ErrMasterKeyUnavailable
	}

	keyHex, err := k.cipher.DecryptFromString(wrapped, masterKey.Key)
	if err != nil {
		return nil, err
	}

	orgKey, err := hex.DecodeString(keyHex)
	if err != nil || len(orgKey) != cryptoDomain.KeySize {
		return nil, fmt.Errorf("%w: unwrapped value is not a 32-byte hex key", cryptoDomain.ErrCorruptCiphertext)
	}

	return orgKey, nil
}

// HashKey returns hex(sha256(hex(orgKey))).
func (k *keyManager) HashKey(orgKey []byte) string {
	sum := sha256.Sum256([]byte(hex.EncodeToString(orgKey)))
	return hex.EncodeToString(sum[:])
}

// ParseKeyHex decodes a 64-character hex key.
func ParseKeyHex(keyHex string) ([]byte, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil || len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf("%w: expected %d hex characters", cryptoDomain.ErrInvalidKey, cryptoDomain.KeySize*2)
	}
	return key, nil
}
