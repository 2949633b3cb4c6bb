package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	cryptoDomain "github.com/allisson/whistleblower/internal/crypto/domain"
)

// AESGCMFieldCipher implements FieldCipher with AES-256-GCM, a 12-byte random IV
// and a 16-byte tag. It holds no state and is safe for concurrent use.
type AESGCMFieldCipher struct{}

// NewAESGCMFieldCipher creates a new AESGCMFieldCipher.
func NewAESGCMFieldCipher() *AESGCMFieldCipher {
	return &AESGCMFieldCipher{}
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", cryptoDomain.ErrInvalidKey, cryptoDomain.KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidKey, err)
	}

	return cipher.NewGCM(block)
}

// Encrypt seals plaintext. Go appends the tag to the sealed output; it is split off
// into AuthTag so the stored triple matches the persisted format.
func (c *AESGCMFieldCipher) Encrypt(plaintext string, key []byte) (*cryptoDomain.EncryptedField, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	iv := make([]byte, cryptoDomain.IVSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("failed to generate iv: %w", err)
	}

	sealed := aead.Seal(nil, iv, []byte(plaintext), nil)
	split := len(sealed) - cryptoDomain.TagSize

	return &cryptoDomain.EncryptedField{
		IV:         hex.EncodeToString(iv),
		AuthTag:    hex.EncodeToString(sealed[split:]),
		Ciphertext: hex.EncodeToString(sealed[:split]),
	}, nil
}

// Decrypt opens a field. No partial plaintext is ever returned.
func (c *AESGCMFieldCipher) Decrypt(field *cryptoDomain.EncryptedField, key []byte) (string, error) {
	aead, err := newGCM(key)
	if err != nil {
		return "", err
	}

	if field == nil {
		return "", fmt.Errorf("%w: empty field", cryptoDomain.ErrCorruptCiphertext)
	}

	iv, err := decodeHexPart(field.IV, "iv", cryptoDomain.IVSize)
	if err != nil {
		return "", err
	}
	tag, err := decodeHexPart(field.AuthTag, "authTag", cryptoDomain.TagSize)
	if err != nil {
		return "", err
	}
	ciphertext, err := decodeHexPart(field.Ciphertext, "ciphertext", -1)
	if err != nil {
		return "", err
	}

	plaintext, err := aead.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// EncryptToString encrypts plaintext and serializes the field as JSON.
func (c *AESGCMFieldCipher) EncryptToString(plaintext string, key []byte) (string, error) {
	field, err := c.Encrypt(plaintext, key)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(field)
	if err != nil {
		return "", fmt.Errorf("failed to encode encrypted field: %w", err)
	}

	return string(data), nil
}

// DecryptFromString parses a stored JSON field and decrypts it.
func (c *AESGCMFieldCipher) DecryptFromString(stored string, key []byte) (string, error) {
	if len(key) != cryptoDomain.KeySize {
		return "", fmt.Errorf("%w: must be %d bytes, got %d", cryptoDomain.ErrInvalidKey, cryptoDomain.KeySize, len(key))
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stored), &raw); err != nil {
		return "", fmt.Errorf("%w: not a json object", cryptoDomain.ErrCorruptCiphertext)
	}

	field := &cryptoDomain.EncryptedField{}
	members := map[string]*string{
		"iv":         &field.IV,
		"authTag":    &field.AuthTag,
		"ciphertext": &field.Ciphertext,
	}
	for name, dst := range members {
		value, ok := raw[name]
		if !ok {
			return "", fmt.Errorf("%w: missing %s", cryptoDomain.ErrCorruptCiphertext, name)
		}
		if err := json.Unmarshal(value, dst); err != nil {
			return "", fmt.Errorf("%w: %s is not a string", cryptoDomain.ErrCorruptCiphertext, name)
		}
	}

	return c.Decrypt(field, key)
}

// decodeHexPart decodes one member of the triple. size < 0 disables the length check.
func decodeHexPart(value, name string, size int) ([]byte, error) {
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not hex", cryptoDomain.ErrCorruptCiphertext, name)
	}
	if size >= 0 && len(b) != size {
		return nil, fmt.Errorf("%w: %s must be %d bytes, got %d", cryptoDomain.ErrCorruptCiphertext, name, size, len(b))
	}

	return b, nil
}
