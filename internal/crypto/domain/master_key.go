package domain

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// KMSKeeper is the subset of *secrets.Keeper used to unseal the master key.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// MasterKey wraps every organization key. It is loaded once at startup and
// passed explicitly to the components that need it.
type MasterKey struct {
	Key []byte
}

// NewMasterKey copies raw into a MasterKey after checking its length.
func NewMasterKey(raw []byte) (*MasterKey, error) {
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrMasterKeyUnavailable, KeySize, len(raw))
	}
	key := make([]byte, KeySize)
	copy(key, raw)
	return &MasterKey{Key: key}, nil
}

// Close zeroes the key material.
func (m *MasterKey) Close() {
	if m == nil {
		return
	}
	Zero(m.Key)
	m.Key = nil
}

// LoadMasterKey decodes MASTER_ENCRYPTION_KEY. Without a keeper the value is 64 hex
// characters; with a keeper it is base64 KMS ciphertext of the 32 raw bytes.
func LoadMasterKey(ctx context.Context, value string, keeper KMSKeeper) (*MasterKey, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: MASTER_ENCRYPTION_KEY is not set", ErrMasterKeyUnavailable)
	}

	if keeper == nil {
		raw, err := hex.DecodeString(value)
		if err != nil {
			return nil, fmt.Errorf("%w: not valid hex", ErrMasterKeyUnavailable)
		}
		defer Zero(raw)
		return NewMasterKey(raw)
	}

	sealed, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: not valid base64", ErrMasterKeyUnavailable)
	}

	raw, err := keeper.Decrypt(ctx, sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: kms decrypt: %v", ErrMasterKeyUnavailable, err)
	}
	defer Zero(raw)

	return NewMasterKey(raw)
}
