package service

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/whistleblower/internal/crypto/domain"
)

func newTestMasterKey(t *testing.T, b byte) *cryptoDomain.MasterKey {
	t.Helper()
	mk, err := cryptoDomain.NewMasterKey(testKey(b))
	require.NoError(t, err)
	return mk
}

func TestKeyManager_GenerateOrganizationKey(t *testing.T) {
	km := NewKeyManager(NewAESGCMFieldCipher())

	a, err := km.GenerateOrganizationKey()
	require.NoError(t, err)
	b, err := km.GenerateOrganizationKey()
	require.NoError(t, err)

	assert.Len(t, a, cryptoDomain.KeySize)
	assert.NotEqual(t, a, b)
}

func TestKeyManager_WrapUnwrap(t *testing.T) {
	cipher := NewAESGCMFieldCipher()
	km := NewKeyManager(cipher)
	masterKey := newTestMasterKey(t, 0x01)

	orgKey, err := km.GenerateOrganizationKey()
	require.NoError(t, err)

	t.Run("Success_RoundTrip", func(t *testing.T) {
		wrapped, err := km.Wrap(orgKey, masterKey)
		require.NoError(t, err)

		got, err := km.Unwrap(wrapped, masterKey)
		require.NoError(t, err)
		assert.Equal(t, orgKey, got)
	})

	t.Run("Success_WrappedPlaintextIsHex", func(t *testing.T) {
		wrapped, err := km.Wrap(orgKey, masterKey)
		require.NoError(t, err)

		inner, err := cipher.DecryptFromString(wrapped, masterKey.Key)
		require.NoError(t, err)
		assert.Equal(t, hex.EncodeToString(orgKey), inner)
	})

	t.Run("Error_WrongMasterKey", func(t *testing.T) {
		wrapped, err := km.Wrap(orgKey, masterKey)
		require.NoError(t, err)

		_, err = km.Unwrap(wrapped, newTestMasterKey(t, 0x02))
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_CorruptWrapped", func(t *testing.T) {
		_, err := km.Unwrap("{}", masterKey)
		assert.ErrorIs(t, err, cryptoDomain.ErrCorruptCiphertext)
	})

	t.Run("Error_WrappedValueNotAKey", func(t *testing.T) {
		wrapped, err := cipher.EncryptToString("not-a-key", masterKey.Key)
		require.NoError(t, err)

		_, err = km.Unwrap(wrapped, masterKey)
		assert.ErrorIs(t, err, cryptoDomain.ErrCorruptCiphertext)
	})

	t.Run("Error_NilMasterKey", func(t *testing.T) {
		_, err := km.Wrap(orgKey, nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrMasterKeyUnavailable)
		_, err = km.Unwrap("{}", nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrMasterKeyUnavailable)
	})

	t.Run("Error_ShortOrganizationKey", func(t *testing.T) {
		_, err := km.Wrap(orgKey[:16], masterKey)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKey)
	})
}

func TestKeyManager_HashKey(t *testing.T) {
	km := NewKeyManager(NewAESGCMFieldCipher())
	orgKey := testKey(0xab)

	sum := sha256.Sum256([]byte(hex.EncodeToString(orgKey)))
	assert.Equal(t, hex.EncodeToString(sum[:]), km.HashKey(orgKey))
	assert.NotEqual(t, km.HashKey(orgKey), km.HashKey(testKey(0xac)))
}

func TestParseKeyHex(t *testing.T) {
	key, err := ParseKeyHex(hex.EncodeToString(testKey(0x09)))
	require.NoError(t, err)
	assert.Equal(t, testKey(0x09), key)

	for _, bad := range []string{"", "abc", hex.EncodeToString(testKey(1)[:31]), "zz" + hex.EncodeToString(testKey(1))[2:]} {
		_, err := ParseKeyHex(bad)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKey)
	}
}
