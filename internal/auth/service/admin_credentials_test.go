package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminCredentialVerifier(t *testing.T) {
	hash, err := NewAdminCredentialVerifier("", "").HashPassword("platform-admin-pass")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	verifier := NewAdminCredentialVerifier("Admin@Example.com ", hash)

	t.Run("Success_CaseInsensitiveEmail", func(t *testing.T) {
		assert.True(t, verifier.Verify("admin@example.com", "platform-admin-pass"))
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		assert.False(t, verifier.Verify("admin@example.com", "nope"))
	})

	t.Run("Error_WrongEmail", func(t *testing.T) {
		assert.False(t, verifier.Verify("other@example.com", "platform-admin-pass"))
	})

	t.Run("Error_NotConfigured", func(t *testing.T) {
		assert.False(t, NewAdminCredentialVerifier("", "").Verify("", ""))
	})

	t.Run("Error_MalformedHash", func(t *testing.T) {
		assert.False(t, NewAdminCredentialVerifier("admin@example.com", "not-a-phc").Verify("admin@example.com", "x"))
	})
}
