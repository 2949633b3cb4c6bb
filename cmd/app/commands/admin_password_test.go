package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authService "github.com/allisson/whistleblower/internal/auth/service"
	authMocks "github.com/allisson/whistleblower/internal/auth/service/mocks"
)

func TestRunHashAdminPassword(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		credentials := &authMocks.MockAdminCredentialVerifier{}
		credentials.On("HashPassword", "s3cret-pass").Return("$argon2id$v=19$hash", nil)

		var out bytes.Buffer
		err := RunHashAdminPassword(credentials, IOTuple{
			Reader: strings.NewReader("s3cret-pass\n"),
			Writer: &out,
		})

		require.NoError(t, err)
		assert.Equal(t, "ADMIN_PASSWORD_HASH='$argon2id$v=19$hash'\n", out.String())
		credentials.AssertExpectations(t)
	})

	t.Run("Success_RealHashVerifies", func(t *testing.T) {
		var out bytes.Buffer
		err := RunHashAdminPassword(
			authService.NewAdminCredentialVerifier("", ""),
			IOTuple{Reader: strings.NewReader("s3cret-pass"), Writer: &out},
		)
		require.NoError(t, err)

		hash := strings.TrimSuffix(strings.TrimPrefix(out.String(), "ADMIN_PASSWORD_HASH='"), "'\n")
		verifier := authService.NewAdminCredentialVerifier("admin@example.com", hash)
		assert.True(t, verifier.Verify("admin@example.com", "s3cret-pass"))
	})

	t.Run("Error_EmptyPassword", func(t *testing.T) {
		err := RunHashAdminPassword(&authMocks.MockAdminCredentialVerifier{}, IOTuple{
			Reader: strings.NewReader("\n"),
			Writer: &bytes.Buffer{},
		})

		assert.EqualError(t, err, "password must not be empty")
	})

	t.Run("Error_NoInput", func(t *testing.T) {
		err := RunHashAdminPassword(&authMocks.MockAdminCredentialVerifier{}, IOTuple{
			Reader: strings.NewReader(""),
			Writer: &bytes.Buffer{},
		})

		assert.ErrorContains(t, err, "failed to read input")
	})

	t.Run("Error_Hash", func(t *testing.T) {
		credentials := &authMocks.MockAdminCredentialVerifier{}
		credentials.On("HashPassword", "pw").Return("", errors.New("hash failed"))

		err := RunHashAdminPassword(credentials, IOTuple{
			Reader: strings.NewReader("pw\n"),
			Writer: &bytes.Buffer{},
		})

		assert.EqualError(t, err, "hash failed")
	})
}
