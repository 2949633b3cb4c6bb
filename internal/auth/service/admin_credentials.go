package service

import (
	"crypto/subtle"
	"strings"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/whistleblower/internal/errors"
)

// adminCredentialVerifier verifies the single platform administrator configured
// through ADMIN_EMAIL and ADMIN_PASSWORD_HASH.
type adminCredentialVerifier struct {
	hasher       *pwdhash.PasswordHasher
	email        string
	passwordHash string
}

// NewAdminCredentialVerifier creates an AdminCredentialVerifier. With an empty
// email or hash every login fails.
func NewAdminCredentialVerifier(email, passwordHash string) AdminCredentialVerifier {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		panic(err)
	}

	return &adminCredentialVerifier{
		hasher:       hasher,
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: passwordHash,
	}
}

func (a *adminCredentialVerifier) HashPassword(password string) (string, error) {
	hashed, err := a.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashed, nil
}

func (a *adminCredentialVerifier) Verify(email, password string) bool {
	if a.email == "" || a.passwordHash == "" {
		return false
	}

	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(strings.TrimSpace(email))), []byte(a.email)) == 1

	ok, err := a.hasher.Verify([]byte(password), a.passwordHash)
	if err != nil {
		return false
	}

	return emailOK && ok
}
