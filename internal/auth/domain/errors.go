package domain

import (
	"github.com/allisson/whistleblower/internal/errors"
)

var (
	// ErrInvalidCredentials is returned for any failed login. Unknown account and
	// wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidSession is returned when a session token fails verification.
	ErrInvalidSession = errors.Wrap(errors.ErrUnauthorized, "invalid session")
)
