package commands

import (
	"fmt"

	authService "github.com/allisson/whistleblower/internal/auth/service"
)

// RunHashAdminPassword reads the admin password from the first input line and prints
// the PHC string for ADMIN_PASSWORD_HASH.
func RunHashAdminPassword(credentials authService.AdminCredentialVerifier, io IOTuple) error {
	password, err := ReadPassword(io.Reader)
	if err != nil {
		return err
	}

	hash, err := credentials.HashPassword(password)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(io.Writer, "ADMIN_PASSWORD_HASH='%s'\n", hash)
	return nil
}
