package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/whistleblower/internal/errors"
)

func TestRole_IsValid(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleOfficer, true},
		{Role("owner"), false},
		{Role(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.IsValid())
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "compliance@acme.de", NormalizeEmail("  Compliance@ACME.de \n"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestErrors(t *testing.T) {
	assert.ErrorIs(t, ErrUserNotFound, apperrors.ErrNotFound)
	assert.ErrorIs(t, ErrEmailTaken, apperrors.ErrConflict)
}
