package dto

import (
	"time"

	userDomain "github.com/allisson/whistleblower/internal/user/domain"
)

// AdminLoginResponse is returned after a successful administrator login.
type AdminLoginResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse describes the logged-in compliance user.
type UserResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	Email          string  `json:"email"`
	Name           *string `json:"name,omitempty"`
	Role           string  `json:"role"`
}

// ComplianceLoginResponse is returned after a successful compliance user login.
type ComplianceLoginResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// MapComplianceLoginResponse converts a user and its session expiry into the response.
// The password hash is never part of it.
func MapComplianceLoginResponse(user *userDomain.User, expiresAt time.Time) ComplianceLoginResponse {
	return ComplianceLoginResponse{
		User: UserResponse{
			ID:             user.ID.String(),
			OrganizationID: user.OrganizationID.String(),
			Email:          user.Email,
			Name:           user.Name,
			Role:           string(user.Role),
		},
		ExpiresAt: expiresAt,
	}
}
