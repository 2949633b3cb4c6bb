// Package dto provides data transfer objects for the login endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/whistleblower/internal/validation"
)

// LoginRequest contains the credentials of an administrator or compliance user login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both credentials are present.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, 1024),
		),
	)
}
