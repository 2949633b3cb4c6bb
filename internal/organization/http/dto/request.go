// Package dto provides data transfer objects for the organization endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/whistleblower/internal/organization/domain"
	"github.com/allisson/whistleblower/internal/organization/usecase"
	customValidation "github.com/allisson/whistleblower/internal/validation"
)

// CreateOrganizationRequest onboards an organization with its first compliance admin.
type CreateOrganizationRequest struct {
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	ContactEmail  string  `json:"contact_email"`
	Plan          string  `json:"plan"`
	AdminEmail    string  `json:"admin_email"`
	AdminPassword string  `json:"admin_password"`
	AdminName     *string `json:"admin_name,omitempty"`
}

// Validate checks the request shape. Business rules are enforced by the use case.
func (r *CreateOrganizationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Slug, validation.Required, customValidation.NotBlank),
		validation.Field(&r.ContactEmail, validation.Required, customValidation.Email),
		validation.Field(&r.Plan, validation.Required),
		validation.Field(&r.AdminEmail, validation.Required, customValidation.Email),
		validation.Field(&r.AdminPassword, validation.Required),
	)
}

// ToInput converts the request to the use case input.
func (r *CreateOrganizationRequest) ToInput() usecase.CreateOrganizationInput {
	return usecase.CreateOrganizationInput{
		Name:          r.Name,
		Slug:          r.Slug,
		ContactEmail:  r.ContactEmail,
		Plan:          domain.SubscriptionPlan(r.Plan),
		AdminEmail:    r.AdminEmail,
		AdminPassword: r.AdminPassword,
		AdminName:     r.AdminName,
	}
}

// UpdateSubscriptionRequest changes the subscription status of an organization.
type UpdateSubscriptionRequest struct {
	Status string `json:"status"`
}

// Validate checks that status is a known subscription status.
func (r *UpdateSubscriptionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status,
			validation.Required,
			validation.In(
				string(domain.StatusTrial),
				string(domain.StatusActive),
				string(domain.StatusInactive),
				string(domain.StatusCancelled),
			),
		),
	)
}
