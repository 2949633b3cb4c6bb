package dto

import (
	"time"

	"github.com/allisson/whistleblower/internal/organization/domain"
	"github.com/allisson/whistleblower/internal/organization/usecase"
)

// CreateOrganizationResponse is returned once after onboarding.
// SECURITY: RecoveryKey is the plaintext organization key and is never shown again.
type CreateOrganizationResponse struct {
	OrganizationID string `json:"organization_id"`
	Slug           string `json:"slug"`
	RecoveryKey    string `json:"recovery_key"`
}

// MapCreateOutputToResponse converts the onboarding result.
func MapCreateOutputToResponse(out *usecase.CreateOrganizationOutput) CreateOrganizationResponse {
	return CreateOrganizationResponse{
		OrganizationID: out.OrganizationID.String(),
		Slug:           out.Slug,
		RecoveryKey:    out.RecoveryKey,
	}
}

// OrganizationSummaryResponse is one row of the admin organization list.
type OrganizationSummaryResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	ContactEmail       string    `json:"contact_email"`
	SubscriptionStatus string    `json:"subscription_status"`
	SubscriptionPlan   string    `json:"subscription_plan"`
	ReportCount        int       `json:"report_count"`
	CreatedAt          time.Time `json:"created_at"`
}

// ListOrganizationsResponse wraps the organization list.
type ListOrganizationsResponse struct {
	Data []OrganizationSummaryResponse `json:"data"`
}

// MapSummariesToListResponse converts organization summaries.
func MapSummariesToListResponse(summaries []*domain.Summary) ListOrganizationsResponse {
	data := make([]OrganizationSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		data = append(data, OrganizationSummaryResponse{
			ID:                 s.ID.String(),
			Name:               s.Name,
			Slug:               s.Slug,
			ContactEmail:       s.ContactEmail,
			SubscriptionStatus: string(s.SubscriptionStatus),
			SubscriptionPlan:   string(s.SubscriptionPlan),
			ReportCount:        s.ReportCount,
			CreatedAt:          s.CreatedAt,
		})
	}
	return ListOrganizationsResponse{Data: data}
}

// ChannelResponse describes the public reporting channel of an organization.
type ChannelResponse struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Accepting bool   `json:"accepting"`
}

// MapOrganizationToChannelResponse exposes only public channel information.
func MapOrganizationToChannelResponse(org *domain.Organization) ChannelResponse {
	return ChannelResponse{
		Name:      org.Name,
		Slug:      org.Slug,
		Accepting: org.AcceptsReports(),
	}
}
