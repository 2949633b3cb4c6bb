// Package dto provides data transfer objects for the Melder and dashboard report endpoints.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/whistleblower/internal/report/domain"
	"github.com/allisson/whistleblower/internal/report/usecase"
)

const (
	maxTitleLength       = 500
	maxDescriptionLength = 50000
	maxMessageLength     = 20000
)

// SubmitReportRequest is the body of a new report. Minimum lengths are enforced on the
// trimmed values by the use case.
type SubmitReportRequest struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate checks presence and upper bounds of the request fields.
func (r *SubmitReportRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Category, validation.Required),
		validation.Field(&r.Title,
			validation.Required,
			validation.RuneLength(0, maxTitleLength),
		),
		validation.Field(&r.Description,
			validation.Required,
			validation.RuneLength(0, maxDescriptionLength),
		),
	)
}

// ToInput converts the request into use case input.
func (r *SubmitReportRequest) ToInput() usecase.SubmitInput {
	return usecase.SubmitInput{
		Category:    domain.Category(r.Category),
		Title:       r.Title,
		Description: r.Description,
	}
}

// MessageRequest is the body of a new Melder or compliance message.
type MessageRequest struct {
	Content string `json:"content"`
}

// Validate checks presence and upper bound of the content.
func (r *MessageRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content,
			validation.Required,
			validation.RuneLength(0, maxMessageLength),
		),
	)
}

// UpdateReportRequest is the body of a dashboard status update. Both fields are optional
// but the use case rejects a request with neither.
type UpdateReportRequest struct {
	Status      *string    `json:"status"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
}

// Validate checks that a given status is one of the known values.
func (r *UpdateReportRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status,
			validation.NilOrNotEmpty,
			validation.In(
				string(domain.StatusNeu),
				string(domain.StatusBestaetigt),
				string(domain.StatusInBearbeitung),
				string(domain.StatusAbgeschlossen),
			).Error("status must be neu, bestaetigt, in_bearbeitung or abgeschlossen"),
		),
	)
}

// ToInput converts the request into use case input.
func (r *UpdateReportRequest) ToInput() usecase.UpdateInput {
	var input usecase.UpdateInput
	if r.Status != nil {
		status := domain.Status(*r.Status)
		input.Status = &status
	}
	input.ConfirmedAt = r.ConfirmedAt
	return input
}
