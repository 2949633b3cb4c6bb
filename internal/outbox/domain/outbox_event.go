// Package domain defines the transactional outbox event and the notification payloads
// carried through it. Payloads hold identifiers and counters only, never report content.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/whistleblower/internal/errors"
)

// ErrUnknownEventType is returned for events no processor handles.
var ErrUnknownEventType = apperrors.New("unknown outbox event type")

// OutboxEventStatus represents the status of an outbox event
type OutboxEventStatus string

const (
	OutboxEventStatusPending   OutboxEventStatus = "pending"
	OutboxEventStatusProcessed OutboxEventStatus = "processed"
	OutboxEventStatusFailed    OutboxEventStatus = "failed"
)

// Event types written by the report use case.
const (
	EventTypeReportCreated    = "report.created"
	EventTypeMessageCreated   = "message.created"
	EventTypeDeadlineReminder = "deadline.reminder"
)

// OutboxEvent represents an event in the transactional outbox pattern
type OutboxEvent struct {
	ID          uuid.UUID
	EventType   string
	Payload     string
	Status      OutboxEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReportCreatedPayload announces a new report to the organization.
type ReportCreatedPayload struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	ReportID       uuid.UUID `json:"report_id"`
}

// MessageCreatedPayload announces a new Melder message to the organization.
type MessageCreatedPayload struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	ReportID       uuid.UUID `json:"report_id"`
	MessageID      uuid.UUID `json:"message_id"`
}

// DeadlineReminderPayload carries the overdue and upcoming counts of one organization.
type DeadlineReminderPayload struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	Overdue        int       `json:"overdue"`
	Upcoming       int       `json:"upcoming"`
	WindowDays     int       `json:"window_days"`
}

// NewOutboxEvent creates a pending event with payload serialized as JSON.
func NewOutboxEvent(eventType string, payload any, now time.Time) (*OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal event payload")
	}

	return &OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   string(data),
		Status:    OutboxEventStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// DecodePayload unmarshals the event payload into dst.
func (e *OutboxEvent) DecodePayload(dst any) error {
	if err := json.Unmarshal([]byte(e.Payload), dst); err != nil {
		return apperrors.Wrapf(err, "failed to decode %s payload", e.EventType)
	}
	return nil
}
