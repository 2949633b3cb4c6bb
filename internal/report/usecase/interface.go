// Package usecase implements report intake, the Melder and compliance views, and the
// deadline reminders. It is the only layer that sees report plaintext.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	orgDomain "github.com/allisson/whistleblower/internal/organization/domain"
	outboxDomain "github.com/allisson/whistleblower/internal/outbox/domain"
	"github.com/allisson/whistleblower/internal/report/domain"
)

// ReportRepository persists encrypted reports.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Report, error)
	GetForOrganization(ctx context.Context, organizationID, reportID uuid.UUID) (*domain.Report, error)
	GetForOrganizationForUpdate(ctx context.Context, organizationID, reportID uuid.UUID) (*domain.Report, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*domain.Report, error)
	UpdateStatus(ctx context.Context, report *domain.Report) error
	ListOpenDeadlines(ctx context.Context, cutoff time.Time) ([]domain.OpenDeadline, error)
}

// MessageRepository persists encrypted report messages.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListByReport(ctx context.Context, reportID uuid.UUID) ([]*domain.Message, error)
	MarkRead(ctx context.Context, reportID uuid.UUID, sender domain.Sender) error
	CountUnreadByOrganization(
		ctx context.Context,
		organizationID uuid.UUID,
		sender domain.Sender,
	) (map[uuid.UUID]int, error)
}

// OrganizationLookup resolves the organization behind a public channel.
type OrganizationLookup interface {
	GetBySlug(ctx context.Context, slug string) (*orgDomain.Organization, error)
}

// OutboxEventRepository stores notification events in the caller's transaction.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// SubmitInput contains the plaintext of a new report.
type SubmitInput struct {
	Category    domain.Category
	Title       string
	Description string
}

// SubmitOutput is returned once after submission. MelderToken is never available again.
type SubmitOutput struct {
	ReportID    uuid.UUID
	MelderToken string
}

// UpdateInput contains the optional changes of a status update. At least one is required.
type UpdateInput struct {
	Status      *domain.Status
	ConfirmedAt *time.Time
}

// DashboardOutput lists the decrypted reports of an organization with their statistics.
type DashboardOutput struct {
	Reports []*domain.ReportView
	Stats   domain.Stats
}

// UseCase defines the report business operations.
type UseCase interface {
	// Submit files a report through the public channel of an organization.
	Submit(ctx context.Context, slug string, input SubmitInput) (*SubmitOutput, error)

	// GetByToken returns the Melder view of a report and marks compliance replies read.
	GetByToken(ctx context.Context, token string) (*domain.ReportView, error)

	// AddMelderMessage appends a Melder message to an open report.
	AddMelderMessage(ctx context.Context, token, content string) (uuid.UUID, error)

	// ListForOrganization returns the dashboard of an organization.
	ListForOrganization(ctx context.Context, organizationID uuid.UUID) (*DashboardOutput, error)

	// GetForOrganization returns one report of an organization and marks Melder messages read.
	GetForOrganization(ctx context.Context, organizationID, reportID uuid.UUID) (*domain.ReportView, error)

	// UpdateStatus changes the status or confirmation date of a report.
	UpdateStatus(ctx context.Context, organizationID, reportID uuid.UUID, input UpdateInput) (*domain.Report, error)

	// AddComplianceMessage appends a compliance reply to a report.
	AddComplianceMessage(ctx context.Context, organizationID, reportID uuid.UUID, content string) (uuid.UUID, error)

	// CollectDeadlineReminders groups open reports due within window per organization.
	CollectDeadlineReminders(ctx context.Context, now time.Time, window time.Duration) ([]domain.DeadlineReminder, error)

	// EnqueueDeadlineReminders writes one reminder event per affected organization and
	// returns how many were written.
	EnqueueDeadlineReminders(ctx context.Context, now time.Time) (int, error)
}
