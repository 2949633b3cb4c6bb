package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	apperrors "github.com/allisson/whistleblower/internal/errors"
	orgDomain "github.com/allisson/whistleblower/internal/organization/domain"
	"github.com/allisson/whistleblower/internal/outbox/domain"
	"github.com/allisson/whistleblower/internal/outbox/service"
)

// NotificationProcessor turns report events into notifications for the organization contact.
type NotificationProcessor struct {
	organizations OrganizationLookup
	notifier      service.Notifier
	logger        *slog.Logger
}

// NewNotificationProcessor creates a new NotificationProcessor.
func NewNotificationProcessor(
	organizations OrganizationLookup,
	notifier service.Notifier,
	logger *slog.Logger,
) *NotificationProcessor {
	return &NotificationProcessor{
		organizations: organizations,
		notifier:      notifier,
		logger:        logger,
	}
}

// Process dispatches on the event type.
func (p *NotificationProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	switch event.EventType {
	case domain.EventTypeReportCreated:
		var payload domain.ReportCreatedPayload
		if err := event.DecodePayload(&payload); err != nil {
			return err
		}
		org, err := p.recipient(ctx, payload.OrganizationID)
		if err != nil {
			return err
		}
		return p.notifier.NotifyNewReport(ctx, org.ContactEmail, org.Name)

	case domain.EventTypeMessageCreated:
		var payload domain.MessageCreatedPayload
		if err := event.DecodePayload(&payload); err != nil {
			return err
		}
		org, err := p.recipient(ctx, payload.OrganizationID)
		if err != nil {
			return err
		}
		return p.notifier.NotifyNewMessage(ctx, org.ContactEmail, org.Name)

	case domain.EventTypeDeadlineReminder:
		var payload domain.DeadlineReminderPayload
		if err := event.DecodePayload(&payload); err != nil {
			return err
		}
		org, err := p.recipient(ctx, payload.OrganizationID)
		if err != nil {
			return err
		}
		return p.notifier.NotifyDeadlineReminder(ctx, org.ContactEmail, org.Name, payload.Overdue, payload.Upcoming)

	default:
		p.logger.Warn("unknown event type", slog.String("event_type", event.EventType))
		return apperrors.Wrapf(domain.ErrUnknownEventType, "event type %q", event.EventType)
	}
}

func (p *NotificationProcessor) recipient(ctx context.Context, id uuid.UUID) (*orgDomain.Organization, error) {
	org, err := p.organizations.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to resolve notification recipient")
	}
	return org, nil
}
