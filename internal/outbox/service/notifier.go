// Package service provides the notification channels the outbox worker delivers to.
package service

import (
	"context"
	"log/slog"
)

// Notifier delivers notifications to an organization contact. Implementations receive
// organization metadata and counters only, never report content.
type Notifier interface {
	NotifyNewReport(ctx context.Context, to, orgName string) error
	NotifyNewMessage(ctx context.Context, to, orgName string) error
	NotifyDeadlineReminder(ctx context.Context, to, orgName string, overdue, upcoming int) error
}

// LogNotifier writes notifications to the structured log. It stands in for a mail
// gateway until one is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyNewReport announces a new report.
func (n *LogNotifier) NotifyNewReport(ctx context.Context, to, orgName string) error {
	n.logger.InfoContext(ctx, "notification: new report",
		slog.String("to", to),
		slog.String("organization", orgName),
	)
	return nil
}

// NotifyNewMessage announces a new Melder message.
func (n *LogNotifier) NotifyNewMessage(ctx context.Context, to, orgName string) error {
	n.logger.InfoContext(ctx, "notification: new message",
		slog.String("to", to),
		slog.String("organization", orgName),
	)
	return nil
}

// NotifyDeadlineReminder announces overdue and upcoming response deadlines.
func (n *LogNotifier) NotifyDeadlineReminder(
	ctx context.Context,
	to, orgName string,
	overdue, upcoming int,
) error {
	n.logger.InfoContext(ctx, "notification: deadline reminder",
		slog.String("to", to),
		slog.String("organization", orgName),
		slog.Int("overdue", overdue),
		slog.Int("upcoming", upcoming),
	)
	return nil
}
