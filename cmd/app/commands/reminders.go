package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	reportUseCase "github.com/allisson/whistleblower/internal/report/usecase"
)

// RunSendDeadlineReminders enqueues one reminder event per organization with overdue or
// upcoming deadlines. The outbox worker delivers them.
func RunSendDeadlineReminders(
	ctx context.Context,
	useCase reportUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	now time.Time,
) error {
	count, err := useCase.EnqueueDeadlineReminders(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to enqueue deadline reminders: %w", err)
	}

	logger.Info("deadline reminders enqueued", slog.Int("count", count))
	_, _ = fmt.Fprintf(writer, "Enqueued %d deadline reminder(s)\n", count)
	return nil
}
