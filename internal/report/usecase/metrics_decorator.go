package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/whistleblower/internal/metrics"
	"github.com/allisson/whistleblower/internal/report/domain"
)

// reportUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type reportUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewReportUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewReportUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &reportUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (r *reportUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "reports", operation, status)
	r.metrics.RecordDuration(ctx, "reports", operation, time.Since(start), status)
}

func (r *reportUseCaseWithMetrics) Submit(ctx context.Context, slug string, input SubmitInput) (*SubmitOutput, error) {
	start := time.Now()
	out, err := r.next.Submit(ctx, slug, input)
	r.record(ctx, "report_submit", start, err)
	return out, err
}

func (r *reportUseCaseWithMetrics) GetByToken(ctx context.Context, token string) (*domain.ReportView, error) {
	start := time.Now()
	view, err := r.next.GetByToken(ctx, token)
	r.record(ctx, "report_get_by_token", start, err)
	return view, err
}

func (r *reportUseCaseWithMetrics) AddMelderMessage(ctx context.Context, token, content string) (uuid.UUID, error) {
	start := time.Now()
	id, err := r.next.AddMelderMessage(ctx, token, content)
	r.record(ctx, "message_add_melder", start, err)
	return id, err
}

func (r *reportUseCaseWithMetrics) ListForOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
) (*DashboardOutput, error) {
	start := time.Now()
	out, err := r.next.ListForOrganization(ctx, organizationID)
	r.record(ctx, "report_list", start, err)
	return out, err
}

func (r *reportUseCaseWithMetrics) GetForOrganization(
	ctx context.Context,
	organizationID, reportID uuid.UUID,
) (*domain.ReportView, error) {
	start := time.Now()
	view, err := r.next.GetForOrganization(ctx, organizationID, reportID)
	r.record(ctx, "report_get", start, err)
	return view, err
}

func (r *reportUseCaseWithMetrics) UpdateStatus(
	ctx context.Context,
	organizationID, reportID uuid.UUID,
	input UpdateInput,
) (*domain.Report, error) {
	start := time.Now()
	report, err := r.next.UpdateStatus(ctx, organizationID, reportID, input)
	r.record(ctx, "report_update_status", start, err)
	return report, err
}

func (r *reportUseCaseWithMetrics) AddComplianceMessage(
	ctx context.Context,
	organizationID, reportID uuid.UUID,
	content string,
) (uuid.UUID, error) {
	start := time.Now()
	id, err := r.next.AddComplianceMessage(ctx, organizationID, reportID, content)
	r.record(ctx, "message_add_compliance", start, err)
	return id, err
}

func (r *reportUseCaseWithMetrics) CollectDeadlineReminders(
	ctx context.Context,
	now time.Time,
	window time.Duration,
) ([]domain.DeadlineReminder, error) {
	start := time.Now()
	reminders, err := r.next.CollectDeadlineReminders(ctx, now, window)
	r.record(ctx, "deadline_collect", start, err)
	return reminders, err
}

func (r *reportUseCaseWithMetrics) EnqueueDeadlineReminders(ctx context.Context, now time.Time) (int, error) {
	start := time.Now()
	count, err := r.next.EnqueueDeadlineReminders(ctx, now)
	r.record(ctx, "deadline_enqueue", start, err)
	return count, err
}
