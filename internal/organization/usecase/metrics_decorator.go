package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/whistleblower/internal/metrics"
	"github.com/allisson/whistleblower/internal/organization/domain"
)

// organizationUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type organizationUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewOrganizationUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewOrganizationUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &organizationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (o *organizationUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	o.metrics.RecordOperation(ctx, "organizations", operation, status)
	o.metrics.RecordDuration(ctx, "organizations", operation, time.Since(start), status)
}

func (o *organizationUseCaseWithMetrics) Create(
	ctx context.Context,
	input CreateOrganizationInput,
) (*CreateOrganizationOutput, error) {
	start := time.Now()
	out, err := o.next.Create(ctx, input)
	o.record(ctx, "organization_create", start, err)
	return out, err
}

func (o *organizationUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*domain.Summary, error) {
	start := time.Now()
	list, err := o.next.List(ctx, offset, limit)
	o.record(ctx, "organization_list", start, err)
	return list, err
}

func (o *organizationUseCaseWithMetrics) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	start := time.Now()
	org, err := o.next.GetBySlug(ctx, slug)
	o.record(ctx, "organization_get_by_slug", start, err)
	return org, err
}

func (o *organizationUseCaseWithMetrics) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	start := time.Now()
	org, err := o.next.GetByID(ctx, id)
	o.record(ctx, "organization_get", start, err)
	return org, err
}

func (o *organizationUseCaseWithMetrics) UpdateSubscriptionStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.SubscriptionStatus,
) error {
	start := time.Now()
	err := o.next.UpdateSubscriptionStatus(ctx, id, status)
	o.record(ctx, "organization_update_subscription", start, err)
	return err
}
