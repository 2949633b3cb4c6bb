package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/whistleblower/internal/crypto/domain"
	"github.com/allisson/whistleblower/internal/metrics"
)

// organizationKeyUseCaseWithMetrics decorates OrganizationKeyUseCase with metrics instrumentation.
type organizationKeyUseCaseWithMetrics struct {
	next    OrganizationKeyUseCase
	metrics metrics.BusinessMetrics
}

// NewOrganizationKeyUseCaseWithMetrics wraps an OrganizationKeyUseCase with metrics recording.
func NewOrganizationKeyUseCaseWithMetrics(
	useCase OrganizationKeyUseCase,
	m metrics.BusinessMetrics,
) OrganizationKeyUseCase {
	return &organizationKeyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (o *organizationKeyUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	o.metrics.RecordOperation(ctx, "keys", operation, status)
	o.metrics.RecordDuration(ctx, "keys", operation, time.Since(start), status)
}

// Provision records metrics for key provisioning.
func (o *organizationKeyUseCaseWithMetrics) Provision(ctx context.Context) (*cryptoDomain.ProvisionedKey, error) {
	start := time.Now()
	key, err := o.next.Provision(ctx)
	o.record(ctx, "key_provision", start, err)
	return key, err
}

// Resolve records metrics for key resolution.
func (o *organizationKeyUseCaseWithMetrics) Resolve(ctx context.Context, organizationID uuid.UUID) ([]byte, error) {
	start := time.Now()
	key, err := o.next.Resolve(ctx, organizationID)
	o.record(ctx, "key_resolve", start, err)
	return key, err
}

// Verify records metrics for recovery key verification.
func (o *organizationKeyUseCaseWithMetrics) Verify(
	ctx context.Context,
	organizationID uuid.UUID,
	keyHex string,
) (bool, error) {
	start := time.Now()
	ok, err := o.next.Verify(ctx, organizationID, keyHex)
	o.record(ctx, "key_verify", start, err)
	return ok, err
}
