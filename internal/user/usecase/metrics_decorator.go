package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/whistleblower/internal/metrics"
	"github.com/allisson/whistleblower/internal/user/domain"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation under the
// "auth" domain.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "auth", operation, status)
	u.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

func (u *userUseCaseWithMetrics) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Create(ctx, input)
	u.record(ctx, "user_create", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) EmailTaken(ctx context.Context, email string) (bool, error) {
	start := time.Now()
	taken, err := u.next.EmailTaken(ctx, email)
	u.record(ctx, "user_email_taken", start, err)
	return taken, err
}

func (u *userUseCaseWithMetrics) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Authenticate(ctx, email, password)
	u.record(ctx, "user_authenticate", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.GetByID(ctx, id)
	u.record(ctx, "user_get", start, err)
	return user, err
}
