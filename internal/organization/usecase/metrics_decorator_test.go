package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/whistleblower/internal/organization/domain"
	"github.com/allisson/whistleblower/internal/organization/usecase"
	orgMocks "github.com/allisson/whistleblower/internal/organization/usecase/mocks"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestOrganizationUseCaseWithMetrics(t *testing.T) {
	t.Run("Success_Create", func(t *testing.T) {
		next := &orgMocks.MockUseCase{}
		m := &mockBusinessMetrics{}
		out := &usecase.CreateOrganizationOutput{Slug: "acme"}
		next.On("Create", mock.Anything, mock.Anything).Return(out, nil)
		m.On("RecordOperation", mock.Anything, "organizations", "organization_create", "success").Return()
		m.On("RecordDuration", mock.Anything, "organizations", "organization_create", mock.Anything, "success").Return()

		got, err := usecase.NewOrganizationUseCaseWithMetrics(next, m).
			Create(context.Background(), usecase.CreateOrganizationInput{})

		assert.NoError(t, err)
		assert.Same(t, out, got)
		m.AssertExpectations(t)
	})

	t.Run("Error_UpdateSubscriptionStatus", func(t *testing.T) {
		next := &orgMocks.MockUseCase{}
		m := &mockBusinessMetrics{}
		next.On("UpdateSubscriptionStatus", mock.Anything, mock.Anything, domain.StatusActive).
			Return(domain.ErrOrganizationNotFound)
		m.On("RecordOperation", mock.Anything, "organizations", "organization_update_subscription", "error").Return()
		m.On("RecordDuration", mock.Anything, "organizations", "organization_update_subscription", mock.Anything, "error").
			Return()

		err := usecase.NewOrganizationUseCaseWithMetrics(next, m).
			UpdateSubscriptionStatus(context.Background(), uuid.Must(uuid.NewV7()), domain.StatusActive)

		assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)
		m.AssertExpectations(t)
	})
}
