// Package mocks provides testify mocks for the report use case layer.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	orgDomain "github.com/allisson/whistleblower/internal/organization/domain"
	outboxDomain "github.com/allisson/whistleblower/internal/outbox/domain"
	"github.com/allisson/whistleblower/internal/report/domain"
	"github.com/allisson/whistleblower/internal/report/usecase"
)

// MockReportRepository is a mock implementation of usecase.ReportRepository.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Report, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) GetForOrganization(
	ctx context.Context,
	organizationID, reportID uuid.UUID,
) (*domain.Report, error) {
	args := m.Called(ctx, organizationID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) GetForOrganizationForUpdate(
	ctx context.Context,
	organizationID, reportID uuid.UUID,
) (*domain.Report, error) {
	args := m.Called(ctx, organizationID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) ListByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
) ([]*domain.Report, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Report), args.Error(1)
}

func (m *MockReportRepository) UpdateStatus(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) ListOpenDeadlines(ctx context.Context, cutoff time.Time) ([]domain.OpenDeadline, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpenDeadline), args.Error(1)
}

// MockMessageRepository is a mock implementation of usecase.MessageRepository.
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByReport(ctx context.Context, reportID uuid.UUID) ([]*domain.Message, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, reportID uuid.UUID, sender domain.Sender) error {
	args := m.Called(ctx, reportID, sender)
	return args.Error(0)
}

func (m *MockMessageRepository) CountUnreadByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
	sender domain.Sender,
) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, organizationID, sender)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int), args.Error(1)
}

// MockOrganizationLookup is a mock implementation of usecase.OrganizationLookup.
type MockOrganizationLookup struct {
	mock.Mock
}

func (m *MockOrganizationLookup) GetBySlug(ctx context.Context, slug string) (*orgDomain.Organization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orgDomain.Organization), args.Error(1)
}

// MockOutboxEventRepository is a mock implementation of usecase.OutboxEventRepository.
type MockOutboxEventRepository struct {
	mock.Mock
}

func (m *MockOutboxEventRepository) Create(ctx context.Context, event *outboxDomain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockUseCase is a mock implementation of usecase.UseCase.
type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Submit(ctx context.Context, slug string, input usecase.SubmitInput) (*usecase.SubmitOutput, error) {
	args := m.Called(ctx, slug, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SubmitOutput), args.Error(1)
}

func (m *MockUseCase) GetByToken(ctx context.Context, token string) (*domain.ReportView, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportView), args.Error(1)
}

func (m *MockUseCase) AddMelderMessage(ctx context.Context, token, content string) (uuid.UUID, error) {
	args := m.Called(ctx, token, content)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUseCase) ListForOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
) (*usecase.DashboardOutput, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DashboardOutput), args.Error(1)
}

func (m *MockUseCase) GetForOrganization(
	ctx context.Context,
	organizationID, reportID uuid.UUID,
) (*domain.ReportView, error) {
	args := m.Called(ctx, organizationID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportView), args.Error(1)
}

func (m *MockUseCase) UpdateStatus(
	ctx context.Context,
	organizationID, reportID uuid.UUID,
	input usecase.UpdateInput,
) (*domain.Report, error) {
	args := m.Called(ctx, organizationID, reportID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockUseCase) AddComplianceMessage(
	ctx context.Context,
	organizationID, reportID uuid.UUID,
	content string,
) (uuid.UUID, error) {
	args := m.Called(ctx, organizationID, reportID, content)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUseCase) CollectDeadlineReminders(
	ctx context.Context,
	now time.Time,
	window time.Duration,
) ([]domain.DeadlineReminder, error) {
	args := m.Called(ctx, now, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeadlineReminder), args.Error(1)
}

func (m *MockUseCase) EnqueueDeadlineReminders(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}
