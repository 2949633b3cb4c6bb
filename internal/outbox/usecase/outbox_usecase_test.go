package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	databaseMocks "github.com/allisson/whistleblower/internal/database/mocks"
	"github.com/allisson/whistleblower/internal/outbox/domain"
	"github.com/allisson/whistleblower/internal/outbox/usecase"
	"github.com/allisson/whistleblower/internal/outbox/usecase/mocks"
	"github.com/allisson/whistleblower/internal/testutil"
)

var processedAt = time.Date(2026, 4, 14, 12, 0, 0, 0, time.UTC)

type outboxFixture struct {
	txManager *databaseMocks.MockTxManager
	repo      *mocks.MockOutboxEventRepository
	processor *mocks.MockEventProcessor
	uc        *usecase.OutboxUseCase
}

func newOutboxFixture(t *testing.T, config usecase.Config) *outboxFixture {
	t.Helper()

	f := &outboxFixture{
		txManager: databaseMocks.NewMockTxManager(t),
		repo:      &mocks.MockOutboxEventRepository{},
		processor: &mocks.MockEventProcessor{},
	}
	t.Cleanup(func() {
		f.repo.AssertExpectations(t)
		f.processor.AssertExpectations(t)
	})

	f.uc = usecase.NewOutboxUseCase(config, f.txManager, f.repo, f.processor, testutil.DiscardLogger())
	usecase.SetClock(f.uc, func() time.Time { return processedAt })
	return f
}

func defaultConfig() usecase.Config {
	return usecase.Config{Interval: 5 * time.Second, BatchSize: 10, MaxRetries: 3}
}

func pendingEvent(retries int) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: domain.EventTypeReportCreated,
		Payload:   `{}`,
		Status:    domain.OutboxEventStatusPending,
		Retries:   retries,
	}
}

func TestOutboxUseCase_ProcessEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_MarksProcessed", func(t *testing.T) {
		f := newOutboxFixture(t, defaultConfig())
		events := []*domain.OutboxEvent{pendingEvent(0), pendingEvent(0)}

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.repo.On("GetPendingEvents", ctx, 10).Return(events, nil)
		f.processor.On("Process", ctx, events[0]).Return(nil)
		f.processor.On("Process", ctx, events[1]).Return(nil)
		f.repo.On("Update", ctx, mock.MatchedBy(func(e *domain.OutboxEvent) bool {
			return e.Status == domain.OutboxEventStatusProcessed &&
				e.ProcessedAt != nil && e.ProcessedAt.Equal(processedAt) && e.UpdatedAt.Equal(processedAt)
		})).Return(nil).Times(2)

		require.NoError(t, f.uc.ProcessEvents(ctx))
	})

	t.Run("Success_NoEvents", func(t *testing.T) {
		f := newOutboxFixture(t, defaultConfig())

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.repo.On("GetPendingEvents", ctx, 10).Return([]*domain.OutboxEvent{}, nil)

		require.NoError(t, f.uc.ProcessEvents(ctx))
	})

	t.Run("Success_ProcessorErrorCountsRetry", func(t *testing.T) {
		f := newOutboxFixture(t, defaultConfig())
		event := pendingEvent(0)

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.repo.On("GetPendingEvents", ctx, 10).Return([]*domain.OutboxEvent{event}, nil)
		f.processor.On("Process", ctx, event).Return(errors.New("smtp down"))
		f.repo.On("Update", ctx, mock.MatchedBy(func(e *domain.OutboxEvent) bool {
			return e.Retries == 1 && e.Status == domain.OutboxEventStatusPending &&
				e.LastError != nil && *e.LastError == "smtp down" && e.ProcessedAt == nil
		})).Return(nil)

		require.NoError(t, f.uc.ProcessEvents(ctx))
	})

	t.Run("Success_MaxRetriesMarksFailed", func(t *testing.T) {
		f := newOutboxFixture(t, defaultConfig())
		event := pendingEvent(2)

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.repo.On("GetPendingEvents", ctx, 10).Return([]*domain.OutboxEvent{event}, nil)
		f.processor.On("Process", ctx, event).Return(errors.New("smtp down"))
		f.repo.On("Update", ctx, mock.MatchedBy(func(e *domain.OutboxEvent) bool {
			return e.Retries == 3 && e.Status == domain.OutboxEventStatusFailed
		})).Return(nil)

		require.NoError(t, f.uc.ProcessEvents(ctx))
	})

	t.Run("Error_GetPending", func(t *testing.T) {
		f := newOutboxFixture(t, defaultConfig())

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.repo.On("GetPendingEvents", ctx, 10).Return(nil, errors.New("database error"))

		assert.ErrorContains(t, f.uc.ProcessEvents(ctx), "database error")
	})

	t.Run("Error_Update", func(t *testing.T) {
		f := newOutboxFixture(t, defaultConfig())
		event := pendingEvent(0)

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.repo.On("GetPendingEvents", ctx, 10).Return([]*domain.OutboxEvent{event}, nil)
		f.processor.On("Process", ctx, event).Return(nil)
		f.repo.On("Update", ctx, event).Return(errors.New("update failed"))

		assert.ErrorContains(t, f.uc.ProcessEvents(ctx), "update failed")
	})
}

func TestOutboxUseCase_Start(t *testing.T) {
	t.Run("Success_StopsOnCancel", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		f := newOutboxFixture(t, usecase.Config{Interval: 10 * time.Millisecond, BatchSize: 10, MaxRetries: 3})
		f.txManager.On("WithTx", mock.Anything, mock.Anything).Return(errors.New("database down")).Maybe()

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- f.uc.Start(ctx) }()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("outbox processor did not stop")
		}
	})

	t.Run("Success_AlreadyCancelled", func(t *testing.T) {
		f := newOutboxFixture(t, defaultConfig())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, f.uc.Start(ctx), context.Canceled)
	})
}
