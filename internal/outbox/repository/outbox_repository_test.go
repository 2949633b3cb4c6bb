package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/whistleblower/internal/outbox/domain"
	"github.com/allisson/whistleblower/internal/testutil"
)

var outboxColumns = []string{
	"id", "event_type", "payload", "status", "retries", "last_error", "processed_at", "created_at", "updated_at",
}

func newTestEvent(t *testing.T) *domain.OutboxEvent {
	t.Helper()

	now := time.Date(2026, 4, 14, 12, 0, 0, 0, time.UTC)
	event, err := domain.NewOutboxEvent(domain.EventTypeReportCreated, domain.ReportCreatedPayload{
		OrganizationID: uuid.Must(uuid.NewV7()),
		ReportID:       uuid.Must(uuid.NewV7()),
	}, now)
	require.NoError(t, err)
	return event
}

func TestPostgreSQLOutboxEventRepository_Create(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewPostgreSQLOutboxEventRepository(db)
	event := newTestEvent(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(event.ID.String(), event.EventType, event.Payload, "pending", 0, nil, nil,
			event.CreatedAt, event.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), event))
}

func TestPostgreSQLOutboxEventRepository_GetPendingEvents(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLOutboxEventRepository(db)
		event := newTestEvent(t)

		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE SKIP LOCKED")).
			WithArgs("pending", 10).
			WillReturnRows(sqlmock.NewRows(outboxColumns).AddRow(
				event.ID.String(), event.EventType, event.Payload, "pending", 1, "smtp down", nil,
				event.CreatedAt, event.UpdatedAt,
			))

		events, err := repo.GetPendingEvents(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, event.ID, events[0].ID)
		assert.Equal(t, 1, events[0].Retries)
		require.NotNil(t, events[0].LastError)
		assert.Equal(t, "smtp down", *events[0].LastError)
		assert.Nil(t, events[0].ProcessedAt)
	})

	t.Run("Error_Query", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLOutboxEventRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
			WithArgs("pending", 10).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.GetPendingEvents(context.Background(), 10)
		assert.ErrorContains(t, err, "failed to get pending outbox events")
	})
}

func TestPostgreSQLOutboxEventRepository_Update(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewPostgreSQLOutboxEventRepository(db)
	event := newTestEvent(t)
	processedAt := event.CreatedAt.Add(time.Minute)
	event.Status = domain.OutboxEventStatusProcessed
	event.ProcessedAt = &processedAt
	event.UpdatedAt = processedAt

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("processed", 0, nil, processedAt, processedAt, event.ID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), event))
}

func TestMySQLOutboxEventRepository_Create(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewMySQLOutboxEventRepository(db)
	event := newTestEvent(t)
	idBytes, err := event.ID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(idBytes, event.EventType, event.Payload, "pending", 0, nil, nil,
			event.CreatedAt, event.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), event))
}

func TestMySQLOutboxEventRepository_GetPendingEvents(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewMySQLOutboxEventRepository(db)
	event := newTestEvent(t)
	idBytes, err := event.ID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE SKIP LOCKED")).
		WithArgs("pending", 5).
		WillReturnRows(sqlmock.NewRows(outboxColumns).AddRow(
			idBytes, event.EventType, event.Payload, "pending", 0, nil, nil, event.CreatedAt, event.UpdatedAt,
		))

	events, err := repo.GetPendingEvents(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)
	assert.Equal(t, domain.EventTypeReportCreated, events[0].EventType)
}

func TestMySQLOutboxEventRepository_Update(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewMySQLOutboxEventRepository(db)
	event := newTestEvent(t)
	idBytes, err := event.ID.MarshalBinary()
	require.NoError(t, err)
	lastError := "smtp down"
	event.Retries = 2
	event.LastError = &lastError

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("pending", 2, &lastError, nil, event.UpdatedAt, idBytes).
		WillReturnError(errors.New("deadlock"))

	err = repo.Update(context.Background(), event)
	assert.ErrorContains(t, err, "failed to update outbox event")
}
