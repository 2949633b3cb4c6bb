package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/whistleblower/internal/database"
	apperrors "github.com/allisson/whistleblower/internal/errors"
	"github.com/allisson/whistleblower/internal/report/domain"
)

// PostgreSQLMessageRepository stores report messages in PostgreSQL.
type PostgreSQLMessageRepository struct {
	db *sql.DB
}

// NewPostgreSQLMessageRepository creates a new PostgreSQLMessageRepository.
func NewPostgreSQLMessageRepository(db *sql.DB) *PostgreSQLMessageRepository {
	return &PostgreSQLMessageRepository{db: db}
}

// Create inserts a message.
func (r *PostgreSQLMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO messages (id, report_id, sender, content_encrypted, is_read, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := querier.ExecContext(
		ctx,
		query,
		message.ID,
		message.ReportID,
		string(message.Sender),
		message.ContentEncrypted,
		message.IsRead,
		message.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create message")
	}
	return nil
}

// ListByReport returns the messages of a report, oldest first.
func (r *PostgreSQLMessageRepository) ListByReport(ctx context.Context, reportID uuid.UUID) ([]*domain.Message, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, report_id, sender, content_encrypted, is_read, created_at
			  FROM messages WHERE report_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := querier.QueryContext(ctx, query, reportID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list messages")
	}
	defer func() {
		_ = rows.Close()
	}()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		var m domain.Message
		var sender string
		if err := rows.Scan(&m.ID, &m.ReportID, &sender, &m.ContentEncrypted, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan message row")
		}
		m.Sender = domain.Sender(sender)
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating message rows")
	}

	return messages, nil
}

// MarkRead marks every unread message of sender in a report as read.
func (r *PostgreSQLMessageRepository) MarkRead(ctx context.Context, reportID uuid.UUID, sender domain.Sender) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE messages SET is_read = TRUE WHERE report_id = $1 AND sender = $2 AND is_read = FALSE`
	if _, err := querier.ExecContext(ctx, query, reportID, string(sender)); err != nil {
		return apperrors.Wrap(err, "failed to mark messages read")
	}
	return nil
}

// CountUnreadByOrganization returns per-report counts of unread messages from sender.
// Reports without unread messages are absent from the map.
func (r *PostgreSQLMessageRepository) CountUnreadByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
	sender domain.Sender,
) (map[uuid.UUID]int, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT m.report_id, COUNT(*) FROM messages m
			  JOIN reports r ON r.id = m.report_id
			  WHERE r.organization_id = $1 AND m.sender = $2 AND m.is_read = FALSE
			  GROUP BY m.report_id`
	rows, err := querier.QueryContext(ctx, query, organizationID, string(sender))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count unread messages")
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var reportID uuid.UUID
		var count int
		if err := rows.Scan(&reportID, &count); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan unread count row")
		}
		counts[reportID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating unread count rows")
	}

	return counts, nil
}
