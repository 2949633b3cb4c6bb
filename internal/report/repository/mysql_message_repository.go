package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/whistleblower/internal/database"
	apperrors "github.com/allisson/whistleblower/internal/errors"
	"github.com/allisson/whistleblower/internal/report/domain"
)

// MySQLMessageRepository stores report messages in MySQL using BINARY(16) UUIDs.
type MySQLMessageRepository struct {
	db *sql.DB
}

// NewMySQLMessageRepository creates a new MySQLMessageRepository.
func NewMySQLMessageRepository(db *sql.DB) *MySQLMessageRepository {
	return &MySQLMessageRepository{db: db}
}

// Create inserts a message.
func (r *MySQLMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	querier := database.GetTx(ctx, r.db)

	id, err := message.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal message id")
	}
	reportID, err := message.ReportID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal report id")
	}

	query := `INSERT INTO messages (id, report_id, sender, content_encrypted, is_read, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`
	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		reportID,
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
func (r *MySQLMessageRepository) ListByReport(ctx context.Context, reportID uuid.UUID) ([]*domain.Message, error) {
	querier := database.GetTx(ctx, r.db)

	reportIDBytes, err := reportID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal report id")
	}

	query := `SELECT id, report_id, sender, content_encrypted, is_read, created_at
			  FROM messages WHERE report_id = ? ORDER BY created_at ASC, id ASC`
	rows, err := querier.QueryContext(ctx, query, reportIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list messages")
	}
	defer func() {
		_ = rows.Close()
	}()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		var m domain.Message
		var idBytes, msgReportID []byte
		var sender string
		if err := rows.Scan(&idBytes, &msgReportID, &sender, &m.ContentEncrypted, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan message row")
		}
		if err := m.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal message id")
		}
		if err := m.ReportID.UnmarshalBinary(msgReportID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal report id")
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
func (r *MySQLMessageRepository) MarkRead(ctx context.Context, reportID uuid.UUID, sender domain.Sender) error {
	querier := database.GetTx(ctx, r.db)

	reportIDBytes, err := reportID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal report id")
	}

	query := `UPDATE messages SET is_read = TRUE WHERE report_id = ? AND sender = ? AND is_read = FALSE`
	if _, err := querier.ExecContext(ctx, query, reportIDBytes, string(sender)); err != nil {
		return apperrors.Wrap(err, "failed to mark messages read")
	}
	return nil
}

// CountUnreadByOrganization returns per-report counts of unread messages from sender.
// Reports without unread messages are absent from the map.
func (r *MySQLMessageRepository) CountUnreadByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
	sender domain.Sender,
) (map[uuid.UUID]int, error) {
	querier := database.GetTx(ctx, r.db)

	orgID, err := organizationID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	query := `SELECT m.report_id, COUNT(*) FROM messages m
			  JOIN reports r ON r.id = m.report_id
			  WHERE r.organization_id = ? AND m.sender = ? AND m.is_read = FALSE
			  GROUP BY m.report_id`
	rows, err := querier.QueryContext(ctx, query, orgID, string(sender))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count unread messages")
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var reportIDBytes []byte
		var count int
		if err := rows.Scan(&reportIDBytes, &count); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan unread count row")
		}
		var reportID uuid.UUID
		if err := reportID.UnmarshalBinary(reportIDBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal report id")
		}
		counts[reportID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating unread count rows")
	}

	return counts, nil
}
