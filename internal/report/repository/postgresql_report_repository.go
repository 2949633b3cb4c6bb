// Package repository implements report and message persistence for PostgreSQL and MySQL.
// Repositories only ever see ciphertext.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/whistleblower/internal/database"
	apperrors "github.com/allisson/whistleblower/internal/errors"
	"github.com/allisson/whistleblower/internal/report/domain"
)

const reportColumns = `id, organization_id, melder_token_hash, category, title_encrypted, description_encrypted,
			  status, received_at, confirmation_deadline, response_deadline, confirmed_at, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// PostgreSQLReportRepository stores reports in PostgreSQL.
type PostgreSQLReportRepository struct {
	db *sql.DB
}

// NewPostgreSQLReportRepository creates a new PostgreSQLReportRepository.
func NewPostgreSQLReportRepository(db *sql.DB) *PostgreSQLReportRepository {
	return &PostgreSQLReportRepository{db: db}
}

// Create inserts a report. A duplicate token hash returns domain.ErrTokenConflict.
func (r *PostgreSQLReportRepository) Create(ctx context.Context, report *domain.Report) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO reports (` + reportColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := querier.ExecContext(
		ctx,
		query,
		report.ID,
		report.OrganizationID,
		report.MelderTokenHash,
		string(report.Category),
		report.TitleEncrypted,
		report.DescriptionEncrypted,
		string(report.Status),
		report.ReceivedAt,
		report.ConfirmationDeadline,
		report.ResponseDeadline,
		report.ConfirmedAt,
		report.CreatedAt,
		report.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrTokenConflict
		}
		return apperrors.Wrap(err, "failed to create report")
	}
	return nil
}

func scanPostgreSQLReport(row rowScanner) (*domain.Report, error) {
	var report domain.Report
	var category, status string
	err := row.Scan(
		&report.ID,
		&report.OrganizationID,
		&report.MelderTokenHash,
		&category,
		&report.TitleEncrypted,
		&report.DescriptionEncrypted,
		&status,
		&report.ReceivedAt,
		&report.ConfirmationDeadline,
		&report.ResponseDeadline,
		&report.ConfirmedAt,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	report.Category = domain.Category(category)
	report.Status = domain.Status(status)
	return &report, nil
}

func (r *PostgreSQLReportRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Report, error) {
	querier := database.GetTx(ctx, r.db)

	report, err := scanPostgreSQLReport(querier.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get report")
	}
	return report, nil
}

// GetByTokenHash retrieves the report owning a Melder token hash.
func (r *PostgreSQLReportRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE melder_token_hash = $1`
	return r.getOne(ctx, query, tokenHash)
}

// GetForOrganization retrieves a report by id scoped to its organization.
func (r *PostgreSQLReportRepository) GetForOrganization(
	ctx context.Context,
	organizationID, reportID uuid.UUID,
) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1 AND organization_id = $2`
	return r.getOne(ctx, query, reportID, organizationID)
}

// GetForOrganizationForUpdate is GetForOrganization holding a row lock until the
// surrounding transaction ends.
func (r *PostgreSQLReportRepository) GetForOrganizationForUpdate(
	ctx context.Context,
	organizationID, reportID uuid.UUID,
) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1 AND organization_id = $2 FOR UPDATE`
	return r.getOne(ctx, query, reportID, organizationID)
}

// ListByOrganization returns the reports of an organization, newest first.
func (r *PostgreSQLReportRepository) ListByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
) ([]*domain.Report, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + reportColumns + ` FROM reports WHERE organization_id = $1 ORDER BY received_at DESC`
	rows, err := querier.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list reports")
	}
	defer func() {
		_ = rows.Close()
	}()

	reports := make([]*domain.Report, 0)
	for rows.Next() {
		report, err := scanPostgreSQLReport(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan report row")
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating report rows")
	}

	return reports, nil
}

// UpdateStatus writes status and confirmed_at of a report within its organization.
func (r *PostgreSQLReportRepository) UpdateStatus(ctx context.Context, report *domain.Report) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE reports SET status = $1, confirmed_at = $2, updated_at = $3
			  WHERE id = $4 AND organization_id = $5`
	result, err := querier.ExecContext(
		ctx,
		query,
		string(report.Status),
		report.ConfirmedAt,
		report.UpdatedAt,
		report.ID,
		report.OrganizationID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update report")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

// ListOpenDeadlines returns the response deadlines of open reports due at or before the cutoff.
func (r *PostgreSQLReportRepository) ListOpenDeadlines(
	ctx context.Context,
	cutoff time.Time,
) ([]domain.OpenDeadline, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT organization_id, response_deadline FROM reports
			  WHERE status <> $1 AND response_deadline <= $2
			  ORDER BY organization_id`
	rows, err := querier.QueryContext(ctx, query, string(domain.StatusAbgeschlossen), cutoff)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list open deadlines")
	}
	defer func() {
		_ = rows.Close()
	}()

	deadlines := make([]domain.OpenDeadline, 0)
	for rows.Next() {
		var d domain.OpenDeadline
		if err := rows.Scan(&d.OrganizationID, &d.ResponseDeadline); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan deadline row")
		}
		deadlines = append(deadlines, d)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating deadline rows")
	}

	return deadlines, nil
}
