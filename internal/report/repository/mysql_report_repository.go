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

// MySQLReportRepository stores reports in MySQL using BINARY(16) UUIDs.
type MySQLReportRepository struct {
	db *sql.DB
}

// NewMySQLReportRepository creates a new MySQLReportRepository.
func NewMySQLReportRepository(db *sql.DB) *MySQLReportRepository {
	return &MySQLReportRepository{db: db}
}

// Create inserts a report. A duplicate token hash returns domain.ErrTokenConflict.
func (r *MySQLReportRepository) Create(ctx context.Context, report *domain.Report) error {
	querier := database.GetTx(ctx, r.db)

	id, err := report.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal report id")
	}
	orgID, err := report.OrganizationID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal organization id")
	}

	query := `INSERT INTO reports (` + reportColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		orgID,
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

func scanMySQLReport(row rowScanner) (*domain.Report, error) {
	var report domain.Report
	var idBytes, orgIDBytes []byte
	var category, status string
	err := row.Scan(
		&idBytes,
		&orgIDBytes,
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

	if err := report.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal report id")
	}
	if err := report.OrganizationID.UnmarshalBinary(orgIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
	}
	report.Category = domain.Category(category)
	report.Status = domain.Status(status)
	return &report, nil
}

func (r *MySQLReportRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Report, error) {
	querier := database.GetTx(ctx, r.db)

	report, err := scanMySQLReport(querier.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get report")
	}
	return report, nil
}

// GetByTokenHash retrieves the report owning a Melder token hash.
func (r *MySQLReportRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE melder_token_hash = ?`
	return r.getOne(ctx, query, tokenHash)
}

// GetForOrganization retrieves a report by id scoped to its organization.
func (r *MySQLReportRepository) GetForOrganization(
	ctx context.Context,
	organizationID, reportID uuid.UUID,
) (*domain.Report, error) {
	return r.getForOrganization(ctx, organizationID, reportID, "")
}

// GetForOrganizationForUpdate is GetForOrganization holding a row lock until the
// surrounding transaction ends.
func (r *MySQLReportRepository) GetForOrganizationForUpdate(
	ctx context.Context,
	organizationID, reportID uuid.UUID,
) (*domain.Report, error) {
	return r.getForOrganization(ctx, organizationID, reportID, " FOR UPDATE")
}

func (r *MySQLReportRepository) getForOrganization(
	ctx context.Context,
	organizationID, reportID uuid.UUID,
	lock string,
) (*domain.Report, error) {
	id, err := reportID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal report id")
	}
	orgID, err := organizationID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = ? AND organization_id = ?` + lock
	return r.getOne(ctx, query, id, orgID)
}

// ListByOrganization returns the reports of an organization, newest first.
func (r *MySQLReportRepository) ListByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
) ([]*domain.Report, error) {
	querier := database.GetTx(ctx, r.db)

	orgID, err := organizationID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	query := `SELECT ` + reportColumns + ` FROM reports WHERE organization_id = ? ORDER BY received_at DESC`
	rows, err := querier.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list reports")
	}
	defer func() {
		_ = rows.Close()
	}()

	reports := make([]*domain.Report, 0)
	for rows.Next() {
		report, err := scanMySQLReport(rows)
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
func (r *MySQLReportRepository) UpdateStatus(ctx context.Context, report *domain.Report) error {
	querier := database.GetTx(ctx, r.db)

	id, err := report.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal report id")
	}
	orgID, err := report.OrganizationID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal organization id")
	}

	// updated_at always changes, so a matched row is always reported as affected.
	query := `UPDATE reports SET status = ?, confirmed_at = ?, updated_at = ?
			  WHERE id = ? AND organization_id = ?`
	result, err := querier.ExecContext(
		ctx,
		query,
		string(report.Status),
		report.ConfirmedAt,
		report.UpdatedAt,
		id,
		orgID,
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
func (r *MySQLReportRepository) ListOpenDeadlines(ctx context.Context, cutoff time.Time) ([]domain.OpenDeadline, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT organization_id, response_deadline FROM reports
			  WHERE status <> ? AND response_deadline <= ?
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
		var orgIDBytes []byte
		if err := rows.Scan(&orgIDBytes, &d.ResponseDeadline); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan deadline row")
		}
		if err := d.OrganizationID.UnmarshalBinary(orgIDBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
		}
		deadlines = append(deadlines, d)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating deadline rows")
	}

	return deadlines, nil
}
