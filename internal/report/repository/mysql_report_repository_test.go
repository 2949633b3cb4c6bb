package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/whistleblower/internal/report/domain"
	"github.com/allisson/whistleblower/internal/testutil"
)

func mySQLReportRow(report *domain.Report) *sqlmock.Rows {
	id, _ := report.ID.MarshalBinary()
	orgID, _ := report.OrganizationID.MarshalBinary()
	return sqlmock.NewRows(reportRowColumns).AddRow(
		id, orgID, report.MelderTokenHash, string(report.Category),
		report.TitleEncrypted, report.DescriptionEncrypted, string(report.Status), report.ReceivedAt,
		report.ConfirmationDeadline, report.ResponseDeadline, nil, report.CreatedAt, report.UpdatedAt,
	)
}

func TestMySQLReportRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLReportRepository(db)
		report := newTestReport()
		id, _ := report.ID.MarshalBinary()
		orgID, _ := report.OrganizationID.MarshalBinary()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reports")).
			WithArgs(
				id, orgID, report.MelderTokenHash, "betrug",
				report.TitleEncrypted, report.DescriptionEncrypted, "neu", report.ReceivedAt,
				report.ConfirmationDeadline, report.ResponseDeadline, nil, report.CreatedAt, report.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), report))
	})

	t.Run("Error_TokenConflict", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLReportRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reports")).
			WillReturnError(&mysql.MySQLError{Number: 1062})

		err := repo.Create(context.Background(), newTestReport())
		assert.ErrorIs(t, err, domain.ErrTokenConflict)
	})
}

func TestMySQLReportRepository_GetByTokenHash(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLReportRepository(db)
		report := newTestReport()

		mock.ExpectQuery(regexp.QuoteMeta("FROM reports WHERE melder_token_hash = ?")).
			WithArgs(report.MelderTokenHash).
			WillReturnRows(mySQLReportRow(report))

		got, err := repo.GetByTokenHash(context.Background(), report.MelderTokenHash)
		require.NoError(t, err)
		assert.Equal(t, report.ID, got.ID)
		assert.Equal(t, report.OrganizationID, got.OrganizationID)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLReportRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM reports WHERE melder_token_hash = ?")).
			WillReturnRows(sqlmock.NewRows(reportRowColumns))

		_, err := repo.GetByTokenHash(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})
}

func TestMySQLReportRepository_GetForOrganization(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewMySQLReportRepository(db)
	report := newTestReport()
	id, _ := report.ID.MarshalBinary()
	orgID, _ := report.OrganizationID.MarshalBinary()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ? AND organization_id = ?")).
		WithArgs(id, orgID).
		WillReturnRows(mySQLReportRow(report))

	got, err := repo.GetForOrganization(context.Background(), report.OrganizationID, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)
}

func TestMySQLReportRepository_GetForOrganizationForUpdate(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewMySQLReportRepository(db)
	report := newTestReport()
	id, _ := report.ID.MarshalBinary()
	orgID, _ := report.OrganizationID.MarshalBinary()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ? AND organization_id = ? FOR UPDATE")).
		WithArgs(id, orgID).
		WillReturnRows(mySQLReportRow(report))

	got, err := repo.GetForOrganizationForUpdate(context.Background(), report.OrganizationID, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)
}

func TestMySQLReportRepository_UpdateStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLReportRepository(db)
		report := newTestReport()
		report.Status = domain.StatusInBearbeitung

		mock.ExpectExec(regexp.QuoteMeta("UPDATE reports SET status = ?")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateStatus(context.Background(), report))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLReportRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE reports SET status = ?")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), newTestReport())
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})
}

func TestMySQLReportRepository_ListOpenDeadlines(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewMySQLReportRepository(db)
	cutoff := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)
	orgID := uuid.Must(uuid.NewV7())
	orgIDBytes, _ := orgID.MarshalBinary()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status <> ? AND response_deadline <= ?")).
		WithArgs("abgeschlossen", cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"organization_id", "response_deadline"}).
			AddRow(orgIDBytes, cutoff))

	deadlines, err := repo.ListOpenDeadlines(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, deadlines, 1)
	assert.Equal(t, orgID, deadlines[0].OrganizationID)
}
