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

	"github.com/allisson/whistleblower/internal/organization/domain"
	"github.com/allisson/whistleblower/internal/testutil"
)

func TestMySQLOrganizationRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLOrganizationRepository(db)
		org := newTestOrganization()
		id, _ := org.ID.MarshalBinary()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO organizations")).
			WithArgs(
				id, org.Name, org.Slug, org.ContactEmail, "trial", "starter",
				org.EncryptionKeyHash, org.EncryptionKeyEnc, org.CreatedAt, org.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), org))
	})

	t.Run("Error_SlugTaken", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLOrganizationRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO organizations")).
			WillReturnError(&mysql.MySQLError{Number: 1062})

		err := repo.Create(context.Background(), newTestOrganization())
		assert.ErrorIs(t, err, domain.ErrSlugTaken)
	})
}

func TestMySQLOrganizationRepository_GetByID(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewMySQLOrganizationRepository(db)
	org := newTestOrganization()
	id, _ := org.ID.MarshalBinary()

	mock.ExpectQuery(regexp.QuoteMeta("FROM organizations WHERE id = ?")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(orgColumns).AddRow(
			id, org.Name, org.Slug, org.ContactEmail, "inactive", "starter",
			org.EncryptionKeyHash, org.EncryptionKeyEnc, org.CreatedAt, org.UpdatedAt,
		))

	got, err := repo.GetByID(context.Background(), org.ID)
	require.NoError(t, err)
	assert.Equal(t, org.ID, got.ID)
	assert.False(t, got.AcceptsReports())
}

func TestMySQLOrganizationRepository_UpdateSubscriptionStatus(t *testing.T) {
	at := time.Now().UTC()

	t.Run("Success_UnchangedValue", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLOrganizationRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE organizations SET subscription_status")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateSubscriptionStatus(context.Background(), uuid.Must(uuid.NewV7()), domain.StatusActive, at)
		require.NoError(t, err)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLOrganizationRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.UpdateSubscriptionStatus(context.Background(), uuid.Must(uuid.NewV7()), domain.StatusActive, at)
		assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)
	})
}
