// Package repository implements organization persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/whistleblower/internal/crypto/domain"
	"github.com/allisson/whistleblower/internal/database"
	apperrors "github.com/allisson/whistleblower/internal/errors"
	"github.com/allisson/whistleblower/internal/organization/domain"
)

const organizationColumns = `id, name, slug, contact_email, subscription_status, subscription_plan,
			  encryption_key_hash, encryption_key_enc, created_at, updated_at`

// PostgreSQLOrganizationRepository stores organizations in PostgreSQL.
type PostgreSQLOrganizationRepository struct {
	db *sql.DB
}

// NewPostgreSQLOrganizationRepository creates a new PostgreSQLOrganizationRepository.
func NewPostgreSQLOrganizationRepository(db *sql.DB) *PostgreSQLOrganizationRepository {
	return &PostgreSQLOrganizationRepository{db: db}
}

// Create inserts an organization. A duplicate slug returns domain.ErrSlugTaken.
func (r *PostgreSQLOrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO organizations (` + organizationColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		org.ID,
		org.Name,
		org.Slug,
		org.ContactEmail,
		string(org.SubscriptionStatus),
		string(org.SubscriptionPlan),
		org.EncryptionKeyHash,
		org.EncryptionKeyEnc,
		org.CreatedAt,
		org.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrSlugTaken
		}
		return apperrors.Wrap(err, "failed to create organization")
	}
	return nil
}

// GetByID retrieves an organization by ID.
func (r *PostgreSQLOrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetBySlug retrieves an organization by slug.
func (r *PostgreSQLOrganizationRepository) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE slug = $1`
	return r.getOne(ctx, query, slug)
}

func (r *PostgreSQLOrganizationRepository) getOne(
	ctx context.Context,
	query string,
	arg any,
) (*domain.Organization, error) {
	querier := database.GetTx(ctx, r.db)

	var org domain.Organization
	var status, plan string
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&org.ID,
		&org.Name,
		&org.Slug,
		&org.ContactEmail,
		&status,
		&plan,
		&org.EncryptionKeyHash,
		&org.EncryptionKeyEnc,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get organization")
	}
	org.SubscriptionStatus = domain.SubscriptionStatus(status)
	org.SubscriptionPlan = domain.SubscriptionPlan(plan)

	return &org, nil
}

// ExistsBySlug reports whether the slug is in use.
func (r *PostgreSQLOrganizationRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM organizations WHERE slug = $1)`
	if err := querier.QueryRowContext(ctx, query, slug).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check organization slug")
	}
	return exists, nil
}

// List returns organizations newest first together with their report counts.
func (r *PostgreSQLOrganizationRepository) List(ctx context.Context, offset, limit int) ([]*domain.Summary, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT o.id, o.name, o.slug, o.contact_email, o.subscription_status, o.subscription_plan,
			  o.created_at, COUNT(r.id)
			  FROM organizations o
			  LEFT JOIN reports r ON r.organization_id = o.id
			  GROUP BY o.id
			  ORDER BY o.created_at DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list organizations")
	}
	defer func() {
		_ = rows.Close()
	}()

	summaries := make([]*domain.Summary, 0)
	for rows.Next() {
		var s domain.Summary
		var status, plan string
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Slug,
			&s.ContactEmail,
			&status,
			&plan,
			&s.CreatedAt,
			&s.ReportCount,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan organization row")
		}
		s.SubscriptionStatus = domain.SubscriptionStatus(status)
		s.SubscriptionPlan = domain.SubscriptionPlan(plan)
		summaries = append(summaries, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating organization rows")
	}

	return summaries, nil
}

// UpdateSubscriptionStatus sets the subscription status of an organization.
func (r *PostgreSQLOrganizationRepository) UpdateSubscriptionStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.SubscriptionStatus,
	at time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE organizations SET subscription_status = $1, updated_at = $2 WHERE id = $3`
	result, err := querier.ExecContext(ctx, query, string(status), at, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update subscription status")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return domain.ErrOrganizationNotFound
	}
	return nil
}

// GetEncryptionKey returns the wrapped organization key and its hash.
func (r *PostgreSQLOrganizationRepository) GetEncryptionKey(
	ctx context.Context,
	id uuid.UUID,
) (*cryptoDomain.StoredOrganizationKey, error) {
	querier := database.GetTx(ctx, r.db)

	stored := &cryptoDomain.StoredOrganizationKey{OrganizationID: id}
	query := `SELECT encryption_key_enc, encryption_key_hash FROM organizations WHERE id = $1`
	err := querier.QueryRowContext(ctx, query, id).Scan(&stored.Wrapped, &stored.Hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get organization key")
	}

	return stored, nil
}
