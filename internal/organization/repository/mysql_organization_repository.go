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

// MySQLOrganizationRepository stores organizations in MySQL using BINARY(16) UUIDs.
type MySQLOrganizationRepository struct {
	db *sql.DB
}

// NewMySQLOrganizationRepository creates a new MySQLOrganizationRepository.
func NewMySQLOrganizationRepository(db *sql.DB) *MySQLOrganizationRepository {
	return &MySQLOrganizationRepository{db: db}
}

// Create inserts an organization. A duplicate slug returns domain.ErrSlugTaken.
func (r *MySQLOrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	querier := database.GetTx(ctx, r.db)

	id, err := org.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal organization id")
	}

	query := `INSERT INTO organizations (` + organizationColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (r *MySQLOrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = ?`
	return r.getOne(ctx, query, idBytes)
}

// GetBySlug retrieves an organization by slug.
func (r *MySQLOrganizationRepository) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE slug = ?`
	return r.getOne(ctx, query, slug)
}

func (r *MySQLOrganizationRepository) getOne(ctx context.Context, query string, arg any) (*domain.Organization, error) {
	querier := database.GetTx(ctx, r.db)

	var org domain.Organization
	var idBytes []byte
	var status, plan string
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&idBytes,
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

	if err := org.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
	}
	org.SubscriptionStatus = domain.SubscriptionStatus(status)
	org.SubscriptionPlan = domain.SubscriptionPlan(plan)

	return &org, nil
}

// ExistsBySlug reports whether the slug is in use.
func (r *MySQLOrganizationRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM organizations WHERE slug = ?)`
	if err := querier.QueryRowContext(ctx, query, slug).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check organization slug")
	}
	return exists, nil
}

// List returns organizations newest first together with their report counts.
func (r *MySQLOrganizationRepository) List(ctx context.Context, offset, limit int) ([]*domain.Summary, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT o.id, o.name, o.slug, o.contact_email, o.subscription_status, o.subscription_plan,
			  o.created_at, COUNT(r.id)
			  FROM organizations o
			  LEFT JOIN reports r ON r.organization_id = o.id
			  GROUP BY o.id, o.name, o.slug, o.contact_email, o.subscription_status, o.subscription_plan, o.created_at
			  ORDER BY o.created_at DESC
			  LIMIT ? OFFSET ?`

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
		var idBytes []byte
		var status, plan string
		if err := rows.Scan(
			&idBytes,
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
		if err := s.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
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
func (r *MySQLOrganizationRepository) UpdateSubscriptionStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.SubscriptionStatus,
	at time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal organization id")
	}

	// MySQL reports zero affected rows when the value is unchanged, so existence is
	// checked separately.
	var exists bool
	if err := querier.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM organizations WHERE id = ?)`, idBytes).
		Scan(&exists); err != nil {
		return apperrors.Wrap(err, "failed to check organization")
	}
	if !exists {
		return domain.ErrOrganizationNotFound
	}

	query := `UPDATE organizations SET subscription_status = ?, updated_at = ? WHERE id = ?`
	if _, err := querier.ExecContext(ctx, query, string(status), at, idBytes); err != nil {
		return apperrors.Wrap(err, "failed to update subscription status")
	}
	return nil
}

// GetEncryptionKey returns the wrapped organization key and its hash.
func (r *MySQLOrganizationRepository) GetEncryptionKey(
	ctx context.Context,
	id uuid.UUID,
) (*cryptoDomain.StoredOrganizationKey, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	stored := &cryptoDomain.StoredOrganizationKey{OrganizationID: id}
	query := `SELECT encryption_key_enc, encryption_key_hash FROM organizations WHERE id = ?`
	err = querier.QueryRowContext(ctx, query, idBytes).Scan(&stored.Wrapped, &stored.Hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get organization key")
	}

	return stored, nil
}
