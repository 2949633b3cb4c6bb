package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/whistleblower/internal/database"
	apperrors "github.com/allisson/whistleblower/internal/errors"
	"github.com/allisson/whistleblower/internal/user/domain"
)

// MySQLUserRepository stores compliance users in MySQL using BINARY(16) UUIDs.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create inserts a compliance user. A duplicate e-mail returns domain.ErrEmailTaken.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}
	orgID, err := user.OrganizationID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal organization id")
	}

	query := `INSERT INTO compliance_users
			  (id, organization_id, email, password_hash, name, role, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		orgID,
		user.Email,
		user.PasswordHash,
		user.Name,
		string(user.Role),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		if database.IsForeignKeyViolation(err) {
			return domain.ErrOrganizationMissing
		}
		return apperrors.Wrap(err, "failed to create compliance user")
	}
	return nil
}

// GetByID retrieves a compliance user by ID.
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT id, organization_id, email, password_hash, name, role, last_login_at, created_at, updated_at
			  FROM compliance_users WHERE id = ?`
	return r.getOne(ctx, query, idBytes)
}

// GetByEmail retrieves a compliance user by its normalized e-mail address.
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, organization_id, email, password_hash, name, role, last_login_at, created_at, updated_at
			  FROM compliance_users WHERE email = ?`
	return r.getOne(ctx, query, email)
}

func (r *MySQLUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	var user domain.User
	var idBytes, orgIDBytes []byte
	var role string
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&idBytes,
		&orgIDBytes,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&role,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get compliance user")
	}

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}
	if err := user.OrganizationID.UnmarshalBinary(orgIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
	}
	user.Role = domain.Role(role)

	return &user, nil
}

// ExistsByEmail reports whether a compliance user with the e-mail exists.
func (r *MySQLUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM compliance_users WHERE email = ?)`
	if err := querier.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check compliance user email")
	}
	return exists, nil
}

// UpdateLastLogin stamps last_login_at.
func (r *MySQLUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `UPDATE compliance_users SET last_login_at = ?, updated_at = ? WHERE id = ?`
	if _, err := querier.ExecContext(ctx, query, at, at, idBytes); err != nil {
		return apperrors.Wrap(err, "failed to update last login")
	}
	return nil
}
