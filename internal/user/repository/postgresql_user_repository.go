// Package repository implements compliance user persistence for PostgreSQL and MySQL.
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

// PostgreSQLUserRepository stores compliance users in PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// Create inserts a compliance user. A duplicate e-mail returns domain.ErrEmailTaken.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO compliance_users
			  (id, organization_id, email, password_hash, name, role, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.OrganizationID,
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
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, organization_id, email, password_hash, name, role, last_login_at, created_at, updated_at
			  FROM compliance_users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByEmail retrieves a compliance user by its normalized e-mail address.
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, organization_id, email, password_hash, name, role, last_login_at, created_at, updated_at
			  FROM compliance_users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *PostgreSQLUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	var user domain.User
	var role string
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.OrganizationID,
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
	user.Role = domain.Role(role)

	return &user, nil
}

// ExistsByEmail reports whether a compliance user with the e-mail exists.
func (r *PostgreSQLUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM compliance_users WHERE email = $1)`
	if err := querier.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check compliance user email")
	}
	return exists, nil
}

// UpdateLastLogin stamps last_login_at.
func (r *PostgreSQLUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE compliance_users SET last_login_at = $1, updated_at = $1 WHERE id = $2`
	if _, err := querier.ExecContext(ctx, query, at, id); err != nil {
		return apperrors.Wrap(err, "failed to update last login")
	}
	return nil
}
