// Package usecase implements compliance user business logic.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/whistleblower/internal/user/domain"
)

// UserRepository persists compliance users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// CreateUserInput contains the data for a new compliance user.
type CreateUserInput struct {
	OrganizationID uuid.UUID
	Email          string
	Password       string
	Name           *string
	Role           domain.Role
}

// UseCase defines compliance user operations.
type UseCase interface {
	// Create validates the input, hashes the password and inserts the user. It joins a
	// transaction already present in ctx.
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)

	// EmailTaken reports whether the normalized e-mail is already registered.
	EmailTaken(ctx context.Context, email string) (bool, error)

	// Authenticate returns the user for valid credentials or ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
