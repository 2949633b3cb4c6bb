// Package usecase implements organization onboarding and administration.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/whistleblower/internal/organization/domain"
)

// OrganizationRepository persists organizations.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Organization, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Summary, error)
	UpdateSubscriptionStatus(ctx context.Context, id uuid.UUID, status domain.SubscriptionStatus, at time.Time) error
}

// CreateOrganizationInput contains the data for onboarding an organization together with
// its first compliance admin.
type CreateOrganizationInput struct {
	Name          string
	Slug          string
	ContactEmail  string
	Plan          domain.SubscriptionPlan
	AdminEmail    string
	AdminPassword string
	AdminName     *string
}

// CreateOrganizationOutput is returned once after onboarding. RecoveryKey is the hex
// organization key and is never available again.
type CreateOrganizationOutput struct {
	OrganizationID uuid.UUID
	Slug           string
	RecoveryKey    string
}

// UseCase defines organization operations.
type UseCase interface {
	Create(ctx context.Context, input CreateOrganizationInput) (*CreateOrganizationOutput, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Summary, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	UpdateSubscriptionStatus(ctx context.Context, id uuid.UUID, status domain.SubscriptionStatus) error
}
