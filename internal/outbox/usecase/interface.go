// Package usecase implements the outbox worker. It claims pending events in batches and
// hands each one to an EventProcessor.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	orgDomain "github.com/allisson/whistleblower/internal/organization/domain"
	"github.com/allisson/whistleblower/internal/outbox/domain"
)

// Config holds outbox use case configuration
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// OutboxEventRepository defines outbox event repository operations
type OutboxEventRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	Update(ctx context.Context, event *domain.OutboxEvent) error
}

// OrganizationLookup resolves the recipient of a notification.
type OrganizationLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*orgDomain.Organization, error)
}

// EventProcessor defines the interface for processing different event types
type EventProcessor interface {
	Process(ctx context.Context, event *domain.OutboxEvent) error
}

// UseCase defines the interface for outbox use cases
type UseCase interface {
	// Start polls until ctx is cancelled and returns ctx.Err().
	Start(ctx context.Context) error

	// ProcessEvents handles one batch of pending events.
	ProcessEvents(ctx context.Context) error
}
