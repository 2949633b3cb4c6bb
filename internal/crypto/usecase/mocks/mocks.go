// Package mocks provides testify mocks for the crypto use case interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/whistleblower/internal/crypto/domain"
)

// MockOrganizationKeyRepository is a mock implementation of OrganizationKeyRepository.
type MockOrganizationKeyRepository struct {
	mock.Mock
}

// GetEncryptionKey mocks the GetEncryptionKey method.
func (m *MockOrganizationKeyRepository) GetEncryptionKey(
	ctx context.Context,
	organizationID uuid.UUID,
) (*cryptoDomain.StoredOrganizationKey, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.StoredOrganizationKey), args.Error(1)
}

// MockOrganizationKeyUseCase is a mock implementation of OrganizationKeyUseCase.
type MockOrganizationKeyUseCase struct {
	mock.Mock
}

// Provision mocks the Provision method.
func (m *MockOrganizationKeyUseCase) Provision(ctx context.Context) (*cryptoDomain.ProvisionedKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.ProvisionedKey), args.Error(1)
}

// Resolve mocks the Resolve method. A copy of the configured key is returned so
// callers that zero it do not affect the test fixture.
func (m *MockOrganizationKeyUseCase) Resolve(ctx context.Context, organizationID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	key := args.Get(0).([]byte)
	out := make([]byte, len(key))
	copy(out, key)
	return out, args.Error(1)
}

// Verify mocks the Verify method.
func (m *MockOrganizationKeyUseCase) Verify(ctx context.Context, organizationID uuid.UUID, keyHex string) (bool, error) {
	args := m.Called(ctx, organizationID, keyHex)
	return args.Bool(0), args.Error(1)
}
