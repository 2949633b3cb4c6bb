// Package mocks provides testify mocks for the authentication services.
package mocks

import (
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/whistleblower/internal/auth/domain"
)

// MockAdminCredentialVerifier is a mock implementation of service.AdminCredentialVerifier.
type MockAdminCredentialVerifier struct {
	mock.Mock
}

func (m *MockAdminCredentialVerifier) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockAdminCredentialVerifier) Verify(email, password string) bool {
	args := m.Called(email, password)
	return args.Bool(0)
}

// MockAdminSessionService is a mock implementation of service.AdminSessionService.
type MockAdminSessionService struct {
	mock.Mock
}

func (m *MockAdminSessionService) Issue() (*authDomain.Session, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}

func (m *MockAdminSessionService) Verify(token string) bool {
	args := m.Called(token)
	return args.Bool(0)
}

// MockComplianceSessionService is a mock implementation of service.ComplianceSessionService.
type MockComplianceSessionService struct {
	mock.Mock
}

func (m *MockComplianceSessionService) Issue(principal *authDomain.Principal) (*authDomain.Session, error) {
	args := m.Called(principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}

func (m *MockComplianceSessionService) Verify(token string) (*authDomain.Principal, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Principal), args.Error(1)
}
