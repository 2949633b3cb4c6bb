// Package mocks provides testify mocks for the outbox notification services.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNotifier is a mock implementation of service.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyNewReport(ctx context.Context, to, orgName string) error {
	args := m.Called(ctx, to, orgName)
	return args.Error(0)
}

func (m *MockNotifier) NotifyNewMessage(ctx context.Context, to, orgName string) error {
	args := m.Called(ctx, to, orgName)
	return args.Error(0)
}

func (m *MockNotifier) NotifyDeadlineReminder(
	ctx context.Context,
	to, orgName string,
	overdue, upcoming int,
) error {
	args := m.Called(ctx, to, orgName, overdue, upcoming)
	return args.Error(0)
}
