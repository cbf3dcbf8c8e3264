package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNotifier is a mock implementation of port.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyTranslationDegraded(ctx context.Context, subject string, fields []string) error {
	args := m.Called(ctx, subject, fields)
	return args.Error(0)
}
