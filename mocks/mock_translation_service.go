package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"portfolio/internal/service"
)

// MockTranslationService is a mock implementation of service.TranslationService.
type MockTranslationService struct {
	mock.Mock
}

func (m *MockTranslationService) TranslateFields(ctx context.Context, input service.FieldsInput) (*service.FieldsOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FieldsOutput), args.Error(1)
}

func (m *MockTranslationService) TranslateText(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *MockTranslationService) TranslateMarkdown(ctx context.Context, content string) (string, error) {
	args := m.Called(ctx, content)
	return args.String(0), args.Error(1)
}
