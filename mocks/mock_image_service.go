package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"portfolio/internal/service"
)

// MockImageService is a mock implementation of service.ImageService.
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Upload(ctx context.Context, input service.ImageUploadInput) (*service.UploadedImage, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadedImage), args.Error(1)
}

func (m *MockImageService) DeleteByURL(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *MockImageService) DeleteProjectImages(ctx context.Context, thumbnail string, images []string) {
	m.Called(ctx, thumbnail, images)
}

func (m *MockImageService) MoveProjectImages(ctx context.Context, oldSlug, newSlug, thumbnail string, images []string) (string, []string) {
	args := m.Called(ctx, oldSlug, newSlug, thumbnail, images)
	if args.Get(1) == nil {
		return args.String(0), nil
	}
	return args.String(0), args.Get(1).([]string)
}
