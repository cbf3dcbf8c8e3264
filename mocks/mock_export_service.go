package mocks

import (
	"bytes"
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"portfolio/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context) (*bytes.Buffer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bytes.Buffer), args.Error(1)
}

func (m *MockExportService) Import(ctx context.Context, r io.Reader, dryRun bool) (*service.ImportResult, error) {
	args := m.Called(ctx, r, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

func (m *MockExportService) Backup(ctx context.Context) (*service.BackupResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BackupResult), args.Error(1)
}
