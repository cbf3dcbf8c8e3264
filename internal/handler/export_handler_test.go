package handler_test

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portfolio/internal/domain"
	"portfolio/internal/handler"
	"portfolio/internal/service"
	"portfolio/mocks"
)

func TestExportHandler_Export(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)
	svc.On("Export", mock.Anything).Return(bytes.NewBufferString("PK-xlsx"), nil)

	w := serve(http.MethodGet, "/admin/export", "/admin/export", nil, h.Export)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=\"portfolio-")
	assert.Equal(t, "PK-xlsx", w.Body.String())
}

func TestExportHandler_Export_Error(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)
	svc.On("Export", mock.Anything).Return(nil, errors.New("db down"))

	w := serve(http.MethodGet, "/admin/export", "/admin/export", nil, h.Export)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestExportHandler_Import_DryRun(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)
	svc.On("Import", mock.Anything, mock.Anything, true).Return(&service.ImportResult{Projects: 2, Skipped: 1}, nil)

	req := multipartRequest(t, "/admin/import?dry_run=true", "file",
		map[string][]byte{"backup.xlsx": []byte("PK")}, nil)
	w := serveRequest(req, "/admin/import", h.Import)

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, dataMap(t, w)["projects"])
	svc.AssertExpectations(t)
}

func TestExportHandler_Import_BadWorkbook(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)
	svc.On("Import", mock.Anything, mock.Anything, false).Return(nil, domain.ErrInvalidInput)

	req := multipartRequest(t, "/admin/import", "file", map[string][]byte{"x.xlsx": []byte("nope")}, nil)
	w := serveRequest(req, "/admin/import", h.Import)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportHandler_Import_MissingFile(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)

	req := multipartRequest(t, "/admin/import", "file", nil, nil)
	w := serveRequest(req, "/admin/import", h.Import)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decode(t, w).Error.Code)
}

func TestExportHandler_Backup(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)
	svc.On("Backup", mock.Anything).Return(&service.BackupResult{Key: "backups/portfolio-1.xlsx", URL: "https://signed"}, nil)

	w := serve(http.MethodPost, "/admin/backup", "/admin/backup", nil, h.Backup)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "https://signed", dataMap(t, w)["url"])
}
