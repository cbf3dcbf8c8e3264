package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/internal/logging"
	"portfolio/internal/service"
)

// ExportHandler handles spreadsheet backup and restore.
type ExportHandler struct {
	exports service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exports service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Export handles GET /api/v1/admin/export
// @Summary Download all content as a workbook
// @Tags admin-export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /admin/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	buf, err := h.exports.Export(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	filename := fmt.Sprintf("portfolio-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, service.XLSXContentType, buf.Bytes())
}

// Import handles POST /api/v1/admin/import
// @Summary Restore content from a workbook
// @Description Records whose slug already exists are skipped.
// @Tags admin-export
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook produced by the export endpoint"
// @Param dry_run query bool false "Count records without writing"
// @Success 200 {object} Response{data=service.ImportResult}
// @Failure 400 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /admin/import [post]
func (h *ExportHandler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	dryRun, _ := strconv.ParseBool(c.DefaultQuery("dry_run", "false"))
	res, err := h.exports.Import(c.Request.Context(), file, dryRun)
	if err != nil {
		HandleError(c, err)
		return
	}
	logging.FromContext(c.Request.Context()).Info("workbook imported",
		logging.FieldDryRun, dryRun, "projects", res.Projects, "posts", res.Posts, "skipped", res.Skipped)
	RespondOK(c, res)
}

// Backup handles POST /api/v1/admin/backup
// @Summary Store a backup workbook in object storage
// @Tags admin-export
// @Produce json
// @Success 201 {object} Response{data=service.BackupResult}
// @Failure 500 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /admin/backup [post]
func (h *ExportHandler) Backup(c *gin.Context) {
	res, err := h.exports.Backup(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, res)
}
