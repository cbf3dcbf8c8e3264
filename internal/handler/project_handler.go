package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio/internal/domain"
	"portfolio/internal/logging"
	"portfolio/internal/markdown"
	"portfolio/internal/service"
)

// ProjectHandler handles public and admin project endpoints.
type ProjectHandler struct {
	projects service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List handles GET /api/v1/projects
// @Summary List published projects
// @Description Published projects ordered by order, then newest. featured=true returns the home page selection.
// @Tags projects
// @Produce json
// @Param featured query bool false "Only featured projects"
// @Param category query string false "Category slug"
// @Param limit query int false "Maximum number of projects"
// @Param lang query string false "Locale (es or en)" default(es)
// @Success 200 {object} Response{data=[]domain.LocalizedProject}
// @Failure 400 {object} ErrorResponseBody
// @Router /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	locale, ok := parseLocale(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	featured, _ := strconv.ParseBool(c.Query("featured"))

	var (
		projects []domain.Project
		err      error
	)
	switch {
	case featured:
		projects, err = h.projects.ListFeatured(c.Request.Context(), limit)
	case c.Query("category") != "":
		projects, err = h.projects.ListByCategory(c.Request.Context(), c.Query("category"), limit)
	default:
		projects, err = h.projects.ListPublished(c.Request.Context(), limit)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	out := make([]*domain.LocalizedProject, len(projects))
	for i := range projects {
		out[i] = projects[i].Localize(locale)
	}
	c.Header("Cache-Control", cacheContent)
	RespondOK(c, out)
}

// GetBySlug handles GET /api/v1/projects/:slug
// @Summary Get a published project
// @Description Returns the project in the requested locale with its Markdown content rendered to HTML.
// @Tags projects
// @Produce json
// @Param slug path string true "Project slug"
// @Param lang query string false "Locale (es or en)" default(es)
// @Success 200 {object} Response{data=domain.LocalizedProject}
// @Failure 404 {object} ErrorResponseBody
// @Router /projects/{slug} [get]
func (h *ProjectHandler) GetBySlug(c *gin.Context) {
	locale, ok := parseLocale(c)
	if !ok {
		return
	}
	p, err := h.projects.GetBySlug(c.Request.Context(), c.Param("slug"), false)
	if err != nil {
		HandleError(c, err)
		return
	}

	lp := p.Localize(locale)
	html, err := markdown.Render(lp.Content)
	if err != nil {
		logging.FromContext(c.Request.Context()).Warn("could not render project content",
			logging.FieldSlug, p.Slug, logging.FieldError, err)
	}
	lp.ContentHTML = html
	c.Header("Cache-Control", cacheContent)
	RespondOK(c, lp)
}

// AdminList handles GET /api/v1/admin/projects
// @Summary List all projects
// @Tags admin-projects
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Project,meta=PagMeta}
// @Security BearerAuth
// @Router /admin/projects [get]
func (h *ProjectHandler) AdminList(c *gin.Context) {
	offset, limit := parsePagination(c)
	projects, total, err := h.projects.ListAll(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, projects, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// AdminGet handles GET /api/v1/admin/projects/:id
// @Summary Get a project, drafts included
// @Tags admin-projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} Response{data=domain.Project}
// @Failure 404 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /admin/projects/{id} [get]
func (h *ProjectHandler) AdminGet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}

// Create handles POST /api/v1/admin/projects
// @Summary Create a project
// @Description Spanish text is translated into the English fields before saving.
// @Tags admin-projects
// @Accept json
// @Produce json
// @Param body body service.CreateProjectInput true "Project"
// @Success 201 {object} Response{data=domain.Project}
// @Failure 400 {object} ErrorResponseBody
// @Failure 409 {object} ErrorResponseBody "Slug already used"
// @Security BearerAuth
// @Router /admin/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var input service.CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	p, err := h.projects.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, p)
}

// Update handles PUT /api/v1/admin/projects/:id
// @Summary Update a project
// @Tags admin-projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body service.UpdateProjectInput true "Fields to change"
// @Success 200 {object} Response{data=domain.Project}
// @Failure 404 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /admin/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.UpdateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	p, err := h.projects.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}

// Delete handles DELETE /api/v1/admin/projects/:id
// @Summary Delete a project and its images
// @Tags admin-projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /admin/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "project deleted"})
}

// Retranslate handles POST /api/v1/admin/projects/:id/translate
// @Summary Refresh the English fields of a project
// @Tags admin-projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} Response{data=domain.Project}
// @Failure 404 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /admin/projects/{id}/translate [post]
func (h *ProjectHandler) Retranslate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.projects.Retranslate(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}
