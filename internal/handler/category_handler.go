package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categories service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /api/v1/categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} Response{data=[]domain.Category}
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Cache-Control", cacheCategories)
	RespondOK(c, categories)
}

// GetBySlug handles GET /api/v1/categories/:slug
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} Response{data=domain.Category}
// @Failure 404 {object} ErrorResponseBody
// @Router /categories/{slug} [get]
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	category, err := h.categories.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Cache-Control", cacheCategories)
	RespondOK(c, category)
}

// Create handles POST /api/v1/admin/categories
// @Summary Create a category
// @Tags admin-categories
// @Accept json
// @Produce json
// @Param body body service.CreateCategoryInput true "Category"
// @Success 201 {object} Response{data=domain.Category}
// @Failure 400 {object} ErrorResponseBody
// @Failure 409 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /admin/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var input service.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	category, err := h.categories.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, category)
}

// Update handles PUT /api/v1/admin/categories/:id
// @Summary Update a category
// @Tags admin-categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param body body service.UpdateCategoryInput true "Fields to change"
// @Success 200 {object} Response{data=domain.Category}
// @Security BearerAuth
// @Router /admin/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	category, err := h.categories.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, category)
}

// Delete handles DELETE /api/v1/admin/categories/:id
// @Summary Delete a category
// @Tags admin-categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Security BearerAuth
// @Router /admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "category deleted"})
}
