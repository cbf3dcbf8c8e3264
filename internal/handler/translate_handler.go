package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio/internal/domain"
	"portfolio/internal/service"
)

// TranslateHandler exposes the translation pipeline to the admin editor.
type TranslateHandler struct {
	translation service.TranslationService
}

// NewTranslateHandler creates a new TranslateHandler.
func NewTranslateHandler(translation service.TranslationService) *TranslateHandler {
	return &TranslateHandler{translation: translation}
}

// Translate handles POST /api/v1/admin/translate
// @Summary Translate a draft
// @Description Translate title and description as plain text and content as Markdown.
// @Description Fields whose provider call fails keep their Spanish text and are listed in degraded.
// @Tags admin-translate
// @Accept json
// @Produce json
// @Param body body TranslateRequest true "Spanish fields"
// @Success 200 {object} Response{data=service.FieldsOutput}
// @Failure 400 {object} ErrorResponseBody "Missing fields"
// @Failure 500 {object} ErrorResponseBody "Translation not configured"
// @Security BearerAuth
// @Router /admin/translate [post]
func (h *TranslateHandler) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" || strings.TrimSpace(req.Content) == "" {
		HandleError(c, domain.ErrMissingTranslatableFields)
		return
	}

	out, err := h.translation.TranslateFields(c.Request.Context(), service.FieldsInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, out)
}
