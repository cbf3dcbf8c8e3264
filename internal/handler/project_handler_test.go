package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portfolio/internal/domain"
	"portfolio/internal/handler"
	"portfolio/internal/service"
	"portfolio/mocks"
)

func testProject() *domain.Project {
	return &domain.Project{
		ID:          uuid.New(),
		Title:       "Mi Proyecto",
		Description: "Una descripción",
		Content:     "# Hola\n\nTexto.",
		TitleEN:     "My Project",
		ContentEN:   "# Hello\n\nText.",
		Slug:        "mi-proyecto",
		IsPublished: true,
		Status:      domain.ProjectStatusCompleted,
	}
}

func TestProjectHandler_List_English(t *testing.T) {
	svc := new(mocks.MockProjectService)
	h := handler.NewProjectHandler(svc)
	svc.On("ListPublished", mock.Anything, 0).Return([]domain.Project{*testProject()}, nil)

	w := serve(http.MethodGet, "/projects", "/projects?lang=en", nil, h.List)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Cache-Control"), "s-maxage=3600")
	resp := decode(t, w)
	items := resp.Data.([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "My Project", item["title"])
	assert.Equal(t, "Una descripción", item["description"], "missing mirror falls back to Spanish")
	assert.Equal(t, "en", item["locale"])
}

func TestProjectHandler_List_Featured(t *testing.T) {
	svc := new(mocks.MockProjectService)
	h := handler.NewProjectHandler(svc)
	svc.On("ListFeatured", mock.Anything, 3).Return([]domain.Project{}, nil)

	w := serve(http.MethodGet, "/projects", "/projects?featured=true&limit=3", nil, h.List)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestProjectHandler_List_ByCategory(t *testing.T) {
	svc := new(mocks.MockProjectService)
	h := handler.NewProjectHandler(svc)
	svc.On("ListByCategory", mock.Anything, "web", 0).Return([]domain.Project{}, nil)

	w := serve(http.MethodGet, "/projects", "/projects?category=web", nil, h.List)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestProjectHandler_List_InvalidLocale(t *testing.T) {
	svc := new(mocks.MockProjectService)
	h := handler.NewProjectHandler(svc)

	w := serve(http.MethodGet, "/projects", "/projects?lang=fr", nil, h.List)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_LOCALE", decode(t, w).Error.Code)
	svc.AssertNotCalled(t, "ListPublished", mock.Anything, mock.Anything)
}

func TestProjectHandler_GetBySlug_RendersHTML(t *testing.T) {
	svc := new(mocks.MockProjectService)
	h := handler.NewProjectHandler(svc)
	svc.On("GetBySlug", mock.Anything, "mi-proyecto", false).Return(testProject(), nil)

	w := serve(http.MethodGet, "/projects/:slug", "/projects/mi-proyecto", nil, h.GetBySlug)

	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, w)
	assert.Equal(t, "Mi Proyecto", data["title"])
	assert.Contains(t, data["content_html"], "<h1")
	assert.NotEmpty(t, w.Header().Get("Cache-Control"))
}

func TestProjectHandler_GetBySlug_NotFound(t *testing.T) {
	svc := new(mocks.MockProjectService)
	h := handler.NewProjectHandler(svc)
	svc.On("GetBySlug", mock.Anything, "nada", false).Return(nil, domain.ErrNotFound)

	w := serve(http.MethodGet, "/projects/:slug", "/projects/nada", nil, h.GetBySlug)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("Cache-Control"))
}

func TestProjectHandler_Create(t *testing.T) {
	svc := new(mocks.MockProjectService)
	h := handler.NewProjectHandler(svc)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateProjectInput) bool {
		return in.Title == "Mi Proyecto" && len(in.Technologies) == 1
	})).Return(testProject(), nil)

	w := serve(http.MethodPost, "/admin/projects", "/admin/projects", jsonBody(t, map[string]interface{}{
		"title":        "Mi Proyecto",
		"description":  "Una descripción",
		"content":      "# Hola",
		"technologies": []string{"Go"},
	}), h.Create)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestProjectHandler_Create_ValidationError(t *testing.T) {
	svc := new(mocks.MockProjectService)
	h := handler.NewProjectHandler(svc)

	w := serve(http.MethodPost, "/admin/projects", "/admin/projects", jsonBody(t, map[string]string{
		"description": "sin título",
	}), h.Create)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
}

func TestProjectHandler_Create_DuplicateSlug(t *testing.T) {
	svc := new(mocks.MockProjectService)
	h := handler.NewProjectHandler(svc)
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateSlug)

	w := serve(http.MethodPost, "/admin/projects", "/admin/projects", jsonBody(t, map[string]string{
		"title": "Mi Proyecto", "description": "d", "content": "c",
	}), h.Create)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProjectHandler_Update_InvalidID(t *testing.T) {
	svc := new(mocks.MockProjectService)
	h := handler.NewProjectHandler(svc)

	w := serve(http.MethodPut, "/admin/projects/:id", "/admin/projects/not-a-uuid",
		jsonBody(t, map[string]string{"title": "x"}), h.Update)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decode(t, w).Error.Code)
}

func TestProjectHandler_Update(t *testing.T) {
	svc := new(mocks.MockProjectService)
	h := handler.NewProjectHandler(svc)
	p := testProject()
	svc.On("Update", mock.Anything, p.ID, mock.MatchedBy(func(in service.UpdateProjectInput) bool {
		return in.Title != nil && *in.Title == "Nuevo" && in.Content == nil
	})).Return(p, nil)

	w := serve(http.MethodPut, "/admin/projects/:id", "/admin/projects/"+p.ID.String(),
		jsonBody(t, map[string]string{"title": "Nuevo"}), h.Update)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestProjectHandler_Delete(t *testing.T) {
	svc := new(mocks.MockProjectService)
	h := handler.NewProjectHandler(svc)
	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(nil)

	w := serve(http.MethodDelete, "/admin/projects/:id", "/admin/projects/"+id.String(), nil, h.Delete)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProjectHandler_Retranslate_NotConfigured(t *testing.T) {
	svc := new(mocks.MockProjectService)
	h := handler.NewProjectHandler(svc)
	id := uuid.New()
	svc.On("Retranslate", mock.Anything, id).Return(nil, domain.ErrTranslationNotConfigured)

	w := serve(http.MethodPost, "/admin/projects/:id/translate", "/admin/projects/"+id.String()+"/translate", nil, h.Retranslate)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "TRANSLATION_NOT_CONFIGURED", decode(t, w).Error.Code)
}

func TestProjectHandler_AdminList_Paginated(t *testing.T) {
	svc := new(mocks.MockProjectService)
	h := handler.NewProjectHandler(svc)
	svc.On("ListAll", mock.Anything, 20, 100).Return([]domain.Project{*testProject()}, 21, nil)

	w := serve(http.MethodGet, "/admin/projects", "/admin/projects?offset=20&limit=100", nil, h.AdminList)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 21, resp.Meta.Total)
}

func TestProjectHandler_AdminList_Error(t *testing.T) {
	svc := new(mocks.MockProjectService)
	h := handler.NewProjectHandler(svc)
	svc.On("ListAll", mock.Anything, 0, 20).Return(nil, 0, errors.New("db down"))

	w := serve(http.MethodGet, "/admin/projects", "/admin/projects", nil, h.AdminList)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", decode(t, w).Error.Code)
}
