package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portfolio/internal/domain"
	"portfolio/internal/port"
	"portfolio/internal/service"
	"portfolio/mocks"
)

type projectDeps struct {
	repo        *mocks.MockProjectRepo
	translation *mocks.MockTranslationService
	images      *mocks.MockImageService
	svc         service.ProjectService
}

func newProjectDeps() projectDeps {
	d := projectDeps{
		repo:        new(mocks.MockProjectRepo),
		translation: new(mocks.MockTranslationService),
		images:      new(mocks.MockImageService),
	}
	d.svc = service.NewProjectService(d.repo, d.translation, d.images)
	return d
}

func TestProjectService_Create_TranslatesAndDerivesFields(t *testing.T) {
	d := newProjectDeps()

	d.translation.On("TranslateFields", mock.Anything, service.FieldsInput{
		Title:       "Diseño Web Rápido",
		Description: "Una descripción",
		Content:     "# Contenido",
	}).Return(&service.FieldsOutput{
		TitleEN:       "Fast Web Design",
		DescriptionEN: "A description",
		ContentEN:     "# Content",
	}, nil)
	d.repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Project")).Return(nil)

	p, err := d.svc.Create(context.Background(), service.CreateProjectInput{
		Title:       "Diseño Web Rápido",
		Description: "Una descripción",
		Content:     "# Contenido",
		Order:       2,
	})

	require.NoError(t, err)
	assert.Equal(t, "diseno-web-rapido", p.Slug)
	assert.Equal(t, "Fast Web Design", p.TitleEN)
	assert.Equal(t, "A description", p.DescriptionEN)
	assert.Equal(t, "# Content", p.ContentEN)
	assert.Equal(t, domain.ProjectStatusCompleted, p.Status)
	assert.True(t, p.Featured)
	assert.NotNil(t, p.Images)
	assert.NotNil(t, p.Technologies)
	d.repo.AssertExpectations(t)
}

func TestProjectService_Create_HighOrderNotFeatured(t *testing.T) {
	d := newProjectDeps()
	d.translation.On("TranslateFields", mock.Anything, mock.Anything).Return(&service.FieldsOutput{}, nil)
	d.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	p, err := d.svc.Create(context.Background(), service.CreateProjectInput{Title: "Otro", Order: domain.FeaturedOrderLimit})

	require.NoError(t, err)
	assert.False(t, p.Featured)
}

func TestProjectService_Create_ExplicitFeaturedWins(t *testing.T) {
	d := newProjectDeps()
	d.translation.On("TranslateFields", mock.Anything, mock.Anything).Return(&service.FieldsOutput{}, nil)
	d.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	featured := false

	p, err := d.svc.Create(context.Background(), service.CreateProjectInput{Title: "Uno", Featured: &featured})

	require.NoError(t, err)
	assert.False(t, p.Featured)
}

func TestProjectService_Create_NotConfiguredCopiesSource(t *testing.T) {
	d := newProjectDeps()
	d.translation.On("TranslateFields", mock.Anything, mock.Anything).Return(nil, domain.ErrTranslationNotConfigured)
	d.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	p, err := d.svc.Create(context.Background(), service.CreateProjectInput{
		Title:       "Título",
		Description: "Desc",
		Content:     "Cuerpo",
	})

	require.NoError(t, err)
	assert.Equal(t, "Título", p.TitleEN)
	assert.Equal(t, "Desc", p.DescriptionEN)
	assert.Equal(t, "Cuerpo", p.ContentEN)
}

func TestProjectService_Create_InvalidStatus(t *testing.T) {
	d := newProjectDeps()

	_, err := d.svc.Create(context.Background(), service.CreateProjectInput{Title: "x", Status: "archived"})

	assert.ErrorIs(t, err, domain.ErrInvalidProjectStatus)
	d.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectService_Create_EmptySlug(t *testing.T) {
	d := newProjectDeps()

	_, err := d.svc.Create(context.Background(), service.CreateProjectInput{Title: "¿¡!?"})

	assert.ErrorIs(t, err, domain.ErrEmptySlug)
}

func TestProjectService_Create_DuplicateSlug(t *testing.T) {
	d := newProjectDeps()
	d.translation.On("TranslateFields", mock.Anything, mock.Anything).Return(&service.FieldsOutput{}, nil)
	d.repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateSlug)

	_, err := d.svc.Create(context.Background(), service.CreateProjectInput{Title: "Repetido"})

	assert.ErrorIs(t, err, domain.ErrDuplicateSlug)
}

func TestProjectService_Update_TitleChangeMovesImagesAndRetranslates(t *testing.T) {
	d := newProjectDeps()
	id := uuid.New()
	existing := &domain.Project{
		ID:            id,
		Title:         "Viejo",
		Description:   "Desc",
		Content:       "Cuerpo",
		TitleEN:       "Old",
		DescriptionEN: "Desc",
		ContentEN:     "Body",
		Slug:          "viejo",
		Thumbnail:     "https://cdn/images/projects/viejo/1-0-a.png",
		Images:        domain.StringList{"https://cdn/images/projects/viejo/1-1-b.png"},
		Status:        domain.ProjectStatusCompleted,
	}
	newTitle := "Nuevo"

	d.repo.On("GetByID", mock.Anything, id).Return(existing, nil)
	d.images.On("MoveProjectImages", mock.Anything, "viejo", "nuevo", existing.Thumbnail, []string(existing.Images)).
		Return("https://cdn/images/projects/nuevo/1-0-a.png", []string{"https://cdn/images/projects/nuevo/1-1-b.png"})
	d.translation.On("TranslateFields", mock.Anything, service.FieldsInput{
		Title: "Nuevo", Description: "Desc", Content: "Cuerpo",
	}).Return(&service.FieldsOutput{TitleEN: "New", DescriptionEN: "Desc", ContentEN: "Body"}, nil)
	d.repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	p, err := d.svc.Update(context.Background(), id, service.UpdateProjectInput{Title: &newTitle})

	require.NoError(t, err)
	assert.Equal(t, "nuevo", p.Slug)
	assert.Equal(t, "New", p.TitleEN)
	assert.Equal(t, "https://cdn/images/projects/nuevo/1-0-a.png", p.Thumbnail)
	assert.Equal(t, domain.StringList{"https://cdn/images/projects/nuevo/1-1-b.png"}, p.Images)
	d.images.AssertExpectations(t)
}

func TestProjectService_Update_NonTextChangeSkipsTranslation(t *testing.T) {
	d := newProjectDeps()
	id := uuid.New()
	existing := &domain.Project{
		ID: id, Title: "Igual", Description: "d", Content: "c",
		TitleEN: "Same", DescriptionEN: "d", ContentEN: "c", Slug: "igual", Order: 9,
		Status: domain.ProjectStatusCompleted,
	}
	order := 1

	d.repo.On("GetByID", mock.Anything, id).Return(existing, nil)
	d.repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	p, err := d.svc.Update(context.Background(), id, service.UpdateProjectInput{Order: &order})

	require.NoError(t, err)
	assert.True(t, p.Featured)
	d.translation.AssertNotCalled(t, "TranslateFields", mock.Anything, mock.Anything)
	d.images.AssertNotCalled(t, "MoveProjectImages", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_Update_NotFound(t *testing.T) {
	d := newProjectDeps()
	id := uuid.New()
	d.repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := d.svc.Update(context.Background(), id, service.UpdateProjectInput{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_Delete_RemovesImages(t *testing.T) {
	d := newProjectDeps()
	id := uuid.New()
	existing := &domain.Project{ID: id, Slug: "x", Thumbnail: "t", Images: domain.StringList{"a"}}

	d.repo.On("GetByID", mock.Anything, id).Return(existing, nil)
	d.repo.On("Delete", mock.Anything, id).Return(nil)
	d.images.On("DeleteProjectImages", mock.Anything, "t", []string{"a"}).Return()

	err := d.svc.Delete(context.Background(), id)

	require.NoError(t, err)
	d.images.AssertExpectations(t)
}

func TestProjectService_Delete_RepoErrorKeepsImages(t *testing.T) {
	d := newProjectDeps()
	id := uuid.New()
	d.repo.On("GetByID", mock.Anything, id).Return(&domain.Project{ID: id}, nil)
	d.repo.On("Delete", mock.Anything, id).Return(errors.New("db down"))

	err := d.svc.Delete(context.Background(), id)

	assert.Error(t, err)
	d.images.AssertNotCalled(t, "DeleteProjectImages", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_GetBySlug_DraftHidden(t *testing.T) {
	d := newProjectDeps()
	d.repo.On("GetBySlug", mock.Anything, "borrador").Return(&domain.Project{Slug: "borrador"}, nil)

	_, err := d.svc.GetBySlug(context.Background(), "borrador", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := d.svc.GetBySlug(context.Background(), "borrador", true)
	require.NoError(t, err)
	assert.Equal(t, "borrador", p.Slug)
}

func TestProjectService_ListFeatured_Filter(t *testing.T) {
	d := newProjectDeps()
	d.repo.On("List", mock.Anything, mock.MatchedBy(func(f port.ProjectFilter) bool {
		return f.Published != nil && *f.Published && f.Featured != nil && *f.Featured && f.Limit == domain.FeaturedOrderLimit
	})).Return([]domain.Project{{Slug: "a"}}, 1, nil)

	projects, err := d.svc.ListFeatured(context.Background(), 0)

	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestProjectService_ListPublished_ClampsLimit(t *testing.T) {
	d := newProjectDeps()
	d.repo.On("List", mock.Anything, mock.MatchedBy(func(f port.ProjectFilter) bool {
		return f.Limit == 100 && f.Featured == nil
	})).Return([]domain.Project{}, 0, nil)

	_, err := d.svc.ListPublished(context.Background(), 5000)

	require.NoError(t, err)
	d.repo.AssertExpectations(t)
}

func TestProjectService_ListByCategory(t *testing.T) {
	d := newProjectDeps()
	d.repo.On("List", mock.Anything, mock.MatchedBy(func(f port.ProjectFilter) bool {
		return f.Category == "web" && f.Limit == 20
	})).Return([]domain.Project{{Category: "web"}}, 1, nil)

	projects, err := d.svc.ListByCategory(context.Background(), "web", 0)

	require.NoError(t, err)
	assert.Equal(t, "web", projects[0].Category)
}

func TestProjectService_Retranslate(t *testing.T) {
	d := newProjectDeps()
	id := uuid.New()
	d.repo.On("GetByID", mock.Anything, id).Return(&domain.Project{ID: id, Title: "Hola", Description: "d", Content: "c"}, nil)
	d.translation.On("TranslateFields", mock.Anything, mock.Anything).
		Return(&service.FieldsOutput{TitleEN: "Hello", DescriptionEN: "d", ContentEN: "c"}, nil)
	d.repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Project) bool { return p.TitleEN == "Hello" })).Return(nil)

	p, err := d.svc.Retranslate(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "Hello", p.TitleEN)
	d.repo.AssertExpectations(t)
}
