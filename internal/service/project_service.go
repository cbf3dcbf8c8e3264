package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"portfolio/internal/domain"
	"portfolio/internal/logging"
	"portfolio/internal/port"
	"portfolio/internal/slug"
)

const (
	defaultPublicLimit   = 20
	defaultFeaturedLimit = domain.FeaturedOrderLimit
	maxListLimit         = 100
)

// CreateProjectInput is the DTO for creating a project. Text is authored in Spanish.
type CreateProjectInput struct {
	Title        string               `json:"title" binding:"required"`
	Description  string               `json:"description" binding:"required,max=200"`
	Content      string               `json:"content" binding:"required"`
	Category     string               `json:"category"`
	Technologies []string             `json:"technologies"`
	Thumbnail    string               `json:"thumbnail"`
	Images       []string             `json:"images"`
	LiveURL      string               `json:"live_url" binding:"omitempty,url"`
	GithubURL    string               `json:"github_url" binding:"omitempty,url"`
	MediumURL    string               `json:"medium_url" binding:"omitempty,url"`
	Featured     *bool                `json:"featured"`
	IsPublished  bool                 `json:"is_published"`
	Status       domain.ProjectStatus `json:"status"`
	Order        int                  `json:"order"`
}

// UpdateProjectInput is the DTO for partial project updates. Nil fields are left unchanged.
type UpdateProjectInput struct {
	Title        *string               `json:"title"`
	Description  *string               `json:"description" binding:"omitempty,max=200"`
	Content      *string               `json:"content"`
	Category     *string               `json:"category"`
	Technologies []string              `json:"technologies"`
	Thumbnail    *string               `json:"thumbnail"`
	Images       []string              `json:"images"`
	LiveURL      *string               `json:"live_url"`
	GithubURL    *string               `json:"github_url"`
	MediumURL    *string               `json:"medium_url"`
	Featured     *bool                 `json:"featured"`
	IsPublished  *bool                 `json:"is_published"`
	Status       *domain.ProjectStatus `json:"status"`
	Order        *int                  `json:"order"`
}

// ProjectService defines the project management contract.
type ProjectService interface {
	Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	// GetBySlug returns a project by slug. Unpublished projects are reported as not
	// found unless includeDrafts is set.
	GetBySlug(ctx context.Context, slug string, includeDrafts bool) (*domain.Project, error)
	ListPublished(ctx context.Context, limit int) ([]domain.Project, error)
	ListFeatured(ctx context.Context, limit int) ([]domain.Project, error)
	ListByCategory(ctx context.Context, category string, limit int) ([]domain.Project, error)
	ListAll(ctx context.Context, offset, limit int) ([]domain.Project, int, error)
	// Retranslate refreshes the English mirrors from the current Spanish text.
	Retranslate(ctx context.Context, id uuid.UUID) (*domain.Project, error)
}

type projectService struct {
	repo        port.ProjectRepository
	translation TranslationService
	images      ImageService
}

// NewProjectService creates a new ProjectService implementation.
func NewProjectService(
	repo port.ProjectRepository,
	translation TranslationService,
	images ImageService,
) ProjectService {
	return &projectService{
		repo:        repo,
		translation: translation,
		images:      images,
	}
}

func (s *projectService) Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	status := input.Status
	if status == "" {
		status = domain.ProjectStatusCompleted
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidProjectStatus
	}
	projectSlug := slug.Generate(input.Title)
	if projectSlug == "" {
		return nil, domain.ErrEmptySlug
	}

	p := &domain.Project{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		Content:      input.Content,
		Slug:         projectSlug,
		Thumbnail:    input.Thumbnail,
		Images:       nonNil(input.Images),
		Category:     input.Category,
		Technologies: nonNil(input.Technologies),
		LiveURL:      input.LiveURL,
		GithubURL:    input.GithubURL,
		MediumURL:    input.MediumURL,
		IsPublished:  input.IsPublished,
		Status:       status,
		Order:        input.Order,
	}
	p.Featured = featured(input.Featured, p.Order)

	if err := s.translate(ctx, p); err != nil {
		return nil, fmt.Errorf("projectService.Create: %w", err)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("projectService.Create: %w", err)
	}

	logging.FromContext(ctx).Info("project created", logging.FieldProjectID, p.ID, logging.FieldSlug, p.Slug)
	return p, nil
}

func (s *projectService) Update(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*domain.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	textChanged := false
	setText := func(dst *string, v *string) {
		if v != nil && *v != *dst {
			*dst = *v
			textChanged = true
		}
	}
	setText(&p.Title, input.Title)
	setText(&p.Description, input.Description)
	setText(&p.Content, input.Content)

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domain.ErrInvalidProjectStatus
		}
		p.Status = *input.Status
	}
	if input.Category != nil {
		p.Category = *input.Category
	}
	if input.Technologies != nil {
		p.Technologies = input.Technologies
	}
	if input.Thumbnail != nil {
		p.Thumbnail = *input.Thumbnail
	}
	if input.Images != nil {
		p.Images = input.Images
	}
	if input.LiveURL != nil {
		p.LiveURL = *input.LiveURL
	}
	if input.GithubURL != nil {
		p.GithubURL = *input.GithubURL
	}
	if input.MediumURL != nil {
		p.MediumURL = *input.MediumURL
	}
	if input.IsPublished != nil {
		p.IsPublished = *input.IsPublished
	}
	if input.Order != nil {
		p.Order = *input.Order
	}
	if input.Featured != nil || input.Order != nil {
		p.Featured = featured(input.Featured, p.Order)
	}

	newSlug := slug.Generate(p.Title)
	if newSlug == "" {
		return nil, domain.ErrEmptySlug
	}
	if newSlug != p.Slug {
		p.Thumbnail, p.Images = s.images.MoveProjectImages(ctx, p.Slug, newSlug, p.Thumbnail, p.Images)
		p.Slug = newSlug
	}

	if textChanged || p.NeedsTranslation() {
		if err := s.translate(ctx, p); err != nil {
			return nil, fmt.Errorf("projectService.Update: %w", err)
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("projectService.Update: %w", err)
	}
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("projectService.Delete: %w", err)
	}
	s.images.DeleteProjectImages(ctx, p.Thumbnail, p.Images)
	logging.FromContext(ctx).Info("project deleted", logging.FieldProjectID, id, logging.FieldSlug, p.Slug)
	return nil
}

func (s *projectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *projectService) GetBySlug(ctx context.Context, projectSlug string, includeDrafts bool) (*domain.Project, error) {
	p, err := s.repo.GetBySlug(ctx, projectSlug)
	if err != nil {
		return nil, err
	}
	if !p.IsPublished && !includeDrafts {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *projectService) ListPublished(ctx context.Context, limit int) ([]domain.Project, error) {
	projects, _, err := s.repo.List(ctx, port.ProjectFilter{
		Published: boolPtr(true),
		Limit:     clampLimit(limit, defaultPublicLimit),
	})
	return projects, err
}

func (s *projectService) ListFeatured(ctx context.Context, limit int) ([]domain.Project, error) {
	projects, _, err := s.repo.List(ctx, port.ProjectFilter{
		Published: boolPtr(true),
		Featured:  boolPtr(true),
		Limit:     clampLimit(limit, defaultFeaturedLimit),
	})
	return projects, err
}

func (s *projectService) ListByCategory(ctx context.Context, category string, limit int) ([]domain.Project, error) {
	projects, _, err := s.repo.List(ctx, port.ProjectFilter{
		Published: boolPtr(true),
		Category:  category,
		Limit:     clampLimit(limit, defaultPublicLimit),
	})
	return projects, err
}

func (s *projectService) ListAll(ctx context.Context, offset, limit int) ([]domain.Project, int, error) {
	return s.repo.List(ctx, port.ProjectFilter{Offset: offset, Limit: clampLimit(limit, defaultPublicLimit)})
}

func (s *projectService) Retranslate(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.translate(ctx, p); err != nil {
		return nil, fmt.Errorf("projectService.Retranslate: %w", err)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("projectService.Retranslate: %w", err)
	}
	return p, nil
}

// translate fills the English mirrors. Without a configured provider the Spanish text
// is copied so the record stays saveable.
func (s *projectService) translate(ctx context.Context, p *domain.Project) error {
	out, err := s.translation.TranslateFields(ctx, FieldsInput{
		Title:       p.Title,
		Description: p.Description,
		Content:     p.Content,
	})
	switch {
	case errors.Is(err, domain.ErrTranslationNotConfigured):
		logging.FromContext(ctx).Warn("translation not configured, storing source text as English",
			logging.FieldProjectID, p.ID)
		p.TitleEN, p.DescriptionEN, p.ContentEN = p.Title, p.Description, p.Content
		return nil
	case err != nil:
		return err
	}
	p.TitleEN, p.DescriptionEN, p.ContentEN = out.TitleEN, out.DescriptionEN, out.ContentEN
	return nil
}

// featured honors an explicit flag; otherwise the leading projects by order are featured.
func featured(explicit *bool, order int) bool {
	if explicit != nil {
		return *explicit
	}
	return order < domain.FeaturedOrderLimit
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func boolPtr(b bool) *bool {
	return &b
}

func nonNil(l []string) []string {
	if l == nil {
		return []string{}
	}
	return l
}
