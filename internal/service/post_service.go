package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"portfolio/internal/domain"
	"portfolio/internal/logging"
	"portfolio/internal/markdown"
	"portfolio/internal/port"
	"portfolio/internal/slug"
)

const defaultPostLimit = 10

// CreatePostInput is the DTO for creating a post. Text is authored in Spanish.
type CreatePostInput struct {
	Title       string   `json:"title" binding:"required"`
	Content     string   `json:"content" binding:"required"`
	Excerpt     string   `json:"excerpt" binding:"required"`
	CoverImage  string   `json:"cover_image"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"is_published"`
}

// UpdatePostInput is the DTO for partial post updates.
type UpdatePostInput struct {
	Title       *string  `json:"title"`
	Content     *string  `json:"content"`
	Excerpt     *string  `json:"excerpt"`
	CoverImage  *string  `json:"cover_image"`
	Tags        []string `json:"tags"`
	IsPublished *bool    `json:"is_published"`
}

// PostService defines the blog post management contract.
type PostService interface {
	Create(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	GetBySlug(ctx context.Context, slug string, includeDrafts bool) (*domain.Post, error)
	ListPublished(ctx context.Context, tag string, offset, limit int) ([]domain.Post, int, error)
	ListAll(ctx context.Context, offset, limit int) ([]domain.Post, int, error)
	Retranslate(ctx context.Context, id uuid.UUID) (*domain.Post, error)
}

type postService struct {
	repo        port.PostRepository
	translation TranslationService
	images      ImageService
	now         func() time.Time
}

// NewPostService creates a new PostService implementation.
func NewPostService(repo port.PostRepository, translation TranslationService, images ImageService) PostService {
	return &postService{repo: repo, translation: translation, images: images, now: time.Now}
}

func (s *postService) Create(ctx context.Context, input CreatePostInput) (*domain.Post, error) {
	postSlug := slug.Generate(input.Title)
	if postSlug == "" {
		return nil, domain.ErrEmptySlug
	}
	now := s.now().UTC()
	p := &domain.Post{
		ID:          uuid.New(),
		Title:       input.Title,
		Slug:        postSlug,
		Content:     input.Content,
		Excerpt:     input.Excerpt,
		CoverImage:  input.CoverImage,
		Tags:        nonNil(input.Tags),
		IsPublished: input.IsPublished,
		ReadTime:    markdown.ReadTime(input.Content),
		PublishedAt: now,
		UpdatedAt:   now,
	}
	if err := s.translate(ctx, p); err != nil {
		return nil, fmt.Errorf("postService.Create: %w", err)
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("postService.Create: %w", err)
	}
	logging.FromContext(ctx).Info("post created", logging.FieldPostID, p.ID, logging.FieldSlug, p.Slug)
	return p, nil
}

func (s *postService) Update(ctx context.Context, id uuid.UUID, input UpdatePostInput) (*domain.Post, error) {
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
	setText(&p.Excerpt, input.Excerpt)
	setText(&p.Content, input.Content)

	if input.CoverImage != nil {
		p.CoverImage = *input.CoverImage
	}
	if input.Tags != nil {
		p.Tags = input.Tags
	}
	if input.IsPublished != nil {
		p.IsPublished = *input.IsPublished
	}

	postSlug := slug.Generate(p.Title)
	if postSlug == "" {
		return nil, domain.ErrEmptySlug
	}
	p.Slug = postSlug
	p.ReadTime = markdown.ReadTime(p.Content)

	if textChanged || p.NeedsTranslation() {
		if err := s.translate(ctx, p); err != nil {
			return nil, fmt.Errorf("postService.Update: %w", err)
		}
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("postService.Update: %w", err)
	}
	return p, nil
}

func (s *postService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("postService.Delete: %w", err)
	}
	if p.CoverImage != "" {
		if err := s.images.DeleteByURL(ctx, p.CoverImage); err != nil {
			logging.FromContext(ctx).Warn("could not delete cover image", logging.FieldPostID, id, logging.FieldError, err)
		}
	}
	return nil
}

func (s *postService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *postService) GetBySlug(ctx context.Context, postSlug string, includeDrafts bool) (*domain.Post, error) {
	p, err := s.repo.GetBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	if !p.IsPublished && !includeDrafts {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *postService) ListPublished(ctx context.Context, tag string, offset, limit int) ([]domain.Post, int, error) {
	return s.repo.List(ctx, port.PostFilter{
		Published: boolPtr(true),
		Tag:       tag,
		Offset:    offset,
		Limit:     clampLimit(limit, defaultPostLimit),
	})
}

func (s *postService) ListAll(ctx context.Context, offset, limit int) ([]domain.Post, int, error) {
	return s.repo.List(ctx, port.PostFilter{Offset: offset, Limit: clampLimit(limit, defaultPostLimit)})
}

func (s *postService) Retranslate(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.translate(ctx, p); err != nil {
		return nil, fmt.Errorf("postService.Retranslate: %w", err)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("postService.Retranslate: %w", err)
	}
	return p, nil
}

// translate fills the English mirrors; the excerpt travels as the description field.
func (s *postService) translate(ctx context.Context, p *domain.Post) error {
	out, err := s.translation.TranslateFields(ctx, FieldsInput{
		Title:       p.Title,
		Description: p.Excerpt,
		Content:     p.Content,
	})
	switch {
	case errors.Is(err, domain.ErrTranslationNotConfigured):
		logging.FromContext(ctx).Warn("translation not configured, storing source text as English",
			logging.FieldPostID, p.ID)
		p.TitleEN, p.ExcerptEN, p.ContentEN = p.Title, p.Excerpt, p.Content
		return nil
	case err != nil:
		return err
	}
	p.TitleEN, p.ExcerptEN, p.ContentEN = out.TitleEN, out.DescriptionEN, out.ContentEN
	return nil
}
