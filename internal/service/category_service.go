package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"portfolio/internal/domain"
	"portfolio/internal/port"
	"portfolio/internal/slug"
)

const defaultCategoryColor = "blue"

// CreateCategoryInput is the DTO for creating a category.
type CreateCategoryInput struct {
	Name  string `json:"name" binding:"required"`
	Slug  string `json:"slug"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// UpdateCategoryInput is the DTO for partial category updates.
type UpdateCategoryInput struct {
	Name  *string `json:"name"`
	Slug  *string `json:"slug"`
	Emoji *string `json:"emoji"`
	Color *string `json:"color"`
	Order *int    `json:"order"`
}

// CategoryService defines the category management contract.
type CategoryService interface {
	Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

type categoryService struct {
	repo port.CategoryRepository
}

// NewCategoryService creates a new CategoryService implementation.
func NewCategoryService(repo port.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	categorySlug := slug.Generate(input.Slug)
	if categorySlug == "" {
		categorySlug = slug.Generate(input.Name)
	}
	if categorySlug == "" {
		return nil, domain.ErrEmptySlug
	}
	color := input.Color
	if color == "" {
		color = defaultCategoryColor
	}
	if !domain.CategoryColors[color] {
		return nil, fmt.Errorf("categoryService.Create: unknown color %q: %w", color, domain.ErrInvalidInput)
	}

	c := &domain.Category{
		ID:    uuid.New(),
		Name:  input.Name,
		Slug:  categorySlug,
		Emoji: input.Emoji,
		Color: color,
		Order: input.Order,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("categoryService.Create: %w", err)
	}
	return c, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*domain.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Slug != nil {
		categorySlug := slug.Generate(*input.Slug)
		if categorySlug == "" {
			return nil, domain.ErrEmptySlug
		}
		c.Slug = categorySlug
	}
	if input.Emoji != nil {
		c.Emoji = *input.Emoji
	}
	if input.Color != nil {
		if !domain.CategoryColors[*input.Color] {
			return nil, fmt.Errorf("categoryService.Update: unknown color %q: %w", *input.Color, domain.ErrInvalidInput)
		}
		c.Color = *input.Color
	}
	if input.Order != nil {
		c.Order = *input.Order
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("categoryService.Update: %w", err)
	}
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *categoryService) GetBySlug(ctx context.Context, categorySlug string) (*domain.Category, error) {
	return s.repo.GetBySlug(ctx, categorySlug)
}

func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}
