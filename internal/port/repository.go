package port

import (
	"context"

	"github.com/google/uuid"

	"portfolio/internal/domain"
)

// ProjectFilter narrows a project listing. Nil pointers leave the dimension unfiltered.
type ProjectFilter struct {
	Published *bool
	Featured  *bool
	Category  string
	Offset    int
	Limit     int
}

// PostFilter narrows a post listing.
type PostFilter struct {
	Published *bool
	Tag       string
	Offset    int
	Limit     int
}

// ProjectRepository defines the contract for project persistence.
// Listings are ordered by order ascending, then newest first.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]domain.Project, int, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines the contract for category persistence.
// Listings are ordered by order ascending.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostRepository defines the contract for post persistence.
// Listings are ordered by publication date, newest first.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	List(ctx context.Context, filter PostFilter) ([]domain.Post, int, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the contract for admin account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
