package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"portfolio/internal/domain"
	"portfolio/internal/port"
)

type postRepo struct {
	db *sqlx.DB
}

// NewPostRepo creates a new PostgreSQL-backed PostRepository.
func NewPostRepo(db *sqlx.DB) port.PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) Create(ctx context.Context, p *domain.Post) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	if p.PublishedAt.IsZero() {
		p.PublishedAt = now
	}
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, slug, content, excerpt, title_en, excerpt_en, content_en,
			cover_image, tags, is_published, read_time, published_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.Title, p.Slug, p.Content, p.Excerpt, p.TitleEN, p.ExcerptEN, p.ContentEN,
		p.CoverImage, p.Tags, p.IsPublished, p.ReadTime, p.PublishedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("postRepo.Create: %w", err)
	}
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var p domain.Post
	err := r.db.GetContext(ctx, &p, "SELECT * FROM posts WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("postRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *postRepo) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	var p domain.Post
	err := r.db.GetContext(ctx, &p, "SELECT * FROM posts WHERE slug = $1", slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("postRepo.GetBySlug: %w", err)
	}
	return &p, nil
}

// postWhere builds the WHERE clause for a post listing. Tags are a jsonb array.
func postWhere(filter port.PostFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.Published != nil {
		w.add("is_published = ?", *filter.Published)
	}
	if filter.Tag != "" {
		w.add("tags @> jsonb_build_array(?::text)", filter.Tag)
	}
	return w
}

func (r *postRepo) List(ctx context.Context, filter port.PostFilter) ([]domain.Post, int, error) {
	w := postWhere(filter)

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM posts "+w.clause(), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postRepo.List count: %w", err)
	}

	page, args := w.page(filter.Limit, filter.Offset)
	posts := []domain.Post{}
	err = r.db.SelectContext(ctx, &posts,
		"SELECT * FROM posts "+w.clause()+" ORDER BY published_at DESC "+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postRepo.List: %w", err)
	}
	return posts, total, nil
}

func (r *postRepo) Update(ctx context.Context, p *domain.Post) error {
	p.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = $1, slug = $2, content = $3, excerpt = $4, title_en = $5,
			excerpt_en = $6, content_en = $7, cover_image = $8, tags = $9, is_published = $10,
			read_time = $11, updated_at = $12
		 WHERE id = $13`,
		p.Title, p.Slug, p.Content, p.Excerpt, p.TitleEN, p.ExcerptEN, p.ContentEN,
		p.CoverImage, p.Tags, p.IsPublished, p.ReadTime, p.UpdatedAt, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("postRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("postRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
