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

type projectRepo struct {
	db *sqlx.DB
}

// NewProjectRepo creates a new PostgreSQL-backed ProjectRepository.
func NewProjectRepo(db *sqlx.DB) port.ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	query := `INSERT INTO projects (id, title, description, content, title_en, description_en, content_en,
		slug, thumbnail, images, category, technologies, live_url, github_url, medium_url,
		featured, is_published, status, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Description, p.Content, p.TitleEN, p.DescriptionEN, p.ContentEN,
		p.Slug, p.Thumbnail, p.Images, p.Category, p.Technologies, p.LiveURL, p.GithubURL, p.MediumURL,
		p.Featured, p.IsPublished, p.Status, p.Order, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("projectRepo.Create: %w", err)
	}
	return nil
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var p domain.Project
	err := r.db.GetContext(ctx, &p, "SELECT * FROM projects WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("projectRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *projectRepo) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	var p domain.Project
	err := r.db.GetContext(ctx, &p, "SELECT * FROM projects WHERE slug = $1", slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("projectRepo.GetBySlug: %w", err)
	}
	return &p, nil
}

// projectWhere builds the WHERE clause for a project listing.
func projectWhere(filter port.ProjectFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.Published != nil {
		w.add("is_published = ?", *filter.Published)
	}
	if filter.Featured != nil {
		w.add("featured = ?", *filter.Featured)
	}
	if filter.Category != "" {
		w.add("category = ?", filter.Category)
	}
	return w
}

func (r *projectRepo) List(ctx context.Context, filter port.ProjectFilter) ([]domain.Project, int, error) {
	w := projectWhere(filter)

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM projects "+w.clause(), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("projectRepo.List count: %w", err)
	}

	page, args := w.page(filter.Limit, filter.Offset)
	projects := []domain.Project{}
	err = r.db.SelectContext(ctx, &projects,
		"SELECT * FROM projects "+w.clause()+" ORDER BY sort_order ASC, created_at DESC "+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("projectRepo.List: %w", err)
	}
	return projects, total, nil
}

func (r *projectRepo) Update(ctx context.Context, p *domain.Project) error {
	p.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET title = $1, description = $2, content = $3, title_en = $4,
			description_en = $5, content_en = $6, slug = $7, thumbnail = $8, images = $9,
			category = $10, technologies = $11, live_url = $12, github_url = $13, medium_url = $14,
			featured = $15, is_published = $16, status = $17, sort_order = $18, updated_at = $19
		 WHERE id = $20`,
		p.Title, p.Description, p.Content, p.TitleEN, p.DescriptionEN, p.ContentEN, p.Slug,
		p.Thumbnail, p.Images, p.Category, p.Technologies, p.LiveURL, p.GithubURL, p.MediumURL,
		p.Featured, p.IsPublished, p.Status, p.Order, p.UpdatedAt, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("projectRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *projectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("projectRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
