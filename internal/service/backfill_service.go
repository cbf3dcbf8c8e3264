package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"portfolio/internal/domain"
	"portfolio/internal/logging"
)

const backfillWorkers = 4

// BackfillOptions selects which records a backfill retranslates.
type BackfillOptions struct {
	// All retranslates every record instead of only those with a missing English field.
	All    bool
	DryRun bool
}

// BackfillResult counts the records a backfill touched.
type BackfillResult struct {
	Projects int `json:"projects"`
	Posts    int `json:"posts"`
	Failed   int `json:"failed"`
}

// BackfillService fills English mirrors for content written before translation was
// configured.
type BackfillService interface {
	Backfill(ctx context.Context, opts BackfillOptions) (*BackfillResult, error)
}

type backfillService struct {
	projects ProjectService
	posts    PostService
}

// NewBackfillService creates a new BackfillService implementation.
func NewBackfillService(projects ProjectService, posts PostService) BackfillService {
	return &backfillService{projects: projects, posts: posts}
}

func (s *backfillService) Backfill(ctx context.Context, opts BackfillOptions) (*BackfillResult, error) {
	logger := logging.FromContext(ctx).With(logging.FieldComponent, "backfill", logging.FieldDryRun, opts.DryRun)

	projectIDs, err := s.pendingProjects(ctx, opts.All)
	if err != nil {
		return nil, err
	}
	postIDs, err := s.pendingPosts(ctx, opts.All)
	if err != nil {
		return nil, err
	}
	logger.Info("records selected", "projects", len(projectIDs), "posts", len(postIDs))

	res := &BackfillResult{Projects: len(projectIDs), Posts: len(postIDs)}
	if opts.DryRun {
		return res, nil
	}

	var failed atomic.Int64
	p := pool.New().WithContext(ctx).WithMaxGoroutines(backfillWorkers)
	for _, id := range projectIDs {
		p.Go(func(ctx context.Context) error {
			if _, err := s.projects.Retranslate(ctx, id); err != nil {
				failed.Add(1)
				logger.Error("project retranslation failed", logging.FieldProjectID, id, logging.FieldError, err)
			}
			return nil
		})
	}
	for _, id := range postIDs {
		p.Go(func(ctx context.Context) error {
			if _, err := s.posts.Retranslate(ctx, id); err != nil {
				failed.Add(1)
				logger.Error("post retranslation failed", logging.FieldPostID, id, logging.FieldError, err)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("backfill.Backfill: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("backfill.Backfill: %w", err)
	}

	res.Failed = int(failed.Load())
	logger.Info("backfill finished", logging.FieldCount, res.Projects+res.Posts-res.Failed, "failed", res.Failed)
	return res, nil
}

func (s *backfillService) pendingProjects(ctx context.Context, all bool) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for offset := 0; ; offset += maxListLimit {
		page, total, err := s.projects.ListAll(ctx, offset, maxListLimit)
		if err != nil {
			return nil, fmt.Errorf("backfill.pendingProjects: %w", err)
		}
		for i := range page {
			if all || page[i].NeedsTranslation() {
				ids = append(ids, page[i].ID)
			}
		}
		if len(page) == 0 || offset+len(page) >= total {
			return ids, nil
		}
	}
}

func (s *backfillService) pendingPosts(ctx context.Context, all bool) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for offset := 0; ; offset += maxListLimit {
		page, total, err := s.posts.ListAll(ctx, offset, maxListLimit)
		if err != nil {
			return nil, fmt.Errorf("backfill.pendingPosts: %w", err)
		}
		ids = appendPending(ids, page, all)
		if len(page) == 0 || offset+len(page) >= total {
			return ids, nil
		}
	}
}

func appendPending(ids []uuid.UUID, posts []domain.Post, all bool) []uuid.UUID {
	for i := range posts {
		if all || posts[i].NeedsTranslation() {
			ids = append(ids, posts[i].ID)
		}
	}
	return ids
}
