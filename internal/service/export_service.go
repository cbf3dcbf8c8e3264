package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	"portfolio/internal/logging"
	"portfolio/internal/port"
)

// Sheet names of the backup workbook.
const (
	SheetProjects   = "Projects"
	SheetCategories = "Categories"
	SheetPosts      = "Posts"
)

const exportPageSize = maxListLimit

// XLSXContentType is the media type of the backup workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var projectColumns = []string{
	"ID", "Title", "Description", "Content", "Title EN", "Description EN", "Content EN",
	"Slug", "Category", "Technologies", "Thumbnail", "Images", "Live URL", "GitHub URL",
	"Medium URL", "Featured", "Published", "Status", "Order", "Created At", "Updated At",
}

var categoryColumns = []string{"ID", "Name", "Slug", "Emoji", "Color", "Order", "Created At"}

var postColumns = []string{
	"ID", "Title", "Slug", "Excerpt", "Content", "Title EN", "Excerpt EN", "Content EN",
	"Cover Image", "Tags", "Published", "Read Time", "Published At", "Updated At",
}

// ImportResult counts what a restore created and what it skipped.
type ImportResult struct {
	Projects   int `json:"projects"`
	Categories int `json:"categories"`
	Posts      int `json:"posts"`
	Skipped    int `json:"skipped"`
}

// BackupResult locates a workbook stored in object storage.
type BackupResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

const backupFolder = "backups"

// ExportService writes and restores a full content backup as an xlsx workbook.
type ExportService interface {
	Export(ctx context.Context) (*bytes.Buffer, error)
	// Import restores records from a workbook produced by Export. Records whose slug
	// already exists are skipped; English mirrors are taken as-is.
	Import(ctx context.Context, r io.Reader, dryRun bool) (*ImportResult, error)
	// Backup stores an export in the bucket and returns a time-limited download link.
	Backup(ctx context.Context) (*BackupResult, error)
}

type exportService struct {
	projects   port.ProjectRepository
	categories port.CategoryRepository
	posts      port.PostRepository
	storage    port.ObjectStorage
	cfg        *config.S3Config
	now        func() time.Time
}

// NewExportService creates a new ExportService implementation. storage may be nil
// when only local export and import are needed.
func NewExportService(
	projects port.ProjectRepository,
	categories port.CategoryRepository,
	posts port.PostRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) ExportService {
	return &exportService{
		projects:   projects,
		categories: categories,
		posts:      posts,
		storage:    storage,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *exportService) Backup(ctx context.Context) (*BackupResult, error) {
	if s.storage == nil || s.cfg == nil {
		return nil, fmt.Errorf("exportService.Backup: object storage is not configured")
	}
	buf, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	key := fmt.Sprintf("%s/portfolio-%s.xlsx", backupFolder, now.Format("20060102-150405"))
	size := int64(buf.Len())
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        buf,
		ContentType: XLSXContentType,
		Size:        size,
	}); err != nil {
		return nil, fmt.Errorf("exportService.Backup: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("exportService.Backup: %w", err)
	}
	logging.FromContext(ctx).Info("backup stored",
		logging.FieldComponent, "export", logging.FieldKey, key, "size", size)

	return &BackupResult{
		Key:       key,
		URL:       url,
		ExpiresAt: now.Add(time.Duration(s.cfg.PresignExpiry) * time.Second),
	}, nil
}

func (s *exportService) Export(ctx context.Context) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetProjects); err != nil {
		return nil, fmt.Errorf("exportService.Export: %w", err)
	}
	for _, name := range []string{SheetCategories, SheetPosts} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("exportService.Export: %w", err)
		}
	}

	if err := s.writeProjects(ctx, f); err != nil {
		return nil, fmt.Errorf("exportService.Export: %w", err)
	}
	if err := s.writeCategories(ctx, f); err != nil {
		return nil, fmt.Errorf("exportService.Export: %w", err)
	}
	if err := s.writePosts(ctx, f); err != nil {
		return nil, fmt.Errorf("exportService.Export: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("exportService.Export: %w", err)
	}
	return buf, nil
}

func (s *exportService) writeProjects(ctx context.Context, f *excelize.File) error {
	if err := writeRow(f, SheetProjects, 1, toCells(projectColumns)); err != nil {
		return err
	}
	row := 2
	for offset := 0; ; offset += exportPageSize {
		batch, total, err := s.projects.List(ctx, port.ProjectFilter{Offset: offset, Limit: exportPageSize})
		if err != nil {
			return err
		}
		for i := range batch {
			p := &batch[i]
			if err := writeRow(f, SheetProjects, row, []interface{}{
				p.ID.String(), p.Title, p.Description, p.Content, p.TitleEN, p.DescriptionEN, p.ContentEN,
				p.Slug, p.Category, strings.Join(p.Technologies, ", "), p.Thumbnail, strings.Join(p.Images, "\n"),
				p.LiveURL, p.GithubURL, p.MediumURL, p.Featured, p.IsPublished, string(p.Status), p.Order,
				formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
			}); err != nil {
				return err
			}
			row++
		}
		if len(batch) == 0 || offset+len(batch) >= total {
			return nil
		}
	}
}

func (s *exportService) writeCategories(ctx context.Context, f *excelize.File) error {
	if err := writeRow(f, SheetCategories, 1, toCells(categoryColumns)); err != nil {
		return err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return err
	}
	for i := range categories {
		c := &categories[i]
		if err := writeRow(f, SheetCategories, i+2, []interface{}{
			c.ID.String(), c.Name, c.Slug, c.Emoji, c.Color, c.Order, formatTime(c.CreatedAt),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *exportService) writePosts(ctx context.Context, f *excelize.File) error {
	if err := writeRow(f, SheetPosts, 1, toCells(postColumns)); err != nil {
		return err
	}
	row := 2
	for offset := 0; ; offset += exportPageSize {
		batch, total, err := s.posts.List(ctx, port.PostFilter{Offset: offset, Limit: exportPageSize})
		if err != nil {
			return err
		}
		for i := range batch {
			p := &batch[i]
			if err := writeRow(f, SheetPosts, row, []interface{}{
				p.ID.String(), p.Title, p.Slug, p.Excerpt, p.Content, p.TitleEN, p.ExcerptEN, p.ContentEN,
				p.CoverImage, strings.Join(p.Tags, ", "), p.IsPublished, p.ReadTime,
				formatTime(p.PublishedAt), formatTime(p.UpdatedAt),
			}); err != nil {
				return err
			}
			row++
		}
		if len(batch) == 0 || offset+len(batch) >= total {
			return nil
		}
	}
}

func (s *exportService) Import(ctx context.Context, r io.Reader, dryRun bool) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable workbook: %v", domain.ErrInvalidInput, err)
	}
	defer func() { _ = f.Close() }()

	logger := logging.FromContext(ctx).With(logging.FieldComponent, "import", logging.FieldDryRun, dryRun)
	res := &ImportResult{}

	categories, err := sheetRecords(f, SheetCategories)
	if err != nil {
		return nil, fmt.Errorf("exportService.Import: %w", err)
	}
	for _, rec := range categories {
		c := &domain.Category{
			ID:    parseID(rec["ID"]),
			Name:  rec["Name"],
			Slug:  rec["Slug"],
			Emoji: rec["Emoji"],
			Color: rec["Color"],
			Order: atoi(rec["Order"]),
		}
		exists, err := found(s.categories.GetBySlug(ctx, c.Slug))
		if err != nil {
			return nil, fmt.Errorf("exportService.Import: %w", err)
		}
		if exists || c.Slug == "" {
			res.Skipped++
			continue
		}
		if !dryRun {
			if err := s.categories.Create(ctx, c); err != nil {
				return nil, fmt.Errorf("exportService.Import: category %q: %w", c.Slug, err)
			}
		}
		res.Categories++
	}

	projects, err := sheetRecords(f, SheetProjects)
	if err != nil {
		return nil, fmt.Errorf("exportService.Import: %w", err)
	}
	for _, rec := range projects {
		p := &domain.Project{
			ID:            parseID(rec["ID"]),
			Title:         rec["Title"],
			Description:   rec["Description"],
			Content:       rec["Content"],
			TitleEN:       rec["Title EN"],
			DescriptionEN: rec["Description EN"],
			ContentEN:     rec["Content EN"],
			Slug:          rec["Slug"],
			Category:      rec["Category"],
			Technologies:  splitList(rec["Technologies"], ","),
			Thumbnail:     rec["Thumbnail"],
			Images:        splitList(rec["Images"], "\n"),
			LiveURL:       rec["Live URL"],
			GithubURL:     rec["GitHub URL"],
			MediumURL:     rec["Medium URL"],
			Featured:      parseBool(rec["Featured"]),
			IsPublished:   parseBool(rec["Published"]),
			Status:        domain.ProjectStatus(rec["Status"]),
			Order:         atoi(rec["Order"]),
		}
		if !p.Status.Valid() {
			p.Status = domain.ProjectStatusCompleted
		}
		exists, err := found(s.projects.GetBySlug(ctx, p.Slug))
		if err != nil {
			return nil, fmt.Errorf("exportService.Import: %w", err)
		}
		if exists || p.Slug == "" {
			res.Skipped++
			continue
		}
		if !dryRun {
			if err := s.projects.Create(ctx, p); err != nil {
				return nil, fmt.Errorf("exportService.Import: project %q: %w", p.Slug, err)
			}
		}
		res.Projects++
	}

	posts, err := sheetRecords(f, SheetPosts)
	if err != nil {
		return nil, fmt.Errorf("exportService.Import: %w", err)
	}
	for _, rec := range posts {
		p := &domain.Post{
			ID:          parseID(rec["ID"]),
			Title:       rec["Title"],
			Slug:        rec["Slug"],
			Excerpt:     rec["Excerpt"],
			Content:     rec["Content"],
			TitleEN:     rec["Title EN"],
			ExcerptEN:   rec["Excerpt EN"],
			ContentEN:   rec["Content EN"],
			CoverImage:  rec["Cover Image"],
			Tags:        splitList(rec["Tags"], ","),
			IsPublished: parseBool(rec["Published"]),
			ReadTime:    atoi(rec["Read Time"]),
			PublishedAt: parseTime(rec["Published At"]),
		}
		exists, err := found(s.posts.GetBySlug(ctx, p.Slug))
		if err != nil {
			return nil, fmt.Errorf("exportService.Import: %w", err)
		}
		if exists || p.Slug == "" {
			res.Skipped++
			continue
		}
		if !dryRun {
			if err := s.posts.Create(ctx, p); err != nil {
				return nil, fmt.Errorf("exportService.Import: post %q: %w", p.Slug, err)
			}
		}
		res.Posts++
	}

	logger.Info("backup imported",
		"projects", res.Projects, "categories", res.Categories, "posts", res.Posts, "skipped", res.Skipped)
	return res, nil
}

// sheetRecords maps every data row of sheet to its header names. A missing sheet
// yields no records.
func sheetRecords(f *excelize.File, sheet string) ([]map[string]string, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %s: %v", domain.ErrInvalidInput, sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}
	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		empty := true
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
				if row[i] != "" {
					empty = false
				}
			}
		}
		if !empty {
			records = append(records, rec)
		}
	}
	return records, nil
}

// found turns a repository lookup into an existence check.
func found[T any](_ *T, err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	for i, v := range values {
		if str, ok := v.(string); ok {
			values[i] = clipCell(str)
		}
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// clipCell keeps a value within the per-cell character limit of the format.
func clipCell(s string) string {
	if utf8.RuneCountInString(s) <= excelize.TotalCellChars {
		return s
	}
	return string([]rune(s)[:excelize.TotalCellChars])
}

func toCells(names []string) []interface{} {
	cells := make([]interface{}, len(names))
	for i, n := range names {
		cells[i] = n
	}
	return cells
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.New()
	}
	return id
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(s))
	return b
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func splitList(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
