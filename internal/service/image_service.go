package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	"portfolio/internal/logging"
	"portfolio/internal/port"
	"portfolio/internal/slug"
)

// ImageUploadInput describes one uploaded image file.
type ImageUploadInput struct {
	Folder   string // project slug, or "posts"
	Index    int    // position within a multi-file upload
	FileName string
	Size     int64
	Body     io.ReadSeeker
}

// UploadedImage is a stored image.
type UploadedImage struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// ImageService stores project and post images in object storage.
type ImageService interface {
	Upload(ctx context.Context, input ImageUploadInput) (*UploadedImage, error)
	DeleteByURL(ctx context.Context, url string) error
	// DeleteProjectImages removes a thumbnail and gallery best-effort; failures are logged.
	DeleteProjectImages(ctx context.Context, thumbnail string, images []string)
	// MoveProjectImages relocates images stored under oldSlug to newSlug. URLs that
	// cannot be moved are returned unchanged.
	MoveProjectImages(ctx context.Context, oldSlug, newSlug, thumbnail string, images []string) (string, []string)
}

type imageService struct {
	storage port.ObjectStorage
	cfg     *config.S3Config
	now     func() time.Time
}

// NewImageService creates a new ImageService implementation.
func NewImageService(storage port.ObjectStorage, cfg *config.S3Config) ImageService {
	return &imageService{storage: storage, cfg: cfg, now: time.Now}
}

func projectFolder(folder string) string {
	return "images/projects/" + folder
}

func (s *imageService) Upload(ctx context.Context, input ImageUploadInput) (*UploadedImage, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	imageType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.Body.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if _, valid := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]; !valid {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.Body.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	folder := slug.Generate(input.Folder)
	if folder == "" {
		folder = "misc"
	}
	name := slug.Generate(strings.TrimSuffix(filepath.Base(input.FileName), filepath.Ext(input.FileName)))
	if name == "" {
		name = "image"
	}
	key := fmt.Sprintf("%s/%d-%d-%s.%s", projectFolder(folder), s.now().UnixMilli(), input.Index, name, ext)
	contentType := domain.AllowedImageTypes[imageType]

	logging.FromContext(ctx).Info("uploading image",
		logging.FieldComponent, "images", logging.FieldKey, key, "size", input.Size)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        input.Body,
		ContentType: contentType,
		Size:        input.Size,
	}); err != nil {
		logging.FromContext(ctx).Error("image upload failed", logging.FieldKey, key, logging.FieldError, err)
		return nil, domain.ErrUploadFailed
	}

	return &UploadedImage{
		URL:         s.storage.PublicURL(s.cfg.Bucket, key),
		Key:         key,
		ContentType: contentType,
		Size:        input.Size,
	}, nil
}

func (s *imageService) DeleteByURL(ctx context.Context, url string) error {
	key, ok := s.storage.KeyFromURL(s.cfg.Bucket, url)
	if !ok {
		// Not ours (external or legacy URL); nothing to delete.
		return nil
	}
	if err := s.storage.Delete(ctx, s.cfg.Bucket, key); err != nil {
		return fmt.Errorf("imageService.DeleteByURL: %w", err)
	}
	return nil
}

func (s *imageService) DeleteProjectImages(ctx context.Context, thumbnail string, images []string) {
	urls := images
	if thumbnail != "" {
		urls = append([]string{thumbnail}, images...)
	}
	var wg conc.WaitGroup
	for _, u := range urls {
		wg.Go(func() {
			if err := s.DeleteByURL(ctx, u); err != nil {
				logging.FromContext(ctx).Warn("could not delete image", "url", u, logging.FieldError, err)
			}
		})
	}
	wg.Wait()
}

func (s *imageService) MoveProjectImages(ctx context.Context, oldSlug, newSlug, thumbnail string, images []string) (string, []string) {
	newThumbnail := s.moveImage(ctx, oldSlug, newSlug, thumbnail)
	newImages := make([]string, len(images))
	for i, u := range images {
		newImages[i] = s.moveImage(ctx, oldSlug, newSlug, u)
	}
	return newThumbnail, newImages
}

func (s *imageService) moveImage(ctx context.Context, oldSlug, newSlug, url string) string {
	key, ok := s.storage.KeyFromURL(s.cfg.Bucket, url)
	oldPrefix := projectFolder(oldSlug) + "/"
	if !ok || !strings.HasPrefix(key, oldPrefix) {
		return url
	}
	newKey := projectFolder(newSlug) + "/" + path.Base(key)
	if err := s.storage.Copy(ctx, s.cfg.Bucket, key, newKey); err != nil {
		logging.FromContext(ctx).Warn("could not move image, keeping original", logging.FieldKey, key, logging.FieldError, err)
		return url
	}
	if err := s.storage.Delete(ctx, s.cfg.Bucket, key); err != nil {
		logging.FromContext(ctx).Warn("moved image but old copy remains", logging.FieldKey, key, logging.FieldError, err)
	}
	return s.storage.PublicURL(s.cfg.Bucket, newKey)
}
