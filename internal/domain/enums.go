package domain

// ImageType represents the allowed image types for upload.
type ImageType string

const (
	ImageTypeJPG  ImageType = "jpg"
	ImageTypePNG  ImageType = "png"
	ImageTypeWEBP ImageType = "webp"
	ImageTypeGIF  ImageType = "gif"
)

// AllowedImageTypes maps ImageType to its MIME content type.
var AllowedImageTypes = map[ImageType]string{
	ImageTypeJPG:  "image/jpeg",
	ImageTypePNG:  "image/png",
	ImageTypeWEBP: "image/webp",
	ImageTypeGIF:  "image/gif",
}

// AllowedContentTypes maps MIME content types back to ImageType.
var AllowedContentTypes = map[string]ImageType{
	"image/jpeg": ImageTypeJPG,
	"image/png":  ImageTypePNG,
	"image/webp": ImageTypeWEBP,
	"image/gif":  ImageTypeGIF,
}

// AllowedExtensions maps file extensions (without dot) to ImageType.
var AllowedExtensions = map[string]ImageType{
	"jpg":  ImageTypeJPG,
	"jpeg": ImageTypeJPG,
	"png":  ImageTypePNG,
	"webp": ImageTypeWEBP,
	"gif":  ImageTypeGIF,
}

// ProjectStatus is the development state shown on a project card.
type ProjectStatus string

const (
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusPlanned    ProjectStatus = "planned"
)

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusCompleted, ProjectStatusInProgress, ProjectStatusPlanned:
		return true
	}
	return false
}

// Locale selects which language variant of a document is served.
type Locale string

const (
	LocaleES Locale = "es"
	LocaleEN Locale = "en"
)

// ParseLocale maps a query value to a Locale. Empty means Spanish.
func ParseLocale(s string) (Locale, error) {
	switch Locale(s) {
	case "", LocaleES:
		return LocaleES, nil
	case LocaleEN:
		return LocaleEN, nil
	}
	return "", ErrInvalidLocale
}

// FeaturedOrderLimit is the number of leading projects, by order, shown on the home page.
const FeaturedOrderLimit = 5

// Category colors accepted by the site theme.
var CategoryColors = map[string]bool{
	"blue":   true,
	"purple": true,
	"green":  true,
	"yellow": true,
	"red":    true,
	"orange": true,
}
