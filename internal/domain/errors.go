package domain

import "errors"

var (
	ErrNotFound                  = errors.New("resource not found")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrForbidden                 = errors.New("forbidden")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrDuplicateEmail            = errors.New("email already exists")
	ErrDuplicateSlug             = errors.New("slug already exists")
	ErrUnsupportedFileType       = errors.New("unsupported image type")
	ErrFileTooLarge              = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed              = errors.New("file upload to storage failed")
	ErrTranslationNotConfigured  = errors.New("translation provider is not configured")
	ErrInvalidProjectStatus      = errors.New("invalid project status")
	ErrInvalidLocale             = errors.New("invalid locale")
	ErrEmptySlug                 = errors.New("title does not produce a usable slug")
	ErrMissingTranslatableFields = errors.New("title, description and content are required")
	ErrInvalidInput              = errors.New("invalid input")
)
