package port

import "context"

// Translator converts plain text between two languages given as ISO 639-1 codes.
// Empty or whitespace-only text is returned unchanged without contacting a provider.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}
