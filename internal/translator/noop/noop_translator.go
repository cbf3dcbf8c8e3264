// Package noop provides an identity translator for local development.
package noop

import (
	"context"

	"portfolio/internal/config"
	"portfolio/internal/port"
	"portfolio/internal/translator"
)

func init() {
	translator.RegisterProvider("noop", func(_ *config.TranslationProviderConfig) (port.Translator, error) {
		return Translator{}, nil
	})
}

// Translator returns its input unchanged.
type Translator struct{}

func (Translator) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}
