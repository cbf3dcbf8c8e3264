// Package app builds the optional outbound integrations shared by the server and the
// maintenance commands.
package app

import (
	"errors"
	"fmt"

	"portfolio/internal/config"
	"portfolio/internal/email/noop"
	"portfolio/internal/email/ses"
	"portfolio/internal/logging"
	"portfolio/internal/port"
	"portfolio/internal/translator"

	// Translation providers register themselves via init().
	_ "portfolio/internal/translator/google"
	_ "portfolio/internal/translator/libretranslate"
	_ "portfolio/internal/translator/noop"
	_ "portfolio/internal/translator/openai"
)

// NewTranslator returns nil when no provider is configured; the translation service
// then copies Spanish text into the English fields.
func NewTranslator(cfg *config.TranslationConfig) (port.Translator, error) {
	tr, err := translator.NewFromConfig(cfg)
	if errors.Is(err, translator.ErrNotConfigured) {
		logging.Component("app").Warn("translation provider not configured, English fields will mirror Spanish",
			logging.FieldProvider, cfg.Provider)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize translator: %w", err)
	}
	return tr, nil
}

// NewNotifier returns the SES notifier when configured, otherwise a no-op.
func NewNotifier(cfg *config.EmailConfig) (port.Notifier, error) {
	if cfg.Provider != "ses" || cfg.AdminAddress == "" {
		return noop.NewNoopNotifier(), nil
	}
	n, err := ses.NewSESNotifier(cfg.Region, cfg.FromAddress, cfg.FromName, cfg.AdminAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SES notifier: %w", err)
	}
	return n, nil
}
