package translator_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/config"
	"portfolio/internal/port"
	"portfolio/internal/translator"
)

// stubTranslator is a minimal Translator for testing the factory.
type stubTranslator struct {
	name string
}

func (s *stubTranslator) Translate(_ context.Context, text, _, _ string) (string, error) {
	return s.name + ":" + text, nil
}

func init() {
	translator.RegisterProvider("stub-a", func(cfg *config.TranslationProviderConfig) (port.Translator, error) {
		return &stubTranslator{name: "a"}, nil
	})
	translator.RegisterProvider("stub-b", func(cfg *config.TranslationProviderConfig) (port.Translator, error) {
		return &stubTranslator{name: "b"}, nil
	})
	translator.RegisterProvider("stub-keyless", func(cfg *config.TranslationProviderConfig) (port.Translator, error) {
		return nil, fmt.Errorf("stub-keyless: %w", translator.ErrNotConfigured)
	})
}

func TestFactory_RegisterAndCreate(t *testing.T) {
	tr, err := translator.NewTranslator(&config.TranslationProviderConfig{Provider: "stub-a"})

	require.NoError(t, err)
	out, err := tr.Translate(context.Background(), "hola", "es", "en")
	require.NoError(t, err)
	assert.Equal(t, "a:hola", out)
}

func TestFactory_UnknownProvider(t *testing.T) {
	tr, err := translator.NewTranslator(&config.TranslationProviderConfig{Provider: "nonexistent-provider-xyz"})

	assert.Nil(t, tr)
	assert.ErrorContains(t, err, "unknown translation provider")
}

func TestFactory_EmptyProvider(t *testing.T) {
	_, err := translator.NewTranslator(&config.TranslationProviderConfig{})

	assert.ErrorIs(t, err, translator.ErrNotConfigured)
}

func TestNewFromConfig_PrimaryOnly(t *testing.T) {
	cfg := &config.TranslationConfig{}
	cfg.Provider = "stub-a"

	tr, err := translator.NewFromConfig(cfg)

	require.NoError(t, err)
	assert.IsType(t, &stubTranslator{}, tr)
}

func TestNewFromConfig_PrimaryNotConfigured(t *testing.T) {
	cfg := &config.TranslationConfig{}
	cfg.Provider = "stub-keyless"

	_, err := translator.NewFromConfig(cfg)

	assert.ErrorIs(t, err, translator.ErrNotConfigured)
}

func TestNewFromConfig_ChainsSecondary(t *testing.T) {
	cfg := &config.TranslationConfig{Secondary: config.TranslationProviderConfig{Provider: "stub-b"}}
	cfg.Provider = "stub-a"

	tr, err := translator.NewFromConfig(cfg)

	require.NoError(t, err)
	assert.IsType(t, &translator.FallbackTranslator{}, tr)
}

func TestNewFromConfig_SecondaryCoversMissingPrimaryKey(t *testing.T) {
	cfg := &config.TranslationConfig{Secondary: config.TranslationProviderConfig{Provider: "stub-b"}}
	cfg.Provider = "stub-keyless"

	tr, err := translator.NewFromConfig(cfg)

	require.NoError(t, err)
	out, err := tr.Translate(context.Background(), "hola", "es", "en")
	require.NoError(t, err)
	assert.Equal(t, "b:hola", out)
}

func TestNewFromConfig_NothingUsable(t *testing.T) {
	cfg := &config.TranslationConfig{Secondary: config.TranslationProviderConfig{Provider: "stub-keyless"}}
	cfg.Provider = "stub-keyless"

	_, err := translator.NewFromConfig(cfg)

	assert.ErrorIs(t, err, translator.ErrNotConfigured)
}
