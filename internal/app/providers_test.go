package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/app"
	"portfolio/internal/config"
)

func TestNewTranslator_MissingKeyYieldsNil(t *testing.T) {
	cfg := &config.TranslationConfig{}
	cfg.Provider = "google"

	tr, err := app.NewTranslator(cfg)

	require.NoError(t, err)
	assert.Nil(t, tr)
}

func TestNewTranslator_UnknownProvider(t *testing.T) {
	cfg := &config.TranslationConfig{}
	cfg.Provider = "babelfish"

	_, err := app.NewTranslator(cfg)

	assert.Error(t, err)
}

func TestNewTranslator_Noop(t *testing.T) {
	cfg := &config.TranslationConfig{}
	cfg.Provider = "noop"

	tr, err := app.NewTranslator(cfg)

	require.NoError(t, err)
	assert.NotNil(t, tr)
}

func TestNewNotifier_DefaultsToNoop(t *testing.T) {
	n, err := app.NewNotifier(&config.EmailConfig{Provider: "ses"})

	require.NoError(t, err)
	assert.NotNil(t, n)
}
