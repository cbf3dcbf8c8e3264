// Package translator holds the machine translation providers and the registry used
// to build them from configuration. Provider packages register themselves from init,
// so the binary selects providers with blank imports.
package translator

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"portfolio/internal/config"
	"portfolio/internal/port"
)

// ProviderFactory creates a Translator from a provider config.
type ProviderFactory func(cfg *config.TranslationProviderConfig) (port.Translator, error)

var (
	providersMu sync.RWMutex
	providers   = map[string]ProviderFactory{}
)

// RegisterProvider registers a translation provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providersMu.Lock()
	defer providersMu.Unlock()
	providers[name] = factory
}

// NewTranslator creates a Translator from a provider config using the registered factory.
func NewTranslator(cfg *config.TranslationProviderConfig) (port.Translator, error) {
	if cfg.Provider == "" {
		return nil, ErrNotConfigured
	}
	providersMu.RLock()
	factory, ok := providers[cfg.Provider]
	providersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown translation provider: %s", cfg.Provider)
	}
	tr, err := factory(cfg)
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// NewFromConfig builds the primary translator and, when configured, chains the
// secondary behind it. It returns ErrNotConfigured when no provider is usable.
func NewFromConfig(cfg *config.TranslationConfig) (port.Translator, error) {
	primary, err := NewTranslator(cfg.PrimaryConfig())
	if err != nil && !errors.Is(err, ErrNotConfigured) {
		return nil, err
	}

	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		if err != nil {
			return nil, err
		}
		return primary, nil
	}

	secondary, secErr := NewTranslator(secondaryCfg)
	if secErr != nil && !errors.Is(secErr, ErrNotConfigured) {
		return nil, secErr
	}

	var (
		chain []port.Translator
		names []string
	)
	if primary != nil {
		chain = append(chain, primary)
		names = append(names, cfg.PrimaryConfig().Provider)
	}
	if secondary != nil {
		chain = append(chain, secondary)
		names = append(names, secondaryCfg.Provider)
	}

	switch len(chain) {
	case 0:
		return nil, ErrNotConfigured
	case 1:
		return chain[0], nil
	}
	return NewFallbackTranslator(chain, names), nil
}

// IsBlank reports whether text has nothing to translate.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
