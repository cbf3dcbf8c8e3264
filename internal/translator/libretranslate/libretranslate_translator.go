// Package libretranslate implements translation through a LibreTranslate server,
// which can be self-hosted next to the API.
package libretranslate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"portfolio/internal/config"
	"portfolio/internal/port"
	"portfolio/internal/translator"
)

const providerName = "libretranslate"

func init() {
	translator.RegisterProvider(providerName, func(cfg *config.TranslationProviderConfig) (port.Translator, error) {
		return NewTranslator(cfg)
	})
}

// Translator implements port.Translator against the /translate endpoint.
type Translator struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewTranslator creates a LibreTranslate translator. The server URL is required; the
// API key is optional because self-hosted instances usually run without one.
func NewTranslator(cfg *config.TranslationProviderConfig) (*Translator, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("libretranslate: endpoint required: %w", translator.ErrNotConfigured)
	}
	return &Translator{
		apiKey:   cfg.APIKey,
		endpoint: strings.TrimRight(cfg.Endpoint, "/") + "/translate",
		client:   &http.Client{Timeout: cfg.Timeout()},
	}, nil
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText *string `json:"translatedText"`
}

func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if translator.IsBlank(text) {
		return text, nil
	}

	bodyBytes, err := json.Marshal(translateRequest{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: t.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling libretranslate API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", translator.StatusError(providerName, resp.StatusCode, resp.Header.Get("Retry-After"), respBody)
	}

	var out translateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("%w: %v", translator.ErrMalformedResponse, err)
	}
	if out.TranslatedText == nil {
		return "", fmt.Errorf("%w: missing translatedText", translator.ErrMalformedResponse)
	}
	return *out.TranslatedText, nil
}
