// Package google implements translation through the Google Cloud Translation v2 REST API.
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"portfolio/internal/config"
	"portfolio/internal/port"
	"portfolio/internal/translator"
)

const (
	providerName = "google"
	apiURL       = "https://translation.googleapis.com/language/translate/v2"
)

func init() {
	translator.RegisterProvider(providerName, func(cfg *config.TranslationProviderConfig) (port.Translator, error) {
		return NewTranslator(cfg)
	})
}

// Translator implements port.Translator against the v2 endpoint, authenticated with an API key.
type Translator struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewTranslator creates a Google translator. It fails with translator.ErrNotConfigured
// when no API key is set.
func NewTranslator(cfg *config.TranslationProviderConfig) (*Translator, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = apiURL
	}
	return NewTranslatorWithEndpoint(cfg, endpoint)
}

// NewTranslatorWithEndpoint creates a translator pointing at a custom API endpoint (for testing).
func NewTranslatorWithEndpoint(cfg *config.TranslationProviderConfig, endpoint string) (*Translator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("google: %w", translator.ErrNotConfigured)
	}
	return &Translator{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: cfg.Timeout()},
	}, nil
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	Data *struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if translator.IsBlank(text) {
		return text, nil
	}

	bodyBytes, err := json.Marshal(translateRequest{Q: text, Source: source, Target: target, Format: "text"})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	reqURL := t.endpoint + "?key=" + url.QueryEscape(t.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling google translate API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", translator.StatusError(providerName, resp.StatusCode, resp.Header.Get("Retry-After"), respBody)
	}

	return parseResponse(respBody)
}

func parseResponse(body []byte) (string, error) {
	var resp translateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v (raw: %s)", translator.ErrMalformedResponse, err, translator.Truncate(string(body), 200))
	}
	if resp.Data == nil || len(resp.Data.Translations) == 0 {
		return "", fmt.Errorf("%w: no translations in response", translator.ErrMalformedResponse)
	}
	return resp.Data.Translations[0].TranslatedText, nil
}
