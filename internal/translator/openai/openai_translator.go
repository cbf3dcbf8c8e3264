// Package openai translates with a chat model through cloudwego/eino's OpenAI
// component. Any OpenAI-compatible endpoint works through the base URL.
package openai

import (
	"context"
	"fmt"
	"strings"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"portfolio/internal/config"
	"portfolio/internal/port"
	"portfolio/internal/translator"
)

const (
	providerName = "openai"
	defaultModel = "gpt-4o-mini"
)

func init() {
	translator.RegisterProvider(providerName, func(cfg *config.TranslationProviderConfig) (port.Translator, error) {
		return NewTranslator(context.Background(), cfg)
	})
}

// Translator implements port.Translator with a chat completion per call.
type Translator struct {
	chat  model.BaseChatModel
	model string
}

// NewTranslator creates a chat-model translator. It fails with translator.ErrNotConfigured
// when no API key is set.
func NewTranslator(ctx context.Context, cfg *config.TranslationProviderConfig) (*Translator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w", translator.ErrNotConfigured)
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultModel
	}
	timeout := cfg.Timeout()
	chatCfg := &einoopenai.ChatModelConfig{
		Model:   modelName,
		APIKey:  cfg.APIKey,
		Timeout: timeout,
	}
	if cfg.Endpoint != "" {
		chatCfg.BaseURL = cfg.Endpoint
	}
	chat, err := einoopenai.NewChatModel(ctx, chatCfg)
	if err != nil {
		return nil, fmt.Errorf("creating chat model: %w", err)
	}
	return NewTranslatorWithModel(chat, modelName), nil
}

// NewTranslatorWithModel wraps an existing chat model (for testing).
func NewTranslatorWithModel(chat model.BaseChatModel, modelName string) *Translator {
	return &Translator{chat: chat, model: modelName}
}

func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if translator.IsBlank(text) {
		return text, nil
	}

	msg, err := t.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(SystemPrompt(source, target)),
		schema.UserMessage(text),
	})
	if err != nil {
		return "", fmt.Errorf("calling %s chat model %s: %w", providerName, t.model, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", fmt.Errorf("%w: empty completion", translator.ErrMalformedResponse)
	}
	return msg.Content, nil
}

// SystemPrompt instructs the model to behave like a plain-text translation API.
func SystemPrompt(source, target string) string {
	return fmt.Sprintf(`You are a translation engine. Translate the user's text from %q to %q.
Reply with the translation only, without quotes, notes or explanations.
Keep every token written in double square brackets, such as [[BLOCK_0]], [[P]] or [[BQ]], exactly as written and in the same position.
Preserve line breaks, Markdown syntax, URLs and leading or trailing whitespace.`, source, target)
}
