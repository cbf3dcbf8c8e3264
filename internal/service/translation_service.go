package service

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	"portfolio/internal/logging"
	"portfolio/internal/markdown"
	"portfolio/internal/port"
	"portfolio/internal/translator"
)

// Translated field names, as reported in FieldsOutput.Degraded.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldContent     = "content"
)

// FieldsInput carries the Spanish text of a content record.
type FieldsInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// FieldsOutput carries the English mirrors. Degraded names the fields that kept their
// source text because the provider call failed.
type FieldsOutput struct {
	TitleEN       string   `json:"title_en"`
	DescriptionEN string   `json:"description_en"`
	ContentEN     string   `json:"content_en"`
	Degraded      []string `json:"degraded,omitempty"`
}

// TranslationService mirrors authored Spanish text into English.
type TranslationService interface {
	// TranslateFields translates a title and description as plain text and content as
	// Markdown, concurrently. The only error it returns is domain.ErrTranslationNotConfigured;
	// provider failures fall back to the source text per field.
	TranslateFields(ctx context.Context, input FieldsInput) (*FieldsOutput, error)
	TranslateText(ctx context.Context, text string) (string, error)
	TranslateMarkdown(ctx context.Context, content string) (string, error)
}

type translationService struct {
	translator port.Translator
	notifier   port.Notifier
	source     string
	target     string
}

// NewTranslationService creates a TranslationService. A nil translator means no provider
// is configured. Invalid language settings fall back to es -> en.
func NewTranslationService(tr port.Translator, notifier port.Notifier, cfg config.TranslationConfig) TranslationService {
	return &translationService{
		translator: tr,
		notifier:   notifier,
		source:     baseLanguageOr(cfg.SourceLang, string(domain.LocaleES)),
		target:     baseLanguageOr(cfg.TargetLang, string(domain.LocaleEN)),
	}
}

func baseLanguageOr(tag, fallback string) string {
	base, err := translator.BaseLanguage(tag)
	if err != nil {
		logging.Component("translation").Warn("invalid language setting", "value", tag, "using", fallback, logging.FieldError, err)
		return fallback
	}
	return base
}

func (s *translationService) TranslateFields(ctx context.Context, input FieldsInput) (*FieldsOutput, error) {
	if s.translator == nil {
		return nil, domain.ErrTranslationNotConfigured
	}

	logger := logging.FromContext(ctx).With(logging.FieldComponent, "translation")
	out := &FieldsOutput{}
	var titleErr, descErr, contentErr error

	var wg conc.WaitGroup
	wg.Go(func() { out.TitleEN, titleErr = s.TranslateText(ctx, input.Title) })
	wg.Go(func() { out.DescriptionEN, descErr = s.TranslateText(ctx, input.Description) })
	wg.Go(func() { out.ContentEN, contentErr = s.TranslateMarkdown(ctx, input.Content) })
	wg.Wait()

	fallback := func(field string, err error, dst *string, src string) {
		if err == nil {
			return
		}
		logger.Error("translation failed, keeping source text", logging.FieldField, field, logging.FieldError, err)
		*dst = src
		out.Degraded = append(out.Degraded, field)
	}
	fallback(FieldTitle, titleErr, &out.TitleEN, input.Title)
	fallback(FieldDescription, descErr, &out.DescriptionEN, input.Description)
	fallback(FieldContent, contentErr, &out.ContentEN, input.Content)

	if len(out.Degraded) > 0 && s.notifier != nil {
		if err := s.notifier.NotifyTranslationDegraded(ctx, input.Title, out.Degraded); err != nil {
			logger.Warn("degraded translation notice not sent", logging.FieldError, err)
		}
	}

	return out, nil
}

func (s *translationService) TranslateText(ctx context.Context, text string) (string, error) {
	if s.translator == nil {
		return "", domain.ErrTranslationNotConfigured
	}
	out, err := s.translator.Translate(ctx, text, s.source, s.target)
	if err != nil {
		return "", fmt.Errorf("translation.TranslateText: %w", err)
	}
	return out, nil
}

func (s *translationService) TranslateMarkdown(ctx context.Context, content string) (string, error) {
	if s.translator == nil {
		return "", domain.ErrTranslationNotConfigured
	}

	ext := markdown.Protect(content)
	translated, err := s.translator.Translate(ctx, ext.Text, s.source, s.target)
	if err != nil {
		return "", fmt.Errorf("translation.TranslateMarkdown: %w", err)
	}

	received := markdown.CountPlaceholders(translated)
	if missing := markdown.MissingSpans(translated, ext.Spans); len(missing) > 0 || received != len(ext.Spans) {
		logging.FromContext(ctx).Warn("placeholder mismatch after translation",
			logging.FieldComponent, "translation",
			logging.FieldSent, len(ext.Spans),
			logging.FieldReceived, received,
			logging.FieldMissing, missing,
		)
	}

	restored := ext.Restore(translated)
	if !sameCodeBlocks(taggedCodeBlocks(content), taggedCodeBlocks(restored)) {
		logging.FromContext(ctx).Warn("fenced code changed during translation",
			logging.FieldComponent, "translation")
	}
	return restored, nil
}

// taggedCodeBlocks lists the fenced blocks that declare a language. Bare fences are
// translated with the prose around them.
func taggedCodeBlocks(doc string) []markdown.CodeBlock {
	var out []markdown.CodeBlock
	for _, b := range markdown.FencedCodeBlocks(doc) {
		if b.Language != "" {
			out = append(out, b)
		}
	}
	return out
}

func sameCodeBlocks(a, b []markdown.CodeBlock) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
