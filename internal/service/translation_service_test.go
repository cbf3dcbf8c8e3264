package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	"portfolio/internal/logging"
	"portfolio/internal/service"
	"portfolio/mocks"
)

func testTranslationConfig() config.TranslationConfig {
	return config.TranslationConfig{SourceLang: "es", TargetLang: "en"}
}

func TestTranslationService_TranslateFields_Success(t *testing.T) {
	tr := new(mocks.MockTranslator)
	notifier := new(mocks.MockNotifier)
	svc := service.NewTranslationService(tr, notifier, testTranslationConfig())

	tr.On("Translate", mock.Anything, "Título", "es", "en").Return("Title", nil)
	tr.On("Translate", mock.Anything, "Descripción", "es", "en").Return("Description", nil)
	tr.On("Translate", mock.Anything, "Usa [[BLOCK_0]] aquí", "es", "en").Return("Use [[BLOCK_0]] here", nil)

	out, err := svc.TranslateFields(context.Background(), service.FieldsInput{
		Title:       "Título",
		Description: "Descripción",
		Content:     "Usa `go test` aquí",
	})

	require.NoError(t, err)
	assert.Equal(t, "Title", out.TitleEN)
	assert.Equal(t, "Description", out.DescriptionEN)
	assert.Equal(t, "Use `go test` here", out.ContentEN)
	assert.Empty(t, out.Degraded)
	tr.AssertExpectations(t)
	notifier.AssertNotCalled(t, "NotifyTranslationDegraded", mock.Anything, mock.Anything, mock.Anything)
}

func TestTranslationService_TranslateFields_FailureKeepsSourceText(t *testing.T) {
	tr := new(mocks.MockTranslator)
	notifier := new(mocks.MockNotifier)
	svc := service.NewTranslationService(tr, notifier, testTranslationConfig())

	tr.On("Translate", mock.Anything, mock.Anything, "es", "en").Return("", errors.New("provider down"))
	notifier.On("NotifyTranslationDegraded", mock.Anything, "Título",
		[]string{service.FieldTitle, service.FieldDescription, service.FieldContent}).Return(nil)

	out, err := svc.TranslateFields(context.Background(), service.FieldsInput{
		Title:       "Título",
		Description: "Desc",
		Content:     "# Body",
	})

	require.NoError(t, err)
	assert.Equal(t, "Título", out.TitleEN)
	assert.Equal(t, "Desc", out.DescriptionEN)
	assert.Equal(t, "# Body", out.ContentEN)
	assert.Len(t, out.Degraded, 3)
	notifier.AssertExpectations(t)
}

func TestTranslationService_TranslateFields_PartialFailure(t *testing.T) {
	tr := new(mocks.MockTranslator)
	svc := service.NewTranslationService(tr, nil, testTranslationConfig())

	tr.On("Translate", mock.Anything, "Hola", "es", "en").Return("Hello", nil)
	tr.On("Translate", mock.Anything, "Resumen", "es", "en").Return("", errors.New("quota exceeded"))
	tr.On("Translate", mock.Anything, "Cuerpo", "es", "en").Return("Body", nil)

	out, err := svc.TranslateFields(context.Background(), service.FieldsInput{
		Title:       "Hola",
		Description: "Resumen",
		Content:     "Cuerpo",
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello", out.TitleEN)
	assert.Equal(t, "Resumen", out.DescriptionEN)
	assert.Equal(t, "Body", out.ContentEN)
	assert.Equal(t, []string{service.FieldDescription}, out.Degraded)
}

func TestTranslationService_TranslateFields_NotifierErrorIgnored(t *testing.T) {
	tr := new(mocks.MockTranslator)
	notifier := new(mocks.MockNotifier)
	svc := service.NewTranslationService(tr, notifier, testTranslationConfig())

	tr.On("Translate", mock.Anything, mock.Anything, "es", "en").Return("", errors.New("boom"))
	notifier.On("NotifyTranslationDegraded", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("ses down"))

	out, err := svc.TranslateFields(context.Background(), service.FieldsInput{Title: "a", Description: "b", Content: "c"})

	require.NoError(t, err)
	assert.Equal(t, "a", out.TitleEN)
	notifier.AssertExpectations(t)
}

func TestTranslationService_TranslateFields_NotConfigured(t *testing.T) {
	svc := service.NewTranslationService(nil, nil, testTranslationConfig())

	out, err := svc.TranslateFields(context.Background(), service.FieldsInput{Title: "a"})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrTranslationNotConfigured)
}

func TestTranslationService_TranslateText_WrapsProviderError(t *testing.T) {
	tr := new(mocks.MockTranslator)
	svc := service.NewTranslationService(tr, nil, testTranslationConfig())
	providerErr := errors.New("bad gateway")

	tr.On("Translate", mock.Anything, "hola", "es", "en").Return("", providerErr)

	_, err := svc.TranslateText(context.Background(), "hola")
	assert.ErrorIs(t, err, providerErr)
}

func TestTranslationService_TranslateMarkdown_TableAndFence(t *testing.T) {
	tr := new(mocks.MockTranslator)
	svc := service.NewTranslationService(tr, nil, testTranslationConfig())

	doc := "| Nombre | Edad |\n|---|---|\n| Ana | 30 |\n\n```go\nfmt.Println(\"hola\")\n```\n"
	sent := "[[P]] Nombre [[P]] Edad [[P]]\n[[BLOCK_1]]\n[[P]] Ana [[P]] 30 [[P]]\n\n[[BLOCK_0]]\n"
	back := "[[P]] Name [[P]] Age [[P]]\n[[BLOCK_1]]\n[[P]] Ana [[P]] 30 [[P]]\n\n[[BLOCK_0]]\n"
	tr.On("Translate", mock.Anything, sent, "es", "en").Return(back, nil)

	out, err := svc.TranslateMarkdown(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, "| Name | Age |\n|---|---|\n| Ana | 30 |\n\n```go\nfmt.Println(\"hola\")\n```\n", out)
}

func TestTranslationService_TranslateMarkdown_LostPlaceholderIsDropped(t *testing.T) {
	tr := new(mocks.MockTranslator)
	svc := service.NewTranslationService(tr, nil, testTranslationConfig())

	tr.On("Translate", mock.Anything, "Ejecuta [[BLOCK_0]] ahora", "es", "en").Return("Run it now", nil)

	out, err := svc.TranslateMarkdown(context.Background(), "Ejecuta `make` ahora")

	require.NoError(t, err)
	assert.Equal(t, "Run it now", out)
}

func TestTranslationService_TranslateMarkdown_BareFenceChangeNotReported(t *testing.T) {
	tr := new(mocks.MockTranslator)
	svc := service.NewTranslationService(tr, nil, testTranslationConfig())
	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "info", "text"))

	tr.On("Translate", mock.Anything, mock.Anything, "es", "en").
		Return("[[BLOCK_0]]\n+------+\n[[P]] box  [[P]]\n+------+\n[[BLOCK_1]]\n", nil)

	out, err := svc.TranslateMarkdown(ctx, "```\n+------+\n| caja |\n+------+\n```\n")

	require.NoError(t, err)
	assert.Equal(t, "```\n+------+\n| box  |\n+------+\n```\n", out)
	assert.NotContains(t, buf.String(), "fenced code changed")
}

func TestTranslationService_TranslateMarkdown_ReorderedCodeReported(t *testing.T) {
	tr := new(mocks.MockTranslator)
	svc := service.NewTranslationService(tr, nil, testTranslationConfig())
	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "info", "text"))

	tr.On("Translate", mock.Anything, "[[BLOCK_0]]\n\n[[BLOCK_1]]\n", "es", "en").
		Return("[[BLOCK_1]]\n\n[[BLOCK_0]]\n", nil)

	_, err := svc.TranslateMarkdown(ctx, "```go\na()\n```\n\n```sh\nb\n```\n")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "fenced code changed")
}

func TestTranslationService_InvalidLanguageFallsBack(t *testing.T) {
	tr := new(mocks.MockTranslator)
	svc := service.NewTranslationService(tr, nil, config.TranslationConfig{SourceLang: "??", TargetLang: "en-US"})

	tr.On("Translate", mock.Anything, "hola", "es", "en").Return("hello", nil)

	out, err := svc.TranslateText(context.Background(), "hola")

	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	tr.AssertExpectations(t)
}
