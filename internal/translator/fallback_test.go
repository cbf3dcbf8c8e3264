package translator_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/port"
	"portfolio/internal/translator"
)

// scriptedTranslator returns preset results and counts calls.
type scriptedTranslator struct {
	out   string
	err   error
	calls int
}

func (s *scriptedTranslator) Translate(_ context.Context, _, _, _ string) (string, error) {
	s.calls++
	return s.out, s.err
}

func TestFallbackTranslator_PrimarySucceeds(t *testing.T) {
	primary := &scriptedTranslator{out: "hello"}
	secondary := &scriptedTranslator{out: "unused"}
	f := translator.NewFallbackTranslator([]port.Translator{primary, secondary}, []string{"p", "s"})

	out, err := f.Translate(context.Background(), "hola", "es", "en")

	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackTranslator_FallsThroughOnError(t *testing.T) {
	primary := &scriptedTranslator{err: translator.NewProviderError("p", http.StatusInternalServerError, nil)}
	secondary := &scriptedTranslator{out: "hello"}
	f := translator.NewFallbackTranslator([]port.Translator{primary, secondary}, []string{"p", "s"})

	out, err := f.Translate(context.Background(), "hola", "es", "en")

	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, 1, primary.calls)
}

func TestFallbackTranslator_AllFail(t *testing.T) {
	primary := &scriptedTranslator{err: errors.New("boom")}
	secondary := &scriptedTranslator{err: translator.ErrMalformedResponse}
	f := translator.NewFallbackTranslator([]port.Translator{primary, secondary}, []string{"p", "s"})

	_, err := f.Translate(context.Background(), "hola", "es", "en")

	assert.ErrorIs(t, err, translator.ErrMalformedResponse)
	assert.ErrorContains(t, err, "all translation providers failed")
}

func TestFallbackTranslator_RateLimitOpensCircuit(t *testing.T) {
	primary := &scriptedTranslator{err: translator.NewRateLimitError("p", errors.New("429"), 60)}
	secondary := &scriptedTranslator{out: "hello"}
	f := translator.NewFallbackTranslator([]port.Translator{primary, secondary}, []string{"p", "s"})

	_, err := f.Translate(context.Background(), "uno", "es", "en")
	require.NoError(t, err)
	_, err = f.Translate(context.Background(), "dos", "es", "en")
	require.NoError(t, err)

	assert.Equal(t, 1, primary.calls, "open circuit skips the primary")
	assert.Equal(t, 2, secondary.calls)
}

func TestFallbackTranslator_AllRateLimited(t *testing.T) {
	primary := &scriptedTranslator{err: translator.NewRateLimitError("p", errors.New("429"), 30)}
	f := translator.NewFallbackTranslator([]port.Translator{primary}, []string{"p"})

	_, err := f.Translate(context.Background(), "hola", "es", "en")

	var rlErr *translator.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "all", rlErr.Provider)
}

func TestFallbackTranslator_OpenCircuitsSkipEveryProvider(t *testing.T) {
	primary := &scriptedTranslator{err: translator.NewRateLimitError("p", errors.New("429"), 60)}
	secondary := &scriptedTranslator{err: translator.NewRateLimitError("s", errors.New("429"), 120)}
	f := translator.NewFallbackTranslator([]port.Translator{primary, secondary}, []string{"p", "s"})

	_, err := f.Translate(context.Background(), "uno", "es", "en")
	require.Error(t, err)
	_, err = f.Translate(context.Background(), "dos", "es", "en")

	var rlErr *translator.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "all", rlErr.Provider)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestFallbackTranslator_BlankText(t *testing.T) {
	primary := &scriptedTranslator{out: "x"}
	f := translator.NewFallbackTranslator([]port.Translator{primary}, []string{"p"})

	out, err := f.Translate(context.Background(), " ", "es", "en")

	require.NoError(t, err)
	assert.Equal(t, " ", out)
	assert.Equal(t, 0, primary.calls)
}
