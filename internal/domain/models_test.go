package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/domain"
)

func TestProject_Localize(t *testing.T) {
	p := &domain.Project{
		Title:         "Título",
		Description:   "Descripción",
		Content:       "# Contenido",
		TitleEN:       "Title",
		DescriptionEN: "",
		ContentEN:     "# Content",
		Slug:          "titulo",
	}

	es := p.Localize(domain.LocaleES)
	assert.Equal(t, "Título", es.Title)
	assert.Equal(t, "# Contenido", es.Content)

	en := p.Localize(domain.LocaleEN)
	assert.Equal(t, "Title", en.Title)
	assert.Equal(t, "Descripción", en.Description, "empty mirror falls back to Spanish")
	assert.Equal(t, "# Content", en.Content)
	assert.Equal(t, domain.LocaleEN, en.Locale)
}

func TestProject_NeedsTranslation(t *testing.T) {
	p := &domain.Project{TitleEN: "a", DescriptionEN: "b", ContentEN: "c"}
	assert.False(t, p.NeedsTranslation())

	p.ContentEN = ""
	assert.True(t, p.NeedsTranslation())
}

func TestPost_Localize(t *testing.T) {
	p := &domain.Post{Title: "Hola", Excerpt: "Resumen", TitleEN: "Hello"}

	en := p.Localize(domain.LocaleEN)

	assert.Equal(t, "Hello", en.Title)
	assert.Equal(t, "Resumen", en.Excerpt)
}

func TestParseLocale(t *testing.T) {
	l, err := domain.ParseLocale("")
	require.NoError(t, err)
	assert.Equal(t, domain.LocaleES, l)

	l, err = domain.ParseLocale("en")
	require.NoError(t, err)
	assert.Equal(t, domain.LocaleEN, l)

	_, err = domain.ParseLocale("fr")
	assert.ErrorIs(t, err, domain.ErrInvalidLocale)
}

func TestProjectStatus_Valid(t *testing.T) {
	assert.True(t, domain.ProjectStatusInProgress.Valid())
	assert.False(t, domain.ProjectStatus("done").Valid())
}

func TestStringList_ValueAndScan(t *testing.T) {
	v, err := domain.StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var l domain.StringList
	require.NoError(t, l.Scan([]byte(`["go","gin"]`)))
	assert.Equal(t, domain.StringList{"go", "gin"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Equal(t, domain.StringList{}, l)

	require.NoError(t, l.Scan("null"))
	assert.Equal(t, domain.StringList{}, l)

	assert.Error(t, l.Scan(42))
}
