// Package slug builds URL slugs from Spanish titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	disallowedRe = regexp.MustCompile(`[^a-z0-9\s-]`)
	spaceRe      = regexp.MustCompile(`\s+`)
	dashesRe     = regexp.MustCompile(`-+`)
)

// Generate lowercases title, strips accents, drops everything but ASCII letters,
// digits, whitespace and hyphens, and joins words with single hyphens.
// "Diseño Web Rápido" becomes "diseno-web-rapido".
func Generate(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.ToLower(title))
	if err != nil {
		stripped = strings.ToLower(title)
	}
	s := disallowedRe.ReplaceAllString(stripped, "")
	s = spaceRe.ReplaceAllString(s, "-")
	s = dashesRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
