package translator

import (
	"fmt"

	"golang.org/x/text/language"
)

// BaseLanguage validates tag and reduces it to the ISO 639 base code providers
// expect, so "es-MX" and "ES" both become "es".
func BaseLanguage(tag string) (string, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("invalid language tag %q: %w", tag, err)
	}
	base, conf := t.Base()
	if conf == language.No {
		return "", fmt.Errorf("invalid language tag %q: no base language", tag)
	}
	return base.String(), nil
}
