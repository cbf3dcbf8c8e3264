package markdown

import (
	"regexp"
	"strconv"
)

// tokenRe matches all three token kinds, tolerating whitespace a translator may have
// inserted inside the brackets ("[[ BLOCK_ 3 ]]", "[[ P ]]").
var tokenRe = regexp.MustCompile(`\[\[\s*(?:BLOCK_\s*(\d+)|(P)|(BQ))\s*\]\]`)

var blockTokenRe = regexp.MustCompile(`\[\[\s*BLOCK_\s*(\d+)\s*\]\]`)

// Restore puts removed spans back into translated text. Indexed tokens are resolved
// against spans by the numeral they carry; an index with no span (the translator
// invented or garbled a token) becomes the empty string. Pipe tokens become "|" and
// quote tokens become "> ".
//
// Substitution is a single left-to-right pass, so restored spans are never rescanned
// for tokens.
func Restore(translated string, spans []string) string {
	return tokenRe.ReplaceAllStringFunc(translated, func(tok string) string {
		m := tokenRe.FindStringSubmatch(tok)
		switch {
		case m[1] != "":
			i, err := strconv.Atoi(m[1])
			if err != nil || i < 0 || i >= len(spans) {
				return ""
			}
			return spans[i]
		case m[2] != "":
			return "|"
		default:
			return "> "
		}
	})
}

// CountPlaceholders reports how many indexed tokens text contains.
func CountPlaceholders(text string) int {
	return len(blockTokenRe.FindAllStringIndex(text, -1))
}

// MissingSpans returns the indexes of spans whose token does not appear in text.
func MissingSpans(text string, spans []string) []int {
	seen := make(map[int]bool, len(spans))
	for _, m := range blockTokenRe.FindAllStringSubmatch(text, -1) {
		if i, err := strconv.Atoi(m[1]); err == nil {
			seen[i] = true
		}
	}
	var missing []int
	for i := range spans {
		if !seen[i] {
			missing = append(missing, i)
		}
	}
	return missing
}
