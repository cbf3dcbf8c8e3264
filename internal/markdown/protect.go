// Package markdown prepares Markdown documents for machine translation and renders
// them for the public site.
//
// Protect replaces syntax that a translation service would corrupt with opaque
// placeholder tokens, and Restore puts the original syntax back into the translated
// text. Code, table separator rows and inline code are removed from the text entirely;
// table cell pipes and blockquote markers are replaced by fixed tokens so that the
// surrounding prose still reaches the translator.
package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// Token spellings. The alphanumeric core survives translation services unchanged and
// the double brackets never occur in ordinary Markdown.
const (
	blockTokenFormat = "[[BLOCK_%d]]"
	PipeToken        = "[[P]]"
	QuoteToken       = "[[BQ]]"
)

var (
	taggedFenceRe = regexp.MustCompile("```[a-zA-Z]\\w*\\n(?s:.*?)```")
	bareFenceRe   = regexp.MustCompile("(?m)^```$")
	tableRunRe    = regexp.MustCompile(`(?m)(?:^[^\n]*\|[^\n]*(?:\n|$))+`)
	separatorRe   = regexp.MustCompile(`^\s*\|(\s*:?-+:?\s*\|)+\s*$`)
	quoteMarkerRe = regexp.MustCompile(`^>[ \t]*`)
	inlineCodeRe  = regexp.MustCompile("`[^`\\n]+`")
)

// Extraction is the result of Protect: the text to send to the translator and the
// spans removed from it, addressed by their position in Spans.
type Extraction struct {
	Text  string
	Spans []string
}

// Restore substitutes the removed spans back into a translated version of Text.
func (e Extraction) Restore(translated string) string {
	return Restore(translated, e.Spans)
}

// stage rewrites text, appending every span it removes to spans.
type stage func(text string, spans []string) (string, []string)

// Order matters: fenced blocks must be gone before inline code is matched, and table
// rows must have lost their pipes before blockquote markers are replaced.
var stages = []stage{
	protectTaggedFences,
	protectBareFences,
	protectTables,
	protectQuoteMarkers,
	protectInlineCode,
}

// Protect rewrites doc into translator-safe text. It is deterministic and does not
// retain doc or the returned spans.
func Protect(doc string) Extraction {
	text := doc
	var spans []string
	for _, s := range stages {
		text, spans = s(text, spans)
	}
	return Extraction{Text: text, Spans: spans}
}

func blockToken(i int) string {
	return fmt.Sprintf(blockTokenFormat, i)
}

// replaceWithBlocks replaces every match of re with an indexed token.
func replaceWithBlocks(re *regexp.Regexp, text string, spans []string) (string, []string) {
	out := re.ReplaceAllStringFunc(text, func(match string) string {
		spans = append(spans, match)
		return blockToken(len(spans) - 1)
	})
	return out, spans
}

// protectTaggedFences removes fenced code blocks that declare a language, fences included.
func protectTaggedFences(text string, spans []string) (string, []string) {
	return replaceWithBlocks(taggedFenceRe, text, spans)
}

// protectBareFences removes lines made of exactly three backticks. The block content
// stays in place: untagged fences usually hold diagrams with prose labels.
func protectBareFences(text string, spans []string) (string, []string) {
	return replaceWithBlocks(bareFenceRe, text, spans)
}

// protectTables walks runs of consecutive lines containing a pipe. Separator rows are
// removed whole; every other row keeps its cell text with pipes swapped for PipeToken.
func protectTables(text string, spans []string) (string, []string) {
	out := tableRunRe.ReplaceAllStringFunc(text, func(run string) string {
		body, trailer := run, ""
		if strings.HasSuffix(body, "\n") {
			body, trailer = body[:len(body)-1], "\n"
		}
		lines := strings.Split(body, "\n")
		for i, line := range lines {
			switch {
			case strings.TrimSpace(line) == "":
			case separatorRe.MatchString(line):
				spans = append(spans, line)
				lines[i] = blockToken(len(spans) - 1)
			default:
				lines[i] = strings.ReplaceAll(line, "|", PipeToken)
			}
		}
		return strings.Join(lines, "\n") + trailer
	})
	return out, spans
}

// protectQuoteMarkers replaces a leading "> " with QuoteToken, leaving the quoted text.
// Rows already rewritten by protectTables keep their marker as plain text.
func protectQuoteMarkers(text string, spans []string) (string, []string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.Contains(line, PipeToken) {
			continue
		}
		if loc := quoteMarkerRe.FindStringIndex(line); loc != nil {
			lines[i] = QuoteToken + line[loc[1]:]
		}
	}
	return strings.Join(lines, "\n"), spans
}

// protectInlineCode removes backtick spans. The table stage runs first and may have
// tokenized pipes inside them, so those are turned back into "|" before the span is kept.
func protectInlineCode(text string, spans []string) (string, []string) {
	out := inlineCodeRe.ReplaceAllStringFunc(text, func(match string) string {
		spans = append(spans, strings.ReplaceAll(match, PipeToken, "|"))
		return blockToken(len(spans) - 1)
	})
	return out, spans
}
