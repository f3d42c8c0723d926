package shared

import (
	"html"
	"regexp"
	"strings"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	urlRe        = regexp.MustCompile(`https?://\S+`)
	nonASCIIRe   = regexp.MustCompile(`[^\x20-\x7E]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Sanitize normalizes free text coming from either the platform or the model:
// HTML entities are decoded, tags and http(s) URLs are stripped, characters
// outside printable ASCII are dropped and whitespace runs collapse to single
// spaces. Nil-safe (empty in, empty out) and idempotent.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	text := html.UnescapeString(raw)
	text = htmlTagRe.ReplaceAllString(text, "")
	text = urlRe.ReplaceAllString(text, "")
	text = nonASCIIRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// TruncateAtWord cuts s at the last whitespace boundary before max and
// appends an ellipsis marker. Strings within the limit pass through.
func TruncateAtWord(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := s[:max]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
