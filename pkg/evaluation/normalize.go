package evaluation

import (
	"regexp"
	"strings"
)

var (
	punctRun = regexp.MustCompile(`[.,!?;:'"-]+`)
	spaceRun = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes free text for keyword matching: lower-case,
// punctuation runs replaced by a single space, whitespace collapsed,
// leading/trailing space trimmed. Idempotent.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = punctRun.ReplaceAllString(text, " ")
	text = spaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
