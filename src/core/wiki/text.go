package wiki

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	nonSlugPattern    = regexp.MustCompile(`[^a-z0-9]+`)
)

// PlainText strips markup from s, collapses all whitespace runs to a single
// space and trims the ends. Tags become spaces so adjacent words never merge.
func PlainText(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// TruncateRunes clips s to at most limit runes, appending an ellipsis when
// anything was cut. Counting is rune-based so multi-byte characters are never
// split. A limit <= 0 disables truncation.
func TruncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

// TrimForPrompt condenses text into a single truncated line for prompt
// construction.
func TrimForPrompt(s string, limit int) string {
	return TruncateRunes(PlainText(s), limit)
}

// Slugify lowercases s and reduces it to hyphen-separated alphanumeric runs,
// the same normal form term slugs are stored in. May return "".
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonSlugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// queryTokens splits the query on whitespace and keeps lowercase tokens of at
// least four characters, the ones worth scoring sections against.
func queryTokens(query string) []string {
	var tokens []string
	for _, field := range strings.Fields(strings.ToLower(query)) {
		if len([]rune(field)) >= 4 {
			tokens = append(tokens, field)
		}
	}
	return tokens
}
