package wiki

import (
	"fmt"
	"net/url"
	"strings"
)

// EmbedSourceURL normalizes a raw video reference into an embeddable source.
// Pre-built iframe or video snippets pass through untouched, youtube watch and
// short links are rewritten to their /embed/ form, other valid URLs pass
// through, and anything unparseable becomes "".
func EmbedSourceURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	lower := strings.ToLower(raw)
	if strings.Contains(lower, "<iframe") || strings.Contains(lower, "<video") {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}

	host := strings.ToLower(parsed.Host)
	switch {
	case strings.Contains(host, "youtu.be"):
		if id := strings.Trim(parsed.Path, "/"); id != "" {
			return fmt.Sprintf("https://www.youtube.com/embed/%s", id)
		}
	case strings.Contains(host, "youtube.com"):
		if id := parsed.Query().Get("v"); id != "" {
			return fmt.Sprintf("https://www.youtube.com/embed/%s", id)
		}
	case strings.Contains(host, "vimeo.com") && !strings.Contains(host, "player.vimeo.com"):
		if id := strings.Trim(parsed.Path, "/"); id != "" {
			return fmt.Sprintf("https://player.vimeo.com/video/%s", id)
		}
	}

	return raw
}
