package wiki

import (
	"context"
	"regexp"
	"strings"

	"wikiicp/src/log"
)

// Assist status values returned to the client. Failures never leak detail
// past this enum; transport and upstream errors are logged server-side only.
const (
	StatusOK       = "ok"
	StatusEmpty    = "empty"
	StatusDisabled = "disabled"
	StatusError    = "error"
)

// Context gathered for the assist prompt is deliberately smaller than the
// search endpoint's limits, to keep the prompt bounded.
const (
	assistArticleLimit  = 3
	assistTutorialLimit = 2
)

// Suggestion is the trimmed-down result shape the assist endpoint returns.
type Suggestion struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
}

// AssistResponse is the full payload of the assist endpoint.
type AssistResponse struct {
	Query       string       `json:"query"`
	Suggestions []Suggestion `json:"suggestions"`
	Message     string       `json:"message"`
	Status      string       `json:"status"`
}

type assistService struct {
	store    ContentStore
	search   SearchService
	provider CompletionProvider
	cfg      Config
	apiKey   func() string
}

// NewAssistService wires the assist pipeline: context gathering, prompt
// assembly, the completion call and response normalization. apiKey is called
// per request and is expected to be memoized by the caller.
func NewAssistService(store ContentStore, search SearchService, provider CompletionProvider, cfg Config, apiKey func() string) AssistService {
	return &assistService{
		store:    store,
		search:   search,
		provider: provider,
		cfg:      cfg,
		apiKey:   apiKey,
	}
}

func (s *assistService) Assist(ctx context.Context, query, portalSlug string) AssistResponse {
	query = PlainText(query)
	portalSlug = Slugify(portalSlug)

	portalTerm := s.search.PortalTerm(ctx, TaxArticlePortal, portalSlug)
	tutorialPortalTerm := s.search.PortalTerm(ctx, TaxVideoPortal, portalSlug)

	articles := s.search.CollectArticles(ctx, query, portalTerm, assistArticleLimit)
	tutorials := s.search.CollectTutorials(ctx, query, tutorialPortalTerm, assistTutorialLimit)

	items := Prioritize(articles, tutorials, query)
	items = EnrichContext(ctx, s.store, items)

	suggestions := make([]Suggestion, 0, len(items))
	for _, item := range items {
		suggestions = append(suggestions, Suggestion{
			Title:   item.Title,
			Link:    item.Link,
			Type:    item.Type,
			Subtype: item.Subtype,
		})
	}

	message, status := s.summarize(ctx, query, portalTerm, portalSlug, items)
	return AssistResponse{
		Query:       query,
		Suggestions: suggestions,
		Message:     message,
		Status:      status,
	}
}

// summarize runs the completion leg. Every failure collapses to a bare status
// before it can reach the HTTP layer.
func (s *assistService) summarize(ctx context.Context, query string, portal *Term, portalSlug string, items []ContextItem) (string, string) {
	key := s.apiKey()
	if key == "" {
		return "", StatusDisabled
	}
	if query == "" {
		return "", StatusEmpty
	}

	prompt := BuildPrompt(query, portal, portalSlug, items)
	if prompt == "" {
		return "", StatusEmpty
	}

	raw, err := s.provider.Complete(ctx, prompt, key)
	if err != nil {
		log.Error(err, "assist completion failed", "query", query)
		return "", StatusError
	}

	message := NormalizeMessage(raw, s.cfg.MessageLength)
	if message == "" {
		return "", StatusEmpty
	}
	return message, StatusOK
}

var (
	lineEndingPattern    = regexp.MustCompile("\r\n?")
	trailingSpacePattern = regexp.MustCompile("[ \t]+\n")
	blankRunPattern      = regexp.MustCompile("\n{3,}")
)

// NormalizeMessage cleans a raw completion for the client: markup stripped,
// line endings unified, trailing whitespace and blank-line runs collapsed,
// then clipped to the message budget without splitting a multi-byte
// character. Empty after cleaning means "no answer".
func NormalizeMessage(message string, limit int) string {
	message = tagPattern.ReplaceAllString(message, "")
	message = lineEndingPattern.ReplaceAllString(message, "\n")
	message = trailingSpacePattern.ReplaceAllString(message, "\n")
	message = blankRunPattern.ReplaceAllString(message, "\n\n")
	message = strings.TrimSpace(message)
	if message == "" {
		return ""
	}
	return TruncateRunes(message, limit)
}
