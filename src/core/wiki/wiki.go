package wiki

import "context"

// Content kinds stored and searched by the knowledge base.
const (
	KindArticle  = "article"
	KindTutorial = "tutorial"
)

// Tutorial subtypes.
const (
	SubtypeTutorial     = "tutorial"
	SubtypeInstallation = "installation"
)

// Taxonomy vocabularies. The portal vocabularies scope content to a brand
// or business unit; the rest classify articles and videos.
const (
	TaxArticlePortal = "category_help_topic"
	TaxArticleType   = "help_topic_type"
	TaxArticleStyle  = "help_topic_style"
	TaxGlassStyle    = "glass_style"
	TaxArticleGrade  = "help_topic_grade"
	TaxVideoCategory = "category_tutorial_video"
	TaxVideoPortal   = "tutorial_video_portal"
)

// ArticleTaxonomies lists the vocabularies scanned during the article
// taxonomy-fallback search phase, in scan order. The portal vocabulary is last.
var ArticleTaxonomies = []string{
	TaxArticleType,
	TaxArticleStyle,
	TaxGlassStyle,
	TaxArticleGrade,
	TaxArticlePortal,
}

// TutorialTaxonomies lists the vocabularies scanned during the tutorial
// taxonomy-fallback search phase.
var TutorialTaxonomies = []string{TaxVideoCategory}

// Term is a single taxonomy term.
type Term struct {
	ID       int64  `json:"id"`
	Taxonomy string `json:"taxonomy"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
}

// Article is a knowledge-base help topic as stored.
type Article struct {
	ID      int64
	Title   string
	Link    string
	Excerpt string
	Body    string
	Portal  *Term
}

// Video is a tutorial or installation video as stored.
type Video struct {
	ID       int64
	Subtype  string
	Title    string
	Link     string
	Excerpt  string
	Body     string
	Duration string
	EmbedURL string
	Portal   *Term
}

// Result is the uniform shape both endpoints return for a piece of content.
// It is a snapshot computed at format time, never persisted.
type Result struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	Subtype    string `json:"subtype,omitempty"`
	TypeLabel  string `json:"typeLabel"`
	Portal     string `json:"portal"`
	PortalSlug string `json:"portalSlug"`
	Title      string `json:"title"`
	Link       string `json:"link"`
	Excerpt    string `json:"excerpt"`
	Meta       string `json:"meta"`
	CTA        string `json:"cta"`
}

// Section is one heading-delimited slice of an article body, plain text.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// ContextItem is a Result enriched for prompt assembly. Sections and Body are
// only populated for articles and never reach the UI result list.
type ContextItem struct {
	Result
	Sections []Section
	Body     string
}

// ContentStore is the capability interface the core needs from whatever backs
// the knowledge base. Implementations may use SQL, an external search engine
// or anything else that can satisfy these queries.
type ContentStore interface {
	// SearchText runs a full-text search for the given kind, optionally
	// restricted to content carrying the portal term, capped at limit.
	SearchText(ctx context.Context, kind, query string, portal *Term, limit int) ([]int64, error)
	// SearchByTerms returns ids of content of the given kind tagged with any
	// of termIDs, excluding ids in exclude, optionally intersected with the
	// portal term, capped at limit.
	SearchByTerms(ctx context.Context, kind string, termIDs []int64, portal *Term, exclude []int64, limit int) ([]int64, error)
	// FindTerms returns terms of the taxonomy loosely matching the query by
	// name or slug. Callers re-filter; the store may over-match.
	FindTerms(ctx context.Context, taxonomy, query string) ([]Term, error)
	// TermBySlug resolves a term by its exact slug, nil when absent.
	TermBySlug(ctx context.Context, taxonomy, slug string) (*Term, error)
	GetArticle(ctx context.Context, id int64) (*Article, error)
	GetVideo(ctx context.Context, id int64) (*Video, error)
}

// CompletionProvider produces a raw completion for an assembled prompt.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt, apiKey string) (string, error)
}

// SearchService aggregates knowledge-base search across both content kinds.
type SearchService interface {
	CollectArticles(ctx context.Context, query string, portal *Term, limit int) []Result
	CollectTutorials(ctx context.Context, query string, portal *Term, limit int) []Result
	PortalTerm(ctx context.Context, taxonomy, slug string) *Term
}

// AssistService answers a query with suggestions plus an AI summary.
type AssistService interface {
	Assist(ctx context.Context, query, portalSlug string) AssistResponse
}

// Config carries the tunable knobs of the search and assist pipeline.
type Config struct {
	ArticleLimit  int
	TutorialLimit int
	Model         string
	Temperature   float64
	MaxTokens     int
	SystemPrompt  string
	MessageLength int
}

// Defaults mirrored by the serve command's viper bindings.
const (
	DefaultArticleLimit  = 60
	DefaultTutorialLimit = 40
	DefaultTemperature   = 0.2
	DefaultMaxTokens     = 320
	DefaultMessageLength = 900
)

// DefaultConfig returns a Config with every knob at its default.
func DefaultConfig() Config {
	return Config{
		ArticleLimit:  DefaultArticleLimit,
		TutorialLimit: DefaultTutorialLimit,
		Temperature:   DefaultTemperature,
		MaxTokens:     DefaultMaxTokens,
		MessageLength: DefaultMessageLength,
	}
}
