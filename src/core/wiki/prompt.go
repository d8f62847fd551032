package wiki

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"wikiicp/src/log"
)

// Rune budgets for the assembled prompt.
const (
	promptQueryLength    = 320
	promptBodyLength     = 280
	promptExcerptLength  = 200
	promptSectionLength  = 260
	enrichedBodyLength   = 1400
	promptMaxSections    = 3
	noMatchReferenceLine = "Reference material: no direct matches were found in the wiki."
)

// installationKeywords flag queries asking about installation or replacement
// work, which reorders both context priority and the instruction line.
var installationKeywords = []string{
	"install", "installation", "replace", "mount", "fit",
	"setup", "hinge", "fasten", "drill",
}

// MentionsInstallation reports whether the query contains any installation
// keyword, case-insensitively.
func MentionsInstallation(query string) bool {
	if query == "" {
		return false
	}
	normalized := strings.ToLower(query)
	for _, keyword := range installationKeywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}

// Prioritize merges articles and tutorials into the order the prompt should
// reference them. Installation-focused queries lead with installation videos;
// everything else leads with articles.
func Prioritize(articles, tutorials []Result, query string) []ContextItem {
	var installations, videos []ContextItem
	for _, t := range tutorials {
		item := ContextItem{Result: t}
		if t.Subtype == SubtypeInstallation {
			installations = append(installations, item)
		} else {
			videos = append(videos, item)
		}
	}

	articleItems := make([]ContextItem, 0, len(articles))
	for _, a := range articles {
		articleItems = append(articleItems, ContextItem{Result: a})
	}

	items := make([]ContextItem, 0, len(articles)+len(tutorials))
	if MentionsInstallation(query) {
		items = append(items, installations...)
		items = append(items, videos...)
		items = append(items, articleItems...)
		return items
	}
	items = append(items, articleItems...)
	items = append(items, videos...)
	items = append(items, installations...)
	return items
}

// EnrichContext attaches extracted sections and a long plain-text body to the
// article items, the extra material the prompt builder draws on. Load failures
// leave the item unenriched rather than dropping it.
func EnrichContext(ctx context.Context, store ContentStore, items []ContextItem) []ContextItem {
	extractor := NewSectionExtractor()
	for i := range items {
		if items[i].Type != KindArticle || items[i].ID == 0 {
			continue
		}
		article, err := store.GetArticle(ctx, items[i].ID)
		if err != nil || article == nil {
			log.Error(err, "failed to enrich context item", "id", items[i].ID)
			continue
		}
		items[i].Sections = extractor.Extract(article.Body)
		items[i].Body = enrichedExcerpt(article, enrichedBodyLength)
	}
	return items
}

func enrichedExcerpt(article *Article, limit int) string {
	source := article.Excerpt
	if source == "" {
		source = article.Body
	}
	return TruncateRunes(PlainText(source), limit)
}

// BuildPrompt assembles the full prompt document: the question, an optional
// portal focus, a numbered reference block and the instruction line. Returns
// "" when the query truncates to nothing.
func BuildPrompt(query string, portal *Term, portalSlug string, items []ContextItem) string {
	cleanQuery := TrimForPrompt(query, promptQueryLength)
	if cleanQuery == "" {
		return ""
	}

	portalLabel := portalSlug
	if portal != nil && portal.Name != "" {
		portalLabel = portal.Name
	}

	var sections []string
	sections = append(sections, fmt.Sprintf("Question: %s", cleanQuery))
	if portalLabel != "" {
		sections = append(sections, fmt.Sprintf("Portal or brand focus: %s", portalLabel))
	}

	var references []string
	for _, item := range items {
		line := formatReferenceLine(item, len(references)+1)
		if line == "" {
			continue
		}
		if block := renderItemSections(item, cleanQuery, promptMaxSections); block != "" {
			line += "\n    Sections:\n" + block
		}
		references = append(references, line)
	}

	if len(references) > 0 {
		sections = append(sections, "Reference material:\n"+strings.Join(references, "\n"))
	} else {
		sections = append(sections, noMatchReferenceLine)
	}

	instruction := "Use the reference material to craft a concise, factual answer (two short paragraphs or fewer). Mention resource titles with their URLs in parentheses, focus on actionable steps, and never invent information that is not provided."
	if MentionsInstallation(cleanQuery) {
		instruction += " The user is asking about installation or replacement steps, so highlight installation videos first when available."
	} else {
		instruction += " The user did not explicitly mention installation, so rely on detailed help topics first and only bring in installation or tutorial videos when they directly answer the question."
	}
	sections = append(sections, "Instructions: "+instruction)

	return strings.Join(sections, "\n\n")
}

// formatReferenceLine renders one numbered reference. Items missing a title or
// link produce "" and must not consume an index.
func formatReferenceLine(item ContextItem, index int) string {
	if item.Title == "" || item.Link == "" {
		return ""
	}

	label := item.TypeLabel
	if label == "" && item.Type != "" {
		label = strings.ToUpper(item.Type[:1]) + item.Type[1:]
	}
	if label == "" {
		label = "Entry"
	}

	summary := ""
	if item.Body != "" {
		summary = TrimForPrompt(item.Body, promptBodyLength)
	} else if item.Excerpt != "" {
		summary = TrimForPrompt(item.Excerpt, promptExcerptLength)
	}

	line := fmt.Sprintf("%d. %s — %s", index, label, item.Title)
	if item.Portal != "" {
		line += fmt.Sprintf(" (Portal: %s)", item.Portal)
	}
	line += fmt.Sprintf(" — URL: %s", item.Link)
	if summary != "" {
		line += fmt.Sprintf(" — Summary: %s", summary)
	}
	return line
}

// scoredSection pairs a section with its keyword score and document position.
type scoredSection struct {
	Section
	score int
	index int
}

// renderItemSections picks the item's sections most relevant to the query and
// renders them as indented bullet lines. Heading hits weigh 3, body hits 2;
// ties keep document order.
func renderItemSections(item ContextItem, query string, max int) string {
	if len(item.Sections) == 0 {
		return ""
	}

	tokens := queryTokens(query)

	scored := make([]scoredSection, 0, len(item.Sections))
	for i, section := range item.Sections {
		if section.Body == "" {
			continue
		}
		score := 0
		heading := strings.ToLower(section.Heading)
		body := strings.ToLower(section.Body)
		for _, token := range tokens {
			if strings.Contains(heading, token) {
				score += 3
			}
			if strings.Contains(body, token) {
				score += 2
			}
		}
		scored = append(scored, scoredSection{Section: section, score: score, index: i})
	}
	if len(scored) == 0 {
		return ""
	}

	sort.SliceStable(scored, func(a, b int) bool {
		if scored[a].score == scored[b].score {
			return scored[a].index < scored[b].index
		}
		return scored[a].score > scored[b].score
	})
	if len(scored) > max {
		scored = scored[:max]
	}

	lines := make([]string, 0, len(scored))
	for _, section := range scored {
		heading := section.Heading
		if heading == "" {
			heading = detailsHeading
		}
		lines = append(lines, fmt.Sprintf("      • %s: %s", heading, TrimForPrompt(section.Body, promptSectionLength)))
	}
	return strings.Join(lines, "\n")
}
