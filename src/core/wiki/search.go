package wiki

import (
	"context"
	"strings"

	"wikiicp/src/log"
)

type searchService struct {
	store     ContentStore
	formatter *Formatter
}

// NewSearchService creates the aggregator that runs the two-phase search
// strategy over the content store.
func NewSearchService(store ContentStore) SearchService {
	return &searchService{
		store:     store,
		formatter: NewFormatter(store),
	}
}

// kindSpec binds one content kind to its fallback vocabularies and formatter.
type kindSpec struct {
	kind           string
	taxonomies     []string
	portalTaxonomy string
	format         func(ctx context.Context, id int64) (*Result, error)
}

func (s *searchService) CollectArticles(ctx context.Context, query string, portal *Term, limit int) []Result {
	return s.collect(ctx, kindSpec{
		kind:           KindArticle,
		taxonomies:     ArticleTaxonomies,
		portalTaxonomy: TaxArticlePortal,
		format:         s.formatter.FormatArticle,
	}, query, portal, limit)
}

func (s *searchService) CollectTutorials(ctx context.Context, query string, portal *Term, limit int) []Result {
	return s.collect(ctx, kindSpec{
		kind:           KindTutorial,
		taxonomies:     TutorialTaxonomies,
		portalTaxonomy: TaxVideoPortal,
		format:         s.formatter.FormatTutorial,
	}, query, portal, limit)
}

// PortalTerm resolves a portal scope by slug. Store errors resolve to no
// scope rather than failing the request.
func (s *searchService) PortalTerm(ctx context.Context, taxonomy, slug string) *Term {
	if slug == "" {
		return nil
	}
	term, err := s.store.TermBySlug(ctx, taxonomy, slug)
	if err != nil {
		log.Error(err, "portal term lookup failed", "taxonomy", taxonomy, "slug", slug)
		return nil
	}
	return term
}

// collect runs the direct full-text phase and then the taxonomy-fallback
// phase, de-duplicating across phases and never exceeding limit. An empty
// query collects nothing.
func (s *searchService) collect(ctx context.Context, spec kindSpec, query string, portal *Term, limit int) []Result {
	results := []Result{}
	if query == "" || limit <= 0 {
		return results
	}

	seen := map[int64]bool{}
	var seenIDs []int64

	ids, err := s.store.SearchText(ctx, spec.kind, query, portal, limit)
	if err != nil {
		log.Error(err, "full-text search failed", "kind", spec.kind, "query", query)
		ids = nil
	}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		seenIDs = append(seenIDs, id)
		result, err := spec.format(ctx, id)
		if err != nil {
			log.Error(err, "skipping unformattable result", "kind", spec.kind, "id", id)
			continue
		}
		results = append(results, *result)
		if len(results) >= limit {
			return results
		}
	}

	for _, taxonomy := range spec.taxonomies {
		termIDs := s.matchTerms(ctx, taxonomy, query)
		if len(termIDs) == 0 {
			continue
		}

		// A portal scope applied while scanning the portal vocabulary itself
		// would be redundant; the matched terms already carry the scope.
		scope := portal
		if taxonomy == spec.portalTaxonomy {
			scope = nil
		}

		ids, err := s.store.SearchByTerms(ctx, spec.kind, termIDs, scope, seenIDs, limit-len(results))
		if err != nil {
			log.Error(err, "taxonomy search failed", "kind", spec.kind, "taxonomy", taxonomy)
			continue
		}
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			seenIDs = append(seenIDs, id)
			result, err := spec.format(ctx, id)
			if err != nil {
				log.Error(err, "skipping unformattable result", "kind", spec.kind, "id", id)
				continue
			}
			results = append(results, *result)
			if len(results) >= limit {
				return results
			}
		}
	}

	return results
}

// matchTerms finds terms of the taxonomy whose name contains the query or
// whose slug contains the slug-normalized query, case-insensitively.
func (s *searchService) matchTerms(ctx context.Context, taxonomy, query string) []int64 {
	terms, err := s.store.FindTerms(ctx, taxonomy, query)
	if err != nil {
		log.Error(err, "term lookup failed", "taxonomy", taxonomy, "query", query)
		return nil
	}

	needle := strings.ToLower(query)
	slugNeedle := Slugify(query)

	var ids []int64
	for _, term := range terms {
		if strings.Contains(strings.ToLower(term.Name), needle) {
			ids = append(ids, term.ID)
			continue
		}
		if slugNeedle != "" && strings.Contains(strings.ToLower(term.Slug), slugNeedle) {
			ids = append(ids, term.ID)
		}
	}
	return ids
}
