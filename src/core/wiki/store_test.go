package wiki_test

import (
	"context"
	"strings"

	"wikiicp/src/core/wiki"
)

type searchTextCall struct {
	kind   string
	query  string
	portal *wiki.Term
	limit  int
}

type searchTermsCall struct {
	kind    string
	termIDs []int64
	portal  *wiki.Term
	exclude []int64
	limit   int
}

// fakeStore is an in-memory ContentStore. Term matching is deliberately loose
// (taxonomy only): the contract lets stores over-match and the aggregator
// re-filter.
type fakeStore struct {
	articles map[int64]*wiki.Article
	videos   map[int64]*wiki.Video
	terms    []wiki.Term
	textHits map[string][]int64
	termHits map[int64][]int64

	searchTextCalls  []searchTextCall
	searchTermsCalls []searchTermsCall
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		articles: map[int64]*wiki.Article{},
		videos:   map[int64]*wiki.Video{},
		textHits: map[string][]int64{},
		termHits: map[int64][]int64{},
	}
}

func (s *fakeStore) SearchText(ctx context.Context, kind, query string, portal *wiki.Term, limit int) ([]int64, error) {
	s.searchTextCalls = append(s.searchTextCalls, searchTextCall{kind: kind, query: query, portal: portal, limit: limit})
	hits := s.textHits[kind]
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (s *fakeStore) SearchByTerms(ctx context.Context, kind string, termIDs []int64, portal *wiki.Term, exclude []int64, limit int) ([]int64, error) {
	s.searchTermsCalls = append(s.searchTermsCalls, searchTermsCall{
		kind: kind, termIDs: termIDs, portal: portal, exclude: exclude, limit: limit,
	})

	excluded := map[int64]bool{}
	for _, id := range exclude {
		excluded[id] = true
	}

	var ids []int64
	seen := map[int64]bool{}
	for _, termID := range termIDs {
		for _, id := range s.termHits[termID] {
			if excluded[id] || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
			if len(ids) >= limit {
				return ids, nil
			}
		}
	}
	return ids, nil
}

func (s *fakeStore) FindTerms(ctx context.Context, taxonomy, query string) ([]wiki.Term, error) {
	var found []wiki.Term
	for _, term := range s.terms {
		if term.Taxonomy == taxonomy {
			found = append(found, term)
		}
	}
	return found, nil
}

func (s *fakeStore) TermBySlug(ctx context.Context, taxonomy, slug string) (*wiki.Term, error) {
	for _, term := range s.terms {
		if term.Taxonomy == taxonomy && strings.EqualFold(term.Slug, slug) {
			found := term
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GetArticle(ctx context.Context, id int64) (*wiki.Article, error) {
	return s.articles[id], nil
}

func (s *fakeStore) GetVideo(ctx context.Context, id int64) (*wiki.Video, error) {
	return s.videos[id], nil
}
