package meili

import (
	"context"
	"fmt"
	"strings"

	"github.com/meilisearch/meilisearch-go"

	"wikiicp/src/core/wiki"
)

const (
	contentIndex = "wiki_content"
	termIndex    = "wiki_terms"
)

// ContentDocument is a stored article or video in the content index. Term ids
// are denormalized onto the document so taxonomy and portal constraints
// become filter expressions.
type ContentDocument struct {
	ID         int64   `json:"id"`
	Kind       string  `json:"kind"`
	Subtype    string  `json:"subtype"`
	Title      string  `json:"title"`
	Link       string  `json:"link"`
	Excerpt    string  `json:"excerpt"`
	Body       string  `json:"body"`
	Duration   string  `json:"duration"`
	EmbedURL   string  `json:"embed_url"`
	PortalID   int64   `json:"portal_id"`
	PortalName string  `json:"portal_name"`
	PortalSlug string  `json:"portal_slug"`
	TermIDs    []int64 `json:"term_ids"`
}

// TermDocument is a taxonomy term in the term index.
type TermDocument struct {
	ID       int64  `json:"id"`
	Taxonomy string `json:"taxonomy"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
}

// ContentStore implements wiki.ContentStore on a meilisearch instance.
type ContentStore struct {
	content meilisearch.IndexManager
	terms   meilisearch.IndexManager
}

// NewContentStore creates the store over the two indexes.
func NewContentStore(client meilisearch.ServiceManager) *ContentStore {
	return &ContentStore{
		content: client.Index(contentIndex),
		terms:   client.Index(termIndex),
	}
}

// EnsureIndexes marks the attributes the store filters on. Safe to call on
// every start.
func (s *ContentStore) EnsureIndexes(ctx context.Context) error {
	contentFilters := []string{"id", "kind", "subtype", "term_ids", "portal_id"}
	if _, err := s.content.UpdateFilterableAttributes(&contentFilters); err != nil {
		return fmt.Errorf("failed to configure content index: %v", err)
	}

	termFilters := []string{"id", "taxonomy", "slug"}
	if _, err := s.terms.UpdateFilterableAttributes(&termFilters); err != nil {
		return fmt.Errorf("failed to configure term index: %v", err)
	}
	return nil
}

func (s *ContentStore) SearchText(ctx context.Context, kind, query string, portal *wiki.Term, limit int) ([]int64, error) {
	filters := []string{fmt.Sprintf("kind = %q", kind)}
	if portal != nil {
		filters = append(filters, fmt.Sprintf("term_ids IN [%d]", portal.ID))
	}

	docs, err := s.searchContent(query, filters, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search content: %v", err)
	}
	return documentIDs(docs), nil
}

func (s *ContentStore) SearchByTerms(ctx context.Context, kind string, termIDs []int64, portal *wiki.Term, exclude []int64, limit int) ([]int64, error) {
	if len(termIDs) == 0 || limit <= 0 {
		return nil, nil
	}

	filters := []string{
		fmt.Sprintf("kind = %q", kind),
		fmt.Sprintf("term_ids IN %s", idList(termIDs)),
	}
	if portal != nil {
		filters = append(filters, fmt.Sprintf("term_ids IN [%d]", portal.ID))
	}
	if len(exclude) > 0 {
		filters = append(filters, fmt.Sprintf("id NOT IN %s", idList(exclude)))
	}

	docs, err := s.searchContent("", filters, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search content by terms: %v", err)
	}
	return documentIDs(docs), nil
}

func (s *ContentStore) FindTerms(ctx context.Context, taxonomy, query string) ([]wiki.Term, error) {
	request := &meilisearch.SearchRequest{
		Query:  query,
		Filter: fmt.Sprintf("taxonomy = %q", taxonomy),
		Limit:  50,
	}
	result, err := s.terms.Search(query, request)
	if err != nil {
		return nil, fmt.Errorf("failed to find terms: %v", err)
	}

	terms := make([]wiki.Term, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		terms = append(terms, wiki.Term{
			ID:       getInt64(hitMap, "id"),
			Taxonomy: getString(hitMap, "taxonomy"),
			Name:     getString(hitMap, "name"),
			Slug:     getString(hitMap, "slug"),
		})
	}
	return terms, nil
}

func (s *ContentStore) TermBySlug(ctx context.Context, taxonomy, slug string) (*wiki.Term, error) {
	request := &meilisearch.SearchRequest{
		Filter: fmt.Sprintf("taxonomy = %q AND slug = %q", taxonomy, slug),
		Limit:  1,
	}
	result, err := s.terms.Search("", request)
	if err != nil {
		return nil, fmt.Errorf("failed to get term: %v", err)
	}
	if len(result.Hits) == 0 {
		return nil, nil
	}
	hitMap, ok := result.Hits[0].(map[string]interface{})
	if !ok {
		return nil, nil
	}
	return &wiki.Term{
		ID:       getInt64(hitMap, "id"),
		Taxonomy: getString(hitMap, "taxonomy"),
		Name:     getString(hitMap, "name"),
		Slug:     getString(hitMap, "slug"),
	}, nil
}

func (s *ContentStore) GetArticle(ctx context.Context, id int64) (*wiki.Article, error) {
	doc, err := s.getContent(id, wiki.KindArticle)
	if err != nil || doc == nil {
		return nil, err
	}

	return &wiki.Article{
		ID:      doc.ID,
		Title:   doc.Title,
		Link:    doc.Link,
		Excerpt: doc.Excerpt,
		Body:    doc.Body,
		Portal:  doc.portalTerm(wiki.TaxArticlePortal),
	}, nil
}

func (s *ContentStore) GetVideo(ctx context.Context, id int64) (*wiki.Video, error) {
	doc, err := s.getContent(id, wiki.KindTutorial)
	if err != nil || doc == nil {
		return nil, err
	}

	return &wiki.Video{
		ID:       doc.ID,
		Subtype:  doc.Subtype,
		Title:    doc.Title,
		Link:     doc.Link,
		Excerpt:  doc.Excerpt,
		Body:     doc.Body,
		Duration: doc.Duration,
		EmbedURL: wiki.EmbedSourceURL(doc.EmbedURL),
		Portal:   doc.portalTerm(wiki.TaxVideoPortal),
	}, nil
}

// IndexContent upserts content documents.
func (s *ContentStore) IndexContent(ctx context.Context, docs []ContentDocument) error {
	if len(docs) == 0 {
		return nil
	}
	task, err := s.content.AddDocuments(docs)
	if err != nil {
		return fmt.Errorf("failed to index content: %v", err)
	}
	if _, err := s.content.WaitForTask(task.TaskUID, 15*1000); err != nil {
		return fmt.Errorf("failed to wait for content indexing: %v", err)
	}
	return nil
}

// IndexTerms upserts term documents.
func (s *ContentStore) IndexTerms(ctx context.Context, docs []TermDocument) error {
	if len(docs) == 0 {
		return nil
	}
	task, err := s.terms.AddDocuments(docs)
	if err != nil {
		return fmt.Errorf("failed to index terms: %v", err)
	}
	if _, err := s.terms.WaitForTask(task.TaskUID, 15*1000); err != nil {
		return fmt.Errorf("failed to wait for term indexing: %v", err)
	}
	return nil
}

func (s *ContentStore) getContent(id int64, kind string) (*ContentDocument, error) {
	docs, err := s.searchContent("", []string{
		fmt.Sprintf("id = %d", id),
		fmt.Sprintf("kind = %q", kind),
	}, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %v", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

func (s *ContentStore) searchContent(query string, filters []string, limit int) ([]ContentDocument, error) {
	request := &meilisearch.SearchRequest{
		Query: query,
		Limit: int64(limit),
	}
	if len(filters) > 0 {
		request.Filter = strings.Join(filters, " AND ")
	}

	result, err := s.content.Search(query, request)
	if err != nil {
		return nil, err
	}

	docs := make([]ContentDocument, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		docs = append(docs, ContentDocument{
			ID:         getInt64(hitMap, "id"),
			Kind:       getString(hitMap, "kind"),
			Subtype:    getString(hitMap, "subtype"),
			Title:      getString(hitMap, "title"),
			Link:       getString(hitMap, "link"),
			Excerpt:    getString(hitMap, "excerpt"),
			Body:       getString(hitMap, "body"),
			Duration:   getString(hitMap, "duration"),
			EmbedURL:   getString(hitMap, "embed_url"),
			PortalID:   getInt64(hitMap, "portal_id"),
			PortalName: getString(hitMap, "portal_name"),
			PortalSlug: getString(hitMap, "portal_slug"),
		})
	}
	return docs, nil
}

// portalTerm rebuilds the portal term from the denormalized document fields.
func (d *ContentDocument) portalTerm(taxonomy string) *wiki.Term {
	if d.PortalID == 0 {
		return nil
	}
	return &wiki.Term{
		ID:       d.PortalID,
		Taxonomy: taxonomy,
		Name:     d.PortalName,
		Slug:     d.PortalSlug,
	}
}

func documentIDs(docs []ContentDocument) []int64 {
	ids := make([]int64, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids
}

func idList(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func getString(hit map[string]interface{}, key string) string {
	if value, ok := hit[key].(string); ok {
		return value
	}
	return ""
}

func getInt64(hit map[string]interface{}, key string) int64 {
	if value, ok := hit[key].(float64); ok {
		return int64(value)
	}
	return 0
}
