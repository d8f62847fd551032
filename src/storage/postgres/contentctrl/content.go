package contentctrl

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"wikiicp/src/core/wiki"
)

// Content is a stored article or video record.
type Content struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"not null;index" json:"kind"`
	Subtype   string    `json:"subtype"`
	Title     string    `gorm:"not null" json:"title"`
	Link      string    `gorm:"not null" json:"link"`
	Excerpt   string    `json:"excerpt"`
	Body      string    `json:"body"`
	Duration  string    `json:"duration"`
	EmbedURL  string    `gorm:"column:embed_url" json:"embed_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Term is a stored taxonomy term.
type Term struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	Taxonomy string `gorm:"not null;index" json:"taxonomy"`
	Name     string `gorm:"not null" json:"name"`
	Slug     string `gorm:"not null;index" json:"slug"`
}

// ContentTerm links content to its taxonomy terms.
type ContentTerm struct {
	ContentID int64 `gorm:"primaryKey" json:"content_id"`
	TermID    int64 `gorm:"primaryKey" json:"term_id"`
}

// ContentService implements wiki.ContentStore on postgres via gorm, matching
// text with ILIKE queries.
type ContentService struct {
	db        *gorm.DB
	snowflake *snowflake.Node
}

// NewContentService creates the store. The snowflake node seeds ids for the
// create helpers.
func NewContentService(db *gorm.DB) (*ContentService, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %v", err)
	}

	return &ContentService{
		db:        db,
		snowflake: node,
	}, nil
}

// Migrate creates or updates the backing tables.
func (s *ContentService) Migrate() error {
	if err := s.db.AutoMigrate(&Content{}, &Term{}, &ContentTerm{}); err != nil {
		return fmt.Errorf("failed to migrate content tables: %v", err)
	}
	return nil
}

func (s *ContentService) SearchText(ctx context.Context, kind, query string, portal *wiki.Term, limit int) ([]int64, error) {
	pattern := "%" + query + "%"
	q := s.db.WithContext(ctx).Model(&Content{}).
		Where("kind = ?", kind).
		Where("title ILIKE ? OR excerpt ILIKE ? OR body ILIKE ?", pattern, pattern, pattern)
	if portal != nil {
		q = q.Where("EXISTS (SELECT 1 FROM content_terms ct WHERE ct.content_id = contents.id AND ct.term_id = ?)", portal.ID)
	}

	var ids []int64
	result := q.Order("id").Limit(limit).Pluck("id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to search content: %v", result.Error)
	}
	return ids, nil
}

func (s *ContentService) SearchByTerms(ctx context.Context, kind string, termIDs []int64, portal *wiki.Term, exclude []int64, limit int) ([]int64, error) {
	if len(termIDs) == 0 || limit <= 0 {
		return nil, nil
	}

	q := s.db.WithContext(ctx).Model(&Content{}).
		Joins("JOIN content_terms ct ON ct.content_id = contents.id").
		Where("contents.kind = ?", kind).
		Where("ct.term_id IN ?", termIDs)
	if portal != nil {
		q = q.Where("EXISTS (SELECT 1 FROM content_terms pt WHERE pt.content_id = contents.id AND pt.term_id = ?)", portal.ID)
	}
	if len(exclude) > 0 {
		q = q.Where("contents.id NOT IN ?", exclude)
	}

	var ids []int64
	result := q.Distinct("contents.id").Order("contents.id").Limit(limit).Pluck("contents.id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to search content by terms: %v", result.Error)
	}
	return ids, nil
}

func (s *ContentService) FindTerms(ctx context.Context, taxonomy, query string) ([]wiki.Term, error) {
	pattern := "%" + query + "%"
	slugPattern := "%" + wiki.Slugify(query) + "%"

	var terms []Term
	result := s.db.WithContext(ctx).
		Where("taxonomy = ?", taxonomy).
		Where("name ILIKE ? OR slug ILIKE ?", pattern, slugPattern).
		Order("id").
		Find(&terms)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find terms: %v", result.Error)
	}

	found := make([]wiki.Term, 0, len(terms))
	for _, term := range terms {
		found = append(found, wiki.Term(term))
	}
	return found, nil
}

func (s *ContentService) TermBySlug(ctx context.Context, taxonomy, slug string) (*wiki.Term, error) {
	var term Term
	result := s.db.WithContext(ctx).
		Where("taxonomy = ? AND slug = ?", taxonomy, slug).
		First(&term)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get term: %v", result.Error)
	}
	converted := wiki.Term(term)
	return &converted, nil
}

func (s *ContentService) GetArticle(ctx context.Context, id int64) (*wiki.Article, error) {
	content, err := s.getContent(ctx, id, wiki.KindArticle)
	if err != nil || content == nil {
		return nil, err
	}

	portal, err := s.portalTerm(ctx, id, wiki.TaxArticlePortal)
	if err != nil {
		return nil, err
	}

	return &wiki.Article{
		ID:      content.ID,
		Title:   content.Title,
		Link:    content.Link,
		Excerpt: content.Excerpt,
		Body:    content.Body,
		Portal:  portal,
	}, nil
}

func (s *ContentService) GetVideo(ctx context.Context, id int64) (*wiki.Video, error) {
	content, err := s.getContent(ctx, id, wiki.KindTutorial)
	if err != nil || content == nil {
		return nil, err
	}

	portal, err := s.portalTerm(ctx, id, wiki.TaxVideoPortal)
	if err != nil {
		return nil, err
	}

	return &wiki.Video{
		ID:       content.ID,
		Subtype:  content.Subtype,
		Title:    content.Title,
		Link:     content.Link,
		Excerpt:  content.Excerpt,
		Body:     content.Body,
		Duration: content.Duration,
		EmbedURL: wiki.EmbedSourceURL(content.EmbedURL),
		Portal:   portal,
	}, nil
}

func (s *ContentService) getContent(ctx context.Context, id int64, kind string) (*Content, error) {
	var content Content
	result := s.db.WithContext(ctx).Where("kind = ?", kind).First(&content, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get content: %v", result.Error)
	}
	return &content, nil
}

// portalTerm returns the first portal term attached to the content, nil when
// untagged.
func (s *ContentService) portalTerm(ctx context.Context, contentID int64, taxonomy string) (*wiki.Term, error) {
	var term Term
	result := s.db.WithContext(ctx).
		Joins("JOIN content_terms ct ON ct.term_id = terms.id").
		Where("ct.content_id = ? AND terms.taxonomy = ?", contentID, taxonomy).
		Order("terms.id").
		First(&term)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get portal term: %v", result.Error)
	}
	converted := wiki.Term(term)
	return &converted, nil
}

// CreateContent inserts a record with a generated id.
func (s *ContentService) CreateContent(ctx context.Context, content *Content) (*Content, error) {
	content.ID = s.snowflake.Generate().Int64()
	result := s.db.WithContext(ctx).Create(content)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create content: %v", result.Error)
	}
	return content, nil
}

// CreateTerm inserts a taxonomy term with a generated id.
func (s *ContentService) CreateTerm(ctx context.Context, taxonomy, name, slug string) (*Term, error) {
	term := &Term{
		ID:       s.snowflake.Generate().Int64(),
		Taxonomy: taxonomy,
		Name:     name,
		Slug:     slug,
	}
	result := s.db.WithContext(ctx).Create(term)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create term: %v", result.Error)
	}
	return term, nil
}

// TagContent attaches a term to a content record.
func (s *ContentService) TagContent(ctx context.Context, contentID, termID int64) error {
	result := s.db.WithContext(ctx).Create(&ContentTerm{ContentID: contentID, TermID: termID})
	if result.Error != nil {
		return fmt.Errorf("failed to tag content: %v", result.Error)
	}
	return nil
}
