package wiki

import (
	"context"
	"fmt"
)

// Display strings attached to formatted results.
const (
	LabelArticle      = "Help Topic"
	LabelTutorial     = "Tutorial Video"
	LabelInstallation = "Installation Video"

	ctaArticle      = "Read article"
	ctaTutorial     = "Watch video"
	ctaInstallation = "Watch installation"
)

// DefaultExcerptLength is the rune budget for a Result's excerpt.
const DefaultExcerptLength = 200

// Formatter converts stored content records into the uniform Result shape.
type Formatter struct {
	store ContentStore
}

// NewFormatter creates a formatter backed by the given store.
func NewFormatter(store ContentStore) *Formatter {
	return &Formatter{store: store}
}

// FormatArticle loads the article and snapshots it as a Result.
func (f *Formatter) FormatArticle(ctx context.Context, id int64) (*Result, error) {
	article, err := f.store.GetArticle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load article %d: %w", id, err)
	}
	if article == nil {
		return nil, fmt.Errorf("article %d not found", id)
	}

	result := &Result{
		ID:        article.ID,
		Type:      KindArticle,
		TypeLabel: LabelArticle,
		Title:     article.Title,
		Link:      article.Link,
		Excerpt:   plainExcerpt(article.Excerpt, article.Body, DefaultExcerptLength),
		CTA:       ctaArticle,
	}
	if article.Portal != nil {
		result.Portal = article.Portal.Name
		result.PortalSlug = article.Portal.Slug
	}
	return result, nil
}

// FormatTutorial loads the video and snapshots it as a Result. Installation
// videos get their own label and call to action.
func (f *Formatter) FormatTutorial(ctx context.Context, id int64) (*Result, error) {
	video, err := f.store.GetVideo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load video %d: %w", id, err)
	}
	if video == nil {
		return nil, fmt.Errorf("video %d not found", id)
	}

	result := &Result{
		ID:        video.ID,
		Type:      KindTutorial,
		Subtype:   SubtypeTutorial,
		TypeLabel: LabelTutorial,
		Title:     video.Title,
		Link:      video.Link,
		Excerpt:   plainExcerpt(video.Excerpt, video.Body, DefaultExcerptLength),
		CTA:       ctaTutorial,
	}
	if video.Subtype == SubtypeInstallation {
		result.Subtype = SubtypeInstallation
		result.TypeLabel = LabelInstallation
		result.CTA = ctaInstallation
	}
	if video.Duration != "" {
		result.Meta = fmt.Sprintf("Duration %s", video.Duration)
	}
	if video.Portal != nil {
		result.Portal = video.Portal.Name
		result.PortalSlug = video.Portal.Slug
	}
	return result, nil
}

// plainExcerpt prefers the explicit excerpt over the body, normalized to plain
// text and truncated without ever splitting a multi-byte character.
func plainExcerpt(excerpt, body string, limit int) string {
	source := excerpt
	if source == "" {
		source = body
	}
	return TruncateRunes(PlainText(source), limit)
}
