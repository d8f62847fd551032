package wiki_test

import (
	"context"
	"strings"
	"testing"

	"wikiicp/src/core/wiki"
)

func TestFormatArticle(t *testing.T) {
	portal := &wiki.Term{ID: 900, Taxonomy: wiki.TaxArticlePortal, Name: "Doors", Slug: "doors"}

	tests := []struct {
		name    string
		article *wiki.Article
		check   func(t *testing.T, r *wiki.Result)
	}{
		{
			name: "explicit excerpt preferred over body",
			article: &wiki.Article{
				ID: 1, Title: "Hinge Replacement Guide", Link: "https://wiki.example/1",
				Excerpt: "<p>Short and sweet.</p>",
				Body:    "Long body that should not be used.",
			},
			check: func(t *testing.T, r *wiki.Result) {
				if r.Excerpt != "Short and sweet." {
					t.Errorf("excerpt = %q", r.Excerpt)
				}
			},
		},
		{
			name: "body fallback truncates with ellipsis",
			article: &wiki.Article{
				ID: 2, Title: "Long", Link: "https://wiki.example/2",
				Body: strings.Repeat("word ", 100),
			},
			check: func(t *testing.T, r *wiki.Result) {
				if !strings.HasSuffix(r.Excerpt, "…") {
					t.Errorf("excerpt missing ellipsis: %q", r.Excerpt)
				}
				if n := len([]rune(strings.TrimSuffix(r.Excerpt, "…"))); n > wiki.DefaultExcerptLength {
					t.Errorf("excerpt length %d exceeds budget", n)
				}
			},
		},
		{
			name: "portal fields carried over",
			article: &wiki.Article{
				ID: 3, Title: "Scoped", Link: "https://wiki.example/3", Portal: portal,
			},
			check: func(t *testing.T, r *wiki.Result) {
				if r.Portal != "Doors" || r.PortalSlug != "doors" {
					t.Errorf("portal = %q/%q", r.Portal, r.PortalSlug)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.articles[tt.article.ID] = tt.article

			result, err := wiki.NewFormatter(store).FormatArticle(context.Background(), tt.article.ID)
			if err != nil {
				t.Fatalf("FormatArticle() error = %v", err)
			}
			if result.Type != wiki.KindArticle || result.TypeLabel != wiki.LabelArticle {
				t.Errorf("type = %q/%q", result.Type, result.TypeLabel)
			}
			if result.CTA != "Read article" {
				t.Errorf("cta = %q", result.CTA)
			}
			tt.check(t, result)
		})
	}
}

func TestFormatTutorial(t *testing.T) {
	tests := []struct {
		name      string
		video     *wiki.Video
		wantLabel string
		wantCTA   string
		wantMeta  string
	}{
		{
			name: "plain tutorial",
			video: &wiki.Video{
				ID: 1, Subtype: wiki.SubtypeTutorial, Title: "Measuring", Link: "https://wiki.example/v/1",
				Duration: "4:30",
			},
			wantLabel: wiki.LabelTutorial,
			wantCTA:   "Watch video",
			wantMeta:  "Duration 4:30",
		},
		{
			name: "installation video",
			video: &wiki.Video{
				ID: 2, Subtype: wiki.SubtypeInstallation, Title: "Fitting", Link: "https://wiki.example/v/2",
			},
			wantLabel: wiki.LabelInstallation,
			wantCTA:   "Watch installation",
			wantMeta:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.videos[tt.video.ID] = tt.video

			result, err := wiki.NewFormatter(store).FormatTutorial(context.Background(), tt.video.ID)
			if err != nil {
				t.Fatalf("FormatTutorial() error = %v", err)
			}
			if result.Type != wiki.KindTutorial {
				t.Errorf("type = %q", result.Type)
			}
			if result.TypeLabel != tt.wantLabel {
				t.Errorf("typeLabel = %q, want %q", result.TypeLabel, tt.wantLabel)
			}
			if result.CTA != tt.wantCTA {
				t.Errorf("cta = %q, want %q", result.CTA, tt.wantCTA)
			}
			if result.Meta != tt.wantMeta {
				t.Errorf("meta = %q, want %q", result.Meta, tt.wantMeta)
			}
		})
	}
}

func TestFormatMissingContent(t *testing.T) {
	store := newFakeStore()
	formatter := wiki.NewFormatter(store)

	if _, err := formatter.FormatArticle(context.Background(), 99); err == nil {
		t.Error("FormatArticle(missing) expected error")
	}
	if _, err := formatter.FormatTutorial(context.Background(), 99); err == nil {
		t.Error("FormatTutorial(missing) expected error")
	}
}
