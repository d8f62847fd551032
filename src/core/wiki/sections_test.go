package wiki_test

import (
	"fmt"
	"strings"
	"testing"

	"wikiicp/src/core/wiki"
)

func TestSectionExtractor(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []wiki.Section
	}{
		{
			name: "no headings lands under overview",
			body: "<p>Just one block of text.</p>",
			want: []wiki.Section{
				{Heading: "Overview", Body: "Just one block of text."},
			},
		},
		{
			name: "h2 and h3 both delimit",
			body: "<p>Intro text.</p><h2>Tools Needed</h2><p>A drill.</p><h3>Steps</h3><p>Unscrew the hinge.</p>",
			want: []wiki.Section{
				{Heading: "Overview", Body: "Intro text."},
				{Heading: "Tools Needed", Body: "A drill."},
				{Heading: "Steps", Body: "Unscrew the hinge."},
			},
		},
		{
			name: "empty bodies are dropped",
			body: "<h2>First</h2><h2>Second</h2><p>Only this survives.</p>",
			want: []wiki.Section{
				{Heading: "Second", Body: "Only this survives."},
			},
		},
		{
			name: "heading attributes and nested markup stripped",
			body: `<h2 class="wide"><em>Care</em> Guide</h2><p>Wipe  the   glass.</p>`,
			want: []wiki.Section{
				{Heading: "Care Guide", Body: "Wipe the glass."},
			},
		},
		{
			name: "icon shortcodes removed before split",
			body: `<p>See [icon name="wrench" prefix="fa-light"] the toolkit.</p><h2>Fitting</h2><p>Mount it.</p>`,
			want: []wiki.Section{
				{Heading: "Overview", Body: "See the toolkit."},
				{Heading: "Fitting", Body: "Mount it."},
			},
		},
		{
			name: "blank heading becomes details",
			body: "<h2>  </h2><p>Body under a nameless heading.</p>",
			want: []wiki.Section{
				{Heading: "Details", Body: "Body under a nameless heading."},
			},
		},
		{
			name: "h4 does not delimit",
			body: "<h4>Not a section</h4><p>All one overview.</p>",
			want: []wiki.Section{
				{Heading: "Overview", Body: "Not a section All one overview."},
			},
		},
		{
			name: "empty body",
			body: "",
			want: nil,
		},
	}

	extractor := wiki.NewSectionExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractor.Extract(tt.body)
			if len(got) != len(tt.want) {
				t.Fatalf("Extract() returned %d sections, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("section %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSectionExtractorCapsSections(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, "<h2>Heading %d</h2><p>Body %d.</p>", i, i)
	}

	got := wiki.NewSectionExtractor().Extract(b.String())
	if len(got) != wiki.DefaultMaxSections {
		t.Fatalf("Extract() returned %d sections, want %d", len(got), wiki.DefaultMaxSections)
	}
	if got[0].Heading != "Heading 0" {
		t.Errorf("first section heading = %q, want %q", got[0].Heading, "Heading 0")
	}
	if got[len(got)-1].Heading != fmt.Sprintf("Heading %d", wiki.DefaultMaxSections-1) {
		t.Errorf("last section heading = %q", got[len(got)-1].Heading)
	}
}

func TestSectionExtractorCustomCap(t *testing.T) {
	extractor := wiki.SectionExtractor{MaxSections: 2, Strip: wiki.StripShortcodes}
	got := extractor.Extract("<h2>A</h2><p>one</p><h2>B</h2><p>two</p><h2>C</h2><p>three</p>")
	if len(got) != 2 {
		t.Fatalf("Extract() returned %d sections, want 2", len(got))
	}
}
