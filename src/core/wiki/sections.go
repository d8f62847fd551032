package wiki

import "regexp"

const (
	// DefaultMaxSections caps how many sections are extracted from one article.
	DefaultMaxSections = 8

	overviewHeading = "Overview"
	detailsHeading  = "Details"
)

var (
	headingPattern   = regexp.MustCompile(`(?is)<h[2-3][^>]*>.*?</h[2-3]>`)
	shortcodePattern = regexp.MustCompile(`(?i)\[icon[^\]]+\]`)
)

// StripShortcodes removes inline icon shortcode directives from content. It is
// the default markup stripper; themes with other inline noise can plug in
// their own.
func StripShortcodes(s string) string {
	return shortcodePattern.ReplaceAllString(s, "")
}

// SectionExtractor splits an article body into heading-delimited sections.
type SectionExtractor struct {
	MaxSections int
	Strip       func(string) string
}

// NewSectionExtractor returns an extractor with the default section cap and
// shortcode stripper.
func NewSectionExtractor() SectionExtractor {
	return SectionExtractor{
		MaxSections: DefaultMaxSections,
		Strip:       StripShortcodes,
	}
}

// Extract walks the body splitting on h2/h3 headings. Text before the first
// heading lands under "Overview"; a heading that strips down to nothing is
// titled "Details". Sections whose body normalizes to empty are dropped, and
// extraction stops once MaxSections sections have been collected.
func (e SectionExtractor) Extract(body string) []Section {
	if body == "" {
		return nil
	}

	max := e.MaxSections
	if max <= 0 {
		max = DefaultMaxSections
	}
	if e.Strip != nil {
		body = e.Strip(body)
	}

	var sections []Section
	appendSection := func(heading, raw string) bool {
		clean := PlainText(raw)
		if clean == "" {
			return false
		}
		if heading == "" {
			heading = detailsHeading
		}
		sections = append(sections, Section{Heading: heading, Body: clean})
		return len(sections) >= max
	}

	heading := overviewHeading
	cursor := 0
	for _, loc := range headingPattern.FindAllStringIndex(body, -1) {
		if appendSection(heading, body[cursor:loc[0]]) {
			return sections
		}
		heading = PlainText(body[loc[0]:loc[1]])
		cursor = loc[1]
	}
	appendSection(heading, body[cursor:])

	return sections
}
