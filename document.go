package leadgen

import (
	"regexp"
	"strings"
)

// Document is one retrieved content unit plus its metadata. Documents are
// value types; stages that modify a document work on their own copy.
type Document struct {
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Query   string  `json:"query"`
	Source  string  `json:"source"`
	Score   float64 `json:"score"`

	AnalystType Category `json:"analyst_type"`

	EnrichedContent string `json:"enriched_content,omitempty"`
	EnrichmentError string `json:"enrichment_error,omitempty"`
}

// DisplayTitle returns the title, falling back to the URL when the title was
// cleaned away.
func (d Document) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.URL
}

var (
	// The suffix pattern strips from the first separator so a second pass
	// finds nothing left to remove; likewise the domain pattern consumes
	// every trailing extension at once.
	titleSuffixRe     = regexp.MustCompile(`\s*[-–|].*$`)
	titleSchemeRe     = regexp.MustCompile(`https?://(www\.)?`)
	titleDomainTailRe = regexp.MustCompile(`(\.[a-z]{2,4})+(/.*)?$`)
	titleSpaceRe      = regexp.MustCompile(`\s+`)
)

// CleanTitle normalizes a search result title: trailing separator-delimited
// suffixes, URL schemes, and trailing domain fragments are stripped, then
// whitespace is collapsed. The operation is idempotent.
func CleanTitle(title string) string {
	if title == "" {
		return ""
	}
	title = titleSuffixRe.ReplaceAllString(title, "")
	title = titleSchemeRe.ReplaceAllString(title, "")
	title = titleDomainTailRe.ReplaceAllString(title, "")
	return strings.TrimSpace(titleSpaceRe.ReplaceAllString(title, " "))
}
