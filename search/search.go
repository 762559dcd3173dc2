// Package search provides web search access for the research stage.
// The Tavily client is the production implementation; NewDummyClient is used
// to substitute deterministic results in tests.
package search

import "context"

// Result is a single search hit as returned by the provider.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Client executes a search query and returns best-effort results.
// A zero-length result slice is a valid response.
type Client interface {
	Search(ctx context.Context, query string) ([]Result, error)
}
