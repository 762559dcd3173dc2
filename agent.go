package leadgen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nexxia-ai/leadgen/ai"
	"github.com/nexxia-ai/leadgen/search"
)

const maxQueriesPerAnalyst = 4

// analyst is a single research agent bound to one category. All five
// categories share this implementation and differ only in the descriptor
// data carried by Category.
type analyst struct {
	category Category
	model    *ai.Model
	search   search.Client
	engine   *Engine
	logger   *slog.Logger
}

func newAnalyst(category Category, e *Engine) *analyst {
	return &analyst{
		category: category,
		model:    e.model.Clone().WithTemperature(0).WithMaxTokens(2048),
		search:   e.search,
		engine:   e,
		logger:   e.logger.With("analyst", string(category)),
	}
}

// GenerateQueries asks the model for up to 4 search queries built from the
// category prompt. Any failure or empty result degrades to the deterministic
// fallback query set.
func (a *analyst) GenerateQueries(ctx context.Context, p Params) []string {
	businessType := p.BusinessTypeOrDefault()
	location := p.Location
	if location == "" {
		location = "Unknown Location"
	}
	now := time.Now()
	year := now.Year()

	a.logger.Info("generating queries", "business_type", businessType, "location", location)

	systemPrompt := fmt.Sprintf(querySystemPromptFmt, businessType, location)
	content, err := a.model.Complete(ctx, systemPrompt, queryUserPrompt(a.category.queryPrompt(p, year), now))
	if err != nil {
		a.logger.Error("query generation failed", "error", err)
		a.engine.notify(ctx, p.JobID, "error", "Failed to generate lead research queries: "+err.Error(), nil,
			fmt.Errorf("query generation failed: %w", err))
		return a.category.fallbackQueries(businessType, location, year)
	}

	queries := parseQueries(content)
	for idx, query := range queries {
		a.engine.notify(ctx, p.JobID, "query_generated", "Generated lead research query", map[string]any{
			"query":        query,
			"query_number": idx + 1,
			"category":     string(a.category),
			"is_complete":  true,
		}, nil)
	}

	a.logger.Info("generated queries", "count", len(queries), "queries", queries)
	if len(queries) == 0 {
		a.logger.Warn("no queries generated, using fallbacks", "business_type", businessType)
		return a.category.fallbackQueries(businessType, location, year)
	}
	return queries
}

// parseQueries splits model output into trimmed, non-empty lines, capped at
// maxQueriesPerAnalyst.
func parseQueries(content string) []string {
	var queries []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		queries = append(queries, line)
		if len(queries) == maxQueriesPerAnalyst {
			break
		}
	}
	return queries
}

// SearchDocuments executes all queries in parallel and merges the results
// into one document map keyed by URL. A single failed query contributes zero
// documents; it never fails the batch.
func (a *analyst) SearchDocuments(ctx context.Context, p Params, queries []string) map[string]Document {
	if len(queries) == 0 {
		a.logger.Error("no valid queries to search")
		return map[string]Document{}
	}

	a.engine.notify(ctx, p.JobID, "queries_generated",
		fmt.Sprintf("Generated %d queries for %s", len(queries), a.category), map[string]any{
			"step":          "Searching",
			"analyst":       string(a.category),
			"queries":       queries,
			"total_queries": len(queries),
		}, nil)
	a.engine.notify(ctx, p.JobID, "search_started",
		fmt.Sprintf("Searching the web for %d queries", len(queries)), map[string]any{
			"step":          "Searching",
			"total_queries": len(queries),
		}, nil)

	// All queries are launched before any is awaited; each branch writes to
	// its own slot, and the barrier below guarantees every branch finished
	// before merging.
	perQuery := make([]map[string]Document, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	for i, query := range queries {
		g.Go(func() error {
			perQuery[i] = a.searchQuery(gctx, p, query)
			return nil
		})
	}
	g.Wait()

	merged := make(map[string]Document)
	for _, docs := range perQuery {
		for url, doc := range docs {
			merged[url] = doc
		}
	}

	a.engine.notify(ctx, p.JobID, "search_complete",
		fmt.Sprintf("Search completed with %d documents found", len(merged)), map[string]any{
			"step":              "Searching",
			"total_documents":   len(merged),
			"queries_processed": len(queries),
		}, nil)

	return merged
}

// searchQuery executes a single search query. Queries shorter than three
// words are skipped; result items without content or URL are dropped.
func (a *analyst) searchQuery(ctx context.Context, p Params, query string) map[string]Document {
	if query == "" || len(strings.Fields(query)) < 3 {
		return map[string]Document{}
	}

	a.engine.notify(ctx, p.JobID, "query_searching", "Searching: "+query, map[string]any{
		"step":  "Searching",
		"query": query,
	}, nil)

	results, err := a.search.Search(ctx, query)
	if err != nil {
		a.logger.Error("search failed", "query", query, "error", err)
		a.engine.notify(ctx, p.JobID, "query_error", "Search failed for: "+query, map[string]any{
			"step":  "Searching",
			"query": query,
			"error": err.Error(),
		}, nil)
		return map[string]Document{}
	}

	docs := make(map[string]Document)
	for _, item := range results {
		if item.Content == "" || item.URL == "" {
			continue
		}
		title := CleanTitle(item.Title)
		// A title that degenerates to the URL is cleared so later stages fall
		// back to the URL explicitly.
		if strings.EqualFold(title, item.URL) {
			title = ""
		}
		docs[item.URL] = Document{
			URL:         item.URL,
			Title:       title,
			Content:     item.Content,
			Query:       query,
			Source:      "web_search",
			Score:       item.Score,
			AnalystType: a.category,
		}
	}

	a.engine.notify(ctx, p.JobID, "query_searched",
		fmt.Sprintf("Found %d results for: %s", len(docs), query), map[string]any{
			"step":          "Searching",
			"query":         query,
			"results_count": len(docs),
		}, nil)

	return docs
}
