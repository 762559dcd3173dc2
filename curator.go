package leadgen

import (
	"context"
	"fmt"
	"sort"
)

// Relevance gate applied per category: only documents scoring at or above the
// threshold survive, capped at the top maxCuratedDocs by score.
const (
	scoreThreshold = 0.4
	maxCuratedDocs = 5
)

// curatorStage filters each category's documents by relevance score. A
// category with zero qualifying documents is dropped entirely.
type curatorStage struct {
	engine *Engine
}

func (s *curatorStage) Name() string { return "curator" }

func (s *curatorStage) Run(ctx context.Context, state *State) error {
	e := s.engine
	e.logger.Info("starting curator phase")
	e.notify(ctx, state.JobID, "curator_started", "Curating lead research results by relevance", map[string]any{
		"step":   "Curator",
		"status": "started",
	}, nil)

	if len(state.OrganizedDocs) == 0 {
		e.logger.Warn("no organized documents found in state")
		e.notify(ctx, state.JobID, "curator_warning", "No organized documents found to curate", map[string]any{
			"step":    "Curator",
			"status":  "warning",
			"warning": "No organized documents found",
		}, nil)
		return nil
	}

	curated := make(map[Category]map[string]Document)
	for cat, docs := range state.OrganizedDocs {
		top := curateCategory(docs)
		if len(top) > 0 {
			curated[cat] = top
		}
	}
	state.CuratedDocs = curated

	counts := make(map[string]int, len(curated))
	total := 0
	for cat, docs := range curated {
		counts[string(cat)] = len(docs)
		total += len(docs)
	}
	e.logger.Info("curated documents by relevance", "total", total, "counts", counts)

	e.notify(ctx, state.JobID, "curator_completed",
		fmt.Sprintf("Curated %d lead research results by relevance", total), map[string]any{
			"step":          "Curator",
			"status":        "completed",
			"total_curated": total,
			"counts":        counts,
		}, nil)

	return nil
}

// curateCategory sorts documents by descending score (stable on URL for
// deterministic ties) and keeps the first maxCuratedDocs at or above the
// threshold.
func curateCategory(docs map[string]Document) map[string]Document {
	urls := make([]string, 0, len(docs))
	for url := range docs {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	sort.SliceStable(urls, func(i, j int) bool {
		return docs[urls[i]].Score > docs[urls[j]].Score
	})

	top := make(map[string]Document)
	for _, url := range urls {
		if len(top) == maxCuratedDocs {
			break
		}
		if docs[url].Score >= scoreThreshold {
			top[url] = docs[url]
		}
	}
	return top
}
