package leadgen

import (
	"context"
	"fmt"
	"sort"
)

// briefingStage condenses each category's enriched documents into one
// human-readable summary. A single category's generation failure is logged
// and that category is simply absent from the briefings.
type briefingStage struct {
	engine *Engine
}

func (s *briefingStage) Name() string { return "briefing" }

func (s *briefingStage) Run(ctx context.Context, state *State) error {
	e := s.engine
	e.logger.Info("starting briefing phase")
	e.notify(ctx, state.JobID, "briefing_started", "Generating lead briefings for each category", map[string]any{
		"step":   "Briefing",
		"status": "started",
	}, nil)

	if len(state.EnrichedDocs) == 0 {
		e.logger.Warn("no enriched documents found in state")
		e.notify(ctx, state.JobID, "briefing_warning", "No enriched documents found to brief", map[string]any{
			"step":    "Briefing",
			"status":  "warning",
			"warning": "No enriched documents found",
		}, nil)
		return nil
	}

	model := e.model.Clone().WithTemperature(0.2).WithMaxTokens(2048)

	keys := make([]Category, 0, len(state.EnrichedDocs))
	for cat := range state.EnrichedDocs {
		keys = append(keys, cat)
	}

	briefings := make(map[Category]Briefing)
	for _, cat := range orderCategories(keys) {
		docs := state.EnrichedDocs[cat]
		if len(docs) == 0 {
			e.logger.Warn("no documents for category", "category", string(cat))
			continue
		}

		combined := combineEnrichedContent(docs)
		categoryName := cat.DisplayName()
		if combined == "" {
			e.logger.Warn("no content to generate briefing", "category", categoryName)
			continue
		}

		content, err := model.Complete(ctx, briefingSystemPrompt,
			briefingUserPrompt(categoryName, combined, state.Params))
		if err != nil {
			e.logger.Error("briefing generation failed", "category", categoryName, "error", err)
			continue
		}
		if content == "" {
			continue
		}

		briefings[cat] = Briefing{Name: categoryName, Content: content}
		e.logger.Info("generated briefing", "category", categoryName)
		e.notify(ctx, state.JobID, "briefing_progress", "Generated briefing for "+categoryName, map[string]any{
			"step":     "Briefing",
			"status":   "in_progress",
			"category": categoryName,
		}, nil)
	}
	state.Briefings = briefings

	categories := make([]string, 0, len(briefings))
	for cat := range briefings {
		categories = append(categories, string(cat))
	}
	sort.Strings(categories)
	e.logger.Info("generated briefings", "total", len(briefings))

	e.notify(ctx, state.JobID, "briefing_completed",
		fmt.Sprintf("Generated %d lead briefings", len(briefings)), map[string]any{
			"step":            "Briefing",
			"status":          "completed",
			"total_briefings": len(briefings),
			"categories":      categories,
		}, nil)

	return nil
}

// combineEnrichedContent concatenates the (title, enriched content) pairs of
// a category into one delimited block, falling back to the URL when the title
// is empty. Documents without enriched content contribute nothing.
func combineEnrichedContent(docs map[string]Document) string {
	combined := ""
	for _, doc := range docsByScore(docs) {
		if doc.EnrichedContent == "" {
			continue
		}
		combined += fmt.Sprintf("Source: %s\n\n%s%s", doc.DisplayTitle(), doc.EnrichedContent, briefingBlockDelimiter)
	}
	return combined
}

// docsByScore returns the documents ordered by descending score, with URL as
// a deterministic tiebreak. This preserves the curator's ranking for display.
func docsByScore(docs map[string]Document) []Document {
	urls := make([]string, 0, len(docs))
	for url := range docs {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	sort.SliceStable(urls, func(i, j int) bool {
		return docs[urls[i]].Score > docs[urls[j]].Score
	})

	out := make([]Document, 0, len(docs))
	for _, url := range urls {
		out = append(out, docs[url])
	}
	return out
}

// orderCategories returns the given categories in the fixed research order,
// with any extra buckets (such as unknown) appended alphabetically.
func orderCategories(keys []Category) []Category {
	present := make(map[Category]bool, len(keys))
	for _, cat := range keys {
		present[cat] = true
	}
	seen := make(map[Category]bool, len(keys))
	var out []Category
	for _, cat := range Categories() {
		if present[cat] {
			out = append(out, cat)
			seen[cat] = true
		}
	}
	var rest []string
	for _, cat := range keys {
		if !seen[cat] {
			rest = append(rest, string(cat))
		}
	}
	sort.Strings(rest)
	for _, cat := range rest {
		out = append(out, Category(cat))
	}
	return out
}
