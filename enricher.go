package leadgen

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nexxia-ai/leadgen/ai"
)

// enricherStage augments every curated document with extracted structured
// details (contacts, handles, addresses, lead rationale). All documents
// across all categories run as one flat concurrent batch; a failed call marks
// the document with an error but keeps it.
type enricherStage struct {
	engine *Engine
}

func (s *enricherStage) Name() string { return "enricher" }

type enrichTask struct {
	category Category
	url      string
	doc      Document
}

func (s *enricherStage) Run(ctx context.Context, state *State) error {
	e := s.engine
	e.logger.Info("starting enricher phase")
	e.notify(ctx, state.JobID, "enricher_started", "Enriching lead research results with contact information", map[string]any{
		"step":   "Enricher",
		"status": "started",
	}, nil)

	if len(state.CuratedDocs) == 0 {
		e.logger.Warn("no curated documents found in state")
		e.notify(ctx, state.JobID, "enricher_warning", "No curated documents found to enrich", map[string]any{
			"step":    "Enricher",
			"status":  "warning",
			"warning": "No curated documents found",
		}, nil)
		return nil
	}

	model := e.model.Clone().WithTemperature(0).WithMaxTokens(1024)

	// Flatten the curated documents into one launch list; every branch
	// writes to its own result slot, and the barrier completes before any
	// result is collected.
	var tasks []enrichTask
	for cat, docs := range state.CuratedDocs {
		for url, doc := range docs {
			tasks = append(tasks, enrichTask{category: cat, url: url, doc: doc})
		}
	}

	results := make([]Document, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	for i, task := range tasks {
		g.Go(func() error {
			results[i] = enrichDocument(gctx, model, task.doc, task.category, state.BusinessType, state.Location, e)
			return nil
		})
	}
	g.Wait()

	enriched := make(map[Category]map[string]Document, len(state.CuratedDocs))
	for cat := range state.CuratedDocs {
		enriched[cat] = make(map[string]Document)
	}
	for i, task := range tasks {
		doc := results[i]
		enriched[task.category][task.url] = doc
		e.notify(ctx, state.JobID, "enricher_progress", "Enriched document: "+doc.DisplayTitle(), map[string]any{
			"step":         "Enricher",
			"status":       "in_progress",
			"url":          task.url,
			"analyst_type": string(task.category),
		}, nil)
	}
	state.EnrichedDocs = enriched

	counts := make(map[string]int, len(enriched))
	total := 0
	for cat, docs := range enriched {
		counts[string(cat)] = len(docs)
		total += len(docs)
	}
	e.logger.Info("enriched documents", "total", total, "counts", counts)

	e.notify(ctx, state.JobID, "enricher_completed",
		fmt.Sprintf("Enriched %d lead research results with contact information", total), map[string]any{
			"step":           "Enricher",
			"status":         "completed",
			"total_enriched": total,
			"counts":         counts,
		}, nil)

	return nil
}

// enrichDocument issues one augmentation call for a single document. A
// document with empty content is returned unmodified; a call failure attaches
// the error to the document without discarding it.
func enrichDocument(ctx context.Context, model *ai.Model, doc Document, category Category, businessType, location string, e *Engine) Document {
	if doc.Content == "" {
		e.logger.Warn("empty content for document", "url", doc.URL)
		return doc
	}

	content, err := model.Complete(ctx, enrichSystemPrompt,
		enrichUserPrompt(doc.Content, category, businessType, location))
	if err != nil {
		e.logger.Error("document enrichment failed", "url", doc.URL, "error", err)
		doc.EnrichmentError = err.Error()
		return doc
	}

	doc.EnrichedContent = content
	doc.AnalystType = category
	return doc
}
