package leadgen

import "context"

// collectorStage organizes the document store into per-category buckets.
// Pure partition: no filtering, no ranking.
type collectorStage struct {
	engine *Engine
}

func (s *collectorStage) Name() string { return "collector" }

func (s *collectorStage) Run(ctx context.Context, state *State) error {
	e := s.engine
	e.logger.Info("starting collector phase")
	e.notify(ctx, state.JobID, "collector_started", "Organizing lead research results", map[string]any{
		"step":   "Collector",
		"status": "started",
	}, nil)

	if len(state.Documents) == 0 {
		e.logger.Warn("no documents found in state")
		e.notify(ctx, state.JobID, "collector_warning", "No documents found to organize", map[string]any{
			"step":    "Collector",
			"status":  "warning",
			"warning": "No documents found",
		}, nil)
		return nil
	}

	state.OrganizedDocs = state.DocsByCategory()

	counts := make(map[string]int, len(state.OrganizedDocs))
	for cat, docs := range state.OrganizedDocs {
		counts[string(cat)] = len(docs)
	}
	e.logger.Info("documents organized by analyst type", "counts", counts)

	e.notify(ctx, state.JobID, "collector_completed", "Lead research results organized", map[string]any{
		"step":   "Collector",
		"status": "completed",
		"counts": counts,
	}, nil)

	return nil
}
