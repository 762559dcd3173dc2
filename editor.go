package leadgen

import (
	"context"
	"fmt"
	"time"
)

// editorStage merges all category briefings into the final report. This is
// the single point of terminal pipeline failure: if no report can be
// produced, the state carries an error and the report stays absent.
type editorStage struct {
	engine *Engine
}

func (s *editorStage) Name() string { return "editor" }

func (s *editorStage) Run(ctx context.Context, state *State) error {
	e := s.engine
	e.logger.Info("starting editor phase")
	e.notify(ctx, state.JobID, "editor_started", "Compiling final lead generation report", map[string]any{
		"step":   "Editor",
		"status": "started",
	}, nil)

	if len(state.Briefings) == 0 {
		e.logger.Warn("no briefings found in state")
		state.Err = "No briefings found to compile"
		e.notify(ctx, state.JobID, "editor_warning", "No briefings found to compile", map[string]any{
			"step":    "Editor",
			"status":  "warning",
			"warning": "No briefings found",
		}, nil)
		return nil
	}

	keys := make([]Category, 0, len(state.Briefings))
	for cat := range state.Briefings {
		keys = append(keys, cat)
	}

	combined := ""
	for _, cat := range orderCategories(keys) {
		b := state.Briefings[cat]
		if b.Content == "" {
			continue
		}
		name := b.Name
		if name == "" {
			name = cat.DisplayName()
		}
		combined += fmt.Sprintf("## %s\n\n%s\n\n", name, b.Content)
	}
	if combined == "" {
		e.logger.Error("no briefing content to compile")
		state.Err = "No briefing content to compile"
		e.notify(ctx, state.JobID, "editor_error", "No briefing content to compile", map[string]any{
			"step":   "Editor",
			"status": "error",
			"error":  "No briefing content",
		}, nil)
		return nil
	}

	model := e.model.Clone().WithTemperature(0.2).WithMaxTokens(4096)
	content, err := model.Complete(ctx, editorSystemPrompt, editorUserPrompt(combined, state.Params))
	if err != nil {
		e.logger.Error("report compilation failed", "error", err)
		state.Err = "Error compiling final report: " + err.Error()
		e.notify(ctx, state.JobID, "editor_error", "Error compiling final report: "+err.Error(), map[string]any{
			"step":   "Editor",
			"status": "error",
			"error":  err.Error(),
		}, nil)
		return fmt.Errorf("compiling final report: %w", err)
	}
	if content == "" {
		e.logger.Error("failed to generate report content")
		state.Err = "No report content generated"
		e.notify(ctx, state.JobID, "editor_error", "Failed to generate report content", map[string]any{
			"step":   "Editor",
			"status": "error",
			"error":  "No report content generated",
		}, nil)
		return nil
	}

	state.Report = reportTitle(state.BusinessTypeOrDefault(), state.Location, time.Now()) + content
	e.logger.Info("generated final lead generation report", "length", len(state.Report))

	e.notify(ctx, state.JobID, "editor_completed", "Compiled final lead generation report", map[string]any{
		"step":          "Editor",
		"status":        "completed",
		"report_length": len(state.Report),
	}, nil)

	return nil
}
