// Package leadgen implements the lead generation pipeline: a fixed chain of
// stages that turns a business description into a lead generation report by
// fanning out to parallel research analysts, curating and enriching the
// collected documents, and compiling per-category briefings into one report.
//
// The consumer drains the channel returned by Engine.Run to observe the state
// after every stage; the final snapshot carries the report:
//
//	engine := leadgen.New(model, searchClient, leadgen.WithNotifier(n))
//	for state := range engine.Run(ctx, params) {
//		last = state
//	}
//	fmt.Println(last.Report)
package leadgen

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nexxia-ai/leadgen/ai"
	"github.com/nexxia-ai/leadgen/search"
)

// Stage is one ordered step of the pipeline. A stage receives the cumulative
// state, extends it, and returns an error only for reporting: the engine logs
// and notifies stage errors but always advances to the next stage, which must
// tolerate missing inputs.
type Stage interface {
	Name() string
	Run(ctx context.Context, s *State) error
}

// Engine sequences the pipeline stages over a shared state object.
type Engine struct {
	model    *ai.Model
	search   search.Client
	notifier Notifier
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier sets the progress notifier. Defaults to NopNotifier.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine with injected collaborators. The model and search
// client are required; substitute deterministic fakes in tests.
func New(model *ai.Model, searchClient search.Client, opts ...Option) *Engine {
	e := &Engine{
		model:    model,
		search:   searchClient,
		notifier: NopNotifier{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// stages returns the fixed stage chain in execution order.
func (e *Engine) stages() []Stage {
	return []Stage{
		&researchStage{engine: e},
		&collectorStage{engine: e},
		&curatorStage{engine: e},
		&enricherStage{engine: e},
		&briefingStage{engine: e},
		&editorStage{engine: e},
	}
}

// Run executes the pipeline for one job and returns a finite sequence of
// state snapshots, one per completed stage. The channel is closed after the
// editor stage. The sequence is not restartable; drain it to completion to
// obtain the final report.
func (e *Engine) Run(ctx context.Context, p Params) <-chan *State {
	if p.JobID == "" {
		p.JobID = uuid.New().String()
	}
	out := make(chan *State, 8)

	go func() {
		defer close(out)

		state := NewState(p)
		logger := e.logger.With("job_id", p.JobID)
		for _, stage := range e.stages() {
			logger.Info("executing stage", "stage", stage.Name())
			if err := stage.Run(ctx, state); err != nil {
				logger.Error("stage failed", "stage", stage.Name(), "error", err)
				e.notify(ctx, p.JobID, stage.Name()+"_error", "Stage "+stage.Name()+" failed", nil, err)
			}
			out <- state.Snapshot()
		}
		logger.Info("pipeline finished", "documents", len(state.Documents), "report_length", len(state.Report))
	}()

	return out
}

// RunAndWait drains the pipeline and returns the final state.
func (e *Engine) RunAndWait(ctx context.Context, p Params) *State {
	var last *State
	for state := range e.Run(ctx, p) {
		last = state
	}
	return last
}

// notify sends a fire-and-forget status update.
func (e *Engine) notify(ctx context.Context, jobID, status, message string, result map[string]any, err error) {
	update := StatusUpdate{
		JobID:     jobID,
		Status:    status,
		Message:   message,
		Result:    result,
		Timestamp: time.Now(),
	}
	if err != nil {
		update.Err = err.Error()
	}
	e.notifier.Notify(ctx, update)
}
