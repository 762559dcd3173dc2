// Package server exposes the lead generation pipeline as an HTTP service:
// job submission, job and report lookup, and WebSocket progress streaming.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nexxia-ai/leadgen"
	"github.com/nexxia-ai/leadgen/ai"
	"github.com/nexxia-ai/leadgen/search"
	"github.com/nexxia-ai/leadgen/store"
)

// Server runs lead generation jobs and reports their progress. Jobs execute
// in background goroutines detached from the submitting request; clients
// follow along over the WebSocket endpoint or poll the job resource.
type Server struct {
	engine *leadgen.Engine
	hub    *hub
	store  store.JobStore
	logger *slog.Logger
	mux    *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithStore sets the job store. Defaults to an in-memory store, so job and
// report lookups work without configured persistence.
func WithStore(s store.JobStore) Option {
	return func(srv *Server) {
		if s != nil {
			srv.store = s
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(srv *Server) {
		if logger != nil {
			srv.logger = logger
		}
	}
}

// New assembles a Server around the given model and search client. The
// pipeline engine is created internally so its notifications feed the
// server's WebSocket hub.
func New(model *ai.Model, searchClient search.Client, opts ...Option) *Server {
	srv := &Server{
		hub:   newHub(),
		store: store.NewMemoryStore(),
	}
	for _, opt := range opts {
		opt(srv)
	}
	if srv.logger == nil {
		srv.logger = slog.Default()
	}
	srv.engine = leadgen.New(model, searchClient,
		leadgen.WithNotifier(srv.hub),
		leadgen.WithLogger(srv.logger),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", srv.handlePing)
	mux.HandleFunc("POST /generate-leads", srv.handleGenerateLeads)
	mux.HandleFunc("GET /leads/{id}", srv.handleGetJob)
	mux.HandleFunc("GET /leads/{id}/report", srv.handleGetReport)
	mux.HandleFunc("GET /leads/ws/{id}", srv.handleWebSocket)
	srv.mux = mux
	return srv
}

// Handler returns the HTTP handler, for mounting or tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves the API on addr until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("lead generation API listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

type generateRequest struct {
	TargetCustomers  string `json:"target_customers"`
	OutreachChannels string `json:"outreach_channels"`
	BusinessType     string `json:"business_type,omitempty"`
	Location         string `json:"location,omitempty"`
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Lead Generation API is running"})
}

func (s *Server) handleGenerateLeads(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.TargetCustomers) == "" || strings.TrimSpace(req.OutreachChannels) == "" {
		writeError(w, http.StatusBadRequest, "target_customers and outreach_channels are required")
		return
	}

	params := leadgen.Params{
		JobID:            uuid.New().String(),
		TargetCustomers:  req.TargetCustomers,
		OutreachChannels: req.OutreachChannels,
		BusinessType:     req.BusinessType,
		Location:         req.Location,
	}
	s.logger.Info("received lead generation request",
		"job_id", params.JobID, "target", params.TargetDescription())

	if err := s.store.CreateJob(r.Context(), store.Job{
		ID:                params.JobID,
		Status:            "processing",
		TargetCustomers:   params.TargetCustomers,
		OutreachChannels:  params.OutreachChannels,
		BusinessType:      params.BusinessType,
		Location:          params.Location,
		TargetDescription: params.TargetDescription(),
	}); err != nil {
		s.logger.Error("failed to create job", "job_id", params.JobID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	go s.runJob(params)

	writeJSON(w, http.StatusAccepted, map[string]string{
		"status":        "accepted",
		"job_id":        params.JobID,
		"message":       "Lead generation started. Connect to WebSocket for updates.",
		"websocket_url": "/leads/ws/" + params.JobID,
	})
}

// runJob drives one pipeline run to completion and records the outcome. It
// uses a background context so the job survives the submitting request.
func (s *Server) runJob(params leadgen.Params) {
	ctx := context.Background()

	s.hub.Notify(ctx, leadgen.StatusUpdate{
		JobID:     params.JobID,
		Status:    "processing",
		Message:   "Starting lead generation process",
		Timestamp: time.Now(),
	})

	state := s.engine.RunAndWait(ctx, params)

	if state.Report == "" {
		errMsg := state.Err
		if errMsg == "" {
			errMsg = "no report generated"
		}
		s.logger.Error("lead generation failed", "job_id", params.JobID, "error", errMsg)
		if err := s.store.UpdateJob(ctx, params.JobID, "failed", errMsg); err != nil {
			s.logger.Error("failed to update job", "job_id", params.JobID, "error", err)
		}
		s.hub.Notify(ctx, leadgen.StatusUpdate{
			JobID:     params.JobID,
			Status:    "failed",
			Message:   "Lead generation completed but no report was generated",
			Err:       errMsg,
			Timestamp: time.Now(),
		})
		return
	}

	s.logger.Info("lead generation completed",
		"job_id", params.JobID, "report_length", len(state.Report))
	if err := s.store.UpdateJob(ctx, params.JobID, "completed", ""); err != nil {
		s.logger.Error("failed to update job", "job_id", params.JobID, "error", err)
	}
	if err := s.store.StoreReport(ctx, params.JobID, state.Report); err != nil {
		s.logger.Error("failed to store report", "job_id", params.JobID, "error", err)
	}
	s.hub.Notify(ctx, leadgen.StatusUpdate{
		JobID:   params.JobID,
		Status:  "completed",
		Message: "Lead generation completed successfully",
		Result: map[string]any{
			"report":             state.Report,
			"target_description": params.TargetDescription(),
		},
		Timestamp: time.Now(),
	})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	job, err := s.store.GetJob(r.Context(), jobID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "lead generation job not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to get job", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	report, err := s.store.GetReport(r.Context(), jobID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "lead generation report not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to get report", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load report")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"job_id": jobID, "report": report})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}
