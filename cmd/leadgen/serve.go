package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nexxia-ai/leadgen/server"
	"github.com/nexxia-ai/leadgen/store"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the lead generation HTTP service",
		Long: `Serve starts the HTTP API. Jobs are submitted with POST /generate-leads
and stream their progress over the /leads/ws/{id} WebSocket endpoint.

With --db, jobs and reports are persisted to a SQLite database; without it,
job state is kept in memory and lost on restart.

Examples:
  # Serve on the default address
  leadgen serve

  # Serve with SQLite persistence
  leadgen serve --addr :8000 --db leadgen.db`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", "", "Listen address (default from config, falls back to :8000)")
	cmd.Flags().StringP("db", "d", "", "SQLite database path (default from config; empty disables persistence)")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		cfg.DBPath = dbPath
	}

	model, searchClient, err := buildCollaborators(cfg)
	if err != nil {
		return err
	}

	opts := []server.Option{server.WithLogger(logger)}
	if cfg.DBPath != "" {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		logger.Info("job persistence enabled", "db", cfg.DBPath)
		opts = append(opts, server.WithStore(db))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(model, searchClient, opts...).ListenAndServe(ctx, cfg.Addr)
}
