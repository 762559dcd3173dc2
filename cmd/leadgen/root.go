// Package main provides the entry point for the leadgen CLI.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexxia-ai/leadgen/ai"
	"github.com/nexxia-ai/leadgen/config"
	"github.com/nexxia-ai/leadgen/search"
	"github.com/nexxia-ai/leadgen/utils"
)

// NewRootCmd creates the root command for leadgen.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leadgen",
		Short: "Research-driven lead generation reports",
		Long: `leadgen researches potential leads for a business across five analyst
categories (direct leads, partnerships, communities, events, influencers),
curates and enriches the findings, and compiles them into a Markdown report.

Credentials are read from the environment (GROQ_API_KEY, TAVILY_API_KEY),
optionally seeded from a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Configuration file path (YAML)")
	cmd.PersistentFlags().String("env-file", ".env", "Env file loaded before configuration")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewRunCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogger configures slog output to stderr so reports printed to stdout
// stay clean.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig seeds the environment from the optional env file, then builds
// the configuration from file and environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile != "" {
		if err := utils.LoadEnvFile(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return config.Config{}, err
		}
	}

	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// buildCollaborators constructs the live Groq and Tavily clients, failing
// fast on missing credentials.
func buildCollaborators(cfg config.Config) (*ai.Model, search.Client, error) {
	if cfg.GroqAPIKey == "" {
		return nil, nil, errors.New("GROQ_API_KEY is required (environment, .env file, or config)")
	}
	if cfg.TavilyAPIKey == "" {
		return nil, nil, errors.New("TAVILY_API_KEY is required (environment, .env file, or config)")
	}
	model := ai.NewGroqModel(cfg.Model, cfg.GroqAPIKey)
	return model, search.NewTavilyClient(cfg.TavilyAPIKey), nil
}
