package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nexxia-ai/leadgen"
	"github.com/nexxia-ai/leadgen/report"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the lead generation pipeline once",
		Long: `Run executes the pipeline for a single job and prints the report to
stdout, or writes it with a run metadata header to a file with --output.

Examples:
  # Print the report to stdout
  leadgen run --target "independent bakeries" --channels "email, linkedin"

  # Narrow the research and export to a file
  leadgen run --target "independent bakeries" --channels email \
    --business-type Bakery --location Lisbon --output report.md`,
		Args: cobra.NoArgs,
		RunE: runRunCmd,
	}

	cmd.Flags().StringP("target", "t", "", "Target customers description (required)")
	cmd.Flags().String("channels", "", "Outreach channels description (required)")
	cmd.Flags().StringP("business-type", "b", "", "Business type used in queries and the report title")
	cmd.Flags().StringP("location", "l", "", "Location used in queries and the report title")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("channels")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	model, searchClient, err := buildCollaborators(cfg)
	if err != nil {
		return err
	}

	target, _ := cmd.Flags().GetString("target")
	channels, _ := cmd.Flags().GetString("channels")
	businessType, _ := cmd.Flags().GetString("business-type")
	location, _ := cmd.Flags().GetString("location")
	output, _ := cmd.Flags().GetString("output")

	// Progress goes to the log; the report itself goes to stdout or the file.
	progress := leadgen.NotifierFunc(func(_ context.Context, update leadgen.StatusUpdate) {
		logger.Debug("pipeline status", "status", update.Status, "message", update.Message)
	})

	engine := leadgen.New(model, searchClient,
		leadgen.WithNotifier(progress),
		leadgen.WithLogger(logger),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	state := engine.RunAndWait(ctx, leadgen.Params{
		TargetCustomers:  target,
		OutreachChannels: channels,
		BusinessType:     businessType,
		Location:         location,
	})

	if state.Report == "" {
		if state.Err != "" {
			return errors.New(state.Err)
		}
		return errors.New("no report generated")
	}

	if output != "" {
		if err := report.WriteFile(output, state); err != nil {
			return err
		}
		logger.Info("report written", "path", output)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), state.Report)
	return nil
}
