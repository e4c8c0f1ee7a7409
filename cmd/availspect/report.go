package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hpcops/availspect/internal/availability"
	"github.com/hpcops/availspect/internal/models"
	"github.com/hpcops/availspect/internal/parse"
	"github.com/hpcops/availspect/internal/reporter"
	"github.com/hpcops/availspect/internal/sreport"
	"github.com/hpcops/availspect/pkg/config"
	"github.com/spf13/cobra"
)

// NewReportCmd creates the report command
func NewReportCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	// String variables for custom parsing in PreRunE
	var dayStr, monthStr, yearStr, timeoutStr string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute cluster availability for a calendar period",
		Long: `Compute compute-time availability percentages for one cluster over a
day, month or year, from sreport's cluster utilization accounting.

Without a period flag the previous full calendar month is reported.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			fileCfg, err := config.AutoLoad()
			if err != nil {
				return err
			}
			if err := fileCfg.ApplyTo(cfg, changedFlags(cmd)); err != nil {
				return err
			}

			if cmd.Flags().Changed("timeout") {
				cfg.Timeout, err = config.ParseDuration(timeoutStr)
				if err != nil {
					return fmt.Errorf("invalid --timeout duration: %w", err)
				}
			}

			period, err := resolvePeriod(dayStr, monthStr, yearStr)
			if err != nil {
				return err
			}
			if period != nil {
				cfg.Period = *period
			}

			if cfg.Format != "text" && cfg.Format != "json" {
				return fmt.Errorf("invalid --format %q, expected text or json", cfg.Format)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cfg, sreport.NewRunner(cfg.SreportBin))
		},
	}

	// Cluster flags
	cmd.Flags().StringVar(&cfg.Cluster, "cluster", "", "Cluster name passed to sreport (default: sreport's own default)")
	cmd.Flags().StringVar(&cfg.SreportBin, "sreport-bin", cfg.SreportBin, "Path to the sreport binary")
	cmd.Flags().StringVar(&timeoutStr, "timeout", "1m", "Per-invocation timeout (e.g., 30s, 5m)")

	// Period flags (mutually exclusive)
	cmd.Flags().StringVar(&dayStr, "day", "", "Report a single day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&monthStr, "month", "", "Report a calendar month (YYYY-MM)")
	cmd.Flags().StringVar(&yearStr, "year", "", "Report a calendar year (YYYY)")

	// Output flags
	cmd.Flags().StringVar(&cfg.Format, "format", cfg.Format, "Output format (text, json)")
	cmd.Flags().StringVar(&cfg.OutputPath, "output", "", "Write the report to a file instead of only stdout")

	// Operational flags
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Fetch and compute but write no output")

	return cmd
}

// changedFlags collects flag names the user set explicitly, so file and
// environment values never override them.
func changedFlags(cmd *cobra.Command) map[string]bool {
	changed := map[string]bool{}
	for _, name := range []string{"cluster", "sreport-bin", "timeout", "format", "output"} {
		if cmd.Flags().Changed(name) {
			changed[name] = true
		}
	}
	return changed
}

// resolvePeriod enforces mutual exclusivity of the period flags. A nil period
// means no flag was given and the default applies.
func resolvePeriod(dayStr, monthStr, yearStr string) (*config.Period, error) {
	set := 0
	for _, s := range []string{dayStr, monthStr, yearStr} {
		if s != "" {
			set++
		}
	}
	if set > 1 {
		return nil, fmt.Errorf("--day, --month and --year cannot be combined")
	}

	switch {
	case dayStr != "":
		p, err := config.ParseDay(dayStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --day: %w", err)
		}
		return &p, nil
	case monthStr != "":
		p, err := config.ParseMonth(monthStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --month: %w", err)
		}
		return &p, nil
	case yearStr != "":
		p, err := config.ParseYear(yearStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --year: %w", err)
		}
		return &p, nil
	}
	return nil, nil
}

// runReport executes the pipeline: fetch report text, select the data row,
// parse the three fields, compute availability, render.
func runReport(cfg *config.Config, runner sreport.Runner) error {
	startTime := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	slog.Debug("fetching utilization report",
		slog.String("cluster", cfg.Cluster),
		slog.String("start", cfg.Period.StartDate()),
		slog.String("end", cfg.Period.EndDate()))

	raw, mode, err := sreport.Fetch(ctx, runner, sreport.Request{
		Cluster: cfg.Cluster,
		Start:   cfg.Period.StartDate(),
		End:     cfg.Period.EndDate(),
	})
	if err != nil {
		return fmt.Errorf("failed to obtain utilization report: %w", err)
	}

	metrics, err := extractMetrics(raw, mode)
	if err != nil {
		return err
	}

	result := availability.Compute(metrics)
	report := buildReport(cfg, metrics, result, mode, startTime)

	if cfg.DryRun {
		slog.Debug("dry run, skipping output")
		return nil
	}
	return reporter.New(cfg).Generate(report)
}

// extractMetrics runs the selector and converts the three raw fields to
// minutes. All three parse or the pipeline fails; no partial triple leaves
// this function.
func extractMetrics(raw string, mode parse.DelimiterMode) (models.MetricTriple, error) {
	row, err := parse.SelectMetrics(raw, mode)
	if err != nil {
		return models.MetricTriple{}, err
	}

	reported, err := parse.ParseMagnitude(row.Reported)
	if err != nil {
		return models.MetricTriple{}, parse.FieldError("reported", row, err)
	}
	down, err := parse.ParseMagnitude(row.Down)
	if err != nil {
		return models.MetricTriple{}, parse.FieldError("down", row, err)
	}
	plannedDown, err := parse.ParseMagnitude(row.PlannedDown)
	if err != nil {
		return models.MetricTriple{}, parse.FieldError("plnd_down", row, err)
	}

	return models.MetricTriple{
		Reported:    reported,
		Down:        down,
		PlannedDown: plannedDown,
	}, nil
}

// buildReport constructs the final report envelope
func buildReport(
	cfg *config.Config,
	metrics models.MetricTriple,
	result models.AvailabilityResult,
	mode parse.DelimiterMode,
	startTime time.Time,
) *models.Report {
	now := time.Now()
	return &models.Report{
		Tool:      "availspect",
		Version:   version,
		Timestamp: now.UTC().Format(time.RFC3339),
		Metadata: models.Metadata{
			GeneratedAt: now,
			Cluster:     cfg.Cluster,
			PeriodStart: cfg.Period.StartDate(),
			PeriodEnd:   cfg.Period.EndDate(),
			ReportMode:  mode.String(),
			RunDuration: now.Sub(startTime).Round(time.Millisecond).String(),
			Version:     version,
		},
		Metrics:      metrics,
		Availability: result,
	}
}
