package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hpcops/availspect/internal/app"
	"github.com/hpcops/availspect/internal/logging"
	"github.com/hpcops/availspect/internal/parse"
	"github.com/hpcops/availspect/internal/sreport"
	"github.com/spf13/cobra"
)

var (
	version = "1.2.0"
	verbose bool
)

// Exit codes for structured error reporting.
const (
	ExitSuccess    = 0
	ExitInternal   = 1
	ExitInvalidArg = 2
	ExitNoData     = 3
	ExitBadData    = 4
	ExitTool       = 5
)

func main() {
	logging.Init(false)

	root := &cobra.Command{
		Use:   "availspect",
		Short: "Cluster compute-time availability reporter",
		Long: `Availspect computes cluster compute-time availability for a calendar
period (day, month or year) from Slurm accounting data.

It invokes sreport for the requested period, normalizes either of its two
output formats, and derives available time and availability percentages,
including the figures excluding planned downtime.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(verbose)
		},
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.AddCommand(NewReportCmd())
	root.AddCommand(NewVersionCmd())

	if app.IsFirstRun() {
		fmt.Fprintln(os.Stderr, "First run: see 'availspect report --help' to get started.")
	}

	if err := root.Execute(); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		printDiagnostics(err)
		os.Exit(classifyError(err))
	}
}

func classifyError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var toolErr *sreport.ToolError
	if errors.As(err, &toolErr) {
		return ExitTool
	}

	var noRow *parse.NoDataRowError
	if errors.As(err, &noRow) {
		return ExitNoData
	}

	var malformed *parse.MalformedNumberError
	if errors.As(err, &malformed) {
		return ExitBadData
	}

	if isUsageError(err) {
		return ExitInvalidArg
	}
	return ExitInternal
}

func isUsageError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "required") ||
		strings.Contains(msg, "expected") ||
		strings.Contains(msg, "cannot be combined")
}

// printDiagnostics surfaces the raw report text captured at the point of
// failure, so a broken run is debuggable without re-running sreport by hand.
func printDiagnostics(err error) {
	var noRow *parse.NoDataRowError
	if errors.As(err, &noRow) && noRow.Raw != "" {
		fmt.Fprintf(os.Stderr, "--- raw report output ---\n%s\n", noRow.Raw)
		return
	}

	var toolErr *sreport.ToolError
	if errors.As(err, &toolErr) {
		if toolErr.Primary != nil {
			fmt.Fprintf(os.Stderr, "--- parsable attempt (exit %d) ---\n%s%s\n",
				toolErr.Primary.ExitCode, toolErr.Primary.Stdout, toolErr.Primary.Stderr)
		}
		fmt.Fprintf(os.Stderr, "--- effective attempt (exit %d) ---\n%s%s\n",
			toolErr.Output.ExitCode, toolErr.Output.Stdout, toolErr.Output.Stderr)
	}
}
