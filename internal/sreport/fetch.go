package sreport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hpcops/availspect/internal/parse"
)

// Request describes one utilization report to fetch. Start and End are
// YYYY-MM-DD dates; End is exclusive, matching sreport's end= semantics.
type Request struct {
	Cluster string
	Start   string
	End     string
}

// args builds the sreport argument list for one attempt. The -t Minutes
// option pins the unit so the parsed triple is always in minutes.
func (r Request) args(parsable bool) []string {
	args := []string{"cluster", "utilization"}
	if r.Cluster != "" {
		args = append(args, "cluster="+r.Cluster)
	}
	args = append(args, "start="+r.Start, "end="+r.End, "-t", "Minutes")
	if parsable {
		args = append(args, "--parsable2")
	}
	return args
}

// Markers that mean the parsable attempt cannot be trusted even on a zero
// exit (older sreport versions print these and still exit 0).
var errorMarkers = []string{
	"Invalid option",
	"sreport: error:",
}

// ToolError reports a failed effective invocation. Both attempts' output is
// kept for diagnostics when a fallback was made.
type ToolError struct {
	Args     []string
	Output   Output  // the effective attempt
	Primary  *Output // the rejected parsable attempt, when a fallback ran
	Err      error   // set when the process never produced an exit status
}

func (e *ToolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sreport invocation failed: %v", e.Err)
	}
	return fmt.Sprintf("sreport exited with code %d: %s",
		e.Output.ExitCode, strings.TrimSpace(e.Output.Stderr))
}

func (e *ToolError) Unwrap() error { return e.Err }

// Fetch obtains the report text and the delimiter mode the caller should
// parse it with. The parsable invocation is attempted first and accepted only
// when it exited zero, printed no error marker and actually produced pipe
// delimiters; any other outcome, including a failure to run at all, triggers
// exactly one plain fallback whose exit status then decides overall success.
// There is no retry loop.
func Fetch(ctx context.Context, r Runner, req Request) (string, parse.DelimiterMode, error) {
	primaryArgs := req.args(true)
	primary, perr := r.Run(ctx, primaryArgs)
	if perr == nil && accepted(primary) {
		slog.Debug("parsable report accepted", slog.Int("bytes", len(primary.Stdout)))
		return primary.Stdout, parse.ModePipe, nil
	}

	slog.Debug("parsable report rejected, falling back to plain output",
		slog.Int("exit_code", primary.ExitCode))

	fallbackArgs := req.args(false)
	fallback, err := r.Run(ctx, fallbackArgs)
	if err != nil {
		return "", 0, &ToolError{Args: fallbackArgs, Output: fallback, Primary: &primary, Err: err}
	}
	if !fallback.Success() {
		return "", 0, &ToolError{Args: fallbackArgs, Output: fallback, Primary: &primary}
	}
	return fallback.Stdout, parse.ModeWhitespace, nil
}

// accepted reports whether the parsable attempt's output can be trusted.
func accepted(out Output) bool {
	if !out.Success() {
		return false
	}
	combined := out.Stdout + out.Stderr
	for _, marker := range errorMarkers {
		if strings.Contains(combined, marker) {
			return false
		}
	}
	return strings.Contains(out.Stdout, "|")
}
