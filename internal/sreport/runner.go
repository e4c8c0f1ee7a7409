// Package sreport obtains cluster utilization reports from Slurm's sreport
// accounting tool, preferring machine-delimited output with a single fallback
// to the plain columnar format.
package sreport

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Runner executes the accounting tool once and captures the attempt.
type Runner interface {
	Run(ctx context.Context, args []string) (Output, error)
}

// Output captures a single invocation attempt.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the attempt exited zero.
func (o Output) Success() bool { return o.ExitCode == 0 }

type execRunner struct {
	bin string
}

// NewRunner returns a Runner invoking the given binary; a bare name is
// resolved through PATH.
func NewRunner(bin string) Runner {
	if bin == "" {
		bin = "sreport"
	}
	return &execRunner{bin: bin}
}

// Run executes one attempt. A non-zero exit is not an error at this level:
// the exit code rides in Output and the fallback policy decides what it
// means. Errors are reserved for attempts that never produced a status
// (missing binary, context deadline).
func (r *execRunner) Run(ctx context.Context, args []string) (Output, error) {
	cmd := exec.CommandContext(ctx, r.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		return out, err
	}
	return out, nil
}
