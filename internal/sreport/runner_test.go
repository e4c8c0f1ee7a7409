package sreport

import (
	"context"
	"strings"
	"testing"
	"time"
)

// The exec runner is exercised against /bin/sh since sreport itself is not
// available on build machines.

func TestExecRunnerCapturesOutput(t *testing.T) {
	runner := NewRunner("sh")

	out, err := runner.Run(context.Background(), []string{"-c", "echo stdout-line; echo stderr-line 1>&2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Success() {
		t.Fatalf("expected success, got exit code %d", out.ExitCode)
	}
	if strings.TrimSpace(out.Stdout) != "stdout-line" {
		t.Fatalf("unexpected stdout: %q", out.Stdout)
	}
	if strings.TrimSpace(out.Stderr) != "stderr-line" {
		t.Fatalf("unexpected stderr: %q", out.Stderr)
	}
}

func TestExecRunnerNonZeroExitIsNotAnError(t *testing.T) {
	runner := NewRunner("sh")

	out, err := runner.Run(context.Background(), []string{"-c", "echo partial; exit 3"})
	if err != nil {
		t.Fatalf("expected the exit code in the output, got error: %v", err)
	}
	if out.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", out.ExitCode)
	}
	if strings.TrimSpace(out.Stdout) != "partial" {
		t.Fatalf("expected output captured before failure, got %q", out.Stdout)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	runner := NewRunner("availspect-no-such-binary")

	_, err := runner.Run(context.Background(), []string{"--version"})
	if err == nil {
		t.Fatalf("expected an error for a missing binary")
	}
}

func TestExecRunnerContextDeadline(t *testing.T) {
	runner := NewRunner("sh")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := runner.Run(ctx, []string{"-c", "sleep 5"})
	if err == nil {
		t.Fatalf("expected a deadline error")
	}
	if ctx.Err() == nil {
		t.Fatalf("expected the context to be expired")
	}
}
