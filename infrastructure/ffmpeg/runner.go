package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"media-preview-service/domain/preview"
	"media-preview-service/infrastructure/filesystem"
)

// CommandRunner defines the interface for running external commands
// This allows mocking exec.Command in tests
type CommandRunner interface {
	// Run executes the command, streaming its stderr into the given writer,
	// and returns the command's terminal error (nil on exit 0).
	Run(ctx context.Context, stderr io.Writer, name string, args ...string) error
	// Output executes the command and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommandRunner is the production implementation using os/exec
type ExecCommandRunner struct{}

// Run executes a command and returns any error
func (r *ExecCommandRunner) Run(ctx context.Context, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = stderr
	return cmd.Run()
}

// Output executes a command and returns its output
func (r *ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}

// exitCoder matches errors that carry a process exit status, such as
// *exec.ExitError. A matching error means the tool launched and terminated;
// anything else means the tool never started.
type exitCoder interface {
	ExitCode() int
}

// Runner owns one external tool invocation: it spawns the process,
// accumulates everything the tool writes to its diagnostic stream, and
// guarantees that a failed run leaves no partial output file behind.
type Runner struct {
	runner  CommandRunner
	remover preview.ArtifactRemover
	logger  *zap.Logger
}

// RunnerOption is a functional option for configuring Runner
type RunnerOption func(*Runner)

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) RunnerOption {
	return func(r *Runner) {
		r.runner = runner
	}
}

// WithRemover sets the remover used to clean up partial output on failure
func WithRemover(remover preview.ArtifactRemover) RunnerOption {
	return func(r *Runner) {
		r.remover = remover
	}
}

// WithRunnerLogger sets a structured logger for diagnostics
func WithRunnerLogger(logger *zap.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner with production defaults
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		runner:  &ExecCommandRunner{},
		remover: filesystem.NewRemover(),
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run executes name with args. cleanupPath designates the output file that
// must not survive a failed run; on any failure path it is removed
// best-effort before the error is surfaced. Exactly one outcome is returned:
// nil on exit 0, *preview.ToolError on a non-zero exit (message is the
// trimmed diagnostic text, or the fixed fallback when the tool was silent),
// and *preview.LaunchError when the process could not be started.
func (r *Runner) Run(ctx context.Context, name string, args []string, cleanupPath string) error {
	r.logger.Debug("running external tool",
		zap.String("tool", name),
		zap.Strings("args", args))

	var diag bytes.Buffer
	err := r.runner.Run(ctx, &diag, name, args...)
	if err == nil {
		return nil
	}

	// The tool failed; the output file, if any, is partial.
	r.remover.Remove(cleanupPath)

	var ec exitCoder
	if errors.As(err, &ec) {
		diagnostic := strings.TrimSpace(diag.String())
		r.logger.Debug("external tool exited non-zero",
			zap.Int("exit_code", ec.ExitCode()),
			zap.String("diagnostic", diagnostic))
		return &preview.ToolError{Diagnostic: diagnostic, Err: err}
	}

	r.logger.Debug("external tool failed to launch", zap.Error(err))
	return &preview.LaunchError{Tool: name, Err: err}
}
