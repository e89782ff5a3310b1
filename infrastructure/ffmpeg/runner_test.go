package ffmpeg

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"media-preview-service/domain/preview"
	"media-preview-service/infrastructure/filesystem"
)

// fakeExitError mimics *exec.ExitError: the process ran and exited non-zero
type fakeExitError struct {
	code int
}

func (e *fakeExitError) Error() string {
	return "exit status 1"
}

func (e *fakeExitError) ExitCode() int {
	return e.code
}

// mockCommandRunner implements CommandRunner for testing
type mockCommandRunner struct {
	stderrText string
	runErr     error

	calledName string
	calledArgs []string
}

func (m *mockCommandRunner) Run(ctx context.Context, stderr io.Writer, name string, args ...string) error {
	m.calledName = name
	m.calledArgs = args
	if m.stderrText != "" {
		io.WriteString(stderr, m.stderrText)
	}
	return m.runErr
}

func (m *mockCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

// mockRemover records removal requests
type mockRemover struct {
	removed []string
}

func (m *mockRemover) Remove(path string) {
	m.removed = append(m.removed, path)
}

func writePartialOutput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "partial.mp4")
	if err := os.WriteFile(path, []byte("partial"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunnerRunSuccess(t *testing.T) {
	remover := &mockRemover{}
	runner := NewRunner(
		WithCommandRunner(&mockCommandRunner{}),
		WithRemover(remover),
	)

	if err := runner.Run(context.Background(), "ffmpeg", []string{"-y", "out.mp4"}, "out.mp4"); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if len(remover.removed) != 0 {
		t.Errorf("Run() removed output on success: %v", remover.removed)
	}
}

func TestRunnerRunToolFailure(t *testing.T) {
	tests := []struct {
		name       string
		stderrText string
		wantMsg    string
	}{
		{
			name:       "diagnostic text becomes the error message",
			stderrText: "  out.mp4: Invalid data found when processing input\n",
			wantMsg:    "out.mp4: Invalid data found when processing input",
		},
		{
			name:       "silent tool yields fallback message",
			stderrText: "",
			wantMsg:    preview.FallbackToolMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputPath := writePartialOutput(t)

			runner := NewRunner(
				WithCommandRunner(&mockCommandRunner{
					stderrText: tt.stderrText,
					runErr:     &fakeExitError{code: 1},
				}),
				WithRemover(filesystem.NewRemover()),
			)

			err := runner.Run(context.Background(), "ffmpeg", []string{"-y", outputPath}, outputPath)
			if err == nil {
				t.Fatal("Run() expected error, got nil")
			}

			var toolErr *preview.ToolError
			if !errors.As(err, &toolErr) {
				t.Fatalf("Run() error = %T, want *preview.ToolError", err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Run() error message = %q, want %q", err.Error(), tt.wantMsg)
			}

			if _, statErr := os.Stat(outputPath); !errors.Is(statErr, os.ErrNotExist) {
				t.Errorf("Run() left partial output at %s", outputPath)
			}
		})
	}
}

func TestRunnerRunLaunchFailure(t *testing.T) {
	remover := &mockRemover{}
	launchErr := errors.New(`exec: "ffmpeg": executable file not found in $PATH`)

	runner := NewRunner(
		WithCommandRunner(&mockCommandRunner{runErr: launchErr}),
		WithRemover(remover),
	)

	err := runner.Run(context.Background(), "ffmpeg", []string{"-y", "out.mp4"}, "out.mp4")
	if err == nil {
		t.Fatal("Run() expected error, got nil")
	}

	var le *preview.LaunchError
	if !errors.As(err, &le) {
		t.Fatalf("Run() error = %T, want *preview.LaunchError", err)
	}
	if !errors.Is(err, launchErr) {
		t.Errorf("Run() should carry the underlying launch error")
	}

	if len(remover.removed) != 1 || remover.removed[0] != "out.mp4" {
		t.Errorf("Run() cleanup = %v, want [out.mp4]", remover.removed)
	}
}
