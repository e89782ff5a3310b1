package ffmpeg

import (
	"context"
	"errors"
	"slices"
	"testing"

	"media-preview-service/domain/preview"
)

func TestClipperClipBuildsCopyTrimCommand(t *testing.T) {
	mock := &mockCommandRunner{}
	clipper := NewClipper(
		WithFFmpegPath("/opt/ffmpeg/bin/ffmpeg"),
		WithRunner(NewRunner(WithCommandRunner(mock), WithRemover(&mockRemover{}))),
	)

	w := preview.SanitizeWindow(12.3456, 26.5456)
	if err := clipper.Clip(context.Background(), "/videos/input.mp4", "/tmp/out.mp4", w); err != nil {
		t.Fatalf("Clip() unexpected error: %v", err)
	}

	if mock.calledName != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("Clip() invoked %q, want configured ffmpeg path", mock.calledName)
	}

	want := CopyTrimArgs("/videos/input.mp4", "/tmp/out.mp4", w.Start, w.Duration)
	if !slices.Equal(mock.calledArgs, want) {
		t.Errorf("Clip() args = %v, want %v", mock.calledArgs, want)
	}
}

func TestClipperEmptyPathKeepsDefault(t *testing.T) {
	clipper := NewClipper(WithFFmpegPath(""))

	if clipper.ffmpegPath != "ffmpeg" {
		t.Errorf("NewClipper(WithFFmpegPath(%q)) ffmpegPath = %q, want default", "", clipper.ffmpegPath)
	}
}

func TestClipperClipPropagatesFailure(t *testing.T) {
	mock := &mockCommandRunner{
		stderrText: "moov atom not found",
		runErr:     &fakeExitError{code: 1},
	}
	clipper := NewClipper(
		WithRunner(NewRunner(WithCommandRunner(mock), WithRemover(&mockRemover{}))),
	)

	err := clipper.Clip(context.Background(), "in.mp4", "out.mp4", preview.SanitizeWindow(0, 5))
	if err == nil {
		t.Fatal("Clip() expected error, got nil")
	}

	var toolErr *preview.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("Clip() error = %T, want *preview.ToolError", err)
	}
	if toolErr.Diagnostic != "moov atom not found" {
		t.Errorf("Clip() diagnostic = %q", toolErr.Diagnostic)
	}
}

func TestClipperVerifyInstalled(t *testing.T) {
	failing := &mockCommandRunner{}
	clipper := NewClipper(
		WithRunner(NewRunner(WithCommandRunner(failing))),
	)

	// mockCommandRunner.Output always errors
	if err := clipper.VerifyInstalled(context.Background()); err == nil {
		t.Error("VerifyInstalled() expected error for unavailable ffmpeg")
	}
}
