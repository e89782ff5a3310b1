package ffmpeg

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"media-preview-service/domain/preview"
)

// Clipper implements preview.Clipper using ffmpeg in stream-copy mode
type Clipper struct {
	ffmpegPath string
	runner     *Runner
	logger     *zap.Logger
}

// ClipperOption is a functional option for configuring Clipper
type ClipperOption func(*Clipper)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) ClipperOption {
	return func(c *Clipper) {
		if path != "" {
			c.ffmpegPath = path
		}
	}
}

// WithRunner sets a custom process runner (for testing)
func WithRunner(runner *Runner) ClipperOption {
	return func(c *Clipper) {
		c.runner = runner
	}
}

// WithLogger sets a structured logger for diagnostics
func WithLogger(logger *zap.Logger) ClipperOption {
	return func(c *Clipper) {
		c.logger = logger
	}
}

// NewClipper creates a new ffmpeg-based clipper
func NewClipper(opts ...ClipperOption) *Clipper {
	c := &Clipper{
		ffmpegPath: "ffmpeg",
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.runner == nil {
		c.runner = NewRunner(WithRunnerLogger(c.logger))
	}

	return c
}

// Clip implements preview.Clipper
func (c *Clipper) Clip(ctx context.Context, sourcePath, outputPath string, w preview.Window) error {
	args := CopyTrimArgs(sourcePath, outputPath, w.Start, w.Duration)

	c.logger.Debug("building preview clip",
		zap.String("source", sourcePath),
		zap.String("output", outputPath),
		zap.Float64("start", w.Start),
		zap.Float64("duration", w.Duration))

	return c.runner.Run(ctx, c.ffmpegPath, args, outputPath)
}

// VerifyInstalled checks that ffmpeg is available
func (c *Clipper) VerifyInstalled(ctx context.Context) error {
	_, err := c.runner.runner.Output(ctx, c.ffmpegPath, "-version")
	if err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

// Ensure Clipper implements preview.Clipper
var _ preview.Clipper = (*Clipper)(nil)
