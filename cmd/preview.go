package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apppreview "media-preview-service/application/preview"
	"media-preview-service/domain/preview"
	"media-preview-service/infrastructure/ffmpeg"
	"media-preview-service/infrastructure/filesystem"
)

var (
	previewSourcePath string
	previewStart      float64
	previewEnd        float64
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Create a preview clip from a source video",
	Long: `Cut a short stream-copy preview clip out of a source video.

Start and end are offsets in seconds. Out-of-range values are sanitized:
a negative start becomes 0, and an end at or before start falls back to a
minimum-duration window. The clip is written to a fresh temporary directory
and its path is printed on success.

Example:
  media-preview-service preview --source /videos/talk.mp4 --start 125.5 --end 140`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringVar(&previewSourcePath, "source", "", "Path to source video file (required)")
	previewCmd.Flags().Float64Var(&previewStart, "start", 0, "Window start in seconds")
	previewCmd.Flags().Float64Var(&previewEnd, "end", 0, "Window end in seconds")
	previewCmd.MarkFlagRequired("source")
}

func runPreview(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	ffmpegPath := ""
	tmpRoot := ""
	if c := GetConfig(); c != nil {
		ffmpegPath = c.FFmpeg.BinaryPath
		tmpRoot = c.Paths.PreviewDirectory
	}

	clipper := ffmpeg.NewClipper(
		ffmpeg.WithFFmpegPath(ffmpegPath),
		ffmpeg.WithLogger(logger),
	)

	return RunPreviewWithDependencies(
		cmd.Context(),
		clipper,
		filesystem.NewChecker(),
		filesystem.NewRemover(),
		tmpRoot,
		logger,
		previewSourcePath,
		previewStart,
		previewEnd,
		os.Stdout,
	)
}

// RunPreviewWithDependencies runs the preview command with injected
// dependencies (for testing)
func RunPreviewWithDependencies(
	ctx context.Context,
	clipper preview.Clipper,
	checker preview.SourceChecker,
	remover preview.ArtifactRemover,
	tmpRoot string,
	logger *zap.Logger,
	sourcePath string,
	start float64,
	end float64,
	output io.Writer,
) error {
	// Verify ffmpeg is available if the clipper supports it
	if verifiable, ok := clipper.(interface{ VerifyInstalled(context.Context) error }); ok {
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
			return fmt.Errorf("ffmpeg verification failed: %w", err)
		}
	}

	service := apppreview.NewService(clipper, checker, remover, tmpRoot, apppreview.WithLogger(logger))

	fmt.Fprintf(output, "Building preview from %.3fs to %.3fs...\n", start, end)

	artifact, err := service.CreatePreview(ctx, sourcePath, start, end)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Successfully created: %s (%.3fs, %s)\n", artifact.OutputPath, artifact.Duration, artifact.Strategy)
	return nil
}
