package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"media-preview-service/infrastructure/ffmpeg"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify that the external media tool is available",
	Long: `Check that the configured ffmpeg binary can be launched.

Run this once after installation so a missing or broken ffmpeg is reported
before the first preview request.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	ffmpegPath := ""
	if c := GetConfig(); c != nil {
		ffmpegPath = c.FFmpeg.BinaryPath
	}

	clipper := ffmpeg.NewClipper(ffmpeg.WithFFmpegPath(ffmpegPath))
	return RunVerifyWithDependencies(cmd.Context(), clipper, os.Stdout)
}

// Verifiable is implemented by clippers that can probe their external tool
type Verifiable interface {
	VerifyInstalled(ctx context.Context) error
}

// RunVerifyWithDependencies runs the verify command with injected
// dependencies (for testing)
func RunVerifyWithDependencies(ctx context.Context, clipper Verifiable, output io.Writer) error {
	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := clipper.VerifyInstalled(verifyCtx); err != nil {
		return fmt.Errorf("ffmpeg verification failed: %w", err)
	}

	fmt.Fprintln(output, "ffmpeg is available.")
	return nil
}
