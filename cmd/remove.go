package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"media-preview-service/domain/preview"
	"media-preview-service/infrastructure/filesystem"
)

var removePath string

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a previously created preview clip",
	Long: `Delete a preview clip produced by the preview command.

Removal is best-effort: a path that no longer exists is treated as already
removed, so this command is safe to run unconditionally.

Example:
  media-preview-service remove --path /tmp/preview-1234/preview-1716112000000-a1b2c3d4.mp4`,
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().StringVar(&removePath, "path", "", "Path to the preview clip (required)")
	removeCmd.MarkFlagRequired("path")
}

func runRemove(cmd *cobra.Command, args []string) error {
	return RunRemoveWithDependencies(filesystem.NewRemover(), removePath, os.Stdout)
}

// RunRemoveWithDependencies runs the remove command with injected
// dependencies (for testing)
func RunRemoveWithDependencies(remover preview.ArtifactRemover, path string, output io.Writer) error {
	remover.Remove(path)
	fmt.Fprintf(output, "Removed: %s\n", path)
	return nil
}
