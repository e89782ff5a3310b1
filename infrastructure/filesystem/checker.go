package filesystem

import (
	"fmt"
	"os"

	"media-preview-service/domain/preview"
)

// Checker implements preview.SourceChecker using the os package
type Checker struct{}

// NewChecker creates a new filesystem checker
func NewChecker() *Checker {
	return &Checker{}
}

// EnsureRegularFile returns nil when path is an existing regular file. A
// missing path surfaces the filesystem's own not-exist error, wrapped with
// the path for context; an existing non-file path surfaces
// preview.ErrNotRegularFile. Either way the caller learns this before any
// subprocess is spawned.
func (c *Checker) EnsureRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("source %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("source %s: %w", path, preview.ErrNotRegularFile)
	}

	return nil
}

// Ensure Checker implements preview.SourceChecker
var _ preview.SourceChecker = (*Checker)(nil)
