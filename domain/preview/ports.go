package preview

import "context"

// Clipper defines the interface for cutting a preview clip out of a source
// video. This is a port that can be implemented by different infrastructure
// adapters.
type Clipper interface {
	// Clip cuts the sanitized window out of sourcePath and writes the result
	// to outputPath. On failure no file is left at outputPath.
	Clip(ctx context.Context, sourcePath, outputPath string, w Window) error
}

// SourceChecker validates that a source path refers to an existing regular
// file before any subprocess is spawned.
type SourceChecker interface {
	// EnsureRegularFile returns nil when path is an existing regular file,
	// ErrNotRegularFile when it exists but is something else, and the
	// underlying filesystem error (wrapped) when it does not exist.
	EnsureRegularFile(path string) error
}

// ArtifactRemover deletes a produced artifact on a best-effort basis.
type ArtifactRemover interface {
	// Remove deletes the file at path, discarding any error. Calling it on a
	// missing path, or twice for the same path, is safe.
	Remove(path string)
}
