package filesystem

import (
	"os"

	"media-preview-service/domain/preview"
)

// Remover implements preview.ArtifactRemover with best-effort semantics.
// It is the single place deletion errors get discarded, shared by the
// process runner's failure cleanup and the public removal operation.
type Remover struct{}

// NewRemover creates a new best-effort remover
func NewRemover() *Remover {
	return &Remover{}
}

// Remove deletes the file at path, swallowing any error. A missing file or
// a repeated call is a no-op.
func (r *Remover) Remove(path string) {
	_ = os.Remove(path)
}

// Ensure Remover implements preview.ArtifactRemover
var _ preview.ArtifactRemover = (*Remover)(nil)
