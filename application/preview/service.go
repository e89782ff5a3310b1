package preview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"media-preview-service/domain/preview"
)

// Service coordinates preview clip creation and removal. Each request runs
// its stages strictly in order: validate source, sanitize window, allocate
// an output location, cut the clip, hand the artifact to the caller.
// Concurrent requests are independent; each gets its own temporary
// directory and its own subprocess, so no locking is needed.
type Service struct {
	clipper preview.Clipper
	checker preview.SourceChecker
	remover preview.ArtifactRemover
	tmpRoot string
	logger  *zap.Logger
}

// ServiceOption is a functional option for configuring Service
type ServiceOption func(*Service)

// WithLogger sets a structured logger for diagnostics
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new preview Service. tmpRoot is the directory under
// which per-request temporary directories are created; an empty string uses
// the system default.
func NewService(
	clipper preview.Clipper,
	checker preview.SourceChecker,
	remover preview.ArtifactRemover,
	tmpRoot string,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		clipper: clipper,
		checker: checker,
		remover: remover,
		tmpRoot: tmpRoot,
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreatePreview cuts a stream-copy preview clip of the requested window out
// of sourcePath. start and end are seconds; out-of-range or non-finite
// values are sanitized rather than rejected. On success the caller owns the
// returned artifact. No retries are attempted; any stage failure is
// surfaced as-is and leaves no output file behind.
func (s *Service) CreatePreview(ctx context.Context, sourcePath string, start, end float64) (*preview.Artifact, error) {
	if err := s.checker.EnsureRegularFile(sourcePath); err != nil {
		return nil, err
	}

	w := preview.SanitizeWindow(start, end)

	outputPath, err := s.allocateOutputPath()
	if err != nil {
		return nil, err
	}

	if err := s.clipper.Clip(ctx, sourcePath, outputPath, w); err != nil {
		return nil, err
	}

	s.logger.Info("preview created",
		zap.String("source", sourcePath),
		zap.String("output", outputPath),
		zap.Float64("duration", w.Duration))

	return &preview.Artifact{
		OutputPath: outputPath,
		Duration:   w.Duration,
		Strategy:   preview.StrategyCopy,
	}, nil
}

// RemovePreview deletes a previously produced preview clip. It never fails
// observably: a missing file, or a second call for the same path, is a
// no-op.
func (s *Service) RemovePreview(path string) {
	s.remover.Remove(path)
	s.logger.Debug("preview removed", zap.String("path", path))
}

// allocateOutputPath creates a fresh uniquely named temporary directory and
// returns a clip path inside it. The timestamp plus random component keeps
// concurrent requests collision-free without a lock.
func (s *Service) allocateOutputPath() (string, error) {
	dir, err := os.MkdirTemp(s.tmpRoot, "preview-")
	if err != nil {
		return "", fmt.Errorf("failed to allocate preview directory: %w", err)
	}

	name := fmt.Sprintf("preview-%d-%s.mp4", time.Now().UnixMilli(), uuid.NewString()[:8])
	return filepath.Join(dir, name), nil
}
