package preview

import (
	"errors"
	"fmt"
)

// ErrNotRegularFile is returned when a source path exists but does not refer
// to a regular file (a directory, socket, device, ...).
var ErrNotRegularFile = errors.New("source path is not a regular file")

// FallbackToolMessage is surfaced when the external tool fails without
// writing anything to its diagnostic stream.
const FallbackToolMessage = "external tool failed to build preview clip"

// LaunchError indicates the external tool could not be started at all
// (missing binary, permission denied, ...).
type LaunchError struct {
	Tool string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Tool, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ToolError indicates the external tool ran but exited non-zero. Its message
// is the tool's captured diagnostic output, or FallbackToolMessage when the
// tool was silent.
type ToolError struct {
	Diagnostic string
	Err        error
}

func (e *ToolError) Error() string {
	if e.Diagnostic == "" {
		return FallbackToolMessage
	}
	return e.Diagnostic
}

func (e *ToolError) Unwrap() error {
	return e.Err
}
