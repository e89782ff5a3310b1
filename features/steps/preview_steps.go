//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"media-preview-service/cmd"
	"media-preview-service/infrastructure/ffmpeg"

	"github.com/cucumber/godog"
	"go.uber.org/zap"
)

// fakeExitError mimics a non-zero process exit
type fakeExitError struct{}

func (e *fakeExitError) Error() string { return "exit status 1" }

func (e *fakeExitError) ExitCode() int { return 1 }

// mockCommandRunner records ffmpeg invocations for verification
type mockCommandRunner struct {
	failDiagnostic string
	shouldFail     bool

	calledName string
	calledArgs []string
}

func (m *mockCommandRunner) Run(ctx context.Context, stderr io.Writer, name string, args ...string) error {
	m.calledName = name
	m.calledArgs = args
	if m.shouldFail {
		io.WriteString(stderr, m.failDiagnostic)
		return &fakeExitError{}
	}
	return nil
}

func (m *mockCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return []byte("ffmpeg version 7.0"), nil
}

// mockChecker simulates source file validation
type mockChecker struct {
	existingFiles map[string]bool
}

func (m *mockChecker) EnsureRegularFile(path string) error {
	if !m.existingFiles[path] {
		return fmt.Errorf("source %s: %w", path, fs.ErrNotExist)
	}
	return nil
}

// mockRemover records removal requests
type mockRemover struct {
	removed []string
}

func (m *mockRemover) Remove(path string) {
	m.removed = append(m.removed, path)
}

// previewContext holds test state for preview scenarios
type previewContext struct {
	sourcePath    string
	commandRunner *mockCommandRunner
	checker       *mockChecker
	remover       *mockRemover
	output        *bytes.Buffer
	err           error
	removeErrs    []error
}

// SharedPreviewContext is reset before each scenario via Before hook
var SharedPreviewContext *previewContext

func getPreviewContext() *previewContext {
	return SharedPreviewContext
}

func InitializePreviewScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedPreviewContext = &previewContext{
			commandRunner: &mockCommandRunner{},
			checker:       &mockChecker{existingFiles: make(map[string]bool)},
			remover:       &mockRemover{},
			output:        &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if p := SharedPreviewContext; p != nil {
			if out := p.allocatedOutputPath(); out != "" {
				os.RemoveAll(filepath.Dir(out))
			}
		}
		SharedPreviewContext = nil
		return c, nil
	})

	ctx.Step(`^a source video at "([^"]*)"$`, aSourceVideoAt)
	ctx.Step(`^no source video exists at "([^"]*)"$`, noSourceVideoExistsAt)
	ctx.Step(`^ffmpeg will fail with diagnostic "([^"]*)"$`, ffmpegWillFailWithDiagnostic)
	ctx.Step(`^I request a preview from "([^"]*)" to "([^"]*)"$`, iRequestAPreviewFromTo)
	ctx.Step(`^I attempt a preview from "([^"]*)" to "([^"]*)"$`, iAttemptAPreviewFromTo)
	ctx.Step(`^a preview clip should be created$`, aPreviewClipShouldBeCreated)
	ctx.Step(`^the clip should use the stream copy strategy$`, theClipShouldUseTheStreamCopyStrategy)
	ctx.Step(`^the clip duration should be "([^"]*)" seconds$`, theClipDurationShouldBe)
	ctx.Step(`^the clip window should start at "([^"]*)" seconds$`, theClipWindowShouldStartAt)
	ctx.Step(`^ffmpeg should have received "([^"]*)" "([^"]*)"$`, ffmpegShouldHaveReceived)
	ctx.Step(`^the output path should be the final ffmpeg argument$`, theOutputPathShouldBeTheFinalArgument)
	ctx.Step(`^I should receive an error about the missing source$`, iShouldReceiveAnErrorAboutTheMissingSource)
	ctx.Step(`^ffmpeg should not have been invoked$`, ffmpegShouldNotHaveBeenInvoked)
	ctx.Step(`^I should receive the error "([^"]*)"$`, iShouldReceiveTheError)
	ctx.Step(`^the partial output should have been removed$`, thePartialOutputShouldHaveBeenRemoved)
	ctx.Step(`^a preview clip exists at "([^"]*)"$`, aPreviewClipExistsAt)
	ctx.Step(`^I remove the preview at "([^"]*)"$`, iRemoveThePreviewAt)
	ctx.Step(`^both removals should complete without error$`, bothRemovalsShouldCompleteWithoutError)
}

// allocatedOutputPath returns the output path ffmpeg was pointed at, if any
func (p *previewContext) allocatedOutputPath() string {
	if len(p.commandRunner.calledArgs) == 0 {
		return ""
	}
	return p.commandRunner.calledArgs[len(p.commandRunner.calledArgs)-1]
}

// argValue returns the token following flag in the recorded ffmpeg args
func (p *previewContext) argValue(flag string) string {
	args := p.commandRunner.calledArgs
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func (p *previewContext) runPreview(start, end string) error {
	startSec, err := strconv.ParseFloat(start, 64)
	if err != nil {
		return fmt.Errorf("bad start %q: %v", start, err)
	}
	endSec, err := strconv.ParseFloat(end, 64)
	if err != nil {
		return fmt.Errorf("bad end %q: %v", end, err)
	}

	clipper := ffmpeg.NewClipper(
		ffmpeg.WithRunner(ffmpeg.NewRunner(
			ffmpeg.WithCommandRunner(p.commandRunner),
			ffmpeg.WithRemover(p.remover),
		)),
	)

	p.err = cmd.RunPreviewWithDependencies(
		context.Background(),
		clipper,
		p.checker,
		p.remover,
		"",
		zap.NewNop(),
		p.sourcePath,
		startSec,
		endSec,
		p.output,
	)
	return nil
}

func aSourceVideoAt(path string) error {
	p := getPreviewContext()
	p.sourcePath = path
	p.checker.existingFiles[path] = true
	return nil
}

func noSourceVideoExistsAt(path string) error {
	p := getPreviewContext()
	p.sourcePath = path
	p.checker.existingFiles[path] = false
	return nil
}

func ffmpegWillFailWithDiagnostic(diagnostic string) error {
	p := getPreviewContext()
	p.commandRunner.shouldFail = true
	p.commandRunner.failDiagnostic = diagnostic
	return nil
}

func iRequestAPreviewFromTo(start, end string) error {
	p := getPreviewContext()
	if err := p.runPreview(start, end); err != nil {
		return err
	}
	if p.err != nil {
		return fmt.Errorf("unexpected error: %v", p.err)
	}
	return nil
}

func iAttemptAPreviewFromTo(start, end string) error {
	return getPreviewContext().runPreview(start, end)
}

func aPreviewClipShouldBeCreated() error {
	p := getPreviewContext()
	if p.err != nil {
		return fmt.Errorf("expected success, got error: %v", p.err)
	}
	if !strings.Contains(p.output.String(), "Successfully created:") {
		return fmt.Errorf("expected creation message, got %q", p.output.String())
	}
	return nil
}

func theClipShouldUseTheStreamCopyStrategy() error {
	p := getPreviewContext()
	if !strings.Contains(p.output.String(), "copy") {
		return fmt.Errorf("expected copy strategy in output, got %q", p.output.String())
	}
	if got := p.argValue("-c"); got != "copy" {
		return fmt.Errorf("expected -c copy in ffmpeg args, got %q", got)
	}
	return nil
}

func theClipDurationShouldBe(duration string) error {
	p := getPreviewContext()
	if got := p.argValue("-t"); got != duration {
		return fmt.Errorf("expected -t %s, got %q", duration, got)
	}
	return nil
}

func theClipWindowShouldStartAt(start string) error {
	p := getPreviewContext()
	if got := p.argValue("-ss"); got != start {
		return fmt.Errorf("expected -ss %s, got %q", start, got)
	}
	return nil
}

func ffmpegShouldHaveReceived(flag, value string) error {
	p := getPreviewContext()
	if got := p.argValue(flag); got != value {
		return fmt.Errorf("expected %s %s, got %q", flag, value, got)
	}
	return nil
}

func theOutputPathShouldBeTheFinalArgument() error {
	p := getPreviewContext()
	out := p.allocatedOutputPath()
	if out == "" || !strings.HasSuffix(out, ".mp4") {
		return fmt.Errorf("final ffmpeg argument %q is not an output path", out)
	}
	return nil
}

func iShouldReceiveAnErrorAboutTheMissingSource() error {
	p := getPreviewContext()
	if p.err == nil {
		return fmt.Errorf("expected an error, got success")
	}
	if !strings.Contains(p.err.Error(), p.sourcePath) {
		return fmt.Errorf("expected error mentioning %q, got %v", p.sourcePath, p.err)
	}
	return nil
}

func ffmpegShouldNotHaveBeenInvoked() error {
	p := getPreviewContext()
	if len(p.commandRunner.calledArgs) != 0 {
		return fmt.Errorf("ffmpeg was invoked with %v", p.commandRunner.calledArgs)
	}
	return nil
}

func iShouldReceiveTheError(message string) error {
	p := getPreviewContext()
	if p.err == nil {
		return fmt.Errorf("expected an error, got success")
	}
	if p.err.Error() != message {
		return fmt.Errorf("expected error %q, got %q", message, p.err.Error())
	}
	return nil
}

func thePartialOutputShouldHaveBeenRemoved() error {
	p := getPreviewContext()
	out := p.allocatedOutputPath()
	for _, removed := range p.remover.removed {
		if removed == out {
			return nil
		}
	}
	return fmt.Errorf("output %q was not removed; removals: %v", out, p.remover.removed)
}

func aPreviewClipExistsAt(path string) error {
	// Removal is best-effort either way; nothing to set up.
	return nil
}

func iRemoveThePreviewAt(path string) error {
	p := getPreviewContext()
	p.removeErrs = append(p.removeErrs, cmd.RunRemoveWithDependencies(p.remover, path, p.output))
	return nil
}

func bothRemovalsShouldCompleteWithoutError() error {
	p := getPreviewContext()
	if len(p.removeErrs) != 2 {
		return fmt.Errorf("expected 2 removals, got %d", len(p.removeErrs))
	}
	for _, err := range p.removeErrs {
		if err != nil {
			return fmt.Errorf("removal failed: %v", err)
		}
	}
	return nil
}
