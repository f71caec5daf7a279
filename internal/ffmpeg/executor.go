package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"time"
)

// defaultWaitDelay bounds how long Wait keeps draining the output streams
// after the process has exited or been killed.
const defaultWaitDelay = 5 * time.Second

// ExecResult holds the outcome of a single subprocess invocation.
type ExecResult struct {
	ExitCode int // -1 when the process never started or died from a signal.
	Stdout   string
	Stderr   string
	Err      error
}

// Success reports whether the process ran and exited with status 0.
func (r ExecResult) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Runner executes an external binary to completion. The interface lets
// tests substitute canned results for ffmpeg and ffprobe.
type Runner interface {
	Run(ctx context.Context, bin string, args []string) ExecResult
}

// ExecRunner is the os/exec Runner. Both output streams are drained into
// memory and the process is always waited on, whether it fails to start,
// exits non-zero, or is killed by ctx, so no descriptors or zombies leak.
type ExecRunner struct {
	// Tee, when set, also receives stderr as it is produced (verbose mode).
	Tee io.Writer
	// WaitDelay overrides defaultWaitDelay.
	WaitDelay time.Duration
}

// Run starts bin with args, blocks until it exits, and returns the
// captured output. Stdin is the null device so the child never competes
// with the interactive prompt for terminal input.
func (r ExecRunner) Run(ctx context.Context, bin string, args []string) ExecResult {
	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if r.Tee != nil {
		cmd.Stderr = io.MultiWriter(&stderr, r.Tee)
	} else {
		cmd.Stderr = &stderr
	}
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = defaultWaitDelay
	}

	err := cmd.Run()
	return ExecResult{
		ExitCode: exitCode(err),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      err,
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}
