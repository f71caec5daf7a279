package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
)

// Engine is the encoder binary at a resolved path.
type Engine struct {
	Path   string
	Runner Runner
}

// NewEngine returns an Engine that runs path through runner.
func NewEngine(path string, runner Runner) *Engine {
	return &Engine{Path: path, Runner: runner}
}

// Available reports whether Path names an executable file. A bare name is
// searched on $PATH; a path with a separator is checked as-is.
func (e *Engine) Available() error {
	if e.Path == "" {
		return fmt.Errorf("no ffmpeg path configured")
	}
	if _, err := exec.LookPath(e.Path); err != nil {
		return fmt.Errorf("ffmpeg %q: %w", e.Path, err)
	}
	return nil
}

// Encode runs the encoder synchronously with args (see Build).
func (e *Engine) Encode(ctx context.Context, args []string) ExecResult {
	return e.Runner.Run(ctx, e.Path, args)
}
