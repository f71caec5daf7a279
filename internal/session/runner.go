// Package session drives compression attempts: the interactive prompt loop
// and the one-shot mode used for positional arguments. It also keeps the
// per-session summary.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/backmassage/vidshrink/internal/compress"
	"github.com/backmassage/vidshrink/internal/display"
	"github.com/backmassage/vidshrink/internal/ffmpeg"
	"github.com/backmassage/vidshrink/internal/prompt"
	"github.com/backmassage/vidshrink/internal/size"
	"github.com/backmassage/vidshrink/internal/term"
)

// stderrTailLines is how much of a failed encoder's output is shown at
// error level. The complete text is logged at debug level.
const stderrTailLines = 20

// ErrNotFound is returned by Once when the input is not a regular file.
var ErrNotFound = errors.New("file not found")

// Compressor is the compression orchestrator (see compress.Compressor).
type Compressor interface {
	Compress(ctx context.Context, input string, targetBytes float64) (*compress.Result, error)
}

// Session runs attempts against one Compressor and accumulates RunStats.
type Session struct {
	Compressor Compressor
	Prompter   *prompt.Prompter // Only needed by Run.
	Log        hclog.Logger
	Out        io.Writer // Prompt replies and result lines.

	stats RunStats
}

// New returns a Session. A nil log discards output.
func New(c Compressor, p *prompt.Prompter, log hclog.Logger, out io.Writer) *Session {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Session{Compressor: c, Prompter: p, Log: log, Out: out}
}

// Stats returns the counters so far.
func (s *Session) Stats() RunStats { return s.stats }

// Run is the interactive loop: ask for a file, show its size, ask for a
// target, compress, report, and start over. "return" at the size prompt
// goes back to the path prompt; "exit" (or end of input) ends the loop.
// Cancelling ctx ends the loop at the prompt it is waiting on, or after
// the running attempt.
func (s *Session) Run(ctx context.Context) RunStats {
	for {
		path := s.Prompter.AskPath(ctx)
		if s.interrupted(ctx) || path.Action == prompt.ExitRequested {
			break
		}

		fi, err := os.Stat(path.Value)
		if err != nil {
			fmt.Fprintln(s.Out, term.Paint(term.Red, prompt.FileNotFound))
			continue
		}
		fmt.Fprintln(s.Out, term.Paint(term.Cyan, "Original filesize: ")+size.FormatInt(fi.Size()))

		target := s.Prompter.AskSize(ctx, fi.Size())
		if s.interrupted(ctx) || target.Action == prompt.ExitRequested {
			break
		}
		if target.Action == prompt.RestartRequested {
			continue
		}

		if err := s.attempt(ctx, path.Value, target.Value); err != nil && s.interrupted(ctx) {
			break
		}
		fmt.Fprintln(s.Out)
	}

	s.logSummary()
	return s.stats
}

func (s *Session) interrupted(ctx context.Context) bool {
	if ctx.Err() == nil {
		return false
	}
	s.Log.Warn("interrupted")
	return true
}

// Once runs a single non-interactive attempt: input must be a regular file
// and sizeText must parse to something smaller than it.
func (s *Session) Once(ctx context.Context, input, sizeText string) error {
	fi, err := os.Stat(input)
	if err != nil || !fi.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotFound, input)
	}
	fmt.Fprintln(s.Out, term.Paint(term.Cyan, "Original filesize: ")+size.FormatInt(fi.Size()))

	target, err := size.Parse(sizeText, fi.Size())
	if err != nil {
		return err
	}
	fmt.Fprintln(s.Out, "Desired filesize: "+size.Format(target))

	return s.attempt(ctx, input, target)
}

// attempt runs one compression and reports it. Nothing is attempted once
// ctx is done.
func (s *Session) attempt(ctx context.Context, input string, target float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.stats.Attempts++

	res, err := s.Compressor.Compress(ctx, input, target)
	if err != nil {
		s.stats.Failed++
		if ctx.Err() != nil {
			s.Log.Warn("compression interrupted", "input", input)
			return err
		}
		s.reportFailure(err)
		return err
	}

	s.stats.Succeeded++
	s.stats.TotalInputBytes += res.InputBytes
	s.stats.TotalOutputBytes += res.OutputBytes

	for _, a := range res.Advisories {
		fmt.Fprintln(s.Out, term.Paint(term.Yellow, "Warning: ")+a.Message)
	}
	fmt.Fprintln(s.Out, term.Paint(term.Green, "Compressed: ")+term.Paint(term.Bold, res.OutputPath))
	fmt.Fprintln(s.Out, "  "+display.FormatReduction(res.InputBytes, res.OutputBytes)+
		" at "+display.FormatBitrateLabel(int64(res.VideoKbps)))
	return nil
}

func (s *Session) reportFailure(err error) {
	s.Log.Error("compression failed", "error", err)

	var ce *compress.Error
	if !errors.As(err, &ce) || !errors.Is(err, compress.ErrEncodeFailed) {
		return
	}
	if hint := ffmpeg.Hint(ce.Detail); hint != "" {
		s.Log.Error("likely cause: " + hint)
	}
	lines := ffmpeg.Tail(ce.Detail, stderrTailLines)
	if len(lines) == 0 {
		return
	}
	s.Log.Error("last ffmpeg output:")
	for _, l := range lines {
		s.Log.Error("  " + l)
	}
	s.Log.Debug("full ffmpeg output", "stderr", ce.Detail)
}

func (s *Session) logSummary() {
	st := &s.stats
	if st.Attempts == 0 {
		return
	}
	s.Log.Info("session done", "attempts", st.Attempts, "succeeded", st.Succeeded, "failed", st.Failed)
	if st.Succeeded == 0 {
		return
	}
	saved := st.SpaceSaved()
	if saved >= 0 {
		s.Log.Info("total space saved",
			"saved", size.FormatInt(saved),
			"input", size.FormatInt(st.TotalInputBytes),
			"output", size.FormatInt(st.TotalOutputBytes))
	} else {
		s.Log.Warn("overall output is larger", "delta", display.FormatBytesWithSign(-saved))
	}
}
