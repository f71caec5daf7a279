package compress

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/shirou/gopsutil/v4/disk"

	"github.com/backmassage/vidshrink/internal/display"
	"github.com/backmassage/vidshrink/internal/ffmpeg"
	"github.com/backmassage/vidshrink/internal/planner"
	"github.com/backmassage/vidshrink/internal/probe"
	"github.com/backmassage/vidshrink/internal/size"
)

// Encoder is the encoder binary collaborator (see ffmpeg.Engine).
type Encoder interface {
	Available() error
	Encode(ctx context.Context, args []string) ffmpeg.ExecResult
}

// Inspector is the media inspection collaborator (see probe.Prober).
type Inspector interface {
	Probe(ctx context.Context, path string) (*probe.ProbeResult, error)
}

// Result describes a successful compression.
type Result struct {
	RunID       string
	OutputPath  string
	VideoKbps   int
	InputBytes  int64
	OutputBytes int64
	Duration    float64 // Source duration in seconds.
	Advisories  []planner.Advisory
	Elapsed     time.Duration
}

// Compressor holds the collaborators for compression attempts. Attempts
// share no state; a Compressor may be reused for any number of them.
type Compressor struct {
	Engine    Encoder
	Inspector Inspector
	Log       hclog.Logger

	// KeepPartial leaves a partially written output in place when the
	// encoder fails. By default it is removed.
	KeepPartial bool

	freeSpace func(dir string) (uint64, error)
	newRunID  func() string
}

// New returns a Compressor. A nil log discards output.
func New(engine Encoder, inspector Inspector, log hclog.Logger, keepPartial bool) *Compressor {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Compressor{
		Engine:      engine,
		Inspector:   inspector,
		Log:         log,
		KeepPartial: keepPartial,
		freeSpace:   diskFree,
		newRunID:    uuid.NewString,
	}
}

// Compress re-encodes input so that it occupies roughly targetBytes. The
// sequence stops at the first failure, which is returned as an *Error.
// There are no retries.
func (c *Compressor) Compress(ctx context.Context, input string, targetBytes float64) (*Result, error) {
	start := time.Now()
	runID := c.runID()
	log := c.Log.With("run", runID, "input", filepath.Base(input))

	// --- Engine ---
	if err := c.Engine.Available(); err != nil {
		return nil, &Error{Kind: ErrEngineUnavailable, Input: input, Err: err}
	}

	// --- Media info ---
	pr, err := c.Inspector.Probe(ctx, input)
	if err != nil {
		return nil, &Error{Kind: ErrMediaInfoUnavailable, Input: input, Err: err}
	}
	if pr == nil {
		return nil, &Error{Kind: ErrMediaInfoUnavailable, Input: input, Err: probe.ErrNoData}
	}
	duration, ok := pr.Duration()
	if !ok {
		return nil, &Error{
			Kind:  ErrDurationUnavailable,
			Input: input,
			Err:   fmt.Errorf("format.duration %q", pr.Format.DurationRaw),
		}
	}
	log.Info("source",
		"duration", display.FormatDuration(duration),
		"video", pr.VideoCodec(),
		"resolution", pr.Resolution(),
		"bitrate", display.FormatBitrateLabel(pr.VideoBitRate()/1000),
		"audio_streams", len(pr.AudioStreams),
	)

	// --- Bitrate ---
	kbps, err := planner.ComputeKbps(targetBytes, duration)
	if err != nil {
		kind := ErrInvalidTarget
		if errors.Is(err, planner.ErrInvalidDuration) {
			kind = ErrDurationUnavailable
		}
		return nil, &Error{Kind: kind, Input: input, Err: err}
	}
	advisories := planner.Advise(kbps)
	for _, a := range advisories {
		log.Warn(a.Message)
	}

	// --- Output ---
	req := planner.BuildRequest(input, kbps)
	c.checkFreeSpace(log, filepath.Dir(req.OutputPath), targetBytes)

	// --- Encode ---
	log.Info("encoding", "video_kbps", kbps, "output", req.OutputPath)
	args := ffmpeg.Build(req)
	log.Debug("encoder args", "args", args)

	before := snapshot(req.OutputPath)
	res := c.Engine.Encode(ctx, args)
	if !res.Success() {
		c.discardPartial(log, req.OutputPath, before)
		cause := res.Err
		if cause == nil {
			cause = fmt.Errorf("exit status %d", res.ExitCode)
		}
		return nil, &Error{Kind: ErrEncodeFailed, Input: input, Detail: res.Stderr, Err: cause}
	}

	out := &Result{
		RunID:      runID,
		OutputPath: req.OutputPath,
		VideoKbps:  kbps,
		Duration:   duration,
		Advisories: advisories,
		Elapsed:    time.Since(start),
	}
	if fi, err := os.Stat(input); err == nil {
		out.InputBytes = fi.Size()
	}
	if fi, err := os.Stat(req.OutputPath); err == nil {
		out.OutputBytes = fi.Size()
	}
	log.Info("encoded", "elapsed", out.Elapsed.Round(time.Second), "output_size", size.FormatInt(out.OutputBytes))
	return out, nil
}

func (c *Compressor) runID() string {
	if c.newRunID == nil {
		return uuid.NewString()
	}
	return c.newRunID()
}

// checkFreeSpace warns when the output volume has less room than the
// target. It never blocks the encode; the estimate ignores container
// overhead and audio.
func (c *Compressor) checkFreeSpace(log hclog.Logger, dir string, targetBytes float64) {
	if c.freeSpace == nil {
		return
	}
	free, err := c.freeSpace(dir)
	if err != nil {
		log.Debug("free space unknown", "dir", dir, "error", err)
		return
	}
	if float64(free) < targetBytes {
		log.Warn("output volume may be too small",
			"free", size.FormatInt(int64(free)),
			"target", size.Format(targetBytes),
		)
	}
}

// outputState is what was at the output path before an encode started.
type outputState struct {
	exists  bool
	size    int64
	modTime time.Time
}

func snapshot(path string) outputState {
	fi, err := os.Stat(path)
	if err != nil {
		return outputState{}
	}
	return outputState{exists: true, size: fi.Size(), modTime: fi.ModTime()}
}

// discardPartial removes the output left by a failed encode unless
// KeepPartial is set. A file that was already there and that the encoder
// never touched belongs to an earlier run and is left alone.
func (c *Compressor) discardPartial(log hclog.Logger, path string, before outputState) {
	after := snapshot(path)
	if !after.exists {
		return
	}
	if before.exists && after.size == before.size && after.modTime.Equal(before.modTime) {
		log.Debug("encoder did not write output, keeping existing file", "path", path)
		return
	}
	if c.KeepPartial {
		log.Warn("keeping partial output", "path", path)
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("could not remove partial output", "path", path, "error", err)
	}
}

func diskFree(dir string) (uint64, error) {
	u, err := disk.Usage(dir)
	if err != nil {
		return 0, err
	}
	return u.Free, nil
}
