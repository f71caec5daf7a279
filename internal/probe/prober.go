package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/backmassage/vidshrink/internal/ffmpeg"
)

// ErrNoData is returned when ffprobe produced nothing usable for a file:
// it exited non-zero, printed nothing, or printed something that is not
// ffprobe JSON.
var ErrNoData = errors.New("no media information")

// Prober runs ffprobe through a Runner. Results are not cached.
type Prober struct {
	Bin    string
	Runner ffmpeg.Runner
}

// NewProber returns a Prober for the ffprobe binary at bin.
func NewProber(bin string, runner ffmpeg.Runner) *Prober {
	return &Prober{Bin: bin, Runner: runner}
}

// Probe runs a single ffprobe JSON call against path and returns the
// parsed result. Every failure wraps ErrNoData.
func (p *Prober) Probe(ctx context.Context, path string) (*ProbeResult, error) {
	res := p.Runner.Run(ctx, p.Bin, []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	})
	if !res.Success() {
		if res.Err != nil {
			return nil, fmt.Errorf("ffprobe %q: %w: %w", path, ErrNoData, res.Err)
		}
		return nil, fmt.Errorf("ffprobe %q: %w: exit status %d", path, ErrNoData, res.ExitCode)
	}
	pr, err := ParseJSON([]byte(res.Stdout))
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	return pr, nil
}

// ParseJSON converts raw ffprobe JSON output into a ProbeResult.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*ProbeResult, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrNoData)
	}
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse ffprobe JSON: %w", ErrNoData, err)
	}
	if raw.Format == nil && len(raw.Streams) == 0 {
		return nil, fmt.Errorf("%w: no format or streams", ErrNoData)
	}
	return buildResult(&raw), nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  *ffprobeFormat  `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

type ffprobeStream struct {
	Index       int               `json:"index"`
	CodecName   string            `json:"codec_name"`
	CodecType   string            `json:"codec_type"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	BitRate     string            `json:"bit_rate"`
	Channels    int               `json:"channels"`
	SampleRate  string            `json:"sample_rate"`
	Disposition map[string]int    `json:"disposition"`
	Tags        map[string]string `json:"tags"`
}

// --- Conversion from wire types to domain types ---

func buildResult(raw *ffprobeOutput) *ProbeResult {
	pr := &ProbeResult{}
	if raw.Format != nil {
		pr.Format = FormatInfo{
			Filename:    raw.Format.Filename,
			FormatName:  raw.Format.FormatName,
			DurationRaw: raw.Format.Duration,
			Size:        parseInt64(raw.Format.Size),
			BitRate:     parseInt64(raw.Format.BitRate),
		}
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			vs := VideoStream{
				Index:         s.Index,
				Codec:         s.CodecName,
				Width:         s.Width,
				Height:        s.Height,
				BitRate:       parseInt64(s.BitRate),
				IsAttachedPic: s.Disposition["attached_pic"] == 1,
			}
			if !vs.IsAttachedPic && pr.PrimaryVideo == nil {
				pr.PrimaryVideo = &vs
			}
		case "audio":
			pr.AudioStreams = append(pr.AudioStreams, AudioStream{
				Index:      s.Index,
				Codec:      s.CodecName,
				Channels:   s.Channels,
				SampleRate: int(parseInt64(s.SampleRate)),
				BitRate:    parseInt64(s.BitRate),
				Language:   s.Tags["language"],
			})
		}
	}
	return pr
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
