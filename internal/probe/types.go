package probe

import (
	"math"
	"strconv"
	"strings"
)

// FormatInfo holds container-level metadata from ffprobe's format section.
// DurationRaw is kept as ffprobe reports it; see [ProbeResult.Duration].
type FormatInfo struct {
	Filename    string
	FormatName  string
	DurationRaw string
	Size        int64
	BitRate     int64
}

// VideoStream holds the parsed properties of a single video stream.
type VideoStream struct {
	Index         int
	Codec         string
	Width         int
	Height        int
	BitRate       int64
	IsAttachedPic bool
}

// AudioStream holds the parsed properties of a single audio stream.
type AudioStream struct {
	Index      int
	Codec      string
	Channels   int
	SampleRate int
	BitRate    int64
	Language   string
}

// ProbeResult is the parsed output of a single ffprobe JSON call.
// PrimaryVideo is the first non-attached-pic video stream (nil if none).
type ProbeResult struct {
	Format       FormatInfo
	PrimaryVideo *VideoStream
	AudioStreams []AudioStream
}

// Duration returns the container duration in seconds. ok is false when the
// value is missing, unparseable, non-finite, or not positive.
func (p *ProbeResult) Duration() (seconds float64, ok bool) {
	raw := strings.TrimSpace(p.Format.DurationRaw)
	if raw == "" || raw == "N/A" {
		return 0, false
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return 0, false
	}
	return d, true
}

// VideoBitRate returns the primary video stream bitrate in bits/sec,
// falling back to the format-level bitrate when the stream value is
// unavailable or zero.
func (p *ProbeResult) VideoBitRate() int64 {
	if p.PrimaryVideo != nil && p.PrimaryVideo.BitRate > 0 {
		return p.PrimaryVideo.BitRate
	}
	return p.Format.BitRate
}

// VideoCodec returns the primary video codec name, or "unknown".
func (p *ProbeResult) VideoCodec() string {
	if p.PrimaryVideo == nil || p.PrimaryVideo.Codec == "" {
		return "unknown"
	}
	return p.PrimaryVideo.Codec
}

// Resolution returns "WxH" for the primary video stream, or "unknown".
func (p *ProbeResult) Resolution() string {
	if p.PrimaryVideo == nil || p.PrimaryVideo.Width <= 0 || p.PrimaryVideo.Height <= 0 {
		return "unknown"
	}
	return strconv.Itoa(p.PrimaryVideo.Width) + "x" + strconv.Itoa(p.PrimaryVideo.Height)
}
