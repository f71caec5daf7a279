package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/vidshrink/internal/ffmpeg"
)

// Realistic ffprobe JSON for an MP4 with cover art, one H.264 stream and
// one AAC stream.
const sampleMP4 = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "width": 600,
      "height": 900,
      "disposition": { "default": 0, "attached_pic": 1 }
    },
    {
      "index": 1,
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1920,
      "height": 1080,
      "bit_rate": "5000000",
      "disposition": { "default": 1, "attached_pic": 0 }
    },
    {
      "index": 2,
      "codec_name": "aac",
      "codec_type": "audio",
      "channels": 2,
      "sample_rate": "48000",
      "bit_rate": "128000",
      "disposition": { "default": 1 },
      "tags": { "language": "eng" }
    }
  ],
  "format": {
    "filename": "/media/holiday.mp4",
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "120.000000",
    "size": "500000000",
    "bit_rate": "5128000"
  }
}`

func TestParseJSON(t *testing.T) {
	pr, err := ParseJSON([]byte(sampleMP4))
	require.NoError(t, err)

	d, ok := pr.Duration()
	require.True(t, ok)
	assert.InDelta(t, 120.0, d, 1e-9)
	assert.Equal(t, int64(500000000), pr.Format.Size)

	require.NotNil(t, pr.PrimaryVideo)
	assert.Equal(t, 1, pr.PrimaryVideo.Index, "cover art must not be primary")
	assert.Equal(t, "h264", pr.VideoCodec())
	assert.Equal(t, "1920x1080", pr.Resolution())
	assert.Equal(t, int64(5000000), pr.VideoBitRate())

	require.Len(t, pr.AudioStreams, 1)
	assert.Equal(t, AudioStream{Index: 2, Codec: "aac", Channels: 2, SampleRate: 48000, BitRate: 128000, Language: "eng"}, pr.AudioStreams[0])
}

func TestParseJSON_NoData(t *testing.T) {
	for name, in := range map[string]string{
		"empty":      "",
		"whitespace": "  \n",
		"garbage":    "not json",
		"empty obj":  "{}",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJSON([]byte(in))
			assert.ErrorIs(t, err, ErrNoData)
		})
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"120.5", 120.5, true},
		{" 3600 ", 3600, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"abc", 0, false},
		{"0", 0, false},
		{"-4", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			pr := &ProbeResult{Format: FormatInfo{DurationRaw: tt.raw}}
			d, ok := pr.Duration()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestFallbacks(t *testing.T) {
	pr := &ProbeResult{Format: FormatInfo{BitRate: 900000}}
	assert.Equal(t, int64(900000), pr.VideoBitRate())
	assert.Equal(t, "unknown", pr.Resolution())
	assert.Equal(t, "unknown", pr.VideoCodec())
}

type fakeRunner struct {
	res  ffmpeg.ExecResult
	bin  string
	args []string
}

func (f *fakeRunner) Run(_ context.Context, bin string, args []string) ffmpeg.ExecResult {
	f.bin, f.args = bin, args
	return f.res
}

func TestProber_Probe(t *testing.T) {
	fr := &fakeRunner{res: ffmpeg.ExecResult{Stdout: sampleMP4}}
	pr, err := NewProber("/usr/bin/ffprobe", fr).Probe(context.Background(), "/media/holiday.mp4")
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/ffprobe", fr.bin)
	assert.Equal(t, []string{"-v", "quiet", "-print_format", "json", "-show_format", "-show_streams", "/media/holiday.mp4"}, fr.args)
	d, ok := pr.Duration()
	assert.True(t, ok)
	assert.Equal(t, 120.0, d)
}

func TestProber_Failures(t *testing.T) {
	tests := []struct {
		name string
		res  ffmpeg.ExecResult
	}{
		{"non-zero exit", ffmpeg.ExecResult{ExitCode: 1, Stdout: sampleMP4}},
		{"start failure", ffmpeg.ExecResult{ExitCode: -1, Err: errors.New("exec: not found")}},
		{"empty output", ffmpeg.ExecResult{}},
		{"bad json", ffmpeg.ExecResult{Stdout: "{"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr, err := NewProber("ffprobe", &fakeRunner{res: tt.res}).Probe(context.Background(), "x.mp4")
			assert.Nil(t, pr)
			assert.ErrorIs(t, err, ErrNoData)
		})
	}
}
