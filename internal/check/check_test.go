package check

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/vidshrink/internal/config"
	"github.com/backmassage/vidshrink/internal/ffmpeg"
)

const encodersOut = `Encoders:
 V..... = Video
 A..... = Audio
 ------
 V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC (codec h264)
 V....D libx265              libx265 H.265 / HEVC (codec hevc)
 A....D aac                  AAC (Advanced Audio Coding)
`

// scriptedRunner answers by binary path and first argument.
type scriptedRunner map[string]ffmpeg.ExecResult

func (s scriptedRunner) Run(_ context.Context, bin string, args []string) ffmpeg.ExecResult {
	key := bin
	if len(args) > 0 {
		key += " " + args[len(args)-1]
	}
	if r, ok := s[key]; ok {
		return r
	}
	return ffmpeg.ExecResult{ExitCode: -1, Err: os.ErrNotExist}
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.FFmpegPath = "/opt/ff/ffmpeg"
	cfg.FFprobePath = "/opt/ff/ffprobe"
	return &cfg
}

func testLogger(buf *bytes.Buffer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{Output: buf, Level: hclog.Info})
}

func healthyRunner() scriptedRunner {
	return scriptedRunner{
		"/opt/ff/ffmpeg -version":  {Stdout: "ffmpeg version 7.1 Copyright (c) 2000-2024\nbuilt with gcc\n"},
		"/opt/ff/ffprobe -version": {Stdout: "ffprobe version 7.1\n"},
		"/opt/ff/ffmpeg -encoders": {Stdout: encodersOut},
	}
}

func TestRunCheck_Healthy(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, RunCheck(testConfig(), healthyRunner(), testLogger(&buf)))

	out := buf.String()
	assert.Contains(t, out, "ffmpeg: ffmpeg version 7.1 Copyright (c) 2000-2024")
	assert.NotContains(t, out, "built with gcc")
	assert.Contains(t, out, "encoder libx264: available")
	assert.Contains(t, out, "encoder aac: available")
}

func TestRunCheck_MissingEncoder(t *testing.T) {
	r := healthyRunner()
	r["/opt/ff/ffmpeg -encoders"] = ffmpeg.ExecResult{Stdout: " ------\n A....D aac   AAC\n"}

	var buf bytes.Buffer
	assert.False(t, RunCheck(testConfig(), r, testLogger(&buf)))
	assert.Contains(t, buf.String(), "encoder libx264: missing")
}

func TestRunCheck_MissingProbe(t *testing.T) {
	r := healthyRunner()
	delete(r, "/opt/ff/ffprobe -version")

	var buf bytes.Buffer
	assert.False(t, RunCheck(testConfig(), r, testLogger(&buf)))
	assert.Contains(t, buf.String(), "ffprobe not usable")
}

func TestEncoderNames(t *testing.T) {
	names := encoderNames(encodersOut)
	assert.True(t, names["libx264"])
	assert.True(t, names["aac"])
	assert.False(t, names["="], "legend lines are skipped")
	assert.False(t, names["Video"])
}

func TestCheckDeps(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bit check is unix-only")
	}
	dir := t.TempDir()
	exe := func(name string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"), 0o755))
		return p
	}

	cfg := config.DefaultConfig()
	cfg.FFmpegPath = exe("ffmpeg")
	cfg.FFprobePath = exe("ffprobe")
	assert.NoError(t, CheckDeps(&cfg))

	cfg.FFprobePath = filepath.Join(dir, "missing-ffprobe")
	assert.ErrorIs(t, CheckDeps(&cfg), ErrFfprobeNotFound)

	cfg.FFmpegPath = filepath.Join(dir, "missing-ffmpeg")
	assert.ErrorIs(t, CheckDeps(&cfg), ErrFfmpegNotFound)
}
