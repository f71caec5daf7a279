package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPathArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "/media/clip.mp4", "/media/clip.mp4"},
		{"quoted", `"/media/my clip.mp4"`, "/media/my clip.mp4"},
		{"quoted with spaces", `  "C:\Videos\a.mkv" `, `C:\Videos\a.mkv`},
		{"inner spaces kept", "/media/my clip.mp4", "/media/my clip.mp4"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanPathArg(tt.in))
		})
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "Validate() error = %v", err)
		})
	}
}

func TestValidate_PositionalPairing(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate(), "interactive mode needs no positionals")
	assert.True(t, cfg.Interactive())

	cfg.InputPath = "/in.mp4"
	assert.Error(t, cfg.Validate(), "input without size")

	cfg.TargetSize = "10MB"
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.Interactive())

	cfg.CheckOnly = true
	cfg.TargetSize = ""
	assert.NoError(t, cfg.Validate(), "check mode ignores positionals")
}

func TestParseFlags(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseFlags(&cfg, []string{
		"--ffmpeg", "/opt/ff/ffmpeg",
		"--ffprobe=/opt/ff/ffprobe",
		"--keep-partial",
		"-v",
		"--no-color",
		"-l", "/tmp/vidshrink.log",
		`"/media/my clip.mp4"`, "25MB",
	}, "test")
	require.NoError(t, err)

	assert.Equal(t, "/opt/ff/ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "/opt/ff/ffprobe", cfg.FFprobePath)
	assert.True(t, cfg.KeepPartial)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, ColorNever, cfg.ColorMode)
	assert.Equal(t, "/tmp/vidshrink.log", cfg.LogFile)
	assert.Equal(t, "/media/my clip.mp4", cfg.InputPath)
	assert.Equal(t, "25MB", cfg.TargetSize)
}

func TestParseFlags_ColorPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, ParseFlags(&cfg, []string{"--color"}, "test"))
	assert.Equal(t, ColorAlways, cfg.ColorMode)

	cfg = DefaultConfig()
	require.NoError(t, ParseFlags(&cfg, []string{"--color", "--no-color"}, "test"))
	assert.Equal(t, ColorNever, cfg.ColorMode)
}

func TestParseFlags_PositionalCount(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, ParseFlags(&cfg, []string{"only-input.mp4"}, "test"))

	cfg = DefaultConfig()
	assert.Error(t, ParseFlags(&cfg, []string{"a", "b", "c"}, "test"))

	cfg = DefaultConfig()
	require.NoError(t, ParseFlags(&cfg, []string{"-c", "stray"}, "test"))
	assert.True(t, cfg.CheckOnly)
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, ParseFlags(&cfg, []string{"--preset", "slow"}, "test"))
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ColorAuto, cfg.ColorMode)
	assert.False(t, cfg.KeepPartial)
	assert.False(t, cfg.CheckOnly)
	assert.True(t, cfg.Interactive())
}

func TestResolveBinaries_Precedence(t *testing.T) {
	exeDir := filepath.Join("/opt", "vidshrink")
	bundledFFmpeg := filepath.Join(exeDir, "ffmpeg", "bin", executableName("ffmpeg"))

	base := func() lookup {
		return lookup{
			getenv:   func(string) string { return "" },
			exeDir:   exeDir,
			lookPath: func(name string) (string, error) { return "/usr/bin/" + name, nil },
			isFile:   func(string) bool { return false },
		}
	}

	t.Run("explicit wins", func(t *testing.T) {
		l := base()
		l.getenv = func(string) string { return "/env/bin" }
		cfg := DefaultConfig()
		cfg.FFmpegPath = "/flag/ffmpeg"
		cfg.resolveWith(l)
		assert.Equal(t, "/flag/ffmpeg", cfg.FFmpegPath)
		assert.Equal(t, "/env/bin", cfg.FFprobePath)
	})

	t.Run("environment over bundled", func(t *testing.T) {
		l := base()
		l.getenv = func(k string) string {
			if k == EnvFFmpegPath {
				return "/env/ffmpeg"
			}
			return ""
		}
		l.isFile = func(string) bool { return true }
		cfg := DefaultConfig()
		cfg.resolveWith(l)
		assert.Equal(t, "/env/ffmpeg", cfg.FFmpegPath)
		assert.Equal(t, filepath.Join(exeDir, "ffmpeg", "bin", executableName("ffprobe")), cfg.FFprobePath)
	})

	t.Run("bundled over PATH", func(t *testing.T) {
		l := base()
		l.isFile = func(p string) bool { return p == bundledFFmpeg }
		cfg := DefaultConfig()
		cfg.resolveWith(l)
		assert.Equal(t, bundledFFmpeg, cfg.FFmpegPath)
		assert.Equal(t, "/usr/bin/ffprobe", cfg.FFprobePath)
	})

	t.Run("bare name when nothing found", func(t *testing.T) {
		l := base()
		l.exeDir = ""
		l.lookPath = func(string) (string, error) { return "", errors.New("not found") }
		cfg := DefaultConfig()
		cfg.resolveWith(l)
		assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
		assert.Equal(t, "ffprobe", cfg.FFprobePath)
	})
}
