package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Environment variables that override binary lookup.
const (
	EnvFFmpegPath  = "FFMPEG_PATH"
	EnvFFprobePath = "FFPROBE_PATH"
)

// bundledDir is where a portable build ships its binaries, relative to the
// vidshrink executable.
var bundledDir = filepath.Join("ffmpeg", "bin")

// lookup abstracts the process environment so resolution is testable.
type lookup struct {
	getenv   func(string) string
	exeDir   string
	lookPath func(string) (string, error)
	isFile   func(string) bool
}

func systemLookup() lookup {
	exeDir := ""
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}
	return lookup{
		getenv:   os.Getenv,
		exeDir:   exeDir,
		lookPath: exec.LookPath,
		isFile: func(p string) bool {
			fi, err := os.Stat(p)
			return err == nil && fi.Mode().IsRegular()
		},
	}
}

// ResolveBinaries fills FFmpegPath and FFprobePath once at startup.
// Precedence: explicit flag > environment variable > binary bundled next to
// the executable > $PATH. When nothing is found the bare name is kept so
// the later availability check reports it by name.
func (c *Config) ResolveBinaries() {
	c.resolveWith(systemLookup())
}

func (c *Config) resolveWith(l lookup) {
	c.FFmpegPath = resolveBinary(l, c.FFmpegPath, EnvFFmpegPath, "ffmpeg")
	c.FFprobePath = resolveBinary(l, c.FFprobePath, EnvFFprobePath, "ffprobe")
}

func resolveBinary(l lookup, explicit, envVar, name string) string {
	if explicit != "" {
		return explicit
	}
	if v := l.getenv(envVar); v != "" {
		return v
	}
	if l.exeDir != "" {
		bundled := filepath.Join(l.exeDir, bundledDir, executableName(name))
		if l.isFile(bundled) {
			return bundled
		}
	}
	if p, err := l.lookPath(name); err == nil {
		return p
	}
	return name
}

func executableName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}
