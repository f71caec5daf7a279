// Package config holds runtime configuration: defaults, CLI flag parsing,
// external binary resolution and validation. A Config is built once at
// startup and passed by pointer to the packages that need it.
package config

import (
	"errors"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// mutated by [ParseFlags] and finalized by [Config.ResolveBinaries].
type Config struct {
	// One-shot mode (set from positional args). Both empty means interactive.
	InputPath  string
	TargetSize string

	// External binaries. Explicit values come from --ffmpeg/--ffprobe;
	// ResolveBinaries fills in the rest.
	FFmpegPath  string
	FFprobePath string

	// Keep a partially written output file when the encoder fails.
	KeepPartial bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		ColorMode:   ColorAuto,
		KeepPartial: false,
		Verbose:     false,
		CheckOnly:   false,
	}
}

// Interactive reports whether the prompt loop should run (no positional
// input was given).
func (c *Config) Interactive() bool {
	return c.InputPath == ""
}

// Validate checks enum fields and the positional argument pairing.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.CheckOnly {
		return nil
	}
	if (c.InputPath == "") != (c.TargetSize == "") {
		return errors.New("need both input and size, or neither for interactive mode")
	}
	return nil
}

// CleanPathArg strips whitespace and surrounding double quotes, which is
// what a path pasted from a file manager usually carries.
func CleanPathArg(path string) string {
	return strings.Trim(path, "\" \t\r\n")
}
