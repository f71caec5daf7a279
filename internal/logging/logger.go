// Package logging builds the process-wide hclog logger: leveled, optionally
// colored output on stderr plus an optional plain-text file sink.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/backmassage/vidshrink/internal/config"
)

const timeFormat = "2006-01-02 15:04:05"

// Logger is the root logger. Components receive it (or a Named child) as a
// plain hclog.Logger. Call Close when done if LogFile was set.
type Logger struct {
	hclog.InterceptLogger
	file *os.File
	sink hclog.SinkAdapter
}

// NewLogger creates the root logger from cfg. Verbose lowers the level to
// Debug; LogFile adds an uncolored sink that appends to that file.
func NewLogger(cfg *config.Config) (*Logger, error) {
	level := hclog.Info
	if cfg.Verbose {
		level = hclog.Debug
	}

	l := &Logger{
		InterceptLogger: hclog.NewInterceptLogger(&hclog.LoggerOptions{
			Name:       "vidshrink",
			Level:      level,
			Output:     os.Stderr,
			Color:      colorOption(cfg.ColorMode),
			TimeFormat: timeFormat,
		}),
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		l.sink = hclog.NewSinkAdapter(&hclog.LoggerOptions{
			Name:       "vidshrink",
			Level:      level,
			Output:     f,
			Color:      hclog.ColorOff,
			TimeFormat: timeFormat,
		})
		l.RegisterSink(l.sink)
	}
	return l, nil
}

// Close detaches and closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	l.DeregisterSink(l.sink)
	err := l.file.Close()
	l.file = nil
	l.sink = nil
	return err
}

// colorOption maps the CLI color mode to hclog's. Auto mode leaves TTY
// detection to hclog but still honors NO_COLOR and TERM=dumb.
func colorOption(mode config.ColorMode) hclog.ColorOption {
	switch mode {
	case config.ColorAlways:
		return hclog.ForceColor
	case config.ColorNever:
		return hclog.ColorOff
	}
	if os.Getenv("NO_COLOR") != "" || strings.ToLower(os.Getenv("TERM")) == "dumb" {
		return hclog.ColorOff
	}
	return hclog.AutoColor
}
