// Command vidshrink re-encodes a video so it lands near a chosen file size.
//
// It parses flags, resolves the ffmpeg/ffprobe binaries, and either runs
// system diagnostics (--check), a single compression from positional
// arguments, or the interactive prompt loop.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/vidshrink/internal/check"
	"github.com/backmassage/vidshrink/internal/compress"
	"github.com/backmassage/vidshrink/internal/config"
	"github.com/backmassage/vidshrink/internal/display"
	"github.com/backmassage/vidshrink/internal/ffmpeg"
	"github.com/backmassage/vidshrink/internal/logging"
	"github.com/backmassage/vidshrink/internal/probe"
	"github.com/backmassage/vidshrink/internal/prompt"
	"github.com/backmassage/vidshrink/internal/session"
	"github.com/backmassage/vidshrink/internal/term"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// exitInterrupted is the conventional status for a SIGINT-terminated run.
const exitInterrupted = 130

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		fmt.Fprintf(os.Stderr, "vidshrink: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "vidshrink: %v\n", err)
		return 1
	}
	cfg.ResolveBinaries()
	term.Configure(cfg.ColorMode)

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vidshrink: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available. All diagnostics go through log from here on.
	display.PrintBanner(os.Stdout)
	log.Debug("starting", "version", version, "commit", commit,
		"ffmpeg", cfg.FFmpegPath, "ffprobe", cfg.FFprobePath)

	var tee io.Writer
	if cfg.Verbose {
		tee = os.Stderr
	}
	runner := ffmpeg.ExecRunner{Tee: tee}

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, ffmpeg.ExecRunner{}, log.Named("check")) {
			return 1
		}
		return 0
	}

	// Fail fast if ffmpeg/ffprobe are missing.
	if err := check.CheckDeps(&cfg); err != nil {
		log.Error(err.Error())
		return 1
	}

	// Phase 3: Signal handling. The first SIGINT/SIGTERM cancels ctx: a
	// pending prompt returns at once and a running ffmpeg (which receives
	// the signal too) ends the attempt. A second signal kills the process.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("received interrupt, stopping")
		cancel()
		signal.Stop(sigCh)
	}()

	// Phase 4: Wire the collaborators and run.
	compressor := compress.New(
		ffmpeg.NewEngine(cfg.FFmpegPath, runner),
		probe.NewProber(cfg.FFprobePath, runner),
		log.Named("compress"),
		cfg.KeepPartial,
	)
	sess := session.New(compressor, prompt.New(os.Stdin, os.Stdout), log.Named("session"), os.Stdout)

	if !cfg.Interactive() {
		err := sess.Once(ctx, cfg.InputPath, cfg.TargetSize)
		if ctx.Err() != nil {
			return exitInterrupted
		}
		if err != nil {
			// Compression failures were already reported by the session.
			var ce *compress.Error
			if !errors.As(err, &ce) {
				log.Error(err.Error())
			}
			return 1
		}
		return 0
	}

	stats := sess.Run(ctx)
	if ctx.Err() != nil {
		return exitInterrupted
	}
	if stats.Failed > 0 && stats.Succeeded == 0 {
		return 1
	}
	return 0
}
