// Package check provides system diagnostics (--check mode) and the startup
// dependency validation (CheckDeps) for ffmpeg, ffprobe and the encoders
// vidshrink needs.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/shirou/gopsutil/v4/disk"

	"github.com/backmassage/vidshrink/internal/config"
	"github.com/backmassage/vidshrink/internal/ffmpeg"
	"github.com/backmassage/vidshrink/internal/planner"
	"github.com/backmassage/vidshrink/internal/size"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found (use --ffmpeg or FFMPEG_PATH)")
	ErrFfprobeNotFound = errors.New("ffprobe not found (use --ffprobe or FFPROBE_PATH)")
)

// requiredEncoders must appear in `ffmpeg -encoders` for an encode to work.
var requiredEncoders = []string{planner.VideoCodec, planner.AudioCodec}

// CheckDeps verifies that the resolved ffmpeg and ffprobe paths name
// executables. It does not run them.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFfmpegNotFound, cfg.FFmpegPath)
	}
	if _, err := exec.LookPath(cfg.FFprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFfprobeNotFound, cfg.FFprobePath)
	}
	return nil
}

// RunCheck runs the --check flow: version lines for ffmpeg and ffprobe,
// presence of the required encoders, and free space in the working
// directory. It returns false when anything required is missing; low disk
// space is only reported.
func RunCheck(cfg *config.Config, runner ffmpeg.Runner, log hclog.Logger) bool {
	ctx := context.Background()
	log.Info("=== System Check ===")

	ok := checkVersion(ctx, runner, log, "ffmpeg", cfg.FFmpegPath)
	ok = checkVersion(ctx, runner, log, "ffprobe", cfg.FFprobePath) && ok
	if ok {
		ok = checkEncoders(ctx, runner, log, cfg.FFmpegPath)
	}
	checkDisk(log)
	return ok
}

// checkVersion runs `<bin> -version` and logs its first line.
func checkVersion(ctx context.Context, runner ffmpeg.Runner, log hclog.Logger, name, bin string) bool {
	res := runner.Run(ctx, bin, []string{"-version"})
	if !res.Success() {
		log.Error(name+" not usable", "path", bin, "error", res.Err, "exit", res.ExitCode)
		return false
	}
	first := strings.TrimSpace(res.Stdout)
	if idx := strings.Index(first, "\n"); idx > 0 {
		first = first[:idx]
	}
	log.Info(name+": "+strings.TrimSpace(first), "path", bin)
	return true
}

// checkEncoders lists ffmpeg's encoders and confirms the required ones.
func checkEncoders(ctx context.Context, runner ffmpeg.Runner, log hclog.Logger, bin string) bool {
	res := runner.Run(ctx, bin, []string{"-hide_banner", "-encoders"})
	if !res.Success() {
		log.Warn("could not list encoders", "error", res.Err, "exit", res.ExitCode)
		return false
	}
	have := encoderNames(res.Stdout)
	ok := true
	for _, enc := range requiredEncoders {
		if have[enc] {
			log.Info("encoder " + enc + ": available")
		} else {
			log.Error("encoder " + enc + ": missing")
			ok = false
		}
	}
	return ok
}

// encoderNames extracts encoder names from `ffmpeg -encoders` output. Each
// listing line is "<flags> <name> <description>"; the header ends at the
// "------" separator.
func encoderNames(out string) map[string]bool {
	names := make(map[string]bool)
	listing := false
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			if len(fields) == 1 && strings.HasPrefix(fields[0], "---") {
				listing = true
			}
			continue
		}
		if !listing {
			continue
		}
		names[fields[1]] = true
	}
	return names
}

func checkDisk(log hclog.Logger) {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	u, err := disk.Usage(dir)
	if err != nil {
		log.Warn("free space unknown", "dir", dir, "error", err)
		return
	}
	log.Info("free space: "+size.FormatInt(int64(u.Free)), "dir", dir, "used", fmt.Sprintf("%.1f%%", u.UsedPercent))
}
