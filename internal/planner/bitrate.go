package planner

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidDuration is returned when the media duration cannot be
	// divided by (zero, negative, NaN or infinite).
	ErrInvalidDuration = errors.New("media duration must be a positive number of seconds")

	// ErrInvalidTarget is returned for a negative or non-finite target size.
	ErrInvalidTarget = errors.New("target size must be a non-negative number of bytes")
)

// Advisory thresholds in kbps. Outside this range the encode still runs;
// the caller only warns.
const (
	LowBitrateKbps  = 50
	HighBitrateKbps = 50000
)

// ComputeKbps derives the video bitrate that makes a stream of
// durationSeconds occupy targetBytes: floor(bytes*8 / seconds / 1000).
func ComputeKbps(targetBytes, durationSeconds float64) (int, error) {
	if math.IsNaN(durationSeconds) || math.IsInf(durationSeconds, 0) || durationSeconds <= 0 {
		return 0, fmt.Errorf("%w (got %v)", ErrInvalidDuration, durationSeconds)
	}
	if math.IsNaN(targetBytes) || math.IsInf(targetBytes, 0) || targetBytes < 0 {
		return 0, fmt.Errorf("%w (got %v)", ErrInvalidTarget, targetBytes)
	}
	return int(math.Floor(targetBytes * 8 / durationSeconds / 1000)), nil
}

// AdvisoryKind classifies a bitrate advisory.
type AdvisoryKind int

const (
	AdvisoryLowQuality AdvisoryKind = iota + 1 // Below LowBitrateKbps.
	AdvisoryMayGrow                            // Above HighBitrateKbps.
)

// Advisory is a non-blocking warning about a computed bitrate.
type Advisory struct {
	Kind    AdvisoryKind
	Kbps    int
	Message string
}

// Advise returns the advisories that apply to kbps (none for the usual
// range). Advisories never stop an encode.
func Advise(kbps int) []Advisory {
	switch {
	case kbps < LowBitrateKbps:
		return []Advisory{{
			Kind:    AdvisoryLowQuality,
			Kbps:    kbps,
			Message: fmt.Sprintf("bitrate %d kbps is below %d kbps: quality likely unusable", kbps, LowBitrateKbps),
		}}
	case kbps > HighBitrateKbps:
		return []Advisory{{
			Kind:    AdvisoryMayGrow,
			Kbps:    kbps,
			Message: fmt.Sprintf("bitrate %d kbps is above %d kbps: output may grow rather than shrink", kbps, HighBitrateKbps),
		}}
	}
	return nil
}
