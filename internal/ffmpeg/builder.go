package ffmpeg

import (
	"strconv"

	"github.com/backmassage/vidshrink/internal/planner"
)

// Build constructs the ffmpeg argument slice for an encode request. The
// binary itself is not included.
//
//	-hide_banner -nostdin -y -i <in> -b:v <N>k -c:v libx264 -preset medium
//	-c:a aac -b:a 128k <out>
//
// -y overwrites an existing output unconditionally; -nostdin keeps ffmpeg
// off the terminal the prompt loop reads from.
func Build(req planner.EncodeRequest) []string {
	args := make([]string, 0, 18)

	// --- Preamble ---
	args = append(args, "-hide_banner", "-nostdin", "-y")

	// --- Input ---
	args = append(args, "-i", req.InputPath)

	// --- Video ---
	args = append(args,
		"-b:v", strconv.Itoa(req.VideoKbps)+"k",
		"-c:v", req.VideoCodec,
		"-preset", req.Preset,
	)

	// --- Audio ---
	args = append(args,
		"-c:a", req.AudioCodec,
		"-b:a", req.AudioBitrate,
	)

	// --- Output ---
	args = append(args, req.OutputPath)

	return args
}
