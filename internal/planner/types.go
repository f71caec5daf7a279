package planner

import "github.com/backmassage/vidshrink/internal/naming"

// Fixed encode settings. Alternate codecs are out of scope, so these are
// not configurable.
const (
	VideoCodec   = "libx264" // H.264
	Preset       = "medium"
	AudioCodec   = "aac"
	AudioBitrate = "128k"
)

// EncodeRequest holds everything the ffmpeg package needs to build one
// encode command. It is built fresh for each compression attempt.
type EncodeRequest struct {
	InputPath  string
	OutputPath string

	VideoKbps  int
	VideoCodec string
	Preset     string

	AudioCodec   string
	AudioBitrate string
}

// BuildRequest produces the EncodeRequest for compressing input at
// videoKbps. The output lands next to the input (see naming.CompressedPath).
func BuildRequest(input string, videoKbps int) EncodeRequest {
	return EncodeRequest{
		InputPath:    input,
		OutputPath:   naming.CompressedPath(input),
		VideoKbps:    videoKbps,
		VideoCodec:   VideoCodec,
		Preset:       Preset,
		AudioCodec:   AudioCodec,
		AudioBitrate: AudioBitrate,
	}
}
