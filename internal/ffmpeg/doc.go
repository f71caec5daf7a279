// Package ffmpeg builds encoder argument lists and runs external media
// binaries (ffmpeg and ffprobe) through a scoped subprocess wrapper.
//
//   - builder.go: EncodeRequest → argument slice.
//   - executor.go: Runner interface and the os/exec implementation.
//   - engine.go: the encoder binary (availability check + Encode).
//   - errors.go: stderr hints and tail extraction for reporting.
package ffmpeg
