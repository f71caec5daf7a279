// Package compress runs one target-size compression: check the encoder,
// read the duration, derive the bitrate, encode, and report.
//
//   - compressor.go: Compressor and the fail-fast Compress sequence.
//   - errors.go: failure kinds and the typed *Error.
package compress
