// Package probe inspects media files with ffprobe. One JSON call per file
// yields the container duration plus the primary video and audio streams
// used for the pre-encode stats line.
package probe
