// Package planner turns a target size and a probed duration into an encode
// plan: the video bitrate, the advisories about it, and the EncodeRequest
// consumed by the ffmpeg package.
package planner
