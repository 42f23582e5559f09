// Package ffprobe provides a typed wrapper around ffprobe JSON output and a
// Prober implementation built on it.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video stream properties
//   - Prober: turns a probed file into a media.Source descriptor
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns a parsed Result
package ffprobe
