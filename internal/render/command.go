package render

import (
	"fmt"
	"strconv"
)

// Thumbnail dimensions, 16:9.
const (
	ThumbnailWidth  = 320
	ThumbnailHeight = 180
)

// TrimOptions carries the per-clip audio settings a trim render honors.
type TrimOptions struct {
	Volume float64
	Muted  bool
}

// TrimArgs assembles the argument list for extracting [start, end) of the
// input into a standalone file. Streams are copied when the audio is
// untouched; an audio filter forces an aac re-encode of the audio track
// while the video stream still copies.
func TrimArgs(input, output string, start, end float64, opts TrimOptions) []string {
	args := []string{
		"-ss", formatFloat(start),
		"-t", formatFloat(end - start),
		"-i", input,
	}

	if filter := audioFilter(opts); filter != "" {
		args = append(args,
			"-af", filter,
			"-c:v", "copy",
			"-c:a", "aac",
		)
	} else {
		args = append(args, "-c", "copy")
	}

	args = append(args, "-avoid_negative_ts", "make_zero", "-y", output)
	return args
}

// ConcatArgs assembles the argument list for joining the files named in a
// concat demuxer list into one output with stream copy.
func ConcatArgs(listPath, output string) []string {
	return []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
		"-y", output,
	}
}

// ThumbnailArgs assembles the argument list for a single-frame poster grab
// at the given source time. The frame is scaled to cover the thumbnail box
// and center-cropped so nothing stretches.
func ThumbnailArgs(input, output string, at float64) []string {
	w, h := ThumbnailWidth, ThumbnailHeight
	filter := fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d:(iw-%d)/2:(ih-%d)/2",
		w, h, w, h, w, h,
	)
	return []string{
		"-ss", formatFloat(at),
		"-i", input,
		"-vf", filter,
		"-frames:v", "1",
		"-y", output,
	}
}

func audioFilter(opts TrimOptions) string {
	if opts.Muted {
		return "volume=0"
	}
	if opts.Volume > 0 && opts.Volume < 1 {
		return "volume=" + formatFloat(opts.Volume)
	}
	return ""
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
