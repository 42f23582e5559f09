package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"clipforge/internal/timeline"
)

// ErrRenderFailed reports that the external ffmpeg process exited with an
// error. The wrapped error carries the exit status and a stderr tail.
var ErrRenderFailed = errors.New("render failed")

// Renderer produces derived media from timeline clips. Implementations must
// be safe for concurrent use.
type Renderer interface {
	// RenderTrim extracts [start, end) seconds of input into output.
	RenderTrim(ctx context.Context, input, output string, start, end float64, opts TrimOptions, progress ProgressFunc) error
	// Concat joins the inputs in order into a single output file.
	Concat(ctx context.Context, inputs []string, output string, progress ProgressFunc) error
	// Thumbnail grabs a poster frame at the given source time.
	Thumbnail(ctx context.Context, input, output string, at float64) error
}

// FFmpeg runs the ffmpeg binary. The zero value is not usable; construct
// with NewFFmpeg.
type FFmpeg struct {
	binary string
	logger *slog.Logger
}

// NewFFmpeg returns a renderer shelling out to the named binary. An empty
// binary falls back to "ffmpeg" on PATH.
func NewFFmpeg(binary string, logger *slog.Logger) *FFmpeg {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FFmpeg{binary: binary, logger: logger.With("component", "render")}
}

// Available reports whether the configured binary can be resolved.
func (f *FFmpeg) Available() error {
	if _, err := exec.LookPath(f.binary); err != nil {
		return fmt.Errorf("%w: %s not found", ErrRenderFailed, f.binary)
	}
	return nil
}

func (f *FFmpeg) RenderTrim(ctx context.Context, input, output string, start, end float64, opts TrimOptions, progress ProgressFunc) error {
	if start < 0 || end <= start {
		return fmt.Errorf("%w: invalid trim range [%g, %g)", ErrRenderFailed, start, end)
	}
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("%w: input %s: %v", ErrRenderFailed, input, err)
	}
	return f.run(ctx, TrimArgs(input, output, start, end, opts), end-start, progress)
}

func (f *FFmpeg) Concat(ctx context.Context, inputs []string, output string, progress ProgressFunc) error {
	if len(inputs) == 0 {
		return fmt.Errorf("%w: no inputs to concatenate", ErrRenderFailed)
	}

	list, err := writeConcatList(filepath.Dir(output), inputs)
	if err != nil {
		return err
	}
	defer os.Remove(list)

	return f.run(ctx, ConcatArgs(list, output), 0, progress)
}

func (f *FFmpeg) Thumbnail(ctx context.Context, input, output string, at float64) error {
	if at < 0 {
		at = 0
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("create thumbnail dir: %w", err)
	}
	return f.run(ctx, ThumbnailArgs(input, output, at), 0, nil)
}

func (f *FFmpeg) run(ctx context.Context, args []string, totalSeconds float64, progress ProgressFunc) error {
	full := append([]string{"-hide_banner", "-nostats", "-progress", "pipe:1"}, args...)
	cmd := exec.CommandContext(ctx, f.binary, full...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: attach progress pipe: %v", ErrRenderFailed, err)
	}

	f.logger.Debug("launching ffmpeg", "args", strings.Join(args, " "))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: start %s: %v", ErrRenderFailed, f.binary, err)
	}

	parseProgress(stdout, totalSeconds, progress)

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%w: %v: %s", ErrRenderFailed, err, stderrTail(stderr.String()))
	}
	return nil
}

// writeConcatList materializes a concat demuxer list next to the output so
// relative entries stay unambiguous. Quotes in paths are escaped per the
// demuxer's single-quote syntax.
func writeConcatList(dir string, inputs []string) (string, error) {
	var b strings.Builder
	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			return "", fmt.Errorf("resolve concat input %s: %w", input, err)
		}
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}

	list, err := os.CreateTemp(dir, "concat-*.txt")
	if err != nil {
		return "", fmt.Errorf("create concat list: %w", err)
	}
	if _, err := list.WriteString(b.String()); err != nil {
		list.Close()
		os.Remove(list.Name())
		return "", fmt.Errorf("write concat list: %w", err)
	}
	if err := list.Close(); err != nil {
		os.Remove(list.Name())
		return "", fmt.Errorf("close concat list: %w", err)
	}
	return list.Name(), nil
}

func stderrTail(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	const keep = 4
	if len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	return strings.Join(lines, " | ")
}

// Segment is one source slice of a flattened track, ready for a
// trim-then-concat export.
type Segment struct {
	Input  string
	Start  float64
	End    float64
	Volume float64
	Muted  bool
}

// TrackSegments converts a track's clips into render segments.
func TrackSegments(repo *timeline.Repository, track int) []Segment {
	clips := repo.OnTrack(track)
	segments := make([]Segment, 0, len(clips))
	for _, clip := range clips {
		segments = append(segments, Segment{
			Input:  clip.SourcePath,
			Start:  clip.TrimStart,
			End:    clip.TrimEnd,
			Volume: clip.Volume,
			Muted:  clip.Muted,
		})
	}
	return segments
}
