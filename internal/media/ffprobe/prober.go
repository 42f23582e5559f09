package ffprobe

import (
	"context"
	"fmt"
	"strings"

	"clipforge/internal/media"
)

// Prober probes files with ffprobe and builds source descriptors.
type Prober struct {
	binary string
}

// NewProber returns a Prober using the given ffprobe binary. An empty
// binary falls back to "ffprobe" on PATH.
func NewProber(binary string) *Prober {
	if strings.TrimSpace(binary) == "" {
		binary = "ffprobe"
	}
	return &Prober{binary: binary}
}

// Probe inspects the file and returns a source descriptor with a fresh id.
func (p *Prober) Probe(ctx context.Context, path string) (media.Source, error) {
	result, err := Inspect(ctx, p.binary, path)
	if err != nil {
		return media.Source{}, err
	}

	src := media.Source{
		ID:              media.NewID(),
		Path:            path,
		DurationSeconds: result.DurationSeconds(),
		BitRate:         result.BitRate(),
	}
	if video, ok := result.FirstVideoStream(); ok {
		src.Width = video.Width
		src.Height = video.Height
		src.Codec = video.CodecName
		src.FPSRate = video.FPS()
	}

	if err := src.Validate(); err != nil {
		return media.Source{}, fmt.Errorf("probe %s: %w", path, err)
	}
	return src, nil
}

var _ media.Prober = (*Prober)(nil)
