package timeline

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"clipforge/internal/geometry"
	"clipforge/internal/media"
)

// spanEpsilon absorbs float drift when comparing the timeline span against
// the trim window.
const spanEpsilon = 1e-6

// MinVisibleDuration is the shortest span a trim may leave behind, in
// seconds. Clamping against it prevents zero and negative length clips.
const MinVisibleDuration = 0.5

// Clip is a placed, trimmed reference to a media source occupying a
// contiguous span on one timeline track.
type Clip struct {
	ID             string
	SourceID       string
	SourcePath     string
	Name           string
	Track          int
	TimelineStart  float64
	TimelineEnd    float64
	TrimStart      float64
	TrimEnd        float64
	SourceDuration float64
	Volume         float64
	Muted          bool
}

// NewClip places the full span of a source at the given track and start.
// The caller legalizes the start position before inserting.
func NewClip(src media.Source, track int, start float64) Clip {
	return Clip{
		ID:             uuid.NewString(),
		SourceID:       src.ID,
		SourcePath:     src.Path,
		Name:           media.DisplayName(src.Path),
		Track:          track,
		TimelineStart:  start,
		TimelineEnd:    start + src.DurationSeconds,
		TrimStart:      0,
		TrimEnd:        src.DurationSeconds,
		SourceDuration: src.DurationSeconds,
		Volume:         1,
		Muted:          false,
	}
}

// Duration returns the clip's visible timeline span in seconds.
func (c Clip) Duration() float64 {
	return c.TimelineEnd - c.TimelineStart
}

// Placement adapts the clip for the geometry package's playhead mapping.
func (c Clip) Placement() geometry.Placement {
	return geometry.Placement{
		TimelineStart: c.TimelineStart,
		TimelineEnd:   c.TimelineEnd,
		TrimStart:     c.TrimStart,
		TrimEnd:       c.TrimEnd,
	}
}

// Contains reports whether the playhead position falls inside the clip's
// half-open timeline span.
func (c Clip) Contains(playhead float64) bool {
	return playhead >= c.TimelineStart && playhead < c.TimelineEnd
}

// Validate checks every structural invariant the repository enforces.
func (c Clip) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidClip)
	}
	// Every comparison below is false for NaN, so non-finite fields must be
	// rejected up front or they would slide through unchecked.
	for _, v := range [...]float64{c.TimelineStart, c.TimelineEnd, c.TrimStart, c.TrimEnd, c.SourceDuration, c.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite numeric field", ErrInvalidClip)
		}
	}
	if c.Track < 0 {
		return fmt.Errorf("%w: negative track %d", ErrInvalidClip, c.Track)
	}
	if c.TimelineEnd <= c.TimelineStart {
		return fmt.Errorf("%w: timeline span [%g, %g] is not positive", ErrInvalidClip, c.TimelineStart, c.TimelineEnd)
	}
	if c.TimelineStart < 0 {
		return fmt.Errorf("%w: timeline start %g is negative", ErrInvalidClip, c.TimelineStart)
	}
	if c.TrimStart < 0 || c.TrimEnd <= c.TrimStart {
		return fmt.Errorf("%w: trim bounds [%g, %g] are disordered", ErrInvalidClip, c.TrimStart, c.TrimEnd)
	}
	if c.SourceDuration > 0 && c.TrimEnd > c.SourceDuration+spanEpsilon {
		return fmt.Errorf("%w: trim end %g exceeds source duration %g", ErrInvalidClip, c.TrimEnd, c.SourceDuration)
	}
	if math.Abs(c.Duration()-(c.TrimEnd-c.TrimStart)) > spanEpsilon {
		return fmt.Errorf("%w: timeline span %g does not match trim window %g", ErrInvalidClip, c.Duration(), c.TrimEnd-c.TrimStart)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("%w: volume %g outside [0, 1]", ErrInvalidClip, c.Volume)
	}
	return nil
}
