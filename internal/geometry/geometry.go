// Package geometry holds the pure coordinate math shared by the timeline,
// interaction, and playback packages.
//
// Two mappings live here: timeline seconds to canvas pixels (a function of
// zoom and horizontal scroll), and the global playhead position to the local
// source time of a placed clip (a function of its placement and trim bounds).
// Nothing in this package carries state; callers supply the view parameters
// on every call so a renderer and the engine can never disagree about layout.
package geometry

import (
	"errors"
	"math"
)

// ErrInvalidZoom reports a zoom factor that cannot produce a usable mapping.
var ErrInvalidZoom = errors.New("zoom must be a positive finite number")

// TrackLabelWidth is the horizontal pixel offset consumed by track labels at
// the left edge of the canvas. Time zero maps to this x coordinate when the
// view is not scrolled.
const TrackLabelWidth = 80.0

// DefaultGridInterval is the snap grid applied to pointer-derived times
// before they reach a timeline operation.
const DefaultGridInterval = 0.5

// ValidateZoom rejects non-finite and non-positive zoom factors.
func ValidateZoom(zoom float64) error {
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) || zoom <= 0 {
		return ErrInvalidZoom
	}
	return nil
}

// TimeToPixel converts a timeline position in seconds to a canvas x
// coordinate for the given zoom (pixels per second) and scroll offset.
func TimeToPixel(t, zoom, scrollOffset float64) (float64, error) {
	if err := ValidateZoom(zoom); err != nil {
		return 0, err
	}
	return t*zoom - scrollOffset + TrackLabelWidth, nil
}

// PixelToTime converts a canvas x coordinate back to timeline seconds.
// The result is clamped at zero; positions left of the track labels map to
// the start of the timeline.
func PixelToTime(x, zoom, scrollOffset float64) (float64, error) {
	if err := ValidateZoom(zoom); err != nil {
		return 0, err
	}
	return math.Max(0, (x-TrackLabelWidth+scrollOffset)/zoom), nil
}

// SnapToGrid rounds t to the nearest multiple of gridInterval. A zero or
// negative interval disables snapping and returns t unchanged.
func SnapToGrid(t, gridInterval float64) float64 {
	if gridInterval <= 0 {
		return t
	}
	return math.Round(t/gridInterval) * gridInterval
}

// Placement is the subset of a clip the playhead mapping needs: where the
// clip sits on the timeline and which window of its source it exposes.
type Placement struct {
	TimelineStart float64
	TimelineEnd   float64
	TrimStart     float64
	TrimEnd       float64
}

// SourceTimeForPlayhead maps the global playhead to the clip's local source
// time. Positions before the clip pin to TrimStart, positions at or past its
// end pin to TrimEnd, and the result is always inside the trim window.
func SourceTimeForPlayhead(p Placement, playhead float64) float64 {
	switch {
	case playhead < p.TimelineStart:
		return p.TrimStart
	case playhead >= p.TimelineEnd:
		return p.TrimEnd
	default:
		return clamp(p.TrimStart+(playhead-p.TimelineStart), p.TrimStart, p.TrimEnd)
	}
}

// PlayheadForSourceTime maps a local source time back to the global playhead
// position, the inverse of SourceTimeForPlayhead inside the clip's span.
func PlayheadForSourceTime(p Placement, sourceTime float64) float64 {
	return p.TimelineStart + (sourceTime - p.TrimStart)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
