// Package interaction turns continuous pointer input into discrete timeline
// edits.
//
// The Machine tracks one in-progress gesture as a tagged DragTarget and
// dispatches on it exhaustively. Mid-gesture updates are non-destructive
// previews; the single collision-legalized commit happens at release, so the
// resolver runs once per gesture instead of once per frame. Releases under
// the click threshold are classified as clicks and drive selection instead.
package interaction

import (
	"log/slog"
	"math"

	"clipforge/internal/geometry"
	"clipforge/internal/timeline"
)

// Target identifies what a gesture is dragging.
type Target int

const (
	TargetIdle Target = iota
	TargetMovingClip
	TargetTrimmingStart
	TargetTrimmingEnd
	TargetMovingPlayhead
)

func (t Target) String() string {
	switch t {
	case TargetIdle:
		return "idle"
	case TargetMovingClip:
		return "moving-clip"
	case TargetTrimmingStart:
		return "trimming-start"
	case TargetTrimmingEnd:
		return "trimming-end"
	case TargetMovingPlayhead:
		return "moving-playhead"
	default:
		return "unknown"
	}
}

// Cursor returns the cursor hint a renderer should show for the target.
func (t Target) Cursor() string {
	switch t {
	case TargetTrimmingStart, TargetTrimmingEnd:
		return "ew-resize"
	case TargetMovingClip:
		return "grabbing"
	case TargetMovingPlayhead:
		return "col-resize"
	default:
		return "default"
	}
}

// DragTarget is the current gesture state. ClipID and GrabOffset are only
// meaningful for the clip-bound targets.
type DragTarget struct {
	Target     Target
	ClipID     string
	GrabOffset float64
}

// View carries the render parameters hit testing depends on.
type View struct {
	Zoom         float64
	ScrollOffset float64
}

// Layout fixes the canvas metrics used for hit testing, in pixels.
type Layout struct {
	TrackTop       float64
	TrackHeight    float64
	TrackCount     int
	TrimHandle     float64
	PlayheadZone   float64
	ClickThreshold float64
}

// DefaultLayout mirrors the editor's canvas metrics.
func DefaultLayout() Layout {
	return Layout{
		TrackTop:       24,
		TrackHeight:    60,
		TrackCount:     3,
		TrimHandle:     8,
		PlayheadZone:   24,
		ClickThreshold: 5,
	}
}

// Machine is the pointer interaction state machine. It is the only caller of
// timeline operations during gestures, keeping the one-commit-per-gesture
// ordering guarantee.
type Machine struct {
	ops    *timeline.Operations
	logger *slog.Logger
	layout Layout
	view   View

	state DragTarget

	downX, downY    float64
	maxDisplacement float64

	// Snapshot taken at pointer-down so a cancelled or click-classified
	// gesture can revert its preview.
	origClip     timeline.Clip
	origPlayhead float64
	haveOrig     bool

	// An empty-canvas press becomes a playhead drag, but a release under the
	// click threshold must still read as "clicked empty canvas" and clear
	// the selection.
	fromEmptyCanvas bool

	candidateTrack int
	candidateStart float64
}

// NewMachine builds an interaction machine over the timeline operations.
func NewMachine(ops *timeline.Operations, logger *slog.Logger, layout Layout) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	if layout.ClickThreshold <= 0 {
		layout.ClickThreshold = DefaultLayout().ClickThreshold
	}
	if layout.TrackHeight <= 0 {
		layout.TrackHeight = DefaultLayout().TrackHeight
	}
	if layout.TrimHandle <= 0 {
		layout.TrimHandle = DefaultLayout().TrimHandle
	}
	if layout.PlayheadZone <= 0 {
		layout.PlayheadZone = DefaultLayout().PlayheadZone
	}
	return &Machine{
		ops:    ops,
		logger: logger.With("component", "interaction"),
		layout: layout,
		view:   View{Zoom: 50},
	}
}

// SetView updates the zoom and scroll used for pixel conversions. Invalid
// zoom values are ignored and the previous view is kept.
func (m *Machine) SetView(view View) {
	if geometry.ValidateZoom(view.Zoom) != nil {
		return
	}
	m.view = view
}

// State exposes the current gesture for cursor hints and rendering.
func (m *Machine) State() DragTarget {
	return m.state
}

// PointerDown starts a gesture. Hit testing runs in priority order: trim
// handles, then the playhead handle, then clip bodies, then empty canvas
// (which relocates the playhead directly).
func (m *Machine) PointerDown(x, y float64) {
	m.downX, m.downY = x, y
	m.maxDisplacement = 0
	m.haveOrig = false
	m.fromEmptyCanvas = false

	if clip, edge, ok := m.hitTrimHandle(x, y); ok {
		m.origClip = clip
		m.haveOrig = true
		m.state = DragTarget{Target: edge, ClipID: clip.ID}
		return
	}

	if m.hitPlayheadHandle(x, y) {
		m.origPlayhead = m.ops.Playhead()
		m.haveOrig = true
		m.state = DragTarget{Target: TargetMovingPlayhead}
		return
	}

	if clip, ok := m.hitClipBody(x, y); ok {
		pointerTime, err := geometry.PixelToTime(x, m.view.Zoom, m.view.ScrollOffset)
		if err != nil {
			return
		}
		m.origClip = clip
		m.haveOrig = true
		m.candidateTrack = clip.Track
		m.candidateStart = clip.TimelineStart
		m.state = DragTarget{
			Target:     TargetMovingClip,
			ClipID:     clip.ID,
			GrabOffset: pointerTime - clip.TimelineStart,
		}
		return
	}

	// Empty canvas: relocate the playhead immediately and keep dragging it.
	m.origPlayhead = m.ops.Playhead()
	m.haveOrig = true
	m.fromEmptyCanvas = true
	m.state = DragTarget{Target: TargetMovingPlayhead}
	m.applyPlayhead(x)
}

// PointerMove applies the non-destructive preview for the active gesture.
func (m *Machine) PointerMove(x, y float64) {
	m.trackDisplacement(x, y)

	switch m.state.Target {
	case TargetIdle:
		return
	case TargetMovingPlayhead:
		m.applyPlayhead(x)
	case TargetTrimmingStart:
		// Pointer time maps to a source time through the pointer-down
		// snapshot; recomputing against the live clip would compound the
		// offset on every frame.
		if t, ok := m.pointerTime(x); ok {
			_, _ = m.ops.SetTrimStart(m.state.ClipID, m.origClip.TrimStart+(t-m.origClip.TimelineStart))
		}
	case TargetTrimmingEnd:
		if t, ok := m.pointerTime(x); ok {
			_, _ = m.ops.SetTrimEnd(m.state.ClipID, m.origClip.TrimStart+(t-m.origClip.TimelineStart))
		}
	case TargetMovingClip:
		m.previewMove(x, y)
	}
}

// PointerUp finishes the gesture, classifying it as a click when total
// displacement stayed under the threshold. A dragged clip commits exactly
// one legalized move here.
func (m *Machine) PointerUp(x, y float64) {
	m.trackDisplacement(x, y)
	state := m.state
	m.state = DragTarget{Target: TargetIdle}

	isClick := m.maxDisplacement < m.layout.ClickThreshold

	switch state.Target {
	case TargetIdle:
		return
	case TargetMovingPlayhead:
		// The preview already moved the playhead; a click here is just a
		// shorter drag, except a click that started on empty canvas also
		// clears the selection.
		if isClick && m.fromEmptyCanvas {
			_ = m.ops.SelectClip("")
		}
		return
	case TargetTrimmingStart, TargetTrimmingEnd:
		if isClick && m.haveOrig {
			m.restoreClip()
		}
		return
	case TargetMovingClip:
		if isClick {
			if m.haveOrig {
				m.restoreClip()
			}
			_ = m.ops.SelectClip(state.ClipID)
			return
		}
		if _, err := m.ops.MoveClip(state.ClipID, m.candidateTrack, m.candidateStart); err != nil {
			m.logger.Warn("move commit failed", "clip", state.ClipID, "error", err)
			if m.haveOrig {
				m.restoreClip()
			}
		}
	}
}

// Cancel aborts the active gesture without committing, reverting any
// preview to the pointer-down snapshot.
func (m *Machine) Cancel() {
	state := m.state
	m.state = DragTarget{Target: TargetIdle}
	if !m.haveOrig {
		return
	}
	switch state.Target {
	case TargetMovingPlayhead:
		m.ops.SetPlayhead(m.origPlayhead)
	case TargetMovingClip, TargetTrimmingStart, TargetTrimmingEnd:
		m.restoreClip()
	}
}

func (m *Machine) trackDisplacement(x, y float64) {
	d := math.Hypot(x-m.downX, y-m.downY)
	if d > m.maxDisplacement {
		m.maxDisplacement = d
	}
}

func (m *Machine) pointerTime(x float64) (float64, bool) {
	t, err := geometry.PixelToTime(x, m.view.Zoom, m.view.ScrollOffset)
	if err != nil {
		return 0, false
	}
	return t, true
}

func (m *Machine) applyPlayhead(x float64) {
	if t, ok := m.pointerTime(x); ok {
		m.ops.SetPlayhead(t)
	}
}

// previewMove repositions the clip directly through the repository without
// collision legalization; overlap is visually permitted mid-drag and
// resolved once at release.
func (m *Machine) previewMove(x, y float64) {
	clip, err := m.ops.Repo().Get(m.state.ClipID)
	if err != nil {
		return
	}
	t, ok := m.pointerTime(x)
	if !ok {
		return
	}

	start := math.Max(0, geometry.SnapToGrid(t-m.state.GrabOffset, geometry.DefaultGridInterval))
	track := m.trackAt(y)
	if track < 0 {
		track = clip.Track
	}

	m.candidateTrack = track
	m.candidateStart = start

	duration := clip.Duration()
	clip.Track = track
	clip.TimelineStart = start
	clip.TimelineEnd = start + duration
	_ = m.ops.Repo().Replace(clip.ID, clip)
}

func (m *Machine) restoreClip() {
	_ = m.ops.Repo().Replace(m.origClip.ID, m.origClip)
}

func (m *Machine) trackAt(y float64) int {
	if y < m.layout.TrackTop {
		return -1
	}
	track := int((y - m.layout.TrackTop) / m.layout.TrackHeight)
	if m.layout.TrackCount > 0 && track >= m.layout.TrackCount {
		return m.layout.TrackCount - 1
	}
	return track
}

func (m *Machine) hitTrimHandle(x, y float64) (timeline.Clip, Target, bool) {
	track := m.trackAt(y)
	if track < 0 {
		return timeline.Clip{}, TargetIdle, false
	}
	for _, clip := range m.ops.Repo().OnTrack(track) {
		startX, err := geometry.TimeToPixel(clip.TimelineStart, m.view.Zoom, m.view.ScrollOffset)
		if err != nil {
			return timeline.Clip{}, TargetIdle, false
		}
		endX, err := geometry.TimeToPixel(clip.TimelineEnd, m.view.Zoom, m.view.ScrollOffset)
		if err != nil {
			return timeline.Clip{}, TargetIdle, false
		}
		if math.Abs(x-startX) <= m.layout.TrimHandle {
			return clip, TargetTrimmingStart, true
		}
		if math.Abs(x-endX) <= m.layout.TrimHandle {
			return clip, TargetTrimmingEnd, true
		}
	}
	return timeline.Clip{}, TargetIdle, false
}

func (m *Machine) hitPlayheadHandle(x, y float64) bool {
	if y > m.layout.PlayheadZone {
		return false
	}
	px, err := geometry.TimeToPixel(m.ops.Playhead(), m.view.Zoom, m.view.ScrollOffset)
	if err != nil {
		return false
	}
	return math.Abs(x-px) <= m.layout.TrimHandle
}

func (m *Machine) hitClipBody(x, y float64) (timeline.Clip, bool) {
	track := m.trackAt(y)
	if track < 0 {
		return timeline.Clip{}, false
	}
	t, ok := m.pointerTime(x)
	if !ok {
		return timeline.Clip{}, false
	}
	for _, clip := range m.ops.Repo().OnTrack(track) {
		if clip.Contains(t) {
			return clip, true
		}
	}
	return timeline.Clip{}, false
}
