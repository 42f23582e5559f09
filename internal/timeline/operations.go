package timeline

import (
	"fmt"
	"log/slog"
	"math"

	"clipforge/internal/geometry"
	"clipforge/internal/media"
)

// ThumbnailRequester is the fire-and-forget collaborator hook invoked when a
// clip without a thumbnail joins the timeline.
type ThumbnailRequester interface {
	RequestThumbnail(clip Clip)
}

// Options tunes operation behavior. Zero values fall back to engine
// defaults.
type Options struct {
	GridInterval       float64
	MinVisibleDuration float64
}

// Operations is the mutating API over the timeline aggregate. All structural
// edits route through it so the no-overlap and span invariants hold
// centrally. Each operation is atomic: on error the aggregate is unchanged.
type Operations struct {
	repo     *Repository
	logger   *slog.Logger
	thumbs   ThumbnailRequester
	grid     float64
	minSpan  float64
	playhead float64
	selected string
}

// NewOperations wraps a repository with the editing API. The thumbnail
// requester may be nil.
func NewOperations(repo *Repository, logger *slog.Logger, thumbs ThumbnailRequester, opts Options) *Operations {
	if repo == nil {
		repo = NewRepository()
	}
	if logger == nil {
		logger = slog.Default()
	}
	grid := opts.GridInterval
	if grid <= 0 {
		grid = geometry.DefaultGridInterval
	}
	minSpan := opts.MinVisibleDuration
	if minSpan <= 0 {
		minSpan = MinVisibleDuration
	}
	return &Operations{
		repo:    repo,
		logger:  logger.With("component", "timeline"),
		thumbs:  thumbs,
		grid:    grid,
		minSpan: minSpan,
	}
}

// Repo exposes the read side of the aggregate.
func (o *Operations) Repo() *Repository {
	return o.repo
}

// Playhead returns the current playhead position.
func (o *Operations) Playhead() float64 {
	return o.playhead
}

// SetPlayhead moves the playhead, clamped into [0, timeline duration].
func (o *Operations) SetPlayhead(seconds float64) {
	o.playhead = clampFloat(seconds, 0, o.repo.Duration())
}

// SelectedClipID returns the selected clip id, or "" when nothing is
// selected.
func (o *Operations) SelectedClipID() string {
	return o.selected
}

// SelectClip selects a clip by id, or clears the selection when id is
// empty. Selecting an unknown id fails with ErrClipNotFound.
func (o *Operations) SelectClip(id string) error {
	if id == "" {
		o.selected = ""
		return nil
	}
	if !o.repo.Has(id) {
		return fmt.Errorf("%w: %s", ErrClipNotFound, id)
	}
	o.selected = id
	return nil
}

// SelectAll selects the earliest clip on the timeline. The engine holds a
// single-selection model, so "all" degrades to the first clip by timeline
// start, breaking ties on the lower track.
func (o *Operations) SelectAll() {
	var (
		best  Clip
		found bool
	)
	for _, clip := range o.repo.All() {
		if !found || clip.TimelineStart < best.TimelineStart ||
			(clip.TimelineStart == best.TimelineStart && clip.Track < best.Track) {
			best = clip
			found = true
		}
	}
	if found {
		o.selected = best.ID
	}
}

// AddClip places the full span of a source on the requested track at the
// requested start, legalized against the clips already there. A thumbnail
// request fires when the source has none.
func (o *Operations) AddClip(src media.Source, track int, requestedStart float64) (Clip, error) {
	if err := src.Validate(); err != nil {
		return Clip{}, err
	}
	if track < 0 {
		track = 0
	}

	clip := NewClip(src, track, 0)
	start := o.legalize(track, math.Max(0, requestedStart), clip.Duration(), "")
	clip.TimelineStart = start
	clip.TimelineEnd = start + src.DurationSeconds
	if err := o.repo.Insert(clip); err != nil {
		return Clip{}, err
	}

	if src.ThumbnailPath == "" && o.thumbs != nil {
		o.thumbs.RequestThumbnail(clip)
	}
	o.logger.Debug("clip added", "clip", clip.ID, "track", clip.Track, "start", clip.TimelineStart)
	return clip, nil
}

// AppendClip places a source at the end of a track, which is trivially
// collision-free.
func (o *Operations) AppendClip(src media.Source, track int) (Clip, error) {
	end := 0.0
	for _, clip := range o.repo.OnTrack(track) {
		if clip.TimelineEnd > end {
			end = clip.TimelineEnd
		}
	}
	return o.AddClip(src, track, end)
}

// MoveClip snaps the requested start to the grid, legalizes the placement
// against the destination track, and moves the clip. Duration is preserved.
func (o *Operations) MoveClip(id string, track int, requestedStart float64) (Clip, error) {
	clip, err := o.repo.Get(id)
	if err != nil {
		return Clip{}, err
	}
	if track < 0 {
		track = 0
	}

	snapped := math.Max(0, geometry.SnapToGrid(requestedStart, o.grid))
	start := o.legalize(track, snapped, clip.Duration(), id)

	duration := clip.Duration()
	clip.Track = track
	clip.TimelineStart = start
	clip.TimelineEnd = start + duration
	if err := o.repo.Replace(id, clip); err != nil {
		return Clip{}, err
	}
	o.logger.Debug("clip moved", "clip", id, "track", track, "start", start)
	return clip, nil
}

// SetTrimStart adjusts the left trim bound. The requested time is clamped
// into [0, trimEnd - minimum span]; the clip's timeline start stays fixed
// and its end moves to keep the span equal to the trim window. Trimming
// never re-runs collision legalization; overlap during an interactive trim
// is reconciled by the move that follows, if any.
func (o *Operations) SetTrimStart(id string, requestedTime float64) (Clip, error) {
	clip, err := o.repo.Get(id)
	if err != nil {
		return Clip{}, err
	}

	trimStart := clampFloat(requestedTime, 0, clip.TrimEnd-o.minSpan)
	clip.TrimStart = trimStart
	clip.TimelineEnd = clip.TimelineStart + (clip.TrimEnd - trimStart)
	if err := o.repo.Replace(id, clip); err != nil {
		return Clip{}, err
	}
	return clip, nil
}

// SetTrimEnd adjusts the right trim bound, clamped into
// [trimStart + minimum span, source duration]. Symmetric with SetTrimStart.
func (o *Operations) SetTrimEnd(id string, requestedTime float64) (Clip, error) {
	clip, err := o.repo.Get(id)
	if err != nil {
		return Clip{}, err
	}

	maxTrim := clip.SourceDuration
	if maxTrim <= 0 {
		maxTrim = clip.TrimEnd
	}
	trimEnd := clampFloat(requestedTime, clip.TrimStart+o.minSpan, maxTrim)
	clip.TrimEnd = trimEnd
	clip.TimelineEnd = clip.TimelineStart + (trimEnd - clip.TrimStart)
	if err := o.repo.Replace(id, clip); err != nil {
		return Clip{}, err
	}
	return clip, nil
}

// SplitAtPlayhead cuts a clip into two at the current playhead. Both halves
// inherit the source reference, volume, and mute flag; the first half keeps
// the selection if the original held it. Fails with ErrPlayheadOutOfBounds
// unless the playhead lies strictly inside the clip's span.
func (o *Operations) SplitAtPlayhead(id string) (Clip, Clip, error) {
	clip, err := o.repo.Get(id)
	if err != nil {
		return Clip{}, Clip{}, err
	}
	if o.playhead <= clip.TimelineStart || o.playhead >= clip.TimelineEnd {
		return Clip{}, Clip{}, fmt.Errorf("%w: playhead %g outside (%g, %g)",
			ErrPlayheadOutOfBounds, o.playhead, clip.TimelineStart, clip.TimelineEnd)
	}

	splitOffset := o.playhead - clip.TimelineStart

	first := clip
	first.ID = clip.ID + "-a"
	first.TimelineEnd = o.playhead
	first.TrimEnd = math.Min(clip.TrimEnd, clip.TrimStart+splitOffset)

	second := clip
	second.ID = clip.ID + "-b"
	second.TimelineStart = o.playhead
	second.TrimStart = clip.TrimStart + splitOffset

	// Validate both halves before touching the repository so a bad split
	// cannot leave a partial state behind.
	if err := first.Validate(); err != nil {
		return Clip{}, Clip{}, err
	}
	if err := second.Validate(); err != nil {
		return Clip{}, Clip{}, err
	}

	if err := o.repo.Remove(clip.ID); err != nil {
		return Clip{}, Clip{}, err
	}
	if err := o.repo.Insert(first); err != nil {
		_ = o.repo.Insert(clip)
		return Clip{}, Clip{}, err
	}
	if err := o.repo.Insert(second); err != nil {
		_ = o.repo.Remove(first.ID)
		_ = o.repo.Insert(clip)
		return Clip{}, Clip{}, err
	}

	if o.selected == clip.ID {
		o.selected = first.ID
	}
	o.logger.Debug("clip split", "clip", clip.ID, "at", o.playhead)
	return first, second, nil
}

// DeleteClip removes a clip, clearing the selection if it held it and
// re-clamping the playhead to the possibly shorter timeline.
func (o *Operations) DeleteClip(id string) error {
	if err := o.repo.Remove(id); err != nil {
		return err
	}
	if o.selected == id {
		o.selected = ""
	}
	o.playhead = clampFloat(o.playhead, 0, o.repo.Duration())
	o.logger.Debug("clip deleted", "clip", id)
	return nil
}

// ReplaceSource swaps a clip's source for a newly rendered artifact, the
// destructive counterpart of interactive trimming. The trim window resets to
// the full artifact and the clip's timeline span moves to match. A span that
// grew past the old one is re-placed through the collision resolver, so a
// longer artifact never overlaps a neighbour.
func (o *Operations) ReplaceSource(id string, rendered media.Source) (Clip, error) {
	if err := rendered.Validate(); err != nil {
		return Clip{}, err
	}
	clip, err := o.repo.Get(id)
	if err != nil {
		return Clip{}, err
	}

	start := clip.TimelineStart
	if rendered.DurationSeconds > clip.Duration() {
		start = o.legalize(clip.Track, start, rendered.DurationSeconds, id)
	}

	clip.SourceID = rendered.ID
	clip.SourcePath = rendered.Path
	clip.SourceDuration = rendered.DurationSeconds
	clip.TrimStart = 0
	clip.TrimEnd = rendered.DurationSeconds
	clip.TimelineStart = start
	clip.TimelineEnd = start + rendered.DurationSeconds
	if err := o.repo.Replace(id, clip); err != nil {
		return Clip{}, err
	}
	return clip, nil
}

// legalize runs the collision resolver to a fixpoint. One pass suffices on a
// well-formed track; the loop guards against pathological gaps.
func (o *Operations) legalize(track int, start, duration float64, excludeID string) float64 {
	for i := 0; i < 8; i++ {
		next := o.repo.ResolvePlacement(track, start, duration, excludeID)
		if next == start {
			return start
		}
		start = next
	}
	return start
}

func clampFloat(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
