package timeline

import (
	"fmt"
	"sort"
)

// Repository is the authoritative collection of placed clips, keyed by id.
// It validates structural invariants on every write but never repairs data;
// sanitizing malformed input is the snapshot loader's job.
type Repository struct {
	clips map[string]Clip
}

// NewRepository returns an empty clip repository.
func NewRepository() *Repository {
	return &Repository{clips: make(map[string]Clip)}
}

// Get returns the clip for id or ErrClipNotFound.
func (r *Repository) Get(id string) (Clip, error) {
	clip, ok := r.clips[id]
	if !ok {
		return Clip{}, fmt.Errorf("%w: %s", ErrClipNotFound, id)
	}
	return clip, nil
}

// Has reports whether a clip with the given id exists.
func (r *Repository) Has(id string) bool {
	_, ok := r.clips[id]
	return ok
}

// Len returns the number of clips held.
func (r *Repository) Len() int {
	return len(r.clips)
}

// All returns every clip ordered by track, then timeline start, then id.
func (r *Repository) All() []Clip {
	clips := make([]Clip, 0, len(r.clips))
	for _, clip := range r.clips {
		clips = append(clips, clip)
	}
	sort.Slice(clips, func(i, j int) bool {
		if clips[i].Track != clips[j].Track {
			return clips[i].Track < clips[j].Track
		}
		if clips[i].TimelineStart != clips[j].TimelineStart {
			return clips[i].TimelineStart < clips[j].TimelineStart
		}
		return clips[i].ID < clips[j].ID
	})
	return clips
}

// OnTrack returns the clips on a track ordered by timeline start.
func (r *Repository) OnTrack(track int) []Clip {
	var clips []Clip
	for _, clip := range r.clips {
		if clip.Track == track {
			clips = append(clips, clip)
		}
	}
	sort.Slice(clips, func(i, j int) bool {
		return clips[i].TimelineStart < clips[j].TimelineStart
	})
	return clips
}

// Insert adds a new clip after validating it. Inserting an id that already
// exists is rejected as invalid.
func (r *Repository) Insert(clip Clip) error {
	if err := clip.Validate(); err != nil {
		return err
	}
	if _, exists := r.clips[clip.ID]; exists {
		return fmt.Errorf("%w: duplicate id %s", ErrInvalidClip, clip.ID)
	}
	r.clips[clip.ID] = clip
	return nil
}

// Replace swaps the stored clip for id with the validated replacement. The
// replacement keeps the original id regardless of what it carries.
func (r *Repository) Replace(id string, clip Clip) error {
	if _, ok := r.clips[id]; !ok {
		return fmt.Errorf("%w: %s", ErrClipNotFound, id)
	}
	clip.ID = id
	if err := clip.Validate(); err != nil {
		return err
	}
	r.clips[id] = clip
	return nil
}

// Remove deletes the clip for id or returns ErrClipNotFound.
func (r *Repository) Remove(id string) error {
	if _, ok := r.clips[id]; !ok {
		return fmt.Errorf("%w: %s", ErrClipNotFound, id)
	}
	delete(r.clips, id)
	return nil
}

// Duration returns the timeline length: the largest clip end, or zero for an
// empty timeline.
func (r *Repository) Duration() float64 {
	var max float64
	for _, clip := range r.clips {
		if clip.TimelineEnd > max {
			max = clip.TimelineEnd
		}
	}
	return max
}

// ClipAt returns the clip under the playhead on the lowest track, if any.
func (r *Repository) ClipAt(playhead float64) (Clip, bool) {
	var (
		best  Clip
		found bool
	)
	for _, clip := range r.clips {
		if !clip.Contains(playhead) {
			continue
		}
		if !found || clip.Track < best.Track {
			best = clip
			found = true
		}
	}
	return best, found
}
