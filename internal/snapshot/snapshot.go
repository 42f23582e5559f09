// Package snapshot persists and restores the timeline state.
//
// A Snapshot is the serialization shape shared with the UI layer: clips plus
// the playhead, zoom, and selection. Loading follows a repair-don't-reject
// policy: a malformed persisted clip is sanitized and kept when salvageable
// and dropped when its core fields are missing, and an unreadable snapshot
// degrades to an empty timeline instead of refusing to start. The Store
// keeps snapshots in SQLite and holds a file lock so only one editor
// process writes a project at a time.
package snapshot

import (
	"encoding/json"
	"io"

	"clipforge/internal/timeline"
)

// Clip is the persisted form of a timeline clip. Field names are fixed by
// the UI contract.
type Clip struct {
	ID        string  `json:"id"`
	Path      string  `json:"path"`
	Name      string  `json:"name"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Duration  float64 `json:"duration"`
	Track     int     `json:"track"`
	TrimStart float64 `json:"trimStart"`
	TrimEnd   float64 `json:"trimEnd"`
	Volume    float64 `json:"volume"`
	Muted     bool    `json:"muted"`
}

// Snapshot is one persisted timeline state. Zoom is view state the engine
// passes through untouched.
type Snapshot struct {
	Clips          []Clip  `json:"clips"`
	Playhead       float64 `json:"playhead"`
	Zoom           float64 `json:"zoom"`
	SelectedClipID string  `json:"selectedClipId"`
}

// Capture builds a snapshot from the live aggregate.
func Capture(ops *timeline.Operations, zoom float64) Snapshot {
	clips := ops.Repo().All()
	out := Snapshot{
		Clips:          make([]Clip, 0, len(clips)),
		Playhead:       ops.Playhead(),
		Zoom:           zoom,
		SelectedClipID: ops.SelectedClipID(),
	}
	for _, clip := range clips {
		out.Clips = append(out.Clips, Clip{
			ID:        clip.ID,
			Path:      clip.SourcePath,
			Name:      clip.Name,
			Start:     clip.TimelineStart,
			End:       clip.TimelineEnd,
			Duration:  clip.SourceDuration,
			Track:     clip.Track,
			TrimStart: clip.TrimStart,
			TrimEnd:   clip.TrimEnd,
			Volume:    clip.Volume,
			Muted:     clip.Muted,
		})
	}
	return out
}

// Decode reads a JSON snapshot. An unreadable document degrades to the
// empty snapshot; per-clip repair happens later in Restore.
func Decode(r io.Reader) Snapshot {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}
	}
	return snap
}

// Encode writes the snapshot as indented JSON.
func (s Snapshot) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
