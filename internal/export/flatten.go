package export

import (
	"math"
	"sort"
	"strings"

	"clipforge/internal/timeline"
)

// Flatten reduces a multi-track timeline to a single program in timeline
// order. Where clips on different tracks overlap in time, the lower track
// wins and the covered clip is dropped, mirroring how the editor resolves
// the visible clip under the playhead.
func Flatten(repo *timeline.Repository) []Event {
	clips := repo.All()
	sort.SliceStable(clips, func(i, j int) bool {
		if clips[i].TimelineStart != clips[j].TimelineStart {
			return clips[i].TimelineStart < clips[j].TimelineStart
		}
		return clips[i].Track < clips[j].Track
	})

	events := make([]Event, 0, len(clips))
	coveredUntil := math.Inf(-1)
	for _, clip := range clips {
		if clip.TimelineStart < coveredUntil {
			continue
		}
		events = append(events, Event{
			ClipName:    eventName(clip),
			MediaPath:   clip.SourcePath,
			SourceInMs:  toMs(clip.TrimStart),
			SourceOutMs: toMs(clip.TrimEnd),
		})
		coveredUntil = clip.TimelineEnd
	}
	return events
}

func eventName(clip timeline.Clip) string {
	if name := strings.TrimSpace(clip.Name); name != "" {
		return name
	}
	return clip.ID
}

func toMs(seconds float64) int {
	return int(math.Round(seconds * 1000))
}
