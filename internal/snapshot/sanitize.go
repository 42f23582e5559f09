package snapshot

import (
	"fmt"
	"log/slog"
	"math"

	"clipforge/internal/timeline"
)

// SanitizeClip repairs a persisted clip in place where possible. It returns
// false when the clip is beyond salvage: missing id or path, or a duration
// that cannot anchor any trim window.
func SanitizeClip(c *Clip) (repairs []string, ok bool) {
	if c.ID == "" || c.Path == "" || c.Duration <= 0 || math.IsNaN(c.Duration) || math.IsInf(c.Duration, 0) {
		return nil, false
	}

	if c.Track < 0 {
		repairs = append(repairs, fmt.Sprintf("track %d clamped to 0", c.Track))
		c.Track = 0
	}

	badTrim := math.IsNaN(c.TrimStart) || math.IsNaN(c.TrimEnd) ||
		c.TrimStart < 0 || c.TrimEnd <= c.TrimStart || c.TrimEnd > c.Duration
	if badTrim {
		repairs = append(repairs, fmt.Sprintf("trim [%g, %g] reset to full range", c.TrimStart, c.TrimEnd))
		c.TrimStart = 0
		c.TrimEnd = c.Duration
	}

	if math.IsNaN(c.Start) || c.Start < 0 {
		repairs = append(repairs, fmt.Sprintf("start %g clamped to 0", c.Start))
		c.Start = 0
	}

	span := c.TrimEnd - c.TrimStart
	if math.Abs((c.End-c.Start)-span) > 1e-6 {
		repairs = append(repairs, fmt.Sprintf("end %g rewritten to match trim window", c.End))
		c.End = c.Start + span
	}

	if math.IsNaN(c.Volume) || c.Volume < 0 {
		c.Volume = 0
		repairs = append(repairs, "volume clamped to 0")
	} else if c.Volume > 1 {
		c.Volume = 1
		repairs = append(repairs, "volume clamped to 1")
	}

	return repairs, true
}

// Restore rebuilds a repository from a snapshot, sanitizing each clip and
// legalizing placements so a corrupt file cannot violate the no-overlap
// invariant. Unsalvageable clips are dropped and logged; the function never
// fails.
func Restore(snap Snapshot, ops *timeline.Operations, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "snapshot")

	repo := ops.Repo()
	for i := range snap.Clips {
		c := snap.Clips[i]
		repairs, ok := SanitizeClip(&c)
		if !ok {
			logger.Warn("dropping unsalvageable clip", "clip", c.ID, "path", c.Path)
			continue
		}
		for _, repair := range repairs {
			logger.Warn("repaired persisted clip", "clip", c.ID, "repair", repair)
		}

		span := c.TrimEnd - c.TrimStart
		start := repo.ResolvePlacement(c.Track, c.Start, span, "")
		clip := timeline.Clip{
			ID:             c.ID,
			SourceID:       c.ID,
			SourcePath:     c.Path,
			Name:           c.Name,
			Track:          c.Track,
			TimelineStart:  start,
			TimelineEnd:    start + span,
			TrimStart:      c.TrimStart,
			TrimEnd:        c.TrimEnd,
			SourceDuration: c.Duration,
			Volume:         c.Volume,
			Muted:          c.Muted,
		}
		if err := repo.Insert(clip); err != nil {
			logger.Warn("dropping clip rejected after repair", "clip", c.ID, "error", err)
		}
	}

	ops.SetPlayhead(snap.Playhead)
	if snap.SelectedClipID != "" {
		if err := ops.SelectClip(snap.SelectedClipID); err != nil {
			logger.Warn("dropping stale selection", "clip", snap.SelectedClipID)
		}
	}
}
