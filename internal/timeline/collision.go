package timeline

// ResolvePlacement legalizes a proposed placement against the existing clips
// on a track and returns the corrected start position. It is the only
// routine allowed to adjust a placement for the no-overlap invariant, and
// every operation that changes a clip's track or start must call it.
//
// When the proposed span overlaps existing clips, the placement moves to the
// end of the last overlapped clip. If the gap before the next clip on the
// track is too small for the span, the placement pushes past that clip
// instead. Because tracks hold non-overlapping sorted clips, a single pass
// always lands in free space.
func (r *Repository) ResolvePlacement(track int, proposedStart, duration float64, excludeID string) float64 {
	if proposedStart < 0 {
		proposedStart = 0
	}

	var others []Clip
	for _, clip := range r.OnTrack(track) {
		if clip.ID != excludeID {
			others = append(others, clip)
		}
	}
	if len(others) == 0 {
		return proposedStart
	}

	proposedEnd := proposedStart + duration
	afterLast := -1.0
	for _, clip := range others {
		if clip.TimelineStart < proposedEnd && proposedStart < clip.TimelineEnd {
			afterLast = clip.TimelineEnd
		}
	}
	if afterLast < 0 {
		return proposedStart
	}

	for _, clip := range others {
		if clip.TimelineStart >= afterLast {
			if clip.TimelineStart-afterLast >= duration {
				return afterLast
			}
			return clip.TimelineEnd
		}
	}
	return afterLast
}
