package timeline

import "errors"

var (
	// ErrClipNotFound reports an operation against an id the repository
	// does not hold. The aggregate is left unchanged.
	ErrClipNotFound = errors.New("clip not found")

	// ErrInvalidClip reports a clip that violates a structural invariant:
	// non-positive duration, disordered trim bounds, trim outside the
	// source, or a timeline span that disagrees with the trim window.
	ErrInvalidClip = errors.New("invalid clip")

	// ErrPlayheadOutOfBounds reports a split requested while the playhead
	// sits outside the clip's open timeline span.
	ErrPlayheadOutOfBounds = errors.New("playhead outside clip span")
)
