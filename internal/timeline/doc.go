// Package timeline owns the clip aggregate at the heart of the editor.
//
// The Repository is the authoritative collection of placed clips and
// validates every insert and replace against the clip invariants: positive
// duration, ordered trim bounds inside the source, and the span rule that a
// clip's visible timeline length always equals its trimmed source length.
// ResolvePlacement is the single legalization routine that keeps clips on a
// track from overlapping; every operation that changes a clip's track or
// start position routes through it.
//
// Operations wraps the repository with the mutating API the interaction
// layer and CLI call: add, move, trim, split, delete, select, and playhead
// control. Each operation is atomic: it either applies fully or leaves the
// aggregate untouched, so observers never see a half-applied edit.
package timeline
