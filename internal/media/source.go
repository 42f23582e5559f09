// Package media defines the immutable source descriptors the timeline engine
// references and the collaborator contracts that produce them.
//
// The engine never opens or mutates media files. Importing, recording, and
// probing all happen behind the Importer and Prober interfaces; the engine
// only holds Source values by id and path.
package media

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
)

// ErrSourceMissing reports a source descriptor without the fields the engine
// cannot work without.
var ErrSourceMissing = errors.New("source requires id, path, and a positive duration")

// Source describes an imported or recorded media file. Immutable once
// created; optional probe fields are zero when unknown.
type Source struct {
	ID              string
	Path            string
	DurationSeconds float64
	Width           int
	Height          int
	Codec           string
	FPSRate         float64
	BitRate         int64
	ThumbnailPath   string
}

// Validate reports whether the descriptor carries the fields every clip
// placement depends on. Non-finite durations count as missing; a probe that
// fails to parse must not smuggle NaN into the timeline.
func (s Source) Validate() error {
	if strings.TrimSpace(s.ID) == "" || strings.TrimSpace(s.Path) == "" {
		return ErrSourceMissing
	}
	if math.IsNaN(s.DurationSeconds) || math.IsInf(s.DurationSeconds, 0) || s.DurationSeconds <= 0 {
		return ErrSourceMissing
	}
	return nil
}

// NewID returns a fresh source identifier.
func NewID() string {
	return uuid.NewString()
}

// Importer yields source descriptors for files entering the project, whether
// imported from disk or produced by a recording session.
type Importer interface {
	Import(ctx context.Context, path string) (Source, error)
}

// Prober extracts stream metadata for a file already on disk.
type Prober interface {
	Probe(ctx context.Context, path string) (Source, error)
}
