package timeline_test

import (
	"errors"
	"math"
	"testing"

	"clipforge/internal/timeline"
)

func makeClip(id string, track int, start, end float64) timeline.Clip {
	return timeline.Clip{
		ID:             id,
		SourceID:       "src-" + id,
		SourcePath:     "/media/" + id + ".mp4",
		Name:           id,
		Track:          track,
		TimelineStart:  start,
		TimelineEnd:    end,
		TrimStart:      0,
		TrimEnd:        end - start,
		SourceDuration: end - start,
		Volume:         1,
	}
}

func TestRepositoryInsertAndGet(t *testing.T) {
	repo := timeline.NewRepository()
	clip := makeClip("a", 0, 0, 5)
	if err := repo.Insert(clip); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := repo.Get("a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.TimelineEnd != 5 {
		t.Fatalf("unexpected clip: %#v", got)
	}

	if _, err := repo.Get("missing"); !errors.Is(err, timeline.ErrClipNotFound) {
		t.Fatalf("expected ErrClipNotFound, got %v", err)
	}
}

func TestRepositoryRejectsInvalidClips(t *testing.T) {
	repo := timeline.NewRepository()

	cases := []struct {
		name string
		clip timeline.Clip
	}{
		{"zero duration", makeClipWith(func(c *timeline.Clip) { c.TimelineEnd = c.TimelineStart })},
		{"negative track", makeClipWith(func(c *timeline.Clip) { c.Track = -1 })},
		{"disordered trim", makeClipWith(func(c *timeline.Clip) { c.TrimStart = 4; c.TrimEnd = 1 })},
		{"trim past source", makeClipWith(func(c *timeline.Clip) { c.TrimEnd = 99; c.TimelineEnd = c.TimelineStart + 99 })},
		{"span mismatch", makeClipWith(func(c *timeline.Clip) { c.TimelineEnd = c.TimelineStart + 3 })},
		{"volume out of range", makeClipWith(func(c *timeline.Clip) { c.Volume = 1.5 })},
		{"nan span", makeClipWith(func(c *timeline.Clip) {
			c.TimelineEnd = math.NaN()
			c.TrimEnd = math.NaN()
			c.SourceDuration = math.NaN()
		})},
		{"nan volume", makeClipWith(func(c *timeline.Clip) { c.Volume = math.NaN() })},
		{"infinite end", makeClipWith(func(c *timeline.Clip) {
			c.TimelineEnd = math.Inf(1)
			c.TrimEnd = math.Inf(1)
			c.SourceDuration = math.Inf(1)
		})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := repo.Insert(tc.clip); !errors.Is(err, timeline.ErrInvalidClip) {
				t.Fatalf("expected ErrInvalidClip, got %v", err)
			}
		})
	}

	if repo.Len() != 0 {
		t.Fatalf("invalid inserts must not persist, repo has %d clips", repo.Len())
	}
}

func makeClipWith(mutate func(*timeline.Clip)) timeline.Clip {
	clip := makeClip("x", 0, 0, 5)
	mutate(&clip)
	return clip
}

func TestRepositoryDuplicateInsert(t *testing.T) {
	repo := timeline.NewRepository()
	if err := repo.Insert(makeClip("a", 0, 0, 5)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := repo.Insert(makeClip("a", 1, 10, 15)); !errors.Is(err, timeline.ErrInvalidClip) {
		t.Fatalf("expected duplicate id rejection, got %v", err)
	}
}

func TestRepositoryOnTrackOrdering(t *testing.T) {
	repo := timeline.NewRepository()
	for _, clip := range []timeline.Clip{
		makeClip("late", 0, 10, 15),
		makeClip("early", 0, 0, 5),
		makeClip("other-track", 1, 2, 4),
	} {
		if err := repo.Insert(clip); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	track0 := repo.OnTrack(0)
	if len(track0) != 2 || track0[0].ID != "early" || track0[1].ID != "late" {
		t.Fatalf("unexpected track ordering: %#v", track0)
	}
}

func TestRepositoryDurationAndClipAt(t *testing.T) {
	repo := timeline.NewRepository()
	if repo.Duration() != 0 {
		t.Fatalf("empty timeline duration should be 0, got %v", repo.Duration())
	}

	if err := repo.Insert(makeClip("a", 1, 0, 5)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := repo.Insert(makeClip("b", 0, 3, 8)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if repo.Duration() != 8 {
		t.Fatalf("duration = %v, want 8", repo.Duration())
	}

	// Both clips cover t=4; the lower track wins.
	clip, ok := repo.ClipAt(4)
	if !ok || clip.ID != "b" {
		t.Fatalf("ClipAt(4) = %#v ok=%v, want clip b", clip, ok)
	}
	if _, ok := repo.ClipAt(20); ok {
		t.Fatal("ClipAt past the timeline should find nothing")
	}
}

func TestRepositoryReplaceKeepsID(t *testing.T) {
	repo := timeline.NewRepository()
	if err := repo.Insert(makeClip("a", 0, 0, 5)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	moved := makeClip("renamed", 0, 10, 15)
	if err := repo.Replace("a", moved); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	got, err := repo.Get("a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.TimelineStart != 10 {
		t.Fatalf("replacement not applied: %#v", got)
	}
	if repo.Has("renamed") {
		t.Fatal("Replace must keep the original id")
	}
}
