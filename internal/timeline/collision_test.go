package timeline_test

import (
	"testing"

	"clipforge/internal/timeline"
)

func trackFixture(t *testing.T) *timeline.Repository {
	t.Helper()
	repo := timeline.NewRepository()
	for _, clip := range []timeline.Clip{
		makeClip("first", 0, 0, 5),
		makeClip("second", 0, 10, 15),
	} {
		if err := repo.Insert(clip); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	return repo
}

func TestResolvePlacement(t *testing.T) {
	repo := trackFixture(t)

	cases := []struct {
		name     string
		start    float64
		duration float64
		want     float64
	}{
		{"no overlap stays put", 6, 3, 6},
		{"fits exactly in gap", 3, 4, 5},
		{"pushed past overlapping clip", 12, 4, 15},
		{"gap too small pushes past next", 4, 6, 15},
		{"before everything overlapping first", 0, 2, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := repo.ResolvePlacement(0, tc.start, tc.duration, "")
			if got != tc.want {
				t.Fatalf("ResolvePlacement(%v, %v) = %v, want %v", tc.start, tc.duration, got, tc.want)
			}
		})
	}
}

func TestResolvePlacementEmptyTrack(t *testing.T) {
	repo := trackFixture(t)
	if got := repo.ResolvePlacement(3, 7, 4, ""); got != 7 {
		t.Fatalf("empty track must keep proposal, got %v", got)
	}
	if got := repo.ResolvePlacement(3, -3, 2, ""); got != 0 {
		t.Fatalf("negative proposal must clamp to zero, got %v", got)
	}
}

func TestResolvePlacementExcludesSelf(t *testing.T) {
	repo := trackFixture(t)
	// Moving "first" within its own footprint must not collide with itself.
	if got := repo.ResolvePlacement(0, 1, 5, "first"); got != 1 {
		t.Fatalf("self-exclusion failed, got %v", got)
	}
}
