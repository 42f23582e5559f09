package geometry_test

import (
	"errors"
	"math"
	"testing"

	"clipforge/internal/geometry"
)

func TestTimeToPixelRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		time   float64
		zoom   float64
		scroll float64
	}{
		{"origin", 0, 50, 0},
		{"scrolled", 12.5, 50, 200},
		{"zoomed out", 90, 4, 0},
		{"zoomed in", 1.25, 400, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, err := geometry.TimeToPixel(tc.time, tc.zoom, tc.scroll)
			if err != nil {
				t.Fatalf("TimeToPixel failed: %v", err)
			}
			back, err := geometry.PixelToTime(x, tc.zoom, tc.scroll)
			if err != nil {
				t.Fatalf("PixelToTime failed: %v", err)
			}
			if math.Abs(back-tc.time) > 1e-9 {
				t.Fatalf("round trip: got %v, want %v", back, tc.time)
			}
		})
	}
}

func TestPixelToTimeClampsAtZero(t *testing.T) {
	got, err := geometry.PixelToTime(0, 50, 0)
	if err != nil {
		t.Fatalf("PixelToTime failed: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected clamp to 0 left of track labels, got %v", got)
	}
}

func TestInvalidZoomRejected(t *testing.T) {
	for _, zoom := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := geometry.TimeToPixel(1, zoom, 0); !errors.Is(err, geometry.ErrInvalidZoom) {
			t.Fatalf("zoom %v: expected ErrInvalidZoom, got %v", zoom, err)
		}
		if _, err := geometry.PixelToTime(1, zoom, 0); !errors.Is(err, geometry.ErrInvalidZoom) {
			t.Fatalf("zoom %v: expected ErrInvalidZoom, got %v", zoom, err)
		}
	}
}

func TestSnapToGrid(t *testing.T) {
	cases := []struct {
		in   float64
		grid float64
		want float64
	}{
		{3.74, 0.5, 3.5},
		{3.76, 0.5, 4.0},
		{0, 0.5, 0},
		{1.1, 0, 1.1},
		{2.3, 1, 2},
	}
	for _, tc := range cases {
		if got := geometry.SnapToGrid(tc.in, tc.grid); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("SnapToGrid(%v, %v) = %v, want %v", tc.in, tc.grid, got, tc.want)
		}
	}
}

func TestSourceTimeForPlayhead(t *testing.T) {
	p := geometry.Placement{TimelineStart: 10, TimelineEnd: 20, TrimStart: 2, TrimEnd: 12}

	cases := []struct {
		name     string
		playhead float64
		want     float64
	}{
		{"before clip", 5, 2},
		{"at start", 10, 2},
		{"inside", 14, 6},
		{"at end", 20, 12},
		{"past end", 25, 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := geometry.SourceTimeForPlayhead(p, tc.playhead); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPlayheadSourceRoundTrip(t *testing.T) {
	p := geometry.Placement{TimelineStart: 10, TimelineEnd: 20, TrimStart: 2, TrimEnd: 12}
	for playhead := 10.0; playhead < 20; playhead += 0.25 {
		source := geometry.SourceTimeForPlayhead(p, playhead)
		back := geometry.PlayheadForSourceTime(p, source)
		if math.Abs(back-playhead) > 1e-9 {
			t.Fatalf("playhead %v: round trip gave %v", playhead, back)
		}
	}
}
