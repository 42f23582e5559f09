package export

import (
	"strings"
	"testing"

	"clipforge/internal/timeline"
)

func TestGenerateEDLSingleEvent(t *testing.T) {
	events := []Event{{
		ClipName:    "Intro",
		MediaPath:   "/media/intro.mp4",
		SourceInMs:  0,
		SourceOutMs: 2000,
	}}

	edl := GenerateEDL(events, "Project One", 30.0)

	if !strings.Contains(edl, "TITLE: Project One") {
		t.Fatalf("missing title in EDL: %q", edl)
	}
	if !strings.Contains(edl, "FCM: NON-DROP FRAME") {
		t.Fatalf("missing non-drop-frame FCM: %q", edl)
	}
	if !strings.Contains(edl, "001  AX       V     C        00:00:00:00 00:00:02:00 00:00:00:00 00:00:02:00") {
		t.Fatalf("missing event line: %q", edl)
	}
	if !strings.Contains(edl, "* FROM CLIP NAME:  Intro") {
		t.Fatalf("missing clip name comment: %q", edl)
	}
	if !strings.Contains(edl, "* MEDIA PATH:  /media/intro.mp4") {
		t.Fatalf("missing media path comment: %q", edl)
	}
}

func TestGenerateEDLRecordTimesPack(t *testing.T) {
	events := []Event{
		{ClipName: "A", MediaPath: "/a.mp4", SourceInMs: 0, SourceOutMs: 1000},
		{ClipName: "B", MediaPath: "/b.mp4", SourceInMs: 1000, SourceOutMs: 2500},
	}

	edl := GenerateEDL(events, "Multi", 30.0)

	if !strings.Contains(edl, "001  AX       V     C        00:00:00:00 00:00:01:00 00:00:00:00 00:00:01:00") {
		t.Fatalf("first event line mismatch: %q", edl)
	}
	if !strings.Contains(edl, "002  AX       V     C        00:00:01:00 00:00:02:15 00:00:01:00 00:00:02:15") {
		t.Fatalf("second event line mismatch or bad record offset: %q", edl)
	}
}

func TestGenerateEDLDropFrame(t *testing.T) {
	events := []Event{{ClipName: "Clip", MediaPath: "/x.mp4", SourceOutMs: 1000}}
	if edl := GenerateEDL(events, "Drop", 29.97); !strings.Contains(edl, "FCM: DROP FRAME") {
		t.Fatalf("expected drop frame FCM, got: %q", edl)
	}
}

func TestMsToTimecode(t *testing.T) {
	tests := []struct {
		name string
		ms   int
		fps  int
		want string
	}{
		{name: "zero", ms: 0, fps: 30, want: "00:00:00:00"},
		{name: "one second", ms: 1000, fps: 30, want: "00:00:01:00"},
		{name: "fractional second", ms: 500, fps: 30, want: "00:00:00:15"},
		{name: "one minute", ms: 60000, fps: 30, want: "00:01:00:00"},
		{name: "one hour", ms: 3600000, fps: 30, want: "01:00:00:00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := msToTimecode(tc.ms, tc.fps); got != tc.want {
				t.Fatalf("msToTimecode(%d, %d) = %q, want %q", tc.ms, tc.fps, got, tc.want)
			}
		})
	}
}

func exportClip(id string, track int, start, span float64) timeline.Clip {
	return timeline.Clip{
		ID:             id,
		SourceID:       id,
		SourcePath:     "/media/" + id + ".mp4",
		Track:          track,
		TimelineStart:  start,
		TimelineEnd:    start + span,
		TrimStart:      1,
		TrimEnd:        1 + span,
		SourceDuration: span + 2,
		Volume:         1,
	}
}

func TestFlattenOrdersAndTrims(t *testing.T) {
	repo := timeline.NewRepository()
	for _, clip := range []timeline.Clip{
		exportClip("late", 0, 10, 5),
		exportClip("early", 1, 0, 5),
	} {
		if err := repo.Insert(clip); err != nil {
			t.Fatalf("insert %s: %v", clip.ID, err)
		}
	}

	events := Flatten(repo)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].MediaPath != "/media/early.mp4" || events[1].MediaPath != "/media/late.mp4" {
		t.Fatalf("events out of timeline order: %#v", events)
	}
	if events[0].SourceInMs != 1000 || events[0].SourceOutMs != 6000 {
		t.Fatalf("source window wrong: %#v", events[0])
	}
}

func TestFlattenLowerTrackWins(t *testing.T) {
	repo := timeline.NewRepository()
	for _, clip := range []timeline.Clip{
		exportClip("bottom", 0, 0, 8),
		exportClip("covered", 1, 2, 4),
		exportClip("after", 1, 9, 3),
	} {
		if err := repo.Insert(clip); err != nil {
			t.Fatalf("insert %s: %v", clip.ID, err)
		}
	}

	events := Flatten(repo)
	if len(events) != 2 {
		t.Fatalf("expected covered clip dropped, got %d events", len(events))
	}
	if events[0].MediaPath != "/media/bottom.mp4" || events[1].MediaPath != "/media/after.mp4" {
		t.Fatalf("wrong survivors: %#v", events)
	}
}

func TestFlattenFallsBackToClipID(t *testing.T) {
	repo := timeline.NewRepository()
	clip := exportClip("anon", 0, 0, 4)
	clip.Name = "   "
	if err := repo.Insert(clip); err != nil {
		t.Fatalf("insert: %v", err)
	}

	events := Flatten(repo)
	if len(events) != 1 || events[0].ClipName != "anon" {
		t.Fatalf("expected id fallback, got %#v", events)
	}
}
