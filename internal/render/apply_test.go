package render

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"clipforge/internal/timeline"
)

type trimCall struct {
	input      string
	output     string
	start, end float64
	opts       TrimOptions
}

type fakeRenderer struct {
	trims      []trimCall
	concats    [][]string
	thumbnails []string
	failTrim   error
	failThumb  error
}

func (f *fakeRenderer) RenderTrim(_ context.Context, input, output string, start, end float64, opts TrimOptions, _ ProgressFunc) error {
	if f.failTrim != nil {
		return f.failTrim
	}
	f.trims = append(f.trims, trimCall{input, output, start, end, opts})
	return nil
}

func (f *fakeRenderer) Concat(_ context.Context, inputs []string, output string, _ ProgressFunc) error {
	f.concats = append(f.concats, append(append([]string{}, inputs...), output))
	return nil
}

func (f *fakeRenderer) Thumbnail(_ context.Context, input, _ string, at float64) error {
	if f.failThumb != nil {
		return f.failThumb
	}
	f.thumbnails = append(f.thumbnails, fmt.Sprintf("%s@%g", input, at))
	return nil
}

func trimmedClip(id string, track int, start float64) timeline.Clip {
	return timeline.Clip{
		ID:             id,
		SourceID:       id,
		SourcePath:     "/media/" + id + ".mp4",
		Track:          track,
		TimelineStart:  start,
		TimelineEnd:    start + 4,
		TrimStart:      2,
		TrimEnd:        6,
		SourceDuration: 10,
		Volume:         1,
	}
}

func TestApplyTrimRebindsClip(t *testing.T) {
	repo := timeline.NewRepository()
	if err := repo.Insert(trimmedClip("a", 0, 3)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	ops := timeline.NewOperations(repo, nil, nil, timeline.Options{})
	renderer := &fakeRenderer{}

	clip, err := ApplyTrim(context.Background(), renderer, ops, "a", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("ApplyTrim failed: %v", err)
	}

	if len(renderer.trims) != 1 {
		t.Fatalf("expected one render, got %d", len(renderer.trims))
	}
	call := renderer.trims[0]
	if call.input != "/media/a.mp4" || call.start != 2 || call.end != 6 {
		t.Fatalf("rendered wrong window: %#v", call)
	}

	if clip.TrimStart != 0 || clip.TrimEnd != 4 || clip.SourceDuration != 4 {
		t.Fatalf("trim window not reset: %#v", clip)
	}
	if clip.TimelineStart != 3 || clip.TimelineEnd != 7 {
		t.Fatalf("timeline position moved: %#v", clip)
	}
	if clip.SourcePath == "/media/a.mp4" {
		t.Fatal("clip still bound to original source")
	}
}

func TestApplyTrimRenderFailureLeavesClipUntouched(t *testing.T) {
	repo := timeline.NewRepository()
	if err := repo.Insert(trimmedClip("a", 0, 3)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	ops := timeline.NewOperations(repo, nil, nil, timeline.Options{})
	renderer := &fakeRenderer{failTrim: ErrRenderFailed}

	if _, err := ApplyTrim(context.Background(), renderer, ops, "a", t.TempDir(), nil); !errors.Is(err, ErrRenderFailed) {
		t.Fatalf("error = %v, want ErrRenderFailed", err)
	}

	clip, err := repo.Get("a")
	if err != nil {
		t.Fatalf("clip lost: %v", err)
	}
	if clip.SourcePath != "/media/a.mp4" || clip.TrimStart != 2 {
		t.Fatalf("clip mutated after failed render: %#v", clip)
	}
}

func TestApplyTrimUnknownClip(t *testing.T) {
	ops := timeline.NewOperations(timeline.NewRepository(), nil, nil, timeline.Options{})
	if _, err := ApplyTrim(context.Background(), &fakeRenderer{}, ops, "missing", t.TempDir(), nil); !errors.Is(err, timeline.ErrClipNotFound) {
		t.Fatalf("error = %v, want ErrClipNotFound", err)
	}
}

func TestExportTrackOrdersSegments(t *testing.T) {
	repo := timeline.NewRepository()
	// Inserted out of order; the export must follow timeline order.
	if err := repo.Insert(trimmedClip("late", 0, 20)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Insert(trimmedClip("early", 0, 0)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	renderer := &fakeRenderer{}

	if err := ExportTrack(context.Background(), renderer, repo, 0, "/tmp/out.mp4", nil); err != nil {
		t.Fatalf("ExportTrack failed: %v", err)
	}

	if len(renderer.trims) != 2 {
		t.Fatalf("expected 2 segment renders, got %d", len(renderer.trims))
	}
	if renderer.trims[0].input != "/media/early.mp4" || renderer.trims[1].input != "/media/late.mp4" {
		t.Fatalf("segments out of order: %#v", renderer.trims)
	}
	if len(renderer.concats) != 1 {
		t.Fatalf("expected one concat, got %d", len(renderer.concats))
	}
}

func TestExportTrackEmpty(t *testing.T) {
	repo := timeline.NewRepository()
	if err := ExportTrack(context.Background(), &fakeRenderer{}, repo, 0, "/tmp/out.mp4", nil); !errors.Is(err, ErrRenderFailed) {
		t.Fatalf("error = %v, want ErrRenderFailed", err)
	}
}
