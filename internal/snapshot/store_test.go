package snapshot_test

import (
	"context"
	"errors"
	"testing"

	"clipforge/internal/snapshot"
)

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store, err := snapshot.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	want := snapshot.Snapshot{
		Clips: []snapshot.Clip{
			func() snapshot.Clip {
				c := validPersistedClip("a")
				c.Track = 1
				c.Muted = true
				c.Volume = 0.5
				return c
			}(),
			validPersistedClip("b"),
		},
		Playhead:       4.25,
		Zoom:           80,
		SelectedClipID: "a",
	}

	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, ok, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a persisted snapshot")
	}
	if got.Playhead != want.Playhead || got.Zoom != want.Zoom || got.SelectedClipID != want.SelectedClipID {
		t.Fatalf("project row mismatch: %#v", got)
	}
	if len(got.Clips) != 2 {
		t.Fatalf("expected 2 clips, got %d", len(got.Clips))
	}
	// Rows come back ordered by track then start, so "b" on track 0 is first.
	if got.Clips[0].ID != "b" || got.Clips[1].ID != "a" {
		t.Fatalf("clip order = %s, %s", got.Clips[0].ID, got.Clips[1].ID)
	}
	if !got.Clips[1].Muted || got.Clips[1].Volume != 0.5 {
		t.Fatalf("clip fields lost: %#v", got.Clips[1])
	}
}

func TestStoreLoadFreshDatabase(t *testing.T) {
	store, err := snapshot.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	_, ok, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Fatal("fresh database reported a snapshot")
	}
}

func TestStoreSaveReplacesPrevious(t *testing.T) {
	store, err := snapshot.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	first := snapshot.Snapshot{Clips: []snapshot.Clip{validPersistedClip("a"), validPersistedClip("b")}}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	second := snapshot.Snapshot{Clips: []snapshot.Clip{validPersistedClip("c")}, Playhead: 1}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load failed: ok=%v err=%v", ok, err)
	}
	if len(got.Clips) != 1 || got.Clips[0].ID != "c" {
		t.Fatalf("stale clips survived: %#v", got.Clips)
	}
}

func TestStoreRejectsSecondOpener(t *testing.T) {
	dir := t.TempDir()
	store, err := snapshot.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if _, err := snapshot.Open(dir); !errors.Is(err, snapshot.ErrProjectLocked) {
		t.Fatalf("second Open error = %v, want ErrProjectLocked", err)
	}
}

func TestStoreReopenAfterClose(t *testing.T) {
	dir := t.TempDir()
	store, err := snapshot.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Save(context.Background(), snapshot.Snapshot{Playhead: 7}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := snapshot.Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	got, ok, err := reopened.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("Load after reopen failed: ok=%v err=%v", ok, err)
	}
	if got.Playhead != 7 {
		t.Fatalf("playhead = %g, want 7", got.Playhead)
	}
}
