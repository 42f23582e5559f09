package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"clipforge/internal/media"
	"clipforge/internal/timeline"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := int64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// NewSource returns a valid source descriptor for tests.
func NewSource(id string, duration float64) media.Source {
	return media.Source{
		ID:              id,
		Path:            "/media/" + id + ".mp4",
		DurationSeconds: duration,
		ThumbnailPath:   "/media/thumbnails/" + id + "_thumb.jpg",
	}
}

// NewClip returns a valid untrimmed clip for tests.
func NewClip(id string, track int, start, duration float64) timeline.Clip {
	return timeline.Clip{
		ID:             id,
		SourceID:       id,
		SourcePath:     "/media/" + id + ".mp4",
		Name:           id,
		Track:          track,
		TimelineStart:  start,
		TimelineEnd:    start + duration,
		TrimStart:      0,
		TrimEnd:        duration,
		SourceDuration: duration,
		Volume:         1,
	}
}
