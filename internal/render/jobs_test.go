package render

import (
	"context"
	"sync"
	"testing"

	"clipforge/internal/timeline"
)

// syncRenderer records thumbnail calls across goroutines.
type syncRenderer struct {
	mu      sync.Mutex
	grabs   []float64
	failAll bool
}

func (s *syncRenderer) RenderTrim(context.Context, string, string, float64, float64, TrimOptions, ProgressFunc) error {
	return nil
}

func (s *syncRenderer) Concat(context.Context, []string, string, ProgressFunc) error {
	return nil
}

func (s *syncRenderer) Thumbnail(_ context.Context, _, _ string, at float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grabs = append(s.grabs, at)
	if s.failAll {
		return ErrRenderFailed
	}
	return nil
}

func (s *syncRenderer) recorded() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float64{}, s.grabs...)
}

func TestRunnerThumbnailFirstCandidateWins(t *testing.T) {
	renderer := &syncRenderer{}
	runner := NewRunner(renderer, t.TempDir(), nil)

	runner.RequestThumbnail(trimmedClip("a", 0, 0))
	runner.Close()

	grabs := renderer.recorded()
	if len(grabs) != 1 || grabs[0] != 1.0 {
		t.Fatalf("grabs = %v, want single grab at 1s", grabs)
	}
}

func TestRunnerThumbnailFallsBackThroughCandidates(t *testing.T) {
	renderer := &syncRenderer{failAll: true}
	runner := NewRunner(renderer, t.TempDir(), nil)

	runner.RequestThumbnail(trimmedClip("a", 0, 0))
	runner.Close()

	// Source duration 10: candidates 1.0, 1.0 (10%), 0.5, 0 all attempted.
	if got := len(renderer.recorded()); got != 4 {
		t.Fatalf("attempts = %d, want 4", got)
	}
}

func TestRunnerSkipsCandidatesBeyondDuration(t *testing.T) {
	renderer := &syncRenderer{failAll: true}
	runner := NewRunner(renderer, t.TempDir(), nil)

	clip := trimmedClip("a", 0, 0)
	clip.SourceDuration = 0.4
	runner.RequestThumbnail(clip)
	runner.Close()

	for _, at := range renderer.recorded() {
		if at >= 0.4 {
			t.Fatalf("grab at %g beyond source duration", at)
		}
	}
}

func TestRunnerRejectsWorkAfterClose(t *testing.T) {
	renderer := &syncRenderer{}
	runner := NewRunner(renderer, t.TempDir(), nil)
	runner.Close()

	runner.RequestThumbnail(trimmedClip("a", 0, 0))
	if ok := runner.Render(func(context.Context) {}); ok {
		t.Fatal("Render accepted work after Close")
	}
	if len(renderer.recorded()) != 0 {
		t.Fatal("thumbnail ran after Close")
	}
}

func TestRunnerSatisfiesThumbnailRequester(t *testing.T) {
	var _ timeline.ThumbnailRequester = (*Runner)(nil)
}
