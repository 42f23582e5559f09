package render

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"clipforge/internal/timeline"
)

// Runner executes render work on background goroutines. It satisfies
// timeline.ThumbnailRequester so clip additions can fire thumbnail jobs
// without blocking the edit.
type Runner struct {
	renderer Renderer
	logger   *slog.Logger
	thumbDir string

	mu     sync.Mutex
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

// NewRunner returns a runner writing thumbnails under thumbDir.
func NewRunner(renderer Renderer, thumbDir string, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		renderer: renderer,
		logger:   logger.With("component", "render"),
		thumbDir: thumbDir,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// RequestThumbnail grabs a poster frame for the clip's source in the
// background. Failures are logged, never surfaced; a missing thumbnail only
// degrades the clip's timeline rendering.
func (r *Runner) RequestThumbnail(clip timeline.Clip) {
	r.mu.Lock()
	if r.closed || r.renderer == nil {
		r.mu.Unlock()
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()

		output := r.thumbnailPath(clip.SourcePath)
		// Candidate grab positions, most representative first. Early
		// frames on some sources are black.
		candidates := []float64{1.0, clip.SourceDuration * 0.1, 0.5, 0}
		var lastErr error
		for _, at := range candidates {
			if at >= clip.SourceDuration && clip.SourceDuration > 0 {
				continue
			}
			lastErr = r.renderer.Thumbnail(r.ctx, clip.SourcePath, output, at)
			if lastErr == nil {
				r.logger.Debug("thumbnail rendered", "clip", clip.ID, "output", output)
				return
			}
		}
		r.logger.Warn("thumbnail render failed", "clip", clip.ID, "source", clip.SourcePath, "error", lastErr)
	}()
}

// Render runs fn on a background goroutine tracked by Close.
func (r *Runner) Render(fn func(ctx context.Context)) bool {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return false
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		fn(r.ctx)
	}()
	return true
}

// Close cancels in-flight jobs and waits for their goroutines to exit.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
}

func (r *Runner) thumbnailPath(sourcePath string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(r.thumbDir, fmt.Sprintf("%s_thumb.jpg", stem))
}
