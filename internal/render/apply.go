package render

import (
	"context"
	"fmt"
	"path/filepath"

	"clipforge/internal/media"
	"clipforge/internal/timeline"
)

// ApplyTrim makes a clip's trim window permanent: the trimmed span is
// rendered to a standalone file under outDir and the clip is rebound to it
// with its trim window reset to the full new source. The clip keeps its
// timeline position.
func ApplyTrim(ctx context.Context, renderer Renderer, ops *timeline.Operations, clipID, outDir string, progress ProgressFunc) (timeline.Clip, error) {
	clip, err := ops.Repo().Get(clipID)
	if err != nil {
		return timeline.Clip{}, err
	}

	sourceID := media.NewID()
	output := filepath.Join(outDir, fmt.Sprintf("%s-trimmed%s", sourceID, extOrDefault(clip.SourcePath)))

	opts := TrimOptions{Volume: clip.Volume, Muted: clip.Muted}
	if err := renderer.RenderTrim(ctx, clip.SourcePath, output, clip.TrimStart, clip.TrimEnd, opts, progress); err != nil {
		return timeline.Clip{}, err
	}

	rendered := media.Source{
		ID:              sourceID,
		Path:            output,
		DurationSeconds: clip.TrimEnd - clip.TrimStart,
	}
	return ops.ReplaceSource(clipID, rendered)
}

// ExportTrack flattens one track into a single file: each clip's trim window
// is rendered into a temporary segment, then the segments are concatenated
// in timeline order.
func ExportTrack(ctx context.Context, renderer Renderer, repo *timeline.Repository, track int, output string, progress ProgressFunc) error {
	segments := TrackSegments(repo, track)
	if len(segments) == 0 {
		return fmt.Errorf("%w: track %d is empty", ErrRenderFailed, track)
	}

	dir := filepath.Dir(output)
	parts := make([]string, 0, len(segments))
	for i, seg := range segments {
		part := filepath.Join(dir, fmt.Sprintf("segment-%03d%s", i, extOrDefault(seg.Input)))
		opts := TrimOptions{Volume: seg.Volume, Muted: seg.Muted}
		if err := renderer.RenderTrim(ctx, seg.Input, part, seg.Start, seg.End, opts, nil); err != nil {
			return fmt.Errorf("render segment %d: %w", i, err)
		}
		parts = append(parts, part)
	}

	return renderer.Concat(ctx, parts, output, progress)
}

func extOrDefault(path string) string {
	if ext := filepath.Ext(path); ext != "" {
		return ext
	}
	return ".mp4"
}
