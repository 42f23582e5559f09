package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileImporter brings files on disk into the project by probing them in
// place. Files are referenced, never copied; the descriptor keeps the
// absolute path.
type FileImporter struct {
	prober Prober
}

// NewFileImporter builds an Importer over the given prober.
func NewFileImporter(prober Prober) *FileImporter {
	return &FileImporter{prober: prober}
}

// Import validates that the file exists, probes it, and returns its
// descriptor.
func (i *FileImporter) Import(ctx context.Context, path string) (Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Source{}, fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Source{}, fmt.Errorf("import %s: %w", abs, err)
	}
	if info.IsDir() {
		return Source{}, fmt.Errorf("import %s: is a directory", abs)
	}

	src, err := i.prober.Probe(ctx, abs)
	if err != nil {
		return Source{}, err
	}
	return src, nil
}

var _ Importer = (*FileImporter)(nil)
