package testsupport

import (
	"path/filepath"
	"testing"

	"clipforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ProjectDir = filepath.Join(base, "project")
	cfg.Paths.MediaDir = filepath.Join(base, "media")
	cfg.Paths.ThumbnailDir = filepath.Join(base, "media", "thumbnails")
	cfg.Paths.RenderDir = filepath.Join(base, "edited")
	cfg.Paths.ExportDir = filepath.Join(base, "exports")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Autosave.Enabled = false

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	return &cfg
}

// WithAutosave enables autosave with the given interval in seconds.
func WithAutosave(seconds int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Autosave.Enabled = true
		cfg.Autosave.IntervalSeconds = seconds
	}
}

// WithGrid overrides the snap grid interval.
func WithGrid(interval float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Editor.GridInterval = interval
	}
}
