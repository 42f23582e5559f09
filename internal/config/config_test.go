package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"clipforge/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantProject := filepath.Join(tempHome, ".local", "share", "clipforge", "project")
	if cfg.Paths.ProjectDir != wantProject {
		t.Fatalf("unexpected project dir: got %q want %q", cfg.Paths.ProjectDir, wantProject)
	}
	if cfg.Paths.APIBind != "127.0.0.1:7519" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.Editor.GridInterval != 0.5 {
		t.Fatalf("unexpected grid interval: %g", cfg.Editor.GridInterval)
	}
	if cfg.Editor.TrackCount != 3 {
		t.Fatalf("unexpected track count: %d", cfg.Editor.TrackCount)
	}
	if !cfg.Autosave.Enabled || cfg.Autosave.IntervalSeconds != 30 {
		t.Fatalf("unexpected autosave defaults: %+v", cfg.Autosave)
	}
	if cfg.FFmpegBinary() != "ffmpeg" || cfg.FFprobeBinary() != "ffprobe" {
		t.Fatalf("unexpected binary defaults: %q, %q", cfg.FFmpegBinary(), cfg.FFprobeBinary())
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.ProjectDir, cfg.Paths.MediaDir, cfg.Paths.ThumbnailDir, cfg.Paths.RenderDir, cfg.Paths.ExportDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "clipforge.toml")

	type payload struct {
		Editor struct {
			GridInterval float64 `toml:"grid_interval"`
			DefaultZoom  float64 `toml:"default_zoom"`
		} `toml:"editor"`
		Export struct {
			FrameRate float64 `toml:"frame_rate"`
			Title     string  `toml:"title"`
		} `toml:"export"`
	}
	custom := payload{}
	custom.Editor.GridInterval = 0.25
	custom.Editor.DefaultZoom = 80
	custom.Export.FrameRate = 24
	custom.Export.Title = "Short Film"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Editor.GridInterval != 0.25 {
		t.Fatalf("expected grid interval override, got %g", cfg.Editor.GridInterval)
	}
	if cfg.Editor.DefaultZoom != 80 {
		t.Fatalf("expected zoom override, got %g", cfg.Editor.DefaultZoom)
	}
	if cfg.Export.FrameRate != 24 || cfg.Export.Title != "Short Film" {
		t.Fatalf("expected export overrides, got %+v", cfg.Export)
	}
	// Unset sections keep their defaults.
	if cfg.Editor.TrackCount != 3 {
		t.Fatalf("expected default track count, got %d", cfg.Editor.TrackCount)
	}
}

func TestEnvVarSuppliesRenderBinaries(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("CLIPFORGE_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("CLIPFORGE_FFPROBE", "/opt/ffmpeg/bin/ffprobe")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.FFmpegBinary() != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("expected ffmpeg from env, got %q", cfg.FFmpegBinary())
	}
	if cfg.FFprobeBinary() != "/opt/ffmpeg/bin/ffprobe" {
		t.Fatalf("expected ffprobe from env, got %q", cfg.FFprobeBinary())
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "grid_interval") {
		t.Fatalf("sample config missing editor section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.ProjectDir, "clipforge") {
		t.Fatalf("expected project dir to contain clipforge, got %q", cfg.Paths.ProjectDir)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.GridInterval = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative grid interval")
	}

	cfg = config.Default()
	cfg.Editor.TrackCount = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero track count")
	}

	cfg = config.Default()
	cfg.Autosave.Enabled = true
	cfg.Autosave.IntervalSeconds = -5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative autosave interval")
	}

	cfg = config.Default()
	cfg.Export.FrameRate = 500
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for absurd frame rate")
	}
}
