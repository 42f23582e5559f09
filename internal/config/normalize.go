package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEditor()
	c.normalizeAutosave()
	c.normalizeRender()
	c.normalizeExport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		name     string
		value    *string
		fallback string
	}{
		{"paths.project_dir", &c.Paths.ProjectDir, defaultProjectDir},
		{"paths.media_dir", &c.Paths.MediaDir, defaultMediaDir},
		{"paths.thumbnail_dir", &c.Paths.ThumbnailDir, defaultThumbnailDir},
		{"paths.render_dir", &c.Paths.RenderDir, defaultRenderDir},
		{"paths.export_dir", &c.Paths.ExportDir, defaultExportDir},
		{"paths.log_dir", &c.Paths.LogDir, defaultLogDir},
	}
	for _, field := range fields {
		if strings.TrimSpace(*field.value) == "" {
			*field.value = field.fallback
		}
		expanded, err := expandPath(*field.value)
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		*field.value = expanded
	}

	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeEditor() {
	if c.Editor.GridInterval <= 0 {
		c.Editor.GridInterval = defaultGridInterval
	}
	if c.Editor.MinClipDuration <= 0 {
		c.Editor.MinClipDuration = defaultMinClipDuration
	}
	if c.Editor.TrackCount <= 0 {
		c.Editor.TrackCount = defaultTrackCount
	}
	if c.Editor.DefaultZoom <= 0 {
		c.Editor.DefaultZoom = defaultZoom
	}
	if c.Editor.ClickThresholdPx <= 0 {
		c.Editor.ClickThresholdPx = defaultClickThreshold
	}
	if c.Editor.ScrollSpeed <= 0 {
		c.Editor.ScrollSpeed = defaultScrollSpeed
	}
}

func (c *Config) normalizeAutosave() {
	if c.Autosave.IntervalSeconds <= 0 {
		c.Autosave.IntervalSeconds = defaultAutosaveInterval
	}
}

func (c *Config) normalizeRender() {
	c.Render.FFmpegBinary = strings.TrimSpace(c.Render.FFmpegBinary)
	if c.Render.FFmpegBinary == "" {
		if value, ok := os.LookupEnv("CLIPFORGE_FFMPEG"); ok {
			c.Render.FFmpegBinary = strings.TrimSpace(value)
		}
	}
	c.Render.FFprobeBinary = strings.TrimSpace(c.Render.FFprobeBinary)
	if c.Render.FFprobeBinary == "" {
		if value, ok := os.LookupEnv("CLIPFORGE_FFPROBE"); ok {
			c.Render.FFprobeBinary = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeExport() {
	if c.Export.FrameRate <= 0 {
		c.Export.FrameRate = defaultExportFrameRate
	}
	c.Export.Title = strings.TrimSpace(c.Export.Title)
	if c.Export.Title == "" {
		c.Export.Title = defaultExportTitle
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
