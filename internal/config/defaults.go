package config

const (
	defaultProjectDir       = "~/.local/share/clipforge/project"
	defaultMediaDir         = "~/.local/share/clipforge/media"
	defaultThumbnailDir     = "~/.local/share/clipforge/media/thumbnails"
	defaultRenderDir        = "~/.local/share/clipforge/edited"
	defaultExportDir        = "~/clipforge-exports"
	defaultLogDir           = "~/.local/share/clipforge/logs"
	defaultAPIBind          = "127.0.0.1:7519"
	defaultGridInterval     = 0.5
	defaultMinClipDuration  = 0.5
	defaultTrackCount       = 3
	defaultZoom             = 50.0
	defaultClickThreshold   = 5.0
	defaultScrollSpeed      = 1.0
	defaultAutosaveInterval = 30
	defaultExportFrameRate  = 30.0
	defaultExportTitle      = "ClipForge Timeline"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ProjectDir:   defaultProjectDir,
			MediaDir:     defaultMediaDir,
			ThumbnailDir: defaultThumbnailDir,
			RenderDir:    defaultRenderDir,
			ExportDir:    defaultExportDir,
			LogDir:       defaultLogDir,
			APIBind:      defaultAPIBind,
		},
		Editor: Editor{
			GridInterval:     defaultGridInterval,
			MinClipDuration:  defaultMinClipDuration,
			TrackCount:       defaultTrackCount,
			DefaultZoom:      defaultZoom,
			ClickThresholdPx: defaultClickThreshold,
			ScrollSpeed:      defaultScrollSpeed,
		},
		Autosave: Autosave{
			Enabled:         true,
			IntervalSeconds: defaultAutosaveInterval,
		},
		Export: Export{
			FrameRate: defaultExportFrameRate,
			Title:     defaultExportTitle,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
