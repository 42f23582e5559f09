package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEditor(); err != nil {
		return err
	}
	if err := c.validateAutosave(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEditor() error {
	if c.Editor.GridInterval <= 0 {
		return errors.New("editor.grid_interval must be positive")
	}
	if c.Editor.MinClipDuration <= 0 {
		return errors.New("editor.min_clip_duration must be positive")
	}
	if c.Editor.MinClipDuration < c.Editor.GridInterval/8 {
		return fmt.Errorf("editor.min_clip_duration %g is too small for grid interval %g",
			c.Editor.MinClipDuration, c.Editor.GridInterval)
	}
	if c.Editor.TrackCount < 1 {
		return errors.New("editor.track_count must be at least 1")
	}
	if c.Editor.DefaultZoom <= 0 {
		return errors.New("editor.default_zoom must be positive (pixels per second)")
	}
	if c.Editor.ClickThresholdPx <= 0 {
		return errors.New("editor.click_threshold_px must be positive")
	}
	return nil
}

func (c *Config) validateAutosave() error {
	if c.Autosave.Enabled && c.Autosave.IntervalSeconds <= 0 {
		return errors.New("autosave.interval_seconds must be positive when autosave.enabled is true")
	}
	return nil
}

func (c *Config) validateExport() error {
	if c.Export.FrameRate <= 0 {
		return errors.New("export.frame_rate must be positive")
	}
	if c.Export.FrameRate > 240 {
		return fmt.Errorf("export.frame_rate %g exceeds the supported maximum of 240", c.Export.FrameRate)
	}
	return nil
}
