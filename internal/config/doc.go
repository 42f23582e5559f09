// Package config loads, normalizes, and validates ClipForge configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CLIPFORGE_FFMPEG. The Config type centralizes every knob the editor and
// CLI need, so project/media/render directories and editing behavior are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
