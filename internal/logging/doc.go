// Package logging builds the slog loggers used across ClipForge.
//
// It owns the console and JSON handlers and centralizes level and output
// plumbing. The console handler pulls the component attribute into the
// message prefix so editor, playback, and render lines stay scannable.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
