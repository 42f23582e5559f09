// Package editor wires the timeline engine together for a running session:
// configuration, the project store, editing operations, the pointer state
// machine, playback sync, background rendering, and autosave.
//
// Editor is the single entry point a UI shell talks to. All mutating access
// goes through Do so concurrent callers (the UI thread, autosave, the HTTP
// API) serialize on one mutex.
package editor
