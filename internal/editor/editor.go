package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"clipforge/internal/config"
	"clipforge/internal/interaction"
	"clipforge/internal/playback"
	"clipforge/internal/render"
	"clipforge/internal/snapshot"
	"clipforge/internal/timeline"
)

// Editor owns one open project and everything operating on it.
type Editor struct {
	cfg    *config.Config
	logger *slog.Logger

	mu      sync.Mutex
	store   *snapshot.Store
	ops     *timeline.Operations
	machine *interaction.Machine
	syncer  *playback.Synchronizer
	runner  *render.Runner
	zoom    float64
	dirty   bool

	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New opens the project under cfg.Paths.ProjectDir, restores the persisted
// snapshot, and wires the editing stack. The player may be nil; attach one
// later with AttachPlayer.
func New(cfg *config.Config, player playback.Player, logger *slog.Logger) (*Editor, error) {
	if cfg == nil {
		return nil, errors.New("editor requires config")
	}
	if logger == nil {
		logger = slog.Default()
	}

	store, err := snapshot.Open(cfg.Paths.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}

	renderer := render.NewFFmpeg(cfg.FFmpegBinary(), logger)
	runner := render.NewRunner(renderer, cfg.Paths.ThumbnailDir, logger)

	repo := timeline.NewRepository()
	ops := timeline.NewOperations(repo, logger, runner, timeline.Options{
		GridInterval:       cfg.Editor.GridInterval,
		MinVisibleDuration: cfg.Editor.MinClipDuration,
	})

	layout := interaction.DefaultLayout()
	layout.TrackCount = cfg.Editor.TrackCount
	layout.ClickThreshold = cfg.Editor.ClickThresholdPx

	e := &Editor{
		cfg:     cfg,
		logger:  logger.With("component", "editor"),
		store:   store,
		ops:     ops,
		machine: interaction.NewMachine(ops, logger, layout),
		syncer:  playback.NewSynchronizer(ops, player, logger),
		runner:  runner,
		zoom:    cfg.Editor.DefaultZoom,
	}

	snap, found, err := store.Load(context.Background())
	if err != nil {
		store.Close()
		runner.Close()
		return nil, fmt.Errorf("load project: %w", err)
	}
	if found {
		snapshot.Restore(snap, ops, logger)
		if snap.Zoom > 0 {
			e.zoom = snap.Zoom
		}
		e.logger.Info("project restored", "clips", repo.Len(), "playhead", ops.Playhead())
	}

	return e, nil
}

// Start launches the autosave loop when enabled. Safe to call once.
func (e *Editor) Start(ctx context.Context) error {
	if e.running.Load() {
		return errors.New("editor already running")
	}
	e.running.Store(true)

	if !e.cfg.Autosave.Enabled {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})

	interval := time.Duration(e.cfg.Autosave.IntervalSeconds) * time.Second
	go func() {
		defer close(e.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				if err := e.saveIfDirty(runCtx); err != nil {
					e.logger.Warn("autosave failed", "error", err)
				}
			}
		}
	}()

	e.logger.Info("autosave running", "interval", interval)
	return nil
}

// Do runs fn with exclusive access to the editing stack and marks the
// project dirty. Use this for every mutation so autosave and the API see a
// consistent timeline.
func (e *Editor) Do(fn func(*Session)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&Session{editor: e})
	e.dirty = true
	e.syncer.HandleTimelineChange(playback.OriginTimeline)
}

// View runs fn with shared access but without marking the project dirty or
// waking the synchronizer.
func (e *Editor) View(fn func(*Session)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&Session{editor: e})
}

// Save persists the current snapshot regardless of the dirty flag.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	snap := snapshot.Capture(e.ops, e.zoom)
	e.mu.Unlock()

	if err := e.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("save project: %w", err)
	}

	e.mu.Lock()
	e.dirty = false
	e.mu.Unlock()
	return nil
}

// AttachPlayer connects a player backend once the UI shell has one.
func (e *Editor) AttachPlayer(player playback.Player) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.syncer.AttachPlayer(player)
}

// HandlePlayerTimeUpdate forwards a player time-update event under the
// editor lock. Player callbacks arrive on the player's own goroutine and
// mutate the timeline playhead, so they take the same lock as Do and View.
// The event does not mark the project dirty and does not wake the
// synchronizer again; the playhead is transient state.
func (e *Editor) HandlePlayerTimeUpdate(token playback.LoadToken, sourceTime float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.syncer.HandleTimeUpdate(token, sourceTime)
}

// HandlePlayerMetadataLoaded forwards a player metadata-loaded event under
// the editor lock.
func (e *Editor) HandlePlayerMetadataLoaded(token playback.LoadToken) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.syncer.HandleMetadataLoaded(token)
}

func (e *Editor) saveIfDirty(ctx context.Context) error {
	e.mu.Lock()
	dirty := e.dirty
	e.mu.Unlock()
	if !dirty {
		return nil
	}
	return e.Save(ctx)
}

// Close saves the project, stops background work, and releases the store.
func (e *Editor) Close() error {
	if e.cancel != nil {
		e.cancel()
		<-e.done
		e.cancel = nil
	}
	e.running.Store(false)

	saveErr := e.Save(context.Background())
	e.runner.Close()
	closeErr := e.store.Close()
	e.logger.Info("project closed")
	return errors.Join(saveErr, closeErr)
}

// Session exposes the editing stack inside a Do or View block. It must not
// escape the callback.
type Session struct {
	editor *Editor
}

// Ops returns the timeline operations API.
func (s *Session) Ops() *timeline.Operations { return s.editor.ops }

// Machine returns the pointer interaction state machine.
func (s *Session) Machine() *interaction.Machine { return s.editor.machine }

// Sync returns the playback synchronizer.
func (s *Session) Sync() *playback.Synchronizer { return s.editor.syncer }

// Zoom returns the current timeline zoom in pixels per second.
func (s *Session) Zoom() float64 { return s.editor.zoom }

// SetZoom updates the timeline zoom.
func (s *Session) SetZoom(zoom float64) {
	if zoom > 0 {
		s.editor.zoom = zoom
	}
}

// Renderer returns the background render runner.
func (s *Session) Renderer() *render.Runner { return s.editor.runner }
