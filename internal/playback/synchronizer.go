// Package playback bridges the timeline playhead and an external media
// player's clock.
//
// The two clocks tick in different domains: the playhead is global timeline
// seconds, the player reports local source seconds for whichever clip is
// active. The Synchronizer converts between them in both directions without
// feeding back on itself. Every update carries an Origin tag so a push
// caused by the player never triggers a second push back to the player, and
// every source load carries a token so time updates from a source the
// player has already abandoned are discarded.
package playback

import (
	"log/slog"
	"sync"

	"clipforge/internal/geometry"
	"clipforge/internal/timeline"
)

// Origin tags which side of the bridge caused an update.
type Origin int

const (
	// OriginTimeline marks updates driven by the editor: playhead drags,
	// selection changes, structural edits.
	OriginTimeline Origin = iota
	// OriginPlayer marks updates driven by the player's own clock.
	OriginPlayer
)

// LoadToken identifies one source-load request. The player echoes it on
// every callback so stale events are cheap to discard.
type LoadToken uint64

// Player is the external media player contract. Load is asynchronous: the
// implementation delivers a metadata-loaded callback with the same token
// once the source is ready, then time updates periodically while playing.
// Player goroutines must deliver those callbacks through the owning
// editor's handler methods, which serialize them against timeline edits;
// the synchronizer's own lock only orders its internal state.
type Player interface {
	Load(token LoadToken, path string)
	Seek(sourceSeconds float64)
	Pause()
}

// Synchronizer keeps the playhead and the player clock consistent.
type Synchronizer struct {
	ops    *timeline.Operations
	player Player
	logger *slog.Logger

	mu           sync.Mutex
	activeClipID string
	token        LoadToken
	loading      bool
}

// NewSynchronizer builds the bridge. The player may be nil in headless
// contexts; all pushes become no-ops.
func NewSynchronizer(ops *timeline.Operations, player Player, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{
		ops:    ops,
		player: player,
		logger: logger.With("component", "playback"),
	}
}

// AttachPlayer swaps in a player backend and reconciles it against the
// current timeline state. Passing nil detaches the player.
func (s *Synchronizer) AttachPlayer(player Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player = player
	s.activeClipID = ""
	s.loading = false
	if player != nil {
		s.reconcileLocked()
	}
}

// ActiveClipID returns the clip currently driving the player, or "".
func (s *Synchronizer) ActiveClipID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeClipID
}

// Loading reports whether a source load is still pending.
func (s *Synchronizer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// HandleTimelineChange reconciles the player after a playhead move,
// selection change, or structural edit. Updates tagged OriginPlayer are
// ignored: they describe a change this synchronizer already applied, and
// reacting to them is exactly the feedback loop this tag exists to break.
func (s *Synchronizer) HandleTimelineChange(origin Origin) {
	if origin == OriginPlayer {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked()
}

// HandleMetadataLoaded is called by the player once a load finishes. Stale
// tokens from an abandoned load are discarded.
func (s *Synchronizer) HandleMetadataLoaded(token LoadToken) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		s.logger.Debug("discarding stale metadata event", "token", uint64(token), "current", uint64(s.token))
		return
	}
	s.loading = false

	clip, err := s.ops.Repo().Get(s.activeClipID)
	if err != nil {
		return
	}
	s.seekLocked(clip)
}

// HandleTimeUpdate is called on the player's periodic clock tick. The
// source time maps back to the playhead unless the tick is stale, a load is
// pending, or playback ran past the trim-out point. In that last case the
// player is forced back to the trim-in and paused.
func (s *Synchronizer) HandleTimeUpdate(token LoadToken, sourceTime float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token || s.loading {
		return
	}
	clip, err := s.ops.Repo().Get(s.activeClipID)
	if err != nil {
		return
	}

	if sourceTime < clip.TrimStart || sourceTime > clip.TrimEnd {
		// Trimming does not cut the file; the played window is enforced
		// here.
		if s.player != nil {
			s.player.Seek(clip.TrimStart)
			s.player.Pause()
		}
		return
	}

	s.ops.SetPlayhead(geometry.PlayheadForSourceTime(clip.Placement(), sourceTime))

	// Playback may have carried the playhead into the next clip's span.
	if next := s.desiredActiveLocked(); next != s.activeClipID {
		s.reconcileLocked()
	}
}

// reconcileLocked applies the Timeline→Player direction: switch sources
// when the active clip changed, otherwise seek to the playhead's position
// inside the current clip.
func (s *Synchronizer) reconcileLocked() {
	desired := s.desiredActiveLocked()

	if desired == "" {
		if s.activeClipID != "" {
			s.activeClipID = ""
			s.loading = false
			s.token++
			if s.player != nil {
				s.player.Pause()
			}
		}
		return
	}

	if desired != s.activeClipID {
		clip, err := s.ops.Repo().Get(desired)
		if err != nil {
			return
		}
		s.activeClipID = desired
		s.loading = true
		s.token++
		if s.player != nil {
			s.player.Load(s.token, clip.SourcePath)
		}
		s.logger.Debug("switching active clip", "clip", desired, "token", uint64(s.token))
		return
	}

	if s.loading {
		// The pending load's metadata callback performs the seek.
		return
	}
	clip, err := s.ops.Repo().Get(s.activeClipID)
	if err != nil {
		return
	}
	s.seekLocked(clip)
}

// desiredActiveLocked picks the clip that should drive the player: the
// selected clip if any, else the clip under the playhead on the lowest
// track.
func (s *Synchronizer) desiredActiveLocked() string {
	if selected := s.ops.SelectedClipID(); selected != "" {
		return selected
	}
	if clip, ok := s.ops.Repo().ClipAt(s.ops.Playhead()); ok {
		return clip.ID
	}
	return ""
}

func (s *Synchronizer) seekLocked(clip timeline.Clip) {
	if s.player == nil {
		return
	}
	s.player.Seek(geometry.SourceTimeForPlayhead(clip.Placement(), s.ops.Playhead()))
}
