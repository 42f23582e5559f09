package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

// Store persists project snapshots in SQLite. A file lock next to the
// database enforces the single-writer rule across processes; the in-process
// rule is the editor's job.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// ErrProjectLocked reports that another editor process holds the project.
var ErrProjectLocked = errors.New("project is locked by another process")

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// Open connects to (or creates) the project database in dir and acquires
// the project lock.
func Open(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, "project.db")

	lock := flock.New(filepath.Join(dir, "project.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire project lock: %w", err)
	}
	if !locked {
		return nil, ErrProjectLocked
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database connection and the project lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Save writes the snapshot atomically, replacing the previous one.
func (s *Store) Save(ctx context.Context, snap Snapshot) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin save tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, "DELETE FROM clips"); err != nil {
			return fmt.Errorf("clear clips: %w", err)
		}
		for _, clip := range snap.Clips {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO clips (id, path, name, start, end, duration, track, trim_start, trim_end, volume, muted)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				clip.ID, clip.Path, clip.Name, clip.Start, clip.End, clip.Duration,
				clip.Track, clip.TrimStart, clip.TrimEnd, clip.Volume, boolToInt(clip.Muted),
			); err != nil {
				return fmt.Errorf("insert clip %s: %w", clip.ID, err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO project (id, playhead, zoom, selected_clip_id, updated_at)
			 VALUES (1, ?, ?, ?, ?)
			 ON CONFLICT (id) DO UPDATE SET
			   playhead = excluded.playhead,
			   zoom = excluded.zoom,
			   selected_clip_id = excluded.selected_clip_id,
			   updated_at = excluded.updated_at`,
			snap.Playhead, snap.Zoom, snap.SelectedClipID, time.Now().UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("upsert project: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit save: %w", err)
		}
		return nil
	})
}

// Load reads the stored snapshot. A fresh database returns ok=false with an
// empty snapshot.
func (s *Store) Load(ctx context.Context) (Snapshot, bool, error) {
	ctx = ensureContext(ctx)
	var snap Snapshot

	err := s.db.QueryRowContext(ctx,
		"SELECT playhead, zoom, selected_clip_id FROM project WHERE id = 1",
	).Scan(&snap.Playhead, &snap.Zoom, &snap.SelectedClipID)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("read project row: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, path, name, start, end, duration, track, trim_start, trim_end, volume, muted FROM clips ORDER BY track, start, id",
	)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("read clips: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			clip  Clip
			muted int
		)
		if err := rows.Scan(&clip.ID, &clip.Path, &clip.Name, &clip.Start, &clip.End,
			&clip.Duration, &clip.Track, &clip.TrimStart, &clip.TrimEnd, &clip.Volume, &muted); err != nil {
			return Snapshot{}, false, fmt.Errorf("scan clip row: %w", err)
		}
		clip.Muted = muted != 0
		snap.Clips = append(snap.Clips, clip)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, false, fmt.Errorf("iterate clips: %w", err)
	}

	return snap, true, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
