// Package store provides SQLite persistence for metronome settings and practice sessions.
package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/xonecas/tactus/internal/config"
	"github.com/xonecas/tactus/internal/metronome"
)

// Slot identifies one persisted integer.
type Slot int

// Persisted slots. The numbers are stable storage keys.
const (
	SlotTempo          Slot = 0
	SlotIntensity      Slot = 1
	SlotAccentInterval Slot = 2
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case SlotTempo:
		return "tempo"
	case SlotIntensity:
		return "vibe_duration"
	case SlotAccentInterval:
		return "accent_interval"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Store handles database operations.
type Store struct {
	db *sql.DB
}

// Session represents a practice session.
type Session struct {
	ID             string
	StartedAt      time.Time
	EndedAt        *time.Time
	Tempo          int
	AccentInterval int
	Beats          int64
}

// Open opens the database in the data directory.
func Open() (*Store, error) {
	dataDir, err := config.EnsureDataDir()
	if err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	return OpenPath(filepath.Join(dataDir, "tactus.db"))
}

// OpenPath opens the database at path and ensures the schema exists.
func OpenPath(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=1")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist.
func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			slot INTEGER PRIMARY KEY,
			value INTEGER NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			tempo INTEGER NOT NULL,
			accent_interval INTEGER NOT NULL,
			beats INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_started
		ON sessions(started_at);
	`)
	return err
}

// LoadSlot returns the stored value for slot, or def when nothing is stored.
func (s *Store) LoadSlot(slot Slot, def int) (int, error) {
	var value int
	err := s.db.QueryRow(`SELECT value FROM settings WHERE slot = ?`, int(slot)).Scan(&value)
	if err == sql.ErrNoRows {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("load %s: %w", slot, err)
	}
	return value, nil
}

// SaveSlot stores value for slot.
func (s *Store) SaveSlot(slot Slot, value int) error {
	query := `
		INSERT INTO settings (slot, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.Exec(query, int(slot), value); err != nil {
		return fmt.Errorf("save %s: %w", slot, err)
	}
	return nil
}

// LoadSettings reads all three slots. Missing or out-of-range values fall
// back to their defaults.
func (s *Store) LoadSettings() (metronome.Settings, error) {
	def := metronome.DefaultSettings()

	tempo, err := s.LoadSlot(SlotTempo, def.Tempo)
	if err != nil {
		return def, err
	}
	intensity, err := s.LoadSlot(SlotIntensity, def.Intensity)
	if err != nil {
		return def, err
	}
	accent, err := s.LoadSlot(SlotAccentInterval, def.AccentInterval)
	if err != nil {
		return def, err
	}

	settings := metronome.Settings{
		Tempo:          tempo,
		Intensity:      intensity,
		AccentInterval: accent,
	}
	return settings.Sanitize(), nil
}

// SaveSettings writes all three slots in one transaction.
func (s *Store) SaveSettings(settings metronome.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO settings (slot, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`
	for slot, value := range map[Slot]int{
		SlotTempo:          settings.Tempo,
		SlotIntensity:      settings.Intensity,
		SlotAccentInterval: settings.AccentInterval,
	} {
		if _, err := tx.Exec(query, int(slot), value); err != nil {
			return fmt.Errorf("save %s: %w", slot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings: %w", err)
	}
	return nil
}

// CreateSession records the start of a practice session.
func (s *Store) CreateSession(id string, startedAt time.Time, tempo, accentInterval int) error {
	query := `
		INSERT INTO sessions (id, started_at, tempo, accent_interval)
		VALUES (?, ?, ?, ?)
	`
	if _, err := s.db.Exec(query, id, startedAt.UTC(), tempo, accentInterval); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// EndSession records the end of a practice session with its final state.
func (s *Store) EndSession(id string, endedAt time.Time, tempo, accentInterval int, beats int64) error {
	query := `
		UPDATE sessions
		SET ended_at = ?, tempo = ?, accent_interval = ?, beats = ?
		WHERE id = ?
	`
	result, err := s.db.Exec(query, endedAt.UTC(), tempo, accentInterval, beats, id)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("session '%s' not found", id)
	}
	return nil
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(id string) (*Session, error) {
	query := `
		SELECT id, started_at, ended_at, tempo, accent_interval, beats
		FROM sessions
		WHERE id = ?
	`
	sess, err := scanSession(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// FindSessions returns sessions whose ID starts with prefix.
func (s *Store) FindSessions(prefix string) ([]Session, error) {
	query := `
		SELECT id, started_at, ended_at, tempo, accent_interval, beats
		FROM sessions
		WHERE substr(id, 1, ?) = ?
		ORDER BY started_at DESC
	`
	return s.querySessions(query, len(prefix), prefix)
}

// ListSessions returns sessions ordered by most recent.
func (s *Store) ListSessions(limit int) ([]Session, error) {
	query := `
		SELECT id, started_at, ended_at, tempo, accent_interval, beats
		FROM sessions
		ORDER BY started_at DESC
		LIMIT ?
	`
	return s.querySessions(query, limit)
}

// DeleteSession deletes a session.
func (s *Store) DeleteSession(id string) error {
	result, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("session '%s' not found", id)
	}
	return nil
}

func (s *Store) querySessions(query string, args ...any) ([]Session, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *sess)
	}

	return sessions, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	var sess Session
	var endedAt sql.NullTime
	if err := row.Scan(
		&sess.ID,
		&sess.StartedAt,
		&endedAt,
		&sess.Tempo,
		&sess.AccentInterval,
		&sess.Beats,
	); err != nil {
		return nil, err
	}

	if endedAt.Valid {
		t := endedAt.Time
		sess.EndedAt = &t
	}
	return &sess, nil
}
