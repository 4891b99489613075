// Package session records practice sessions: one per run of the metronome.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/tactus/internal/metronome"
	"github.com/xonecas/tactus/internal/store"
)

// Manager handles session creation, completion, and management.
type Manager struct {
	db  *store.Store
	now func() time.Time
}

// NewManager creates a new session manager.
func NewManager(db *store.Store) *Manager {
	return &Manager{db: db, now: time.Now}
}

// Begin creates a session for a run starting with the given settings and
// returns its ID.
func (m *Manager) Begin(settings metronome.Settings) (string, error) {
	id := uuid.New().String()
	if err := m.db.CreateSession(id, m.now(), settings.Tempo, settings.AccentInterval); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	log.Info().
		Str("session_id", id).
		Int("tempo", settings.Tempo).
		Int("accent_interval", settings.AccentInterval).
		Msg("Session started")
	return id, nil
}

// End closes a session with the scheduler's final state.
func (m *Manager) End(id string, snap metronome.Snapshot) error {
	if id == "" {
		return fmt.Errorf("session id cannot be empty")
	}
	if err := m.db.EndSession(id, m.now(), snap.Tempo, snap.AccentInterval, int64(snap.Beats)); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	log.Info().
		Str("session_id", id).
		Uint64("beats", snap.Beats).
		Msg("Session ended")
	return nil
}

// List returns recent sessions.
func (m *Manager) List(limit int) ([]store.Session, error) {
	sessions, err := m.db.ListSessions(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// Resolve finds a session by full ID or unique ID prefix.
func (m *Manager) Resolve(idOrPrefix string) (*store.Session, error) {
	if idOrPrefix == "" {
		return nil, fmt.Errorf("session id cannot be empty")
	}

	matches, err := m.db.FindSessions(idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("session '%s' not found", idOrPrefix)
	case 1:
		return &matches[0], nil
	default:
		for i := range matches {
			if matches[i].ID == idOrPrefix {
				return &matches[i], nil
			}
		}
		return nil, fmt.Errorf("session prefix '%s' is ambiguous (%d matches)", idOrPrefix, len(matches))
	}
}

// Delete removes a session by full ID or unique prefix.
func (m *Manager) Delete(idOrPrefix string) (*store.Session, error) {
	sess, err := m.Resolve(idOrPrefix)
	if err != nil {
		return nil, err
	}
	if err := m.db.DeleteSession(sess.ID); err != nil {
		return nil, fmt.Errorf("failed to delete session: %w", err)
	}
	log.Info().Str("session_id", sess.ID).Msg("Deleted session")
	return sess, nil
}

// Length returns how long a session ran, or has been running so far.
func Length(sess store.Session, now time.Time) time.Duration {
	end := now
	if sess.EndedAt != nil {
		end = *sess.EndedAt
	}
	if end.Before(sess.StartedAt) {
		return 0
	}
	return end.Sub(sess.StartedAt)
}

// FormatDuration formats a duration in a human-readable way.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	days := int(d.Hours() / 24)
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// FormatAgo formats the time elapsed since a past moment.
func FormatAgo(d time.Duration) string {
	s := FormatDuration(d)
	if s == "just now" {
		return s
	}
	return s + " ago"
}
