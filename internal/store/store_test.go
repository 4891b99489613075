package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xonecas/tactus/internal/metronome"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSlotStorage(t *testing.T) {
	store := openTestStore(t)

	t.Run("missing slot returns default", func(t *testing.T) {
		got, err := store.LoadSlot(SlotTempo, 128)
		if err != nil {
			t.Fatalf("LoadSlot() error: %v", err)
		}
		if got != 128 {
			t.Errorf("LoadSlot() = %d, want 128", got)
		}
	})

	t.Run("save and load", func(t *testing.T) {
		if err := store.SaveSlot(SlotIntensity, 60); err != nil {
			t.Fatalf("SaveSlot() error: %v", err)
		}
		got, err := store.LoadSlot(SlotIntensity, 48)
		if err != nil {
			t.Fatalf("LoadSlot() error: %v", err)
		}
		if got != 60 {
			t.Errorf("LoadSlot() = %d, want 60", got)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		_ = store.SaveSlot(SlotAccentInterval, 3)
		if err := store.SaveSlot(SlotAccentInterval, 7); err != nil {
			t.Fatalf("SaveSlot() error: %v", err)
		}
		got, _ := store.LoadSlot(SlotAccentInterval, 0)
		if got != 7 {
			t.Errorf("LoadSlot() = %d, want 7", got)
		}
	})
}

func TestSettingsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	got, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if got != metronome.DefaultSettings() {
		t.Errorf("empty store LoadSettings() = %+v, want defaults", got)
	}

	want := metronome.Settings{Tempo: 200, Intensity: 30, AccentInterval: 4}
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}

	got, err = store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if got != want {
		t.Errorf("LoadSettings() = %+v, want %+v", got, want)
	}
}

func TestLoadSettingsOutOfRange(t *testing.T) {
	store := openTestStore(t)

	_ = store.SaveSlot(SlotTempo, 9000)
	_ = store.SaveSlot(SlotIntensity, 0)
	_ = store.SaveSlot(SlotAccentInterval, -2)

	got, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if got != metronome.DefaultSettings() {
		t.Errorf("LoadSettings() = %+v, want defaults for invalid slots", got)
	}
}

func TestSessionStorage(t *testing.T) {
	store := openTestStore(t)
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	if err := store.CreateSession("aaaa-1111", start, 120, 0); err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}
	if err := store.CreateSession("bbbb-2222", start.Add(time.Hour), 90, 3); err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}

	t.Run("get open session", func(t *testing.T) {
		sess, err := store.GetSession("aaaa-1111")
		if err != nil {
			t.Fatalf("GetSession() error: %v", err)
		}
		if sess == nil {
			t.Fatal("session not found")
		}
		if sess.EndedAt != nil {
			t.Errorf("EndedAt = %v, want nil", sess.EndedAt)
		}
		if !sess.StartedAt.Equal(start) {
			t.Errorf("StartedAt = %v, want %v", sess.StartedAt, start)
		}
	})

	t.Run("end session", func(t *testing.T) {
		end := start.Add(10 * time.Minute)
		if err := store.EndSession("aaaa-1111", end, 140, 4, 1400); err != nil {
			t.Fatalf("EndSession() error: %v", err)
		}
		sess, _ := store.GetSession("aaaa-1111")
		if sess.EndedAt == nil || !sess.EndedAt.Equal(end) {
			t.Errorf("EndedAt = %v, want %v", sess.EndedAt, end)
		}
		if sess.Tempo != 140 || sess.AccentInterval != 4 || sess.Beats != 1400 {
			t.Errorf("final state = %d/%d/%d, want 140/4/1400", sess.Tempo, sess.AccentInterval, sess.Beats)
		}
	})

	t.Run("end unknown session", func(t *testing.T) {
		if err := store.EndSession("nope", start, 120, 0, 0); err == nil {
			t.Error("expected error for unknown session")
		}
	})

	t.Run("list newest first", func(t *testing.T) {
		sessions, err := store.ListSessions(10)
		if err != nil {
			t.Fatalf("ListSessions() error: %v", err)
		}
		if len(sessions) != 2 {
			t.Fatalf("got %d sessions, want 2", len(sessions))
		}
		if sessions[0].ID != "bbbb-2222" {
			t.Errorf("first session = %s, want bbbb-2222", sessions[0].ID)
		}

		limited, _ := store.ListSessions(1)
		if len(limited) != 1 {
			t.Errorf("ListSessions(1) returned %d", len(limited))
		}
	})

	t.Run("find by prefix", func(t *testing.T) {
		found, err := store.FindSessions("bbbb")
		if err != nil {
			t.Fatalf("FindSessions() error: %v", err)
		}
		if len(found) != 1 || found[0].ID != "bbbb-2222" {
			t.Errorf("FindSessions(bbbb) = %+v", found)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := store.DeleteSession("bbbb-2222"); err != nil {
			t.Fatalf("DeleteSession() error: %v", err)
		}
		sess, err := store.GetSession("bbbb-2222")
		if err != nil {
			t.Fatalf("GetSession() error: %v", err)
		}
		if sess != nil {
			t.Error("session still present after delete")
		}
		if err := store.DeleteSession("bbbb-2222"); err == nil {
			t.Error("expected error deleting missing session")
		}
	})
}

func TestSlotString(t *testing.T) {
	if SlotTempo.String() != "tempo" || SlotIntensity.String() != "vibe_duration" || SlotAccentInterval.String() != "accent_interval" {
		t.Error("unexpected slot names")
	}
	if got := Slot(9).String(); got != "slot(9)" {
		t.Errorf("Slot(9).String() = %q", got)
	}
}
