package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xonecas/tactus/internal/constants"
	"github.com/xonecas/tactus/internal/metronome"
)

type recorder struct {
	played []metronome.Pattern
}

func (r *recorder) Play(p metronome.Pattern) {
	r.played = append(r.played, p)
}

func newTestModel(t *testing.T, settings metronome.Settings, repeat time.Duration) (Model, *metronome.Scheduler, *recorder) {
	t.Helper()
	rec := &recorder{}
	sched := metronome.New(settings, rec)
	m := NewModel(sched, "0123456789abcdef", repeat)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model), sched, rec
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestInitArmsFirstTick(t *testing.T) {
	m, sched, _ := newTestModel(t, metronome.DefaultSettings(), 0)

	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() returned no tick command")
	}
	if _, ok := sched.Start(); ok {
		t.Error("second Start() armed another tick")
	}
}

func TestTickPlaysAndFlashes(t *testing.T) {
	m, _, rec := newTestModel(t, metronome.Settings{Tempo: 120, Intensity: 40, AccentInterval: 2}, 0)
	m.Init()

	m, cmd := update(t, m, TickMsg{Tick: metronome.Tick{ID: 1}})
	if cmd == nil {
		t.Fatal("tick did not re-arm")
	}
	if len(rec.played) != 1 {
		t.Fatalf("played %d patterns, want 1", len(rec.played))
	}
	if !m.beatOn {
		t.Error("beat flash not shown")
	}

	m, _ = update(t, m, BeatClearMsg{Seq: m.beatSeq})
	if m.beatOn {
		t.Error("beat flash not cleared")
	}

	// The pending tick is now 2; a stale tick must be ignored.
	m, cmd = update(t, m, TickMsg{Tick: metronome.Tick{ID: 1}})
	if cmd != nil || len(rec.played) != 1 {
		t.Error("stale tick was handled")
	}

	m, _ = update(t, m, TickMsg{Tick: metronome.Tick{ID: 2}})
	if len(rec.played) != 2 || !rec.played[1].IsAccent() {
		t.Errorf("second beat should be accented, got %+v", rec.played)
	}
}

func TestStaleBeatClearKeepsFlash(t *testing.T) {
	m, _, _ := newTestModel(t, metronome.DefaultSettings(), 0)
	m.Init()

	m, _ = update(t, m, TickMsg{Tick: metronome.Tick{ID: 1}})
	m, _ = update(t, m, TickMsg{Tick: metronome.Tick{ID: 2}})
	m, _ = update(t, m, BeatClearMsg{Seq: m.beatSeq - 1})
	if !m.beatOn {
		t.Error("clear for an earlier beat ended the current flash")
	}
}

func TestTempoKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want int
	}{
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, constants.DefaultTempo + constants.TempoIncrement},
		{"k", runeKey('k'), constants.DefaultTempo + constants.TempoIncrement},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, constants.DefaultTempo - constants.TempoIncrement},
		{"j", runeKey('j'), constants.DefaultTempo - constants.TempoIncrement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, sched, _ := newTestModel(t, metronome.DefaultSettings(), 0)
			update(t, m, tt.key)
			if got := sched.Tempo(); got != tt.want {
				t.Errorf("tempo = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTempoKeyRepeatThrottled(t *testing.T) {
	m, sched, _ := newTestModel(t, metronome.DefaultSettings(), time.Hour)

	for range 5 {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	if got := sched.Tempo(); got != constants.DefaultTempo+constants.TempoIncrement {
		t.Errorf("tempo = %d, want a single step", got)
	}
}

func TestToggleKeepsCadence(t *testing.T) {
	m, sched, rec := newTestModel(t, metronome.DefaultSettings(), 0)
	m.Init()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if sched.Running() {
		t.Fatal("enter did not pause")
	}

	m, cmd := update(t, m, TickMsg{Tick: metronome.Tick{ID: 1}})
	if cmd == nil {
		t.Error("paused tick did not re-arm")
	}
	if len(rec.played) != 0 {
		t.Error("paused tick played a pattern")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !sched.Running() {
		t.Fatal("space did not resume")
	}
	update(t, m, TickMsg{Tick: metronome.Tick{ID: 2}})
	if len(rec.played) != 1 {
		t.Errorf("played %d after resume, want 1", len(rec.played))
	}
}

func TestSettingsView(t *testing.T) {
	m, sched, _ := newTestModel(t, metronome.DefaultSettings(), 0)

	m, _ = update(t, m, runeKey('s'))
	if m.view != viewSettings {
		t.Fatal("s did not open settings")
	}
	if !strings.Contains(m.View(), "ACCENT") {
		t.Error("settings view missing ACCENT label")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if got := sched.AccentInterval(); got != 1 {
		t.Errorf("accent = %d, want 1", got)
	}
	if got := sched.Tempo(); got != constants.DefaultTempo {
		t.Errorf("tempo changed in settings view: %d", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMain {
		t.Error("esc did not close settings")
	}
}

func TestAccentKeysFloorAtZero(t *testing.T) {
	m, sched, _ := newTestModel(t, metronome.DefaultSettings(), 0)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := sched.AccentInterval(); got != 0 {
		t.Errorf("accent = %d, want 0", got)
	}
	update(t, m, runeKey('l'))
	if got := sched.AccentInterval(); got != 1 {
		t.Errorf("accent = %d, want 1", got)
	}
}

func TestIntensityMsg(t *testing.T) {
	m, sched, _ := newTestModel(t, metronome.DefaultSettings(), 0)

	m, cmd := update(t, m, IntensityMsg{Value: 75})
	if sched.Intensity() != 75 {
		t.Errorf("intensity = %d, want 75", sched.Intensity())
	}
	if cmd == nil || m.statusBar.Notice() == "" {
		t.Error("intensity change not announced")
	}

	m, _ = update(t, m, StatusNoticeClearMsg{Seq: m.statusBar.noticeSeq})
	if m.statusBar.Notice() != "" {
		t.Error("notice not cleared")
	}

	for _, v := range []int{0, constants.MaxIntensity + 1} {
		m, cmd = update(t, m, IntensityMsg{Value: v})
		if cmd != nil || sched.Intensity() != 75 {
			t.Errorf("IntensityMsg{%d} applied: %d", v, sched.Intensity())
		}
	}
}

func TestQuitStopsScheduler(t *testing.T) {
	for _, k := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}} {
		t.Run(k.String(), func(t *testing.T) {
			m, sched, rec := newTestModel(t, metronome.DefaultSettings(), 0)
			m.Init()

			m, cmd := update(t, m, k)
			if cmd == nil {
				t.Fatal("quit returned no command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("quit command is not tea.Quit")
			}
			if !sched.Snapshot().Stopped {
				t.Error("scheduler not stopped on quit")
			}

			// The tick already in flight arrives after teardown.
			update(t, m, TickMsg{Tick: metronome.Tick{ID: 1}})
			if len(rec.played) != 0 {
				t.Error("tick after quit played a pattern")
			}
		})
	}
}

func TestViewRendersState(t *testing.T) {
	m, _, _ := newTestModel(t, metronome.Settings{Tempo: 96, Intensity: 48, AccentInterval: 4}, 0)

	view := m.View()
	for _, want := range []string{"96", "BPM", "ON", "every 4 beats", "session 01234567"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = update(t, m, runeKey(' '))
	if !strings.Contains(m.View(), "OFF") {
		t.Error("paused view missing OFF")
	}
}

func TestAccentLabel(t *testing.T) {
	tests := map[int]string{0: "off", 1: "every beat", 3: "every 3 beats"}
	for n, want := range tests {
		if got := accentLabel(n); got != want {
			t.Errorf("accentLabel(%d) = %q, want %q", n, got, want)
		}
	}
}
