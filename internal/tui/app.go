// Package tui provides the terminal user interface for Tactus.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/tactus/internal/metronome"
	"github.com/xonecas/tactus/internal/styles"
	"golang.org/x/time/rate"
)

type viewMode int

const (
	viewMain viewMode = iota
	viewSettings
)

// Model is the main TUI model. It is the single event loop that owns the
// scheduler: ticks, key presses and intensity updates all pass through Update.
type Model struct {
	sched     *metronome.Scheduler
	help      help.Model
	statusBar StatusBar

	// repeat throttles held-down tempo keys.
	repeat *rate.Limiter

	view viewMode

	// Beat flash state
	beat    metronome.Pattern
	beatOn  bool
	beatSeq uint64

	width  int
	height int

	ready    bool
	quitting bool
}

// Message types
type (
	// TickMsg is delivered when an armed tick's interval has elapsed.
	TickMsg struct {
		Tick metronome.Tick
	}

	// IntensityMsg carries a pulse duration received from outside the loop.
	IntensityMsg struct {
		Value int
	}

	// BeatClearMsg ends the beat flash it was scheduled for.
	BeatClearMsg struct {
		Seq uint64
	}
)

// NewModel creates a new TUI model driving sched. repeatRate is the minimum
// spacing between accepted tempo key presses; zero disables throttling.
func NewModel(sched *metronome.Scheduler, sessionID string, repeatRate time.Duration) Model {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if repeatRate > 0 {
		limiter = rate.NewLimiter(rate.Every(repeatRate), 1)
	}

	return Model{
		sched:     sched,
		help:      help.New(),
		statusBar: NewStatusBar(80, sessionID),
		repeat:    limiter,
	}
}

// Init arms the first tick.
func (m Model) Init() tea.Cmd {
	t, ok := m.sched.Start()
	if !ok {
		return nil
	}
	return tickCmd(t)
}

func tickCmd(t metronome.Tick) tea.Cmd {
	return tea.Tick(t.After, func(time.Time) tea.Msg {
		return TickMsg{Tick: t}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.statusBar.SetWidth(msg.Width)
		m.ready = true
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case BeatClearMsg:
		if msg.Seq == m.beatSeq {
			m.beatOn = false
		}
		return m, nil

	case IntensityMsg:
		if !metronome.ValidIntensity(msg.Value) {
			return m, nil
		}
		m.sched.SetIntensity(msg.Value)
		log.Info().Int("intensity", msg.Value).Msg("Pulse duration updated")
		return m, m.statusBar.SetNotice(fmt.Sprintf("pulse set to %dms", msg.Value))

	case StatusNoticeClearMsg:
		var cmd tea.Cmd
		m.statusBar, cmd = m.statusBar.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	res, ok := m.sched.OnTick(msg.Tick)
	if !ok {
		return m, nil
	}

	cmds := []tea.Cmd{tickCmd(res.Next)}
	if res.Played {
		m.beatSeq++
		m.beat = res.Pattern
		m.beatOn = true
		seq := m.beatSeq
		cmds = append(cmds, tea.Tick(res.Pattern.Duration(), func(time.Time) tea.Msg {
			return BeatClearMsg{Seq: seq}
		}))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		// Cancel the pending tick before the program tears down.
		m.sched.Stop()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Toggle):
		m.sched.ToggleRun()
		if !m.sched.Running() {
			m.beatOn = false
		}
		return m, nil

	case key.Matches(msg, keys.Settings):
		if m.view == viewSettings {
			m.view = viewMain
		} else {
			m.view = viewSettings
		}
		return m, nil

	case key.Matches(msg, keys.Back):
		m.view = viewMain
		return m, nil

	case key.Matches(msg, keys.AccentUp):
		m.sched.AccentIncrement()
		return m, nil

	case key.Matches(msg, keys.AccentDn):
		m.sched.AccentDecrement()
		return m, nil
	}

	if m.view == viewSettings {
		switch {
		case key.Matches(msg, keys.Up):
			m.sched.AccentIncrement()
		case key.Matches(msg, keys.Down):
			m.sched.AccentDecrement()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		if m.repeat.Allow() {
			m.sched.TempoIncrement()
		}
	case key.Matches(msg, keys.Down):
		if m.repeat.Allow() {
			m.sched.TempoDecrement()
		}
	}
	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	const minWidth = 30
	const minHeight = 10
	if m.width < minWidth || m.height < minHeight {
		return fmt.Sprintf(
			"Terminal too small!\n\nMinimum: %dx%d\nCurrent: %dx%d",
			minWidth, minHeight, m.width, m.height,
		)
	}

	snap := m.sched.Snapshot()

	var body string
	var helpView string
	if m.view == viewSettings {
		body = m.settingsView(snap)
		helpView = m.help.View(settingsKeyMap{keys})
	} else {
		body = m.mainView(snap)
		helpView = m.help.View(keys)
	}

	status := m.statusBar.View(snap)
	bodyHeight := m.height - lipgloss.Height(status) - lipgloss.Height(helpView)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	placed := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body,
		lipgloss.WithWhitespaceBackground(styles.ColorBg))
	content := placed + "\n" + " " + helpView + "\n" + status

	baseStyle := lipgloss.NewStyle().
		Background(styles.ColorBg).
		Width(m.width).
		Height(m.height)

	return baseStyle.Render(content)
}

func (m Model) mainView(snap metronome.Snapshot) string {
	lines := []string{
		m.beatIndicator(),
		"",
		TempoStyle.Render(fmt.Sprintf("%d", snap.Tempo)) + UnitStyle.Render(" BPM"),
		"",
		styles.RunState(snap.Running),
		LabelStyle.Render("accent ") + ValueStyle.Render(accentLabel(snap.AccentInterval)),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m Model) settingsView(snap metronome.Snapshot) string {
	inner := lipgloss.JoinVertical(lipgloss.Center,
		LabelStyle.Render("ACCENT"),
		"",
		TempoStyle.Render(fmt.Sprintf("%d", snap.AccentInterval)),
		"",
		DimmedStyle.Render(accentLabel(snap.AccentInterval)),
	)
	return PanelActiveStyle.Render(inner)
}

// beatIndicator renders the flash for the pattern currently playing.
func (m Model) beatIndicator() string {
	if !m.beatOn {
		return BeatIdleStyle.Render("○")
	}
	if m.beat.IsAccent() {
		return BeatAccentStyle.Render(strings.Repeat("●", 3))
	}
	return BeatPlainStyle.Render("●")
}

func accentLabel(n int) string {
	switch n {
	case 0:
		return "off"
	case 1:
		return "every beat"
	default:
		return fmt.Sprintf("every %d beats", n)
	}
}
