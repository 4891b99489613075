package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xonecas/tactus/internal/metronome"
)

// noticeTimeout is how long a notice stays in the status bar.
const noticeTimeout = 3 * time.Second

// StatusBar shows pulse statistics and short-lived notices.
type StatusBar struct {
	width int

	notice    string
	noticeSeq uint64
	sessionID string
}

// StatusNoticeClearMsg clears the notice it was scheduled for.
type StatusNoticeClearMsg struct {
	Seq uint64
}

// NewStatusBar creates a new status bar.
func NewStatusBar(width int, sessionID string) StatusBar {
	return StatusBar{
		width:     width,
		sessionID: sessionID,
	}
}

// Update handles status bar messages.
func (s StatusBar) Update(msg tea.Msg) (StatusBar, tea.Cmd) {
	if cm, ok := msg.(StatusNoticeClearMsg); ok {
		// A newer notice replaced this one; leave it alone.
		if cm.Seq == s.noticeSeq {
			s.notice = ""
		}
	}
	return s, nil
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetNotice shows text until noticeTimeout elapses or another notice replaces it.
func (s *StatusBar) SetNotice(text string) tea.Cmd {
	s.noticeSeq++
	s.notice = text
	seq := s.noticeSeq
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
		return StatusNoticeClearMsg{Seq: seq}
	})
}

// Notice returns the notice currently shown.
func (s StatusBar) Notice() string {
	return s.notice
}

// View renders the status bar for the given scheduler state.
func (s StatusBar) View(snap metronome.Snapshot) string {
	left := StatusTextStyle.Render(fmt.Sprintf(
		" pulse %dms  beats %d", snap.Intensity, snap.Beats,
	))
	if s.notice != "" {
		left += StatusTextStyle.Render("  ") + StatusNoticeStyle.Render(s.notice)
	}

	right := ""
	if len(s.sessionID) >= 8 {
		right = StatusTextStyle.Render("session " + s.sessionID[:8] + " ")
	}

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + StatusTextStyle.Render(fmt.Sprintf("%*s", gap, "")) + right

	return StatusBarStyle.Width(s.width).Render(line)
}
