package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/xonecas/tactus/internal/styles"
)

var (
	// Tempo display
	TempoStyle = lipgloss.NewStyle().
			Foreground(styles.ColorBrand).
			Background(styles.ColorBg).
			Bold(true)

	UnitStyle = lipgloss.NewStyle().
			Foreground(styles.ColorBrandDim).
			Background(styles.ColorBg)

	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.ColorMuted).
			Background(styles.ColorBg)

	ValueStyle = lipgloss.NewStyle().
			Foreground(styles.ColorText).
			Background(styles.ColorBg).
			Bold(true)

	// Beat indicator
	BeatIdleStyle = lipgloss.NewStyle().
			Foreground(styles.ColorBorder).
			Background(styles.ColorBg)

	BeatPlainStyle = lipgloss.NewStyle().
			Foreground(styles.ColorBrand).
			Background(styles.ColorBg).
			Bold(true)

	BeatAccentStyle = lipgloss.NewStyle().
			Foreground(styles.ColorAccent).
			Background(styles.ColorBg).
			Bold(true)

	// Settings view frame
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorBorder).
			Background(styles.ColorBg).
			Padding(1, 4)

	PanelActiveStyle = PanelStyle.
				BorderForeground(styles.ColorBrand)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false). // Top border only
			BorderForeground(styles.ColorBorder).
			Background(styles.ColorBg)

	StatusTextStyle = lipgloss.NewStyle().
			Foreground(styles.ColorMuted).
			Background(styles.ColorBg)

	StatusNoticeStyle = lipgloss.NewStyle().
				Foreground(styles.ColorSuccess).
				Background(styles.ColorBg)

	// Dimmed text
	DimmedStyle = lipgloss.NewStyle().
			Foreground(styles.ColorMuted).
			Background(styles.ColorBg)
)
