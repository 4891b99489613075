// Package styles provides the shared terminal color palette and text styles.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors - amber on black, like a stage metronome display.
var (
	// Brand colors
	ColorBrand    = lipgloss.Color("#FFB000") // Amber
	ColorBrandDim = lipgloss.Color("#996A00") // Dimmed amber for subtle accents
	ColorAccent   = lipgloss.Color("#FF5F1F") // Orange flash for accented beats

	// Semantic colors
	ColorOn      = lipgloss.Color("#00FF66") // Running
	ColorOff     = lipgloss.Color("#FF3366") // Paused
	ColorError   = lipgloss.Color("#FF3366")
	ColorSuccess = lipgloss.Color("#00FF66")
	ColorMuted   = lipgloss.Color("#6C6C6C")
	ColorText    = lipgloss.Color("#EEEEEE")

	// Backgrounds
	ColorBg     = lipgloss.Color("#000000")
	ColorBorder = lipgloss.Color("#3A3A3A")
)

// CLI text styles
var (
	Brand = lipgloss.NewStyle().
		Foreground(ColorBrand)

	BrandBold = lipgloss.NewStyle().
			Foreground(ColorBrand).
			Bold(true)

	Secondary = lipgloss.NewStyle().
			Foreground(ColorBrandDim)

	Muted = lipgloss.NewStyle().
		Foreground(ColorMuted)

	Error = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	Success = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)
)

// Base styles
var (
	BaseStyle = lipgloss.NewStyle().
			Background(ColorBg)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBrand)
)

// RunState renders ON or OFF in its state color.
func RunState(running bool) string {
	if running {
		return lipgloss.NewStyle().Foreground(ColorOn).Bold(true).Render("ON")
	}
	return lipgloss.NewStyle().Foreground(ColorOff).Bold(true).Render("OFF")
}
