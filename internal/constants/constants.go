// Package constants provides application-wide constants.
package constants

import "time"

const (
	// AppName is the application name.
	AppName = "tactus"

	// AppDataDir is the directory name for application data.
	AppDataDir = ".config/tactus"
)

// Tempo bounds, in beats per minute.
const (
	MinTempo       = 16
	MaxTempo       = 512
	TempoIncrement = 2
	DefaultTempo   = 128
)

// Pulse defaults.
const (
	// DefaultIntensity is the plain pulse duration in milliseconds.
	DefaultIntensity = 48

	// MaxIntensity caps the plain pulse duration in milliseconds.
	MaxIntensity = 10000

	// AccentMultiplier scales the plain pulse into the accent pulse.
	AccentMultiplier = 3

	// DefaultAccentInterval disables accenting.
	DefaultAccentInterval = 0
)

// Timing constants
const (
	// MillisPerMinute converts a tempo into a beat interval in milliseconds.
	MillisPerMinute = 60000

	// DefaultRepeatRate is the minimum spacing between repeated tempo key presses.
	DefaultRepeatRate = 30 * time.Millisecond

	// InboxDebounce delays reading a message file after a change event.
	InboxDebounce = 100 * time.Millisecond
)
