// Package metronome implements the beat scheduler and the vibration pattern
// engine behind it.
package metronome

import (
	"time"

	"github.com/xonecas/tactus/internal/constants"
)

// Kind identifies a pattern as a plain beat or an accented beat.
type Kind int

const (
	// Plain is the pulse played on ordinary beats.
	Plain Kind = iota
	// Accent is the longer pulse played on every Nth beat.
	Accent
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Accent:
		return "accent"
	default:
		return "unknown"
	}
}

// Pattern is a haptic waveform: alternating on/off segments starting with on.
// Patterns are immutable once built and are shared by value.
type Pattern struct {
	Kind     Kind
	Segments []time.Duration
}

// Duration returns the total length of the pattern.
func (p Pattern) Duration() time.Duration {
	var total time.Duration
	for _, s := range p.Segments {
		total += s
	}
	return total
}

// IsAccent reports whether the pattern marks an accented beat.
func (p Pattern) IsAccent() bool {
	return p.Kind == Accent
}

// Engine derives the plain and accent patterns from the vibration intensity
// and picks one of them on every beat.
type Engine struct {
	plain  Pattern
	accent Pattern
}

// NewEngine creates an engine with patterns built from intensity.
func NewEngine(intensity int) *Engine {
	e := &Engine{}
	e.SetIntensity(intensity)
	return e
}

// SetIntensity rebuilds both patterns. The plain pulse lasts intensity
// milliseconds and the accent pulse lasts three times as long.
// Callers must pass a value accepted by ValidIntensity.
func (e *Engine) SetIntensity(intensity int) {
	d := time.Duration(intensity) * time.Millisecond
	e.plain = Pattern{Kind: Plain, Segments: []time.Duration{d}}
	e.accent = Pattern{Kind: Accent, Segments: []time.Duration{d * constants.AccentMultiplier}}
}

// Plain returns the current plain pattern.
func (e *Engine) Plain() Pattern {
	return e.plain
}

// Accent returns the current accent pattern.
func (e *Engine) Accent() Pattern {
	return e.accent
}

// NextPattern advances counter toward the next accent and returns the pattern
// for this beat. With interval 0 every beat is plain and counter is untouched.
func (e *Engine) NextPattern(interval int, counter *int) Pattern {
	if interval <= 0 {
		return e.plain
	}

	*counter++
	if *counter >= interval {
		*counter = 0
		return e.accent
	}
	return e.plain
}
