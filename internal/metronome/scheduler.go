package metronome

import (
	"time"

	"github.com/xonecas/tactus/internal/constants"
)

// Player receives patterns for playback. Play must not block; the scheduler
// never waits for or observes the outcome of a pulse.
type Player interface {
	Play(p Pattern)
}

// PlayerFunc adapts a function to the Player interface.
type PlayerFunc func(p Pattern)

// Play calls f(p).
func (f PlayerFunc) Play(p Pattern) { f(p) }

// Tick is one armed firing of the beat loop. The event loop delivers it back
// to OnTick once After has elapsed.
type Tick struct {
	ID    uint64
	After time.Duration
}

// TickResult describes what happened when a tick fired.
type TickResult struct {
	// Next is the tick that was armed in place of the one that fired.
	Next Tick

	// Played is true when a pattern was handed to the player.
	Played  bool
	Pattern Pattern
}

// Settings holds the three persisted values.
type Settings struct {
	Tempo          int
	Intensity      int
	AccentInterval int
}

// DefaultSettings returns the values used when nothing has been persisted.
func DefaultSettings() Settings {
	return Settings{
		Tempo:          constants.DefaultTempo,
		Intensity:      constants.DefaultIntensity,
		AccentInterval: constants.DefaultAccentInterval,
	}
}

// Sanitize replaces every out-of-range value with its default.
func (s Settings) Sanitize() Settings {
	def := DefaultSettings()
	if !ValidTempo(s.Tempo) {
		s.Tempo = def.Tempo
	}
	if !ValidIntensity(s.Intensity) {
		s.Intensity = def.Intensity
	}
	if s.AccentInterval < 0 {
		s.AccentInterval = def.AccentInterval
	}
	return s
}

// ValidTempo reports whether bpm is inside the supported tempo range.
func ValidTempo(bpm int) bool {
	return bpm >= constants.MinTempo && bpm <= constants.MaxTempo
}

// ValidIntensity reports whether ms is a supported pulse duration.
func ValidIntensity(ms int) bool {
	return ms >= 1 && ms <= constants.MaxIntensity
}

// Snapshot is a read-only copy of the scheduler state.
type Snapshot struct {
	Tempo          int
	Interval       time.Duration
	AccentInterval int
	AccentCounter  int
	Intensity      int
	Running        bool
	Stopped        bool

	// Ticks counts every fired tick, Beats only those that played a pattern.
	Ticks uint64
	Beats uint64
}

// Scheduler owns the metronome state and drives one tick per beat interval.
//
// A Scheduler is not safe for concurrent use. It is meant to be owned by a
// single event loop that serializes ticks, commands and configuration
// messages.
type Scheduler struct {
	engine *Engine
	player Player

	tempo          int
	accentInterval int
	accentCounter  int
	intensity      int
	running        bool

	// pending is the ID of the armed tick, 0 when nothing is armed.
	pending uint64
	lastID  uint64
	stopped bool

	ticks uint64
	beats uint64
}

// New creates a running scheduler from persisted settings. Out-of-range
// settings fall back to their defaults.
func New(settings Settings, player Player) *Scheduler {
	settings = settings.Sanitize()
	return &Scheduler{
		engine:         NewEngine(settings.Intensity),
		player:         player,
		tempo:          settings.Tempo,
		accentInterval: settings.AccentInterval,
		intensity:      settings.Intensity,
		running:        true,
	}
}

// Start arms the first tick. It returns false when a tick is already pending
// or the scheduler has been stopped, so at most one tick is ever armed.
func (s *Scheduler) Start() (Tick, bool) {
	if s.stopped || s.pending != 0 {
		return Tick{}, false
	}
	return s.arm(), true
}

// OnTick handles a fired tick. The next tick is armed before anything else
// happens; the pattern is only played while running. Ticks that are not the
// pending one, or that arrive after Stop, are ignored and return false.
func (s *Scheduler) OnTick(t Tick) (TickResult, bool) {
	if s.stopped || t.ID == 0 || t.ID != s.pending {
		return TickResult{}, false
	}

	res := TickResult{Next: s.arm()}
	s.ticks++

	if !s.running {
		return res, true
	}

	p := s.engine.NextPattern(s.accentInterval, &s.accentCounter)
	if s.player != nil {
		s.player.Play(p)
	}
	s.beats++

	res.Played = true
	res.Pattern = p
	return res, true
}

// Stop cancels the pending tick. Only the first call has an effect; it
// returns true when it did the cancelling.
func (s *Scheduler) Stop() bool {
	if s.stopped {
		return false
	}
	s.stopped = true
	s.pending = 0
	return true
}

func (s *Scheduler) arm() Tick {
	s.lastID++
	s.pending = s.lastID
	return Tick{ID: s.pending, After: s.Interval()}
}

// Interval returns the time between beats at the current tempo.
func (s *Scheduler) Interval() time.Duration {
	return time.Duration(constants.MillisPerMinute/s.tempo) * time.Millisecond
}

// Tempo returns the current tempo in beats per minute.
func (s *Scheduler) Tempo() int {
	return s.tempo
}

// SetTempo changes the tempo. Values outside the supported range are ignored.
func (s *Scheduler) SetTempo(bpm int) {
	if !ValidTempo(bpm) {
		return
	}
	s.tempo = bpm
}

// TempoIncrement raises the tempo by one step unless it is at the maximum.
func (s *Scheduler) TempoIncrement() {
	if s.tempo < constants.MaxTempo {
		s.SetTempo(s.tempo + constants.TempoIncrement)
	}
}

// TempoDecrement lowers the tempo by one step unless it is at the minimum.
func (s *Scheduler) TempoDecrement() {
	if s.tempo > constants.MinTempo {
		s.SetTempo(s.tempo - constants.TempoIncrement)
	}
}

// AccentInterval returns the number of beats between accents, 0 when off.
func (s *Scheduler) AccentInterval() int {
	return s.accentInterval
}

// SetAccentInterval changes the accent interval, flooring at 0, and restarts
// the accent cycle.
func (s *Scheduler) SetAccentInterval(n int) {
	if n < 0 {
		n = 0
	}
	s.accentInterval = n
	s.accentCounter = 0
}

// AccentIncrement lengthens the accent cycle by one beat.
func (s *Scheduler) AccentIncrement() {
	s.SetAccentInterval(s.accentInterval + 1)
}

// AccentDecrement shortens the accent cycle by one beat unless accents are off.
func (s *Scheduler) AccentDecrement() {
	if s.accentInterval > 0 {
		s.SetAccentInterval(s.accentInterval - 1)
	}
}

// Intensity returns the plain pulse duration in milliseconds.
func (s *Scheduler) Intensity() int {
	return s.intensity
}

// SetIntensity changes the pulse duration. Values outside
// [1, constants.MaxIntensity] are ignored.
func (s *Scheduler) SetIntensity(ms int) {
	if !ValidIntensity(ms) {
		return
	}
	s.intensity = ms
	s.engine.SetIntensity(ms)
}

// Running reports whether ticks currently produce pulses.
func (s *Scheduler) Running() bool {
	return s.running
}

// ToggleRun flips between running and paused. Ticks keep firing while
// paused; only playback is skipped.
func (s *Scheduler) ToggleRun() {
	s.running = !s.running
}

// Engine returns the pattern engine.
func (s *Scheduler) Engine() *Engine {
	return s.engine
}

// Settings returns the values to persist.
func (s *Scheduler) Settings() Settings {
	return Settings{
		Tempo:          s.tempo,
		Intensity:      s.intensity,
		AccentInterval: s.accentInterval,
	}
}

// Snapshot returns a copy of the current state.
func (s *Scheduler) Snapshot() Snapshot {
	return Snapshot{
		Tempo:          s.tempo,
		Interval:       s.Interval(),
		AccentInterval: s.accentInterval,
		AccentCounter:  s.accentCounter,
		Intensity:      s.intensity,
		Running:        s.running,
		Stopped:        s.stopped,
		Ticks:          s.ticks,
		Beats:          s.beats,
	}
}
