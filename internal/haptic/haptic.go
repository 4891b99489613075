// Package haptic plays metronome patterns on a pulse output device.
package haptic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xonecas/tactus/internal/config"
	"github.com/xonecas/tactus/internal/metronome"
)

// Driver renders one pattern on a device. Pulse may block for the length of
// the pattern and must return early when ctx is cancelled.
type Driver interface {
	Pulse(ctx context.Context, p metronome.Pattern) error
	Close() error
}

// Open creates the driver named in cfg.
func Open(cfg config.HapticConfig) (Driver, error) {
	switch cfg.Driver {
	case config.DriverLog:
		return LogDriver{}, nil
	case config.DriverNone:
		return NopDriver{}, nil
	case config.DriverMIDI:
		d, err := OpenMIDI(cfg)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown haptic driver %q", cfg.Driver)
	}
}

// Queue feeds a driver from a buffered channel on its own goroutine.
// Play never blocks: patterns that do not fit are dropped.
type Queue struct {
	driver Driver
	ch     chan metronome.Pattern

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewQueue starts a queue of the given capacity in front of driver.
func NewQueue(driver Driver, size int) *Queue {
	if size < 1 {
		size = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		driver: driver,
		ch:     make(chan metronome.Pattern, size),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go q.run()
	return q
}

// Play enqueues p for playback.
func (q *Queue) Play(p metronome.Pattern) {
	if q.ctx.Err() != nil {
		q.dropped.Add(1)
		return
	}
	select {
	case q.ch <- p:
	default:
		n := q.dropped.Add(1)
		log.Debug().
			Str("kind", p.Kind.String()).
			Uint64("dropped", n).
			Msg("Haptic queue full, pulse dropped")
	}
}

// Played returns how many pulses the driver finished.
func (q *Queue) Played() uint64 {
	return q.played.Load()
}

// Dropped returns how many pulses were discarded.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

// Close cancels the pulse in progress, discards queued pulses, waits for the
// worker and closes the driver.
func (q *Queue) Close() error {
	var err error
	q.once.Do(func() {
		q.cancel()
		<-q.done
		err = q.driver.Close()
	})
	return err
}

func (q *Queue) run() {
	defer close(q.done)
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("Panic in haptic worker")
		}
	}()

	for {
		select {
		case <-q.ctx.Done():
			return
		case p := <-q.ch:
			if err := q.driver.Pulse(q.ctx, p); err != nil {
				if !errors.Is(err, context.Canceled) {
					log.Warn().Err(err).Str("kind", p.Kind.String()).Msg("Pulse failed")
				}
				continue
			}
			q.played.Add(1)
		}
	}
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// LogDriver writes one log line per pulse and holds for its duration.
type LogDriver struct{}

// Pulse logs p.
func (LogDriver) Pulse(ctx context.Context, p metronome.Pattern) error {
	log.Info().
		Str("kind", p.Kind.String()).
		Dur("duration", p.Duration()).
		Msg("Pulse")
	return wait(ctx, p.Duration())
}

// Close is a no-op.
func (LogDriver) Close() error { return nil }

// NopDriver discards pulses.
type NopDriver struct{}

// Pulse does nothing.
func (NopDriver) Pulse(context.Context, metronome.Pattern) error { return nil }

// Close is a no-op.
func (NopDriver) Close() error { return nil }
