package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/tactus/internal/metronome"
)

// Runner manages the TUI application lifecycle.
type Runner struct {
	program *tea.Program
	sched   *metronome.Scheduler
	ctx     context.Context
}

// NewRunner creates a new TUI runner for sched. The program exits when ctx
// is cancelled.
func NewRunner(
	ctx context.Context,
	sched *metronome.Scheduler,
	sessionID string,
	repeatRate time.Duration,
) (*Runner, error) {
	if sched == nil {
		return nil, fmt.Errorf("scheduler cannot be nil")
	}

	model := NewModel(sched, sessionID, repeatRate)

	r := &Runner{
		sched: sched,
		ctx:   ctx,
	}

	r.program = tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	return r, nil
}

// Run starts the TUI application and blocks until it exits. The scheduler is
// stopped when Run returns, whichever way the program ended.
func (r *Runner) Run() error {
	_, err := r.program.Run()

	// The event loop is gone, so nothing else touches the scheduler now.
	if r.sched.Stop() {
		log.Debug().Msg("Scheduler stopped after program exit")
	}

	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && r.ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// SetIntensity delivers a new pulse duration to the event loop. Safe to call
// from any goroutine.
func (r *Runner) SetIntensity(ms int) {
	r.program.Send(IntensityMsg{Value: ms})
}

// Stop asks the TUI application to quit.
func (r *Runner) Stop() {
	if r.program != nil {
		r.program.Quit()
	}
}
