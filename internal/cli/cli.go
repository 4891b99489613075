// Package cli implements the command-line surface of Tactus: flags, help,
// logging setup, session management commands and the headless runtime.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xonecas/tactus/internal/metronome"
	"github.com/xonecas/tactus/internal/styles"
)

// Op is a headless command operation.
type Op int

const (
	OpNone Op = iota
	OpTempoUp
	OpTempoDown
	OpToggle
	OpAccentUp
	OpAccentDown
	OpIntensity
	OpStatus
	OpQuit
)

// Command is one parsed line of headless input.
type Command struct {
	Op  Op
	Arg int
}

// ParseCommand parses a headless command line. Blank lines parse to OpNone.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, nil
	}

	switch fields[0] {
	case "+", "up":
		return Command{Op: OpTempoUp}, nil
	case "-", "down":
		return Command{Op: OpTempoDown}, nil
	case "t", "toggle":
		return Command{Op: OpToggle}, nil
	case "a+":
		return Command{Op: OpAccentUp}, nil
	case "a-":
		return Command{Op: OpAccentDown}, nil
	case "status":
		return Command{Op: OpStatus}, nil
	case "q", "quit", "exit":
		return Command{Op: OpQuit}, nil
	case "i":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("usage: i <milliseconds>")
		}
		ms, err := strconv.Atoi(fields[1])
		if err != nil || !metronome.ValidIntensity(ms) {
			return Command{}, fmt.Errorf("invalid pulse duration %q", fields[1])
		}
		return Command{Op: OpIntensity, Arg: ms}, nil
	default:
		return Command{}, fmt.Errorf("unknown command %q", fields[0])
	}
}

// Headless drives a scheduler from line commands without a terminal UI.
// Run is the single event loop that owns the scheduler.
type Headless struct {
	sched     *metronome.Scheduler
	out       io.Writer
	intensity chan int
	done      chan struct{}
}

// NewHeadless creates a headless runtime writing status lines to out.
func NewHeadless(sched *metronome.Scheduler, out io.Writer) *Headless {
	return &Headless{
		sched:     sched,
		out:       out,
		intensity: make(chan int),
		done:      make(chan struct{}),
	}
}

// SetIntensity delivers a new pulse duration to the event loop. Safe to call
// from any goroutine; it returns without effect once Run has exited.
func (h *Headless) SetIntensity(ms int) {
	select {
	case h.intensity <- ms:
	case <-h.done:
	}
}

// Run arms the first tick and processes ticks, commands read from in, and
// intensity updates until a quit command, end of input, or ctx is done. The
// scheduler is stopped and the timer released before Run returns.
func (h *Headless) Run(ctx context.Context, in io.Reader) error {
	defer close(h.done)

	tick, ok := h.sched.Start()
	if !ok {
		return fmt.Errorf("scheduler already started")
	}

	timer := time.NewTimer(tick.After)
	defer func() {
		h.sched.Stop()
		timer.Stop()
	}()
	pending := tick

	lines := make(chan string)
	go readLines(in, lines, h.done)

	h.printStatus()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("Headless loop cancelled")
			return nil

		case <-timer.C:
			res, ok := h.sched.OnTick(pending)
			if !ok {
				continue
			}
			pending = res.Next
			timer.Reset(pending.After)
			if res.Played {
				log.Debug().
					Str("kind", res.Pattern.Kind.String()).
					Dur("duration", res.Pattern.Duration()).
					Msg("Beat")
			}

		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(h.out, styles.Muted.Render("Goodbye!"))
				return nil
			}
			cmd, err := ParseCommand(line)
			if err != nil {
				fmt.Fprintln(h.out, styles.Error.Render(err.Error()))
				continue
			}
			if cmd.Op == OpQuit {
				fmt.Fprintln(h.out, styles.Muted.Render("Goodbye!"))
				return nil
			}
			h.apply(cmd)

		case ms := <-h.intensity:
			if !metronome.ValidIntensity(ms) {
				continue
			}
			h.sched.SetIntensity(ms)
			log.Info().Int("intensity", ms).Msg("Pulse duration updated")
			h.printStatus()
		}
	}
}

// apply executes a command against the scheduler.
func (h *Headless) apply(cmd Command) {
	switch cmd.Op {
	case OpNone:
		return
	case OpTempoUp:
		h.sched.TempoIncrement()
	case OpTempoDown:
		h.sched.TempoDecrement()
	case OpToggle:
		h.sched.ToggleRun()
	case OpAccentUp:
		h.sched.AccentIncrement()
	case OpAccentDown:
		h.sched.AccentDecrement()
	case OpIntensity:
		h.sched.SetIntensity(cmd.Arg)
	}
	h.printStatus()
}

func (h *Headless) printStatus() {
	fmt.Fprintln(h.out, StatusLine(h.sched.Snapshot()))
}

// StatusLine formats a one-line summary of the scheduler state.
func StatusLine(snap metronome.Snapshot) string {
	accent := "off"
	if snap.AccentInterval > 0 {
		accent = fmt.Sprintf("every %d", snap.AccentInterval)
	}
	return fmt.Sprintf("%s  %s  %s  %s",
		styles.RunState(snap.Running),
		styles.BrandBold.Render(fmt.Sprintf("%d BPM", snap.Tempo)),
		styles.Secondary.Render("accent "+accent),
		styles.Muted.Render(fmt.Sprintf("pulse %dms  beats %d", snap.Intensity, snap.Beats)),
	)
}

// readLines forwards lines from in until EOF, then closes lines.
func readLines(in io.Reader, lines chan<- string, done <-chan struct{}) {
	defer close(lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to read commands")
	}
}
