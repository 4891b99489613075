package haptic

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xonecas/tactus/internal/config"
	"github.com/xonecas/tactus/internal/metronome"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// MIDIDriver drives a tactile transducer over MIDI: a note is held for the
// pattern duration, with a higher velocity (stronger vibration) on accents.
type MIDIDriver struct {
	send func(gomidi.Message) error
	port string

	channel        uint8
	note           uint8
	plainVelocity  uint8
	accentVelocity uint8
}

// OpenMIDI opens the first output port whose name contains cfg.MIDIPort.
func OpenMIDI(cfg config.HapticConfig) (*MIDIDriver, error) {
	out, err := findOutPort(cfg.MIDIPort)
	if err != nil {
		return nil, err
	}

	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("open MIDI port %q: %w", out.String(), err)
	}

	log.Info().Str("port", out.String()).Msg("MIDI haptic output opened")
	return newMIDIDriver(send, out.String(), cfg), nil
}

func newMIDIDriver(send func(gomidi.Message) error, port string, cfg config.HapticConfig) *MIDIDriver {
	return &MIDIDriver{
		send:           send,
		port:           port,
		channel:        uint8(cfg.MIDIChannel),
		note:           uint8(cfg.MIDINote),
		plainVelocity:  uint8(cfg.PlainVelocity),
		accentVelocity: uint8(cfg.AccentVelocity),
	}
}

func findOutPort(name string) (drivers.Out, error) {
	outs := gomidi.GetOutPorts()
	if len(outs) == 0 {
		return nil, fmt.Errorf("no MIDI output ports available")
	}
	if name == "" {
		return outs[0], nil
	}
	for _, out := range outs {
		if strings.Contains(out.String(), name) {
			return out, nil
		}
	}
	return nil, fmt.Errorf("MIDI output port %q not found", name)
}

// Port returns the name of the opened port.
func (d *MIDIDriver) Port() string {
	return d.port
}

// Pulse sends note on, waits for the pattern and sends note off. Note off is
// sent even when cancelled so the device is never left on.
func (d *MIDIDriver) Pulse(ctx context.Context, p metronome.Pattern) error {
	velocity := d.plainVelocity
	if p.IsAccent() {
		velocity = d.accentVelocity
	}

	if err := d.send(gomidi.NoteOn(d.channel, d.note, velocity)); err != nil {
		return fmt.Errorf("send note on: %w", err)
	}

	waitErr := wait(ctx, p.Duration())

	if err := d.send(gomidi.NoteOff(d.channel, d.note)); err != nil {
		return fmt.Errorf("send note off: %w", err)
	}
	return waitErr
}

// Close releases the MIDI driver.
func (d *MIDIDriver) Close() error {
	gomidi.CloseDriver()
	return nil
}
