// Package config loads the TOML configuration file and resolves the data directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/xonecas/tactus/internal/constants"
)

// Haptic driver names.
const (
	DriverLog  = "log"
	DriverMIDI = "midi"
	DriverNone = "none"
)

// Config is the root configuration.
type Config struct {
	Haptic HapticConfig `toml:"haptic"`
	Inbox  InboxConfig  `toml:"inbox"`
	Input  InputConfig  `toml:"input"`
}

// HapticConfig selects and tunes the pulse output.
type HapticConfig struct {
	Driver    string `toml:"driver"`
	QueueSize int    `toml:"queue_size"`

	// MIDI driver settings
	MIDIPort       string `toml:"midi_port"`
	MIDIChannel    int    `toml:"midi_channel"`
	MIDINote       int    `toml:"midi_note"`
	AccentVelocity int    `toml:"accent_velocity"`
	PlainVelocity  int    `toml:"plain_velocity"`
}

// InboxConfig controls the inbound configuration message file.
type InboxConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// InputConfig tunes key handling.
type InputConfig struct {
	RepeatRateMS int `toml:"repeat_rate_ms"`
}

// RepeatRate returns the minimum spacing of repeated tempo keys.
func (c InputConfig) RepeatRate() time.Duration {
	return time.Duration(c.RepeatRateMS) * time.Millisecond
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Haptic: HapticConfig{
			Driver:         DriverLog,
			QueueSize:      8,
			MIDIChannel:    9,
			MIDINote:       37,
			AccentVelocity: 127,
			PlainVelocity:  80,
		},
		Inbox: InboxConfig{
			Enabled: true,
		},
		Input: InputConfig{
			RepeatRateMS: int(constants.DefaultRepeatRate / time.Millisecond),
		},
	}
}

// Load reads the config at path on top of the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	return load(path, false)
}

// LoadRequired is Load for a path the user named: a missing file is an error.
func LoadRequired(path string) (*Config, error) {
	return load(path, true)
}

func load(path string, required bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		if required {
			return nil, fmt.Errorf("config path cannot be empty")
		}
		return cfg, nil
	}

	//nolint:gosec // G304: Path comes from flags or the data directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Haptic.Driver {
	case DriverLog, DriverMIDI, DriverNone:
	default:
		return fmt.Errorf("invalid haptic driver %q (want %s, %s or %s)", c.Haptic.Driver, DriverLog, DriverMIDI, DriverNone)
	}
	if c.Haptic.QueueSize < 1 {
		return fmt.Errorf("haptic.queue_size must be positive, got %d", c.Haptic.QueueSize)
	}
	if c.Haptic.MIDIChannel < 0 || c.Haptic.MIDIChannel > 15 {
		return fmt.Errorf("haptic.midi_channel must be 0-15, got %d", c.Haptic.MIDIChannel)
	}
	for name, v := range map[string]int{
		"midi_note":       c.Haptic.MIDINote,
		"accent_velocity": c.Haptic.AccentVelocity,
		"plain_velocity":  c.Haptic.PlainVelocity,
	} {
		if v < 0 || v > 127 {
			return fmt.Errorf("haptic.%s must be 0-127, got %d", name, v)
		}
	}
	if c.Input.RepeatRateMS < 1 {
		return fmt.Errorf("input.repeat_rate_ms must be positive, got %d", c.Input.RepeatRateMS)
	}
	return nil
}

// InboxPath returns the message file path, defaulting into the data directory.
func (c *Config) InboxPath() (string, error) {
	if c.Inbox.Path != "" {
		return c.Inbox.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "inbox.json"), nil
}

// DataDir returns the application data directory.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, constants.AppDataDir), nil
}

// EnsureDataDir creates the data directory if needed and returns its path.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dir, nil
}

// ResolvePath picks the config file: the explicit path, then ./config.toml,
// then config.toml in the data directory.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat("config.toml"); err == nil {
		return "config.toml"
	}
	dir, err := DataDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}
