package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/tactus/internal/config"
	"github.com/xonecas/tactus/internal/constants"
)

// SetupFileLogging configures logging to files in the data directory, leaving
// the terminal to the TUI.
func SetupFileLogging(debug bool) error {
	// Get data directory
	dataDir, err := config.DataDir()
	if err != nil {
		return fmt.Errorf("get data directory: %w", err)
	}

	// Create logs directory
	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return fmt.Errorf("create logs directory: %w", err)
	}

	logFile := filepath.Join(logDir, constants.AppName+".log")
	//nolint:gosec // G304: Path built from the data directory
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	// Always write JSON to file
	writers := []io.Writer{file}

	// In debug mode, also write human-readable logs to a separate debug file
	if debug {
		debugFile := filepath.Join(logDir, constants.AppName+"-debug.log")
		//nolint:gosec // G304: Path built from the data directory
		debugFileWriter, err := os.OpenFile(debugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open debug log file: %w", err)
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: debugFileWriter, TimeFormat: time.RFC3339})
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	setLevel(debug)

	log.Info().
		Str("log_file", logFile).
		Bool("debug", debug).
		Msg("File logging initialized")

	return nil
}

// SetupConsoleLogging configures human-readable logging to w.
func SetupConsoleLogging(w io.Writer, debug bool) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	setLevel(debug)
}

// WithSession tags every subsequent log line with the practice session ID.
func WithSession(id string) {
	log.Logger = log.Logger.With().Str("session_id", id).Logger()
}

func setLevel(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
