package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/xonecas/tactus/internal/cli"
	"github.com/xonecas/tactus/internal/config"
	"github.com/xonecas/tactus/internal/haptic"
	"github.com/xonecas/tactus/internal/inbox"
	"github.com/xonecas/tactus/internal/metronome"
	"github.com/xonecas/tactus/internal/session"
	"github.com/xonecas/tactus/internal/store"
	"github.com/xonecas/tactus/internal/styles"
	"github.com/xonecas/tactus/internal/tui"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Error.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// eventLoop is the event loop that owns the scheduler for the life of the run.
type eventLoop interface {
	SetIntensity(ms int)
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Parse flags
	flags := cli.ParseFlags(Version)

	// Initialize logging
	if flags.Headless || flags.ListSessions || flags.DeleteSession != "" {
		cli.SetupConsoleLogging(os.Stderr, flags.Debug)
	} else if err := cli.SetupFileLogging(flags.Debug); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	log.Info().
		Str("version", Version).
		Str("config", flags.ConfigPath).
		Msg("Starting Tactus")

	// Load config; only a path the user named has to exist
	load := config.Load
	if flags.ConfigSet {
		load = config.LoadRequired
	}
	cfg, err := load(flags.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Open database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}()

	sessionMgr := session.NewManager(db)

	// Handle special commands
	if flags.ListSessions {
		return cli.ListSessionsCmd(sessionMgr)
	}
	if flags.DeleteSession != "" {
		return cli.DeleteSessionCmd(sessionMgr, flags.DeleteSession)
	}

	settings, err := db.LoadSettings()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load settings, using defaults")
		settings = metronome.DefaultSettings()
	}

	// Haptic output
	driver, err := haptic.Open(cfg.Haptic)
	if err != nil {
		return fmt.Errorf("failed to open haptic driver: %w", err)
	}
	queue := haptic.NewQueue(driver, cfg.Haptic.QueueSize)
	log.Info().Str("driver", cfg.Haptic.Driver).Msg("Haptic output ready")

	sched := metronome.New(settings, queue)

	sessionID, err := sessionMgr.Begin(sched.Settings())
	if err != nil {
		_ = queue.Close()
		return err
	}
	cli.WithSession(sessionID)

	// Build the runtime that owns the scheduler
	var rt eventLoop
	var runLoop func() error
	if flags.Headless {
		h := cli.NewHeadless(sched, os.Stdout)
		rt = h
		runLoop = func() error { return h.Run(ctx, os.Stdin) }
	} else {
		r, err := tui.NewRunner(ctx, sched, sessionID, cfg.Input.RepeatRate())
		if err != nil {
			_ = queue.Close()
			return fmt.Errorf("failed to create tui: %w", err)
		}
		rt = r
		runLoop = r.Run
	}

	// Inbound configuration messages
	watchCtx, cancelWatch := context.WithCancel(ctx)
	var watchWG sync.WaitGroup
	if cfg.Inbox.Enabled {
		path, err := cfg.InboxPath()
		if err != nil {
			log.Warn().Err(err).Msg("Inbox disabled")
		} else {
			watcher := inbox.NewWatcher(path, rt.SetIntensity)
			watchWG.Add(1)
			go func() {
				defer watchWG.Done()
				if err := watcher.Run(watchCtx); err != nil {
					log.Warn().Err(err).Str("path", path).Msg("Inbox watcher stopped")
				}
			}()
		}
	}

	// Runs until quit; the scheduler is stopped when it returns.
	runErr := runLoop()

	// Teardown in order: watcher, haptic queue, settings, session.
	cancelWatch()
	watchWG.Wait()

	if err := queue.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close haptic output")
	}
	log.Info().
		Uint64("played", queue.Played()).
		Uint64("dropped", queue.Dropped()).
		Msg("Haptic output closed")

	if err := db.SaveSettings(sched.Settings()); err != nil {
		log.Warn().Err(err).Msg("Failed to save settings")
	}

	if err := sessionMgr.End(sessionID, sched.Snapshot()); err != nil {
		log.Warn().Err(err).Msg("Failed to end session")
	}

	return runErr
}
