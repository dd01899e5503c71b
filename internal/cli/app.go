package cli

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/mamaar/deskcalc/internal/config"
	"github.com/mamaar/deskcalc/internal/history"
	"github.com/mamaar/deskcalc/pkg/calc"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// App represents the deskcalc application
type App struct {
	flags *Flags
}

// NewApp creates a new application instance
func NewApp() *App {
	return &App{}
}

// Initialize sets up the application with flags and configuration
func (app *App) Initialize() {
	log.SetFlags(0) // Remove timestamp from log output
	ParseFlags(Usage)
	app.flags = GlobalFlags

	l, err := config.NewLogger(app.flags.Config, os.Stderr)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	logger = l
}

// Run executes the application logic with the provided runner
func (app *App) Run(runner *Runner) {
	if *app.flags.Version {
		ShowVersion()
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		Usage()
		os.Exit(1)
	}

	runner.Execute(args[0], args[1:])
}

// Logger returns the application logger.
func Logger() *slog.Logger {
	return logger
}

// OpenHistory opens the configured history store. It returns nil when
// history is disabled.
func OpenHistory(ctx context.Context) (*history.Store, error) {
	if GlobalFlags == nil || GlobalFlags.Config.HistoryDB == "" {
		return nil, nil
	}
	return history.Open(ctx, GlobalFlags.Config.HistoryDB)
}

// SessionRecorder returns a step hook that records evaluations of the
// configured session to store, or nil when store is nil.
func SessionRecorder(ctx context.Context, store *history.Store) calc.StepFunc {
	if store == nil {
		return nil
	}
	return store.Recorder(ctx, GlobalFlags.Config.Session, logger)
}
