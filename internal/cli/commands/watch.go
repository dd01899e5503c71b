package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mamaar/deskcalc/internal/cli"
	"github.com/mamaar/deskcalc/pkg/tape"
	"github.com/mamaar/deskcalc/pkg/watch"
)

// WatchCommand handles the watch command
func WatchCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Error: watch requires exactly 1 argument: <dir|file.tape>\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := Watch(ctx, os.Stdout, args[0], cli.GlobalFlags.Config.WatchDebounce, cli.Logger())
	if errors.Is(err, context.Canceled) {
		return
	}
	exitOnError(err)
}

// Watch replays every tape under root once, then again whenever one
// changes, until ctx is cancelled.
func Watch(ctx context.Context, w io.Writer, root string, debounce time.Duration, logger *slog.Logger) error {
	watcher, err := watch.NewWatcher(root, debounce, logger, tape.Ext)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	replayer := watch.NewReplayer(func(path string, res tape.Result, err error) {
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return
		}
		if err := tape.Format(w, res); err != nil {
			logger.Warn("write trace failed", "path", path, "err", err)
		}
	}, logger)

	existing, err := watcher.Existing()
	if err != nil {
		return err
	}
	replayer.HandleChanges(existing)

	ch := make(chan []watch.ChangeEvent, 4)
	errc := make(chan error, 1)
	go func() {
		errc <- watcher.Run(ctx, ch)
	}()

	logger.Info("watching tapes", "root", root)
	for {
		select {
		case events := <-ch:
			replayer.HandleChanges(events)
		case err := <-errc:
			return err
		}
	}
}
