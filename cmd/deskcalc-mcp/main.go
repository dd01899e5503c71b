package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mamaar/deskcalc/internal/cli"
	"github.com/mamaar/deskcalc/internal/config"
	"github.com/mamaar/deskcalc/internal/history"
	internalmcp "github.com/mamaar/deskcalc/internal/mcp"
)

func main() {
	versionFlag := flag.Bool("version", false, "Show version information")
	httpFlag := flag.String("http", "", "Serve streamable HTTP on this address instead of stdio")

	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if *versionFlag {
		fmt.Printf("deskcalc-mcp version %s\n", cli.Version)
		return
	}

	// stdout carries the protocol; logs go to stderr.
	logger, err := config.NewLogger(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *httpFlag, logger); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, httpAddr string, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *history.Store
	if cfg.HistoryDB != "" {
		var err error
		store, err = history.Open(ctx, cfg.HistoryDB)
		if err != nil {
			return err
		}
		logger.Info("recording history", "path", cfg.HistoryDB)
	}
	state := internalmcp.NewCalcServer(store, logger)
	defer state.Close()

	server := mcpsdk.NewServer(&mcpsdk.Implementation{Name: "deskcalc", Version: cli.Version}, nil)
	internalmcp.RegisterAllTools(server, state)

	if httpAddr == "" {
		logger.Info("serving on stdio")
		err := server.Run(ctx, &mcpsdk.StdioTransport{})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	handler := mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server { return server }, nil)
	srv := &http.Server{Addr: httpAddr, Handler: handler}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	logger.Info("serving streamable HTTP", "addr", httpAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
