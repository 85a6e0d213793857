package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hollis/appshell/internal/config"
	"github.com/hollis/appshell/internal/history"
	hsqlite "github.com/hollis/appshell/internal/history/sqlite"
	"github.com/hollis/appshell/internal/logger"
	"github.com/hollis/appshell/internal/metrics"
	"github.com/hollis/appshell/internal/server"
	"github.com/hollis/appshell/internal/sidecar"
)

const shutdownWait = 5 * time.Second

// runShell is the shell's startup sequence: initialize the process supervisor
// before the event loop, then block until the operator quits. Any supervisor
// error in release mode aborts startup.
func runShell(flags *GlobalFlags) error {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	mode, err := cfg.ResolveMode(flags.Mode)
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel, os.Stderr)
	slog.SetDefault(log)

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return err
	}

	spec, err := cfg.SidecarSpec()
	if err != nil {
		return err
	}

	opts := sidecar.Options{Mode: mode, Spec: spec, Logger: log}
	if cfg.History.DSN != "" {
		sink, err := hsqlite.New(cfg.History.DSN)
		if err != nil {
			// History is best-effort; a broken DB must not block the shell.
			log.Warn("launch history disabled", "dsn", cfg.History.DSN, "error", err)
		} else {
			recorder := history.NewRecorder(sink, log)
			opts.RecordSpawn = recorder.RecordSpawn
			opts.RecordExit = recorder.RecordExit
			defer func() { _ = recorder.Close() }()
		}
	}

	sup := sidecar.New(opts)
	if err := sup.Initialize(); err != nil {
		return fmt.Errorf("startup aborted: %w", err)
	}

	var ctrl *http.Server
	if cfg.Control.Enabled {
		ctrl, err = server.NewServer(cfg.Control.Addr, sup)
		if err != nil {
			return err
		}
		log.Info("control surface listening", "addr", cfg.Control.Addr)
	}

	// The windowing runtime owns the real event loop; this process stands in
	// for it by blocking until the operator quits the shell.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	if ctrl != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		_ = ctrl.Shutdown(shutdownCtx)
		cancel()
	}
	return sup.Shutdown(shutdownWait)
}
