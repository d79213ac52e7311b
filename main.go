package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/inputkit/padbridge/internal/console"
	"github.com/inputkit/padbridge/internal/gamepad"
	"github.com/inputkit/padbridge/internal/hub"
	"github.com/inputkit/padbridge/internal/logging"
	"github.com/inputkit/padbridge/internal/server"
	"github.com/inputkit/padbridge/internal/tray"
)

// os.Interrupt covers Ctrl+C on every platform; SIGTERM matters for
// service managers on Unix.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	// Console detection may reallocate std streams on Windows, so it
	// runs before the logger captures them.
	fromConsole := console.IsRunningFromConsole()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	backend, err := newBackend(cfg.Backend, log)
	if err != nil {
		log.Error("invalid backend", "error", err)
		os.Exit(1)
	}

	monitor := gamepad.New(backend, log)

	h := hub.NewHub(log)
	go h.Run()
	broadcaster := hub.NewBroadcaster(h, monitor, log)

	srv := server.New(log, h, broadcaster, monitor, getFrontendFS(), cfg.Addr)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	// Native Ctrl+C handling; re-registered after backend start
	// because some backends install their own handler during init.
	consoleRequested := make(chan struct{})
	reregisterHandler := console.SetupConsoleHandler(consoleRequested)

	if err := monitor.Start(broadcaster.HandleEvent); err != nil {
		log.Error("failed to start input backend", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	reregisterHandler()

	log.Info("padbridge started", "url", webURL(cfg.Addr), "backend", cfg.Backend)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	trayRequested := make(chan struct{})
	if runtime.GOOS == "windows" {
		go func() {
			t := tray.New(log, webURL(cfg.Addr), func() {
				close(trayRequested)
			})
			t.Run(tray.GetIcon())
		}()
	} else if fromConsole {
		log.Info("press Ctrl+C to exit")
	}

	select {
	case <-sigCh:
		log.Info("shutting down on signal")
	case <-consoleRequested:
		log.Info("shutting down on console event")
	case <-trayRequested:
		log.Info("shutdown requested from tray")
	case err := <-serverErrCh:
		log.Error("http server error", "error", err)
	}

	monitor.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown error", "error", err)
	}

	log.Info("padbridge stopped")
}
