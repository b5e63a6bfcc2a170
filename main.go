package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/pressable/internal/app"
	"github.com/llehouerou/pressable/internal/config"
	"github.com/llehouerou/pressable/internal/errmsg"
	"github.com/llehouerou/pressable/internal/history"
	"github.com/llehouerou/pressable/internal/logging"
	"github.com/llehouerou/pressable/internal/notify"
)

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLoadConfig, err))
	}

	logger, closeLog, err := setupLogging(cfg.Log)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpOpenLog, err))
	}
	defer closeLog()

	opts := app.Options{Config: cfg, Logger: logger}

	if cfg.HistoryEnabled() {
		store, err := history.Open(cfg.History.Path, logger)
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpOpenHistory, err))
		}
		defer store.Close()
		opts.History = store
		logger.Info("history session started", "session", store.Session())
	}

	if cfg.Notifications.Desktop {
		n, err := notify.New()
		if err != nil {
			logger.Warn(errmsg.Format(errmsg.OpConnectBus, err))
		} else {
			opts.Notifier = n
			if info, err := notify.Server(n); err == nil {
				logger.Info("notification server", "name", info.Name, "vendor", info.Vendor, "version", info.Version)
			}
		}
	}

	// Actions see this context; it is cancelled once the program exits so
	// in-flight demo work stops.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	opts.Context = ctx

	p := tea.NewProgram(app.New(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func setupLogging(cfg config.LogConfig) (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	path := cfg.File
	if path == "" {
		if path, err = logging.DefaultPath(); err != nil {
			return nil, nil, err
		}
	}

	f, err := logging.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.Configure(logging.Options{Level: level, JSON: cfg.JSON, Output: f})
	return logger, func() { f.Close() }, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
