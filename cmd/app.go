package cmd

import (
	"errors"
	"io"
	"log/slog"

	"github.com/Tiliavir/gh-wizard/internal/config"
	"github.com/Tiliavir/gh-wizard/internal/logging"
	"github.com/Tiliavir/gh-wizard/internal/priority"
	"github.com/Tiliavir/gh-wizard/internal/session"
	"github.com/Tiliavir/gh-wizard/internal/stats"
	"github.com/Tiliavir/gh-wizard/internal/storage"
	"github.com/Tiliavir/gh-wizard/internal/timer"
)

// app wires the components for one command invocation.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	store    storage.Store
	sessions *session.Manager
	matrix   *priority.Matrix
	stats    *stats.Recorder
	timer    *timer.Timer
	logFile  io.Closer
}

func configPath() (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	return config.DefaultPath()
}

func loadConfig() (config.Config, error) {
	path, err := configPath()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	return cfg, nil
}

func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, logFile, err := logging.New(cfg.DataDir, cfg.LogLevel, verboseFlag)
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(cfg.Storage.Backend, cfg.DataDir)
	if err != nil {
		logFile.Close()
		return nil, err
	}
	log.Debug("opened store", "backend", cfg.Storage.Backend, "dir", cfg.DataDir)

	a := &app{cfg: cfg, log: log, store: store, logFile: logFile}
	a.sessions = session.NewManager(store, log)
	a.matrix = priority.NewMatrix(store, a.sessions, log)
	a.stats = stats.NewRecorder(store, log)
	a.timer = timer.New(store, a.matrix, a.stats, a.sessions, log)
	return a, nil
}

func (a *app) Close() error {
	return errors.Join(a.store.Close(), a.logFile.Close())
}

// withApp runs fn against a freshly opened app and closes it afterwards.
func withApp(fn func(a *app) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
