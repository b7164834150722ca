// ABOUTME: Assembles config, logging, scope store and conversation for commands
// ABOUTME: Storage failures degrade to an unresolved scope instead of aborting
package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/harper/radar-oficial/internal/answer"
	"github.com/harper/radar-oficial/internal/config"
	"github.com/harper/radar-oficial/internal/core"
	"github.com/harper/radar-oficial/internal/directory"
	"github.com/harper/radar-oficial/internal/logging"
	"github.com/harper/radar-oficial/internal/storage"
)

// app is everything a conversational command needs
type app struct {
	cfg      *config.Config
	backend  storage.Backend
	store    *storage.ScopeStore
	conv     *core.Conversation
	logger   *log.Logger
	logClose io.Closer
}

// loadConfig reads .env and the environment, then applies global flags
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if scopeKind != "" {
		cfg.ScopeKind = scopeKind
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	switch {
	case verbose:
		cfg.LogLevel = "debug"
	case quiet:
		cfg.LogLevel = "error"
	}
	return cfg, nil
}

// openApp wires the conversation for the configured scope kind
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logClose, err := logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}
	logger := logging.Component("radar")

	backend, err := storage.OpenBackend(cfg.Backend())
	if err != nil {
		logger.Warn("scope storage unavailable, continuing without persistence", "store", cfg.Store, "err", err)
		backend, _ = storage.OpenBackend(storage.BackendConfig{Name: storage.BackendMemory})
	}

	store := storage.NewScopeStore(backend, cfg.Kind())
	if err := store.Hydrate(); err != nil {
		logger.Warn("could not read saved scope", "err", err)
	}

	conv := core.NewConversation(core.Deps{
		Store:     store,
		Directory: directory.NewClient(cfg.APIURL, cfg.HTTPTimeout),
		Answerer:  answer.NewClient(cfg.APIURL, cfg.HTTPTimeout),
		Presenter: []core.PresenterOption{core.WithDirectoryRetry(cfg.DirectoryRetries, cfg.RetryDelay)},
	})

	return &app{
		cfg:      cfg,
		backend:  backend,
		store:    store,
		conv:     conv,
		logger:   logger,
		logClose: logClose,
	}, nil
}

// Close releases the backend and the log file
func (a *app) Close() error {
	return errors.Join(a.backend.Close(), a.logClose.Close())
}
