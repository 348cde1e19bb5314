// Package app wires configuration, storage, the auth session and the board
// store together for one process.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/idilsaglam/taskboard/internal/auth"
	"github.com/idilsaglam/taskboard/internal/board"
	"github.com/idilsaglam/taskboard/internal/config"
	"github.com/idilsaglam/taskboard/internal/store"
	"github.com/idilsaglam/taskboard/internal/store/jsonstore"
	"github.com/idilsaglam/taskboard/internal/store/sqlitestore"
)

// SessionFileName is the session-storage document inside Config.SessionDir.
const SessionFileName = "session.json"

type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Verifier auth.Verifier
	Session  *auth.Session
	Board    *board.Store

	persistent store.Storage
	ephemeral  store.Storage
}

// NewLogger returns a text logger on w at level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// New opens the configured storages and restores any previous login.
// opts.Logger is shared by every component.
func New(ctx context.Context, cfg *config.Config, opts board.Options) (*App, error) {
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}
	persistent, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ephemeral := jsonstore.New(filepath.Join(cfg.SessionDir, SessionFileName))

	a, err := NewWithStorage(ctx, cfg, persistent, ephemeral, opts)
	if err != nil {
		persistent.Close()
		return nil, err
	}
	return a, nil
}

// OpenStorage opens the persistent backend named by cfg.Backend.
func OpenStorage(ctx context.Context, cfg *config.Config) (store.Storage, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		st, err := sqlitestore.InDir(ctx, cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return st, nil
	case config.BackendJSON, "":
		return jsonstore.InDir(cfg.DataDir), nil
	}
	return nil, fmt.Errorf("%w: backend %q", config.ErrInvalidConfig, cfg.Backend)
}

// NewVerifier uses the configured identity, or the demo account when none is set.
func NewVerifier(cfg *config.Config) (auth.Verifier, error) {
	if cfg.Auth.Email == "" {
		return auth.NewDemoVerifier(), nil
	}
	v, err := auth.NewBcryptVerifier(cfg.Auth.Email, cfg.Auth.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("auth config: %w", err)
	}
	return v, nil
}

// NewWithStorage builds an App over the given storages. The App owns them
// and closes them in Close.
func NewWithStorage(ctx context.Context, cfg *config.Config, persistent, ephemeral store.Storage, opts board.Options) (*App, error) {
	if opts.Logger == nil {
		opts.Logger = NewLogger(io.Discard, slog.LevelError)
	}
	logger := opts.Logger
	verifier, err := NewVerifier(cfg)
	if err != nil {
		return nil, err
	}
	b, err := board.Open(ctx, persistent, opts)
	if err != nil {
		return nil, err
	}
	session := auth.NewSession(verifier, persistent, ephemeral, logger)
	if u, ok := session.Restore(ctx); ok {
		logger.Debug("session restored", "email", u.Email, "remembered", u.Remembered)
	}
	return &App{
		Config:     cfg,
		Logger:     logger,
		Verifier:   verifier,
		Session:    session,
		Board:      b,
		persistent: persistent,
		ephemeral:  ephemeral,
	}, nil
}

// Close releases both storages.
func (a *App) Close() error {
	return errors.Join(a.persistent.Close(), a.ephemeral.Close())
}
