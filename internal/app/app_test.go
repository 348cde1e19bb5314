package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/idilsaglam/taskboard/internal/auth"
	"github.com/idilsaglam/taskboard/internal/board"
	"github.com/idilsaglam/taskboard/internal/config"
	"github.com/idilsaglam/taskboard/internal/model"
)

func testConfig(t *testing.T, backend string) *config.Config {
	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DataDir = filepath.Join(root, "data")
	cfg.SessionDir = filepath.Join(root, "run")
	cfg.Backend = backend
	return cfg
}

func TestNewPersistsAcrossInstances(t *testing.T) {
	for _, backend := range []string{config.BackendJSON, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(t, backend)

			a, err := New(ctx, cfg, board.Options{})
			require.NoError(t, err)
			_, err = a.Session.Login(ctx, auth.DemoEmail, "intern123", true)
			require.NoError(t, err)
			_, err = a.Board.Create(ctx, board.TaskInput{Title: "Persist me"})
			require.NoError(t, err)
			require.NoError(t, a.Close())

			b, err := New(ctx, cfg, board.Options{})
			require.NoError(t, err)
			defer b.Close()

			u, err := b.Session.Require()
			require.NoError(t, err)
			assert.True(t, u.Remembered)

			tasks := b.Board.Tasks()
			require.Len(t, tasks, 1)
			assert.Equal(t, "Persist me", tasks[0].Title)
			assert.Equal(t, model.ActionCreated, b.Board.ActivityLog()[0].Action)
		})
	}
}

func TestSessionLoginSurvivesWithinSessionDir(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.BackendJSON)

	a, err := New(ctx, cfg, board.Options{})
	require.NoError(t, err)
	_, err = a.Session.Login(ctx, auth.DemoEmail, "intern123", false)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := New(ctx, cfg, board.Options{})
	require.NoError(t, err)
	u, err := b.Session.Require()
	require.NoError(t, err)
	assert.False(t, u.Remembered)
	require.NoError(t, b.Close())

	// A fresh session directory is a new boot.
	cfg.SessionDir = filepath.Join(t.TempDir(), "other")
	c, err := New(ctx, cfg, board.Options{})
	require.NoError(t, err)
	defer c.Close()
	_, err = c.Session.Require()
	assert.ErrorIs(t, err, auth.ErrNotLoggedIn)
}

func TestConfiguredIdentity(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.BackendJSON)
	h, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg.Auth = config.AuthConfig{Email: "me@example.com", PasswordHash: string(h)}

	a, err := New(ctx, cfg, board.Options{})
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Session.Login(ctx, auth.DemoEmail, "intern123", false)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = a.Session.Login(ctx, "me@example.com", "pw", false)
	assert.NoError(t, err)
}

func TestBadIdentityConfig(t *testing.T) {
	cfg := testConfig(t, config.BackendJSON)
	cfg.Auth = config.AuthConfig{Email: "me@example.com", PasswordHash: "plain"}
	_, err := New(context.Background(), cfg, board.Options{})
	assert.ErrorIs(t, err, auth.ErrInvalidHash)
}

func TestOpenStorageUnknownBackend(t *testing.T) {
	cfg := testConfig(t, "postgres")
	_, err := OpenStorage(context.Background(), cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
