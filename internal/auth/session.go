package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/idilsaglam/taskboard/internal/model"
	"github.com/idilsaglam/taskboard/internal/store"
)

// StorageKey is the key the login snapshot is stored under in both storages.
const StorageKey = "auth"

// Session tracks the logged-in user.
//
// A remembered login lives in persistent storage and survives restarts.
// Otherwise it lives in session storage, which is cleared on reboot.
type Session struct {
	verifier   Verifier
	persistent store.Storage
	ephemeral  store.Storage
	log        *slog.Logger
	user       *User
}

func NewSession(v Verifier, persistent, ephemeral store.Storage, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{verifier: v, persistent: persistent, ephemeral: ephemeral, log: logger}
}

// Login verifies the credentials and stores the snapshot. On failure the
// session is left unchanged and ErrInvalidCredentials is returned.
func (s *Session) Login(ctx context.Context, email, password string, remember bool) (User, error) {
	u, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		s.log.Debug("login rejected", "email", email)
		return User{}, err
	}

	// Only one of the two storages holds the login at a time.
	target, other := s.ephemeral, s.persistent
	snap := model.AuthSnapshot{Email: u.Email}
	if remember {
		target, other = s.persistent, s.ephemeral
		snap.RememberMe = true
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return User{}, fmt.Errorf("json marshal: %w", err)
	}
	if err := target.Set(ctx, StorageKey, b); err != nil {
		return User{}, fmt.Errorf("save login: %w", err)
	}
	if err := other.Remove(ctx, StorageKey); err != nil {
		s.log.Warn("clear previous login", "err", err)
	}

	u.Remembered = remember
	s.user = &u
	s.log.Info("logged in", "email", u.Email, "remember", remember)
	return u, nil
}

// Logout clears the snapshot from both storages.
func (s *Session) Logout(ctx context.Context) error {
	s.user = nil
	var errs []error
	for _, st := range []store.Storage{s.persistent, s.ephemeral} {
		if err := st.Remove(ctx, StorageKey); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Restore loads a previous login. A persistent snapshot counts only when
// rememberMe is set and the email is recognized; otherwise the session
// snapshot is tried. Unreadable snapshots are ignored.
func (s *Session) Restore(ctx context.Context) (User, bool) {
	s.user = nil
	if snap, ok := s.read(ctx, s.persistent, "persistent"); ok && snap.RememberMe && s.verifier.Recognizes(snap.Email) {
		s.user = &User{Email: snap.Email, Remembered: true}
		return *s.user, true
	}
	if snap, ok := s.read(ctx, s.ephemeral, "session"); ok && s.verifier.Recognizes(snap.Email) {
		s.user = &User{Email: snap.Email}
		return *s.user, true
	}
	return User{}, false
}

func (s *Session) read(ctx context.Context, st store.Storage, name string) (model.AuthSnapshot, bool) {
	var snap model.AuthSnapshot
	raw, err := st.Get(ctx, StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return snap, false
	}
	if err != nil {
		s.log.Warn("read login snapshot", "storage", name, "err", err)
		return snap, false
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.log.Warn("malformed login snapshot", "storage", name, "err", err)
		return snap, false
	}
	return snap, true
}

// User returns the logged-in user, if any.
func (s *Session) User() (User, bool) {
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Require returns the logged-in user or ErrNotLoggedIn.
func (s *Session) Require() (User, error) {
	u, ok := s.User()
	if !ok {
		return User{}, ErrNotLoggedIn
	}
	return u, nil
}
