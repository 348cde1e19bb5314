// Package auth checks credentials against a configured identity and keeps
// the login snapshot in local or session storage.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	DemoEmail    = "intern@demo.com"
	demoPassword = "intern123"

	// InvalidCredentialsMessage is what a user sees after a failed login.
	InvalidCredentialsMessage = "Invalid email or password"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrInvalidHash        = errors.New("invalid password hash")
)

// User is an authenticated identity.
type User struct {
	Email string
	// Remembered is true when the login was restored from persistent storage.
	Remembered bool
}

// Verifier checks credentials.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (User, error)
	// Recognizes reports whether email names the configured identity.
	Recognizes(email string) bool
}

// BcryptVerifier accepts a single email whose password matches a bcrypt hash.
type BcryptVerifier struct {
	email string
	hash  []byte
}

func NewBcryptVerifier(email, hash string) (*BcryptVerifier, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errors.New("verifier email is empty")
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return &BcryptVerifier{email: email, hash: []byte(hash)}, nil
}

// NewDemoVerifier accepts the built-in demo account.
func NewDemoVerifier() *BcryptVerifier {
	// MinCost keeps startup fast; the demo password is public anyway.
	h, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("hash demo password: %v", err))
	}
	return &BcryptVerifier{email: DemoEmail, hash: h}
}

func (v *BcryptVerifier) Email() string { return v.email }

func (v *BcryptVerifier) Recognizes(email string) bool {
	return strings.TrimSpace(email) == v.email
}

func (v *BcryptVerifier) Verify(ctx context.Context, email, password string) (User, error) {
	if !v.Recognizes(email) {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return User{Email: v.email}, nil
}

// HashPassword returns a bcrypt hash suitable for the auth.password_hash setting.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(h), nil
}
