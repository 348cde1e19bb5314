package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/taskboard/internal/auth"
)

type loginResult struct {
	Email      string `json:"email"`
	RememberMe bool   `json:"rememberMe"`
}

func newLoginCommand(e *env) *cobra.Command {
	var email, password string
	var remember bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in (prompts for missing credentials)",
		Args:  exactArgs(0, "login [--email EMAIL] [--password PASSWORD] [--remember]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := e.openApp(ctx)
			if err != nil {
				return err
			}
			if strings.TrimSpace(email) == "" {
				if email, err = e.prompt("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = e.promptPassword("Password: "); err != nil {
					return err
				}
			}
			u, err := a.Session.Login(ctx, email, password, remember)
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return &ExitError{Code: ExitAuth, Message: auth.InvalidCredentialsMessage}
			}
			if err != nil {
				return failure("login", err)
			}
			if e.json() {
				return e.formatter().Success(loginResult{Email: u.Email, RememberMe: u.Remembered})
			}
			msg := "Logged in as " + u.Email
			if u.Remembered {
				msg += " (remembered)"
			}
			e.printer.OK(msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().BoolVar(&remember, "remember", false, "stay logged in across reboots")
	return cmd
}

func newLogoutCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current login",
		Args:  exactArgs(0, "logout"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.openApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.Session.Logout(cmd.Context()); err != nil {
				return failure("logout", err)
			}
			if e.json() {
				return e.formatter().Success(map[string]bool{"loggedOut": true})
			}
			e.printer.OK("Logged out")
			return nil
		},
	}
}

func newWhoamiCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  exactArgs(0, "whoami"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.requireAuth(cmd.Context())
			if err != nil {
				return err
			}
			u, _ := a.Session.User()
			if e.json() {
				return e.formatter().Success(loginResult{Email: u.Email, RememberMe: u.Remembered})
			}
			source := "session"
			if u.Remembered {
				source = "remembered"
			}
			fmt.Fprintf(e.opt.Stdout, "%s (%s)\n", u.Email, source)
			return nil
		},
	}
}
