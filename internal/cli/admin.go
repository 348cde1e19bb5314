package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/taskboard/internal/auth"
)

func newResetCommand(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every task and the activity log",
		Args:  exactArgs(0, "reset [--yes]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.requireAuth(cmd.Context())
			if err != nil {
				return err
			}
			if !yes {
				ok, err := e.confirm("Reset the board? All tasks and activity are removed.")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(e.opt.Stderr, "Cancelled.")
					return nil
				}
			}
			if err := a.Board.Reset(cmd.Context()); err != nil {
				return failure("reset", err)
			}
			if e.json() {
				return e.formatter().Success(map[string]bool{"reset": true})
			}
			e.printer.OK("Board reset")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newExportCommand(e *env) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the board snapshot as JSON or YAML",
		Args:  exactArgs(0, "export [--output json|yaml]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.requireAuth(cmd.Context())
			if err != nil {
				return err
			}
			snap := a.Board.Snapshot()
			switch strings.ToLower(output) {
			case "json":
				if e.json() {
					return e.formatter().Success(snap)
				}
				b, err := json.MarshalIndent(snap, "", "  ")
				if err != nil {
					return failure("json marshal", err)
				}
				fmt.Fprintln(e.opt.Stdout, string(b))
			case "yaml", "yml":
				b, err := yaml.Marshal(snap)
				if err != nil {
					return failure("yaml marshal", err)
				}
				fmt.Fprint(e.opt.Stdout, string(b))
			default:
				return usageError(fmt.Sprintf("export: unknown output %q (want json or yaml)", output))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "snapshot encoding (json|yaml)")
	return cmd
}

func newHashPasswordCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for auth.password_hash",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pw string
			if len(args) == 1 {
				pw = args[0]
			} else {
				var err error
				if pw, err = e.promptPassword("Password: "); err != nil {
					return err
				}
			}
			h, err := auth.HashPassword(pw)
			if err != nil {
				return usageError("hash-password: " + err.Error())
			}
			if e.json() {
				return e.formatter().Success(map[string]string{"hash": h})
			}
			fmt.Fprintln(e.opt.Stdout, h)
			return nil
		},
	}
}

func newVersionCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  exactArgs(0, "version"),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := e.opt.Version
			if v == "" {
				v = "dev"
			}
			if e.json() {
				return e.formatter().Success(map[string]string{"version": v})
			}
			fmt.Fprintln(e.opt.Stdout, "taskboard "+v)
			return nil
		},
	}
}
