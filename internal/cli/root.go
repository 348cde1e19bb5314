package cli

import (
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds the global flags.
type RootOptions struct {
	ConfigPath string
	DataDir    string
	Verbose    bool
	Format     string // "text" | "json"
	NoColor    bool
}

var ValidFormats = []string{"text", "json"}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

func NewRootCommand(e *env) *cobra.Command {
	opts := e.root
	cmd := &cobra.Command{
		Use:   "taskboard",
		Short: "taskboard - a personal kanban board for the terminal",
		Long: `taskboard keeps tasks in three columns (todo, doing, done), records an
activity log of every change, and persists the board locally.

Log in with the demo account (intern@demo.com / intern123) or the identity
set in the config file, then add tasks and move them across the board.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError("unknown command " + args[0])
			}
			_ = cmd.Help()
			return &ExitError{Code: ExitUsage}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/taskboard/config.yaml)")
	pf.StringVar(&opts.DataDir, "data-dir", "", "directory holding the board (overrides data_dir)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging")
	pf.StringVar(&opts.Format, "format", "text", "output format (text|json)")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newLoginCommand(e),
		newLogoutCommand(e),
		newWhoamiCommand(e),
		newAddCommand(e),
		newEditCommand(e),
		newMoveCommand(e),
		newRemoveCommand(e),
		newListCommand(e),
		newLogCommand(e),
		newBoardCommand(e),
		newResetCommand(e),
		newExportCommand(e),
		newHashPasswordCommand(e),
		newVersionCommand(e),
	)
	return cmd
}

// exactArgs reports arity mistakes with the usage exit code.
func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError("usage: taskboard " + usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usageError("usage: taskboard " + usage)
		}
		return nil
	}
}
