package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/taskboard/internal/app"
	"github.com/idilsaglam/taskboard/internal/tui"
)

// LogFileName receives log output while the interactive board owns the terminal.
const LogFileName = "taskboard.log"

func newBoardCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		Args:  exactArgs(0, "board"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.cfg.EnsureDirs(); err != nil {
				return failure("board", err)
			}
			f, err := os.OpenFile(filepath.Join(e.cfg.DataDir, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err != nil {
				return failure("open log file", err)
			}
			defer f.Close()
			level, _ := e.cfg.Level()
			if e.root.Verbose {
				level = slog.LevelDebug
			}
			e.log = app.NewLogger(f, level)

			a, err := e.requireAuth(cmd.Context())
			if err != nil {
				return err
			}
			err = tui.Run(cmd.Context(), tui.Options{
				Board:  a.Board,
				Theme:  e.cfg.Theme,
				Now:    e.opt.Now,
				Logger: e.log,
				Input:  e.opt.Stdin,
				Output: e.opt.Stdout,
			})
			if err != nil {
				return failure("board", err)
			}
			fmt.Fprintln(e.opt.Stdout, "Board saved.")
			return nil
		},
	}
}
