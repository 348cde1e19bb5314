package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/taskboard/internal/board"
	"github.com/idilsaglam/taskboard/internal/model"
)

type listResult struct {
	Search   string       `json:"search"`
	Priority string       `json:"priority"`
	Tasks    []model.Task `json:"tasks"`
}

func newListCommand(e *env) *cobra.Command {
	var search, priority string
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Show the board, filtered and sorted by due date",
		Args:    exactArgs(0, "ls [--search TEXT] [--priority all|high|medium|low]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.requireAuth(cmd.Context())
			if err != nil {
				return err
			}
			pf, err := board.ParsePriorityFilter(priority)
			if err != nil {
				return usageError("ls: " + err.Error())
			}
			all := a.Board.Tasks()
			tasks := board.Apply(all, board.Query{Search: search, Priority: pf})

			if e.json() {
				return e.formatter().Success(listResult{Search: search, Priority: string(pf), Tasks: tasks})
			}
			lines := e.printer.BoardLines(all, board.Columns(tasks), e.opt.Now())
			if search != "" || pf != board.PriorityAll {
				lines = append(lines, "", e.printer.C(e.printer.Theme.Muted,
					fmt.Sprintf("showing %d of %d (search %q, priority %s)", len(tasks), len(all), search, pf)))
			}
			if len(all) == 0 {
				lines = append(lines, "", e.printer.C(e.printer.Theme.Muted, `Tip: add with "taskboard add Buy milk"`))
			}
			e.printer.PrintPanel(lines)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only titles containing TEXT (case-insensitive)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "all", "only this priority")
	return cmd
}

func newLogCommand(e *env) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the activity log, newest first",
		Args:  exactArgs(0, "log [--limit N]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return usageError("log: --limit must not be negative")
			}
			a, err := e.requireAuth(cmd.Context())
			if err != nil {
				return err
			}
			entries := a.Board.ActivityLog()
			if limit > 0 && limit < len(entries) {
				entries = entries[:limit]
			}
			if e.json() {
				return e.formatter().Success(entries)
			}
			lines := e.printer.ActivityLines(entries, time.Local)
			fmt.Fprintln(e.opt.Stdout, strings.Join(lines, "\n"))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most N entries (0 = all)")
	return cmd
}
