package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/taskboard/internal/app"
	"github.com/idilsaglam/taskboard/internal/board"
	"github.com/idilsaglam/taskboard/internal/model"
	"github.com/idilsaglam/taskboard/internal/ui"
)

// resolve maps a task reference to a task, reporting unknown and ambiguous ids
// as usage errors.
func resolve(a *app.App, ref string) (model.Task, error) {
	t, err := a.Board.Resolve(ref)
	switch {
	case errors.Is(err, board.ErrTaskNotFound), errors.Is(err, board.ErrAmbiguousID):
		return model.Task{}, &ExitError{Code: ExitUsage, Message: err.Error(), Hint: "Run `taskboard ls` to see task ids"}
	case err != nil:
		return model.Task{}, failure("resolve task", err)
	}
	return t, nil
}

// inputError turns validation errors into usage errors.
func inputError(action string, err error) error {
	for _, target := range []error{model.ErrTitleRequired, model.ErrInvalidPriority, model.ErrInvalidStatus, model.ErrInvalidDate} {
		if errors.Is(err, target) {
			return usageError(action + ": " + err.Error())
		}
	}
	return failure(action, err)
}

func (e *env) shortID(a *app.App, id string) string {
	return board.ShortIDs(a.Board.Tasks(), ui.ShortIDLen)[id]
}

func newAddCommand(e *env) *cobra.Command {
	var desc, priority, due, status string
	var tags []string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Example: `  taskboard add Buy milk
  taskboard add "Quarterly report" --priority high --due 2025-07-01 --tag work`,
		Args: minArgs(1, "add <title...> [--desc TEXT] [--priority high|medium|low] [--due YYYY-MM-DD] [--tag TAG]..."),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.requireAuth(cmd.Context())
			if err != nil {
				return err
			}
			in := board.TaskInput{
				Title:       strings.Join(args, " "),
				Description: desc,
				Tags:        tags,
			}
			if priority != "" {
				if in.Priority, err = model.ParsePriority(priority); err != nil {
					return inputError("add", err)
				}
			}
			if status != "" {
				if in.Status, err = model.ParseStatus(status); err != nil {
					return inputError("add", err)
				}
			}
			if in.DueDate, err = model.ParseDate(due); err != nil {
				return inputError("add", err)
			}

			t, err := a.Board.Create(cmd.Context(), in)
			if err != nil {
				return inputError("add", err)
			}
			if e.json() {
				return e.formatter().Success(t)
			}
			e.printer.OK(fmt.Sprintf("added %s %s", e.shortID(a, t.ID), t.Title))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&desc, "desc", "d", "", "description")
	f.StringVarP(&priority, "priority", "p", "", "priority: high, medium or low (default medium)")
	f.StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	f.StringSliceVarP(&tags, "tag", "t", nil, "tag (repeatable, or comma separated)")
	f.StringVar(&status, "status", "", "initial column: todo, doing or done (default todo)")
	return cmd
}

func newEditCommand(e *env) *cobra.Command {
	var title, desc, priority, due string
	var tags []string
	var clearDue, clearTags bool
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's fields",
		Args:  exactArgs(1, "edit <id> [--title TEXT] [--desc TEXT] [--priority P] [--due DATE|--clear-due] [--tag TAG]... [--clear-tags]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.requireAuth(cmd.Context())
			if err != nil {
				return err
			}
			t, err := resolve(a, args[0])
			if err != nil {
				return err
			}

			f := cmd.Flags()
			var p board.Patch
			if f.Changed("title") {
				p.Title = &title
			}
			if f.Changed("desc") {
				p.Description = &desc
			}
			if f.Changed("priority") {
				pr, err := model.ParsePriority(priority)
				if err != nil {
					return inputError("edit", err)
				}
				p.Priority = &pr
			}
			switch {
			case clearDue:
				p.DueDate = &model.Date{}
			case f.Changed("due"):
				d, err := model.ParseDate(due)
				if err != nil {
					return inputError("edit", err)
				}
				p.DueDate = &d
			}
			switch {
			case clearTags:
				p.Tags = &[]string{}
			case f.Changed("tag"):
				p.Tags = &tags
			}
			if p == (board.Patch{}) {
				return usageError("edit: nothing to change")
			}

			if err := a.Board.Update(cmd.Context(), t.ID, p); err != nil {
				return inputError("edit", err)
			}
			updated, _ := a.Board.Get(t.ID)
			if e.json() {
				return e.formatter().Success(updated)
			}
			e.printer.OK(fmt.Sprintf("updated %s %s", e.shortID(a, t.ID), updated.Title))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&title, "title", "", "new title")
	f.StringVarP(&desc, "desc", "d", "", "new description")
	f.StringVarP(&priority, "priority", "p", "", "new priority")
	f.StringVar(&due, "due", "", "new due date (YYYY-MM-DD)")
	f.BoolVar(&clearDue, "clear-due", false, "remove the due date")
	f.StringSliceVarP(&tags, "tag", "t", nil, "replace tags (repeatable)")
	f.BoolVar(&clearTags, "clear-tags", false, "remove all tags")
	cmd.MarkFlagsMutuallyExclusive("due", "clear-due")
	cmd.MarkFlagsMutuallyExclusive("tag", "clear-tags")
	return cmd
}

func newMoveCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "mv <id> <todo|doing|done>",
		Aliases: []string{"move"},
		Short:   "Move a task to another column",
		Args:    exactArgs(2, "mv <id> <todo|doing|done>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.requireAuth(cmd.Context())
			if err != nil {
				return err
			}
			status, err := model.ParseStatus(args[1])
			if err != nil {
				return inputError("mv", err)
			}
			t, err := resolve(a, args[0])
			if err != nil {
				return err
			}
			if err := a.Board.Move(cmd.Context(), t.ID, status); err != nil {
				return failure("mv", err)
			}
			moved, _ := a.Board.Get(t.ID)
			if e.json() {
				return e.formatter().Success(moved)
			}
			e.printer.OK(fmt.Sprintf("moved %s %s to %s", e.shortID(a, t.ID), t.Title, ui.ColumnTitle(status)))
			return nil
		},
	}
}

func newRemoveCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    exactArgs(1, "rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.requireAuth(cmd.Context())
			if err != nil {
				return err
			}
			t, err := resolve(a, args[0])
			if err != nil {
				return err
			}
			short := e.shortID(a, t.ID)
			if err := a.Board.Delete(cmd.Context(), t.ID); err != nil {
				return failure("rm", err)
			}
			if e.json() {
				return e.formatter().Success(t)
			}
			e.printer.OK(fmt.Sprintf("removed %s %s", short, t.Title))
			return nil
		},
	}
}
