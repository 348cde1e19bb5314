package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/idilsaglam/taskboard/internal/app"
	"github.com/idilsaglam/taskboard/internal/board"
	"github.com/idilsaglam/taskboard/internal/config"
	"github.com/idilsaglam/taskboard/internal/ui"
)

// Options are the process-level inputs of a run.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Now and NewID default to the wall clock and UUIDv7.
	Now     func() time.Time
	NewID   func() string
	Version string
}

// Run executes one command line and returns an exit code
// (0 ok, 1 failure, 2 usage, 3 auth).
func Run(ctx context.Context, args []string, opt Options) int {
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}

	e := &env{opt: opt, root: &RootOptions{}}
	cmd := NewRootCommand(e)
	cmd.SetArgs(args)
	cmd.SetIn(opt.Stdin)
	cmd.SetOut(opt.Stdout)
	cmd.SetErr(opt.Stderr)

	err := cmd.ExecuteContext(ctx)
	if e.app != nil {
		if cerr := e.app.Close(); cerr != nil {
			e.logger().Warn("close storage", "err", cerr)
		}
	}
	if err == nil {
		return ExitSuccess
	}
	err = classify(err)
	e.report(err)
	return GetExitCode(err)
}

// usagePrefixes start the messages of cobra and pflag parse errors.
var usagePrefixes = []string{
	"unknown command",
	"unknown flag",
	"unknown shorthand flag",
	"accepts ",
	"requires at least",
	"invalid argument",
	"flag needs an argument",
	"if any flags in the group", // mutually exclusive flags
}

// classify gives cobra's own argument and command errors the usage code.
func classify(err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return &ExitError{Code: ExitFailure, Message: "interrupted"}
	}
	msg := err.Error()
	for _, prefix := range usagePrefixes {
		if strings.HasPrefix(msg, prefix) {
			return &ExitError{Code: ExitUsage, Message: msg, Hint: "Run 'taskboard --help' for usage."}
		}
	}
	return err
}

// env is the state shared by the commands of one run.
type env struct {
	opt     Options
	stdin   *bufio.Reader
	root    *RootOptions
	cfg     *config.Config
	log     *slog.Logger
	printer *ui.Printer
	app     *app.App
}

func (e *env) json() bool { return e.root.Format == "json" }

func (e *env) logger() *slog.Logger {
	if e.log == nil {
		return app.NewLogger(io.Discard, slog.LevelError)
	}
	return e.log
}

func (e *env) formatter() *OutputFormatter {
	return &OutputFormatter{Writer: e.opt.Stdout}
}

// setup loads config and builds the logger and printer.
func (e *env) setup() error {
	if !isValidFormat(e.root.Format) {
		return usageError(fmt.Sprintf("invalid format %q: must be one of %s", e.root.Format, strings.Join(ValidFormats, ", ")))
	}
	cfg, err := config.Load(e.root.ConfigPath)
	if err != nil {
		return failure("load config", err)
	}
	if e.root.DataDir != "" {
		cfg.DataDir = e.root.DataDir
	}
	e.cfg = cfg

	level, _ := cfg.Level()
	if e.root.Verbose {
		level = slog.LevelDebug
	}
	e.log = app.NewLogger(e.opt.Stderr, level)

	color := ui.ColorEnabled(e.opt.Stdout, false, e.root.NoColor)
	e.printer = ui.NewPrinter(e.opt.Stdout, e.opt.Stderr, ui.ThemeByName(cfg.Theme), color)
	return nil
}

// openApp opens storage and restores the session once per run.
func (e *env) openApp(ctx context.Context) (*app.App, error) {
	if e.app != nil {
		return e.app, nil
	}
	a, err := app.New(ctx, e.cfg, board.Options{Logger: e.logger(), Now: e.opt.Now, NewID: e.opt.NewID})
	if err != nil {
		return nil, failure("open board", err)
	}
	e.app = a
	return a, nil
}

// requireAuth opens the app and fails with ExitAuth unless a login was restored.
func (e *env) requireAuth(ctx context.Context) (*app.App, error) {
	a, err := e.openApp(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := a.Session.Require(); err != nil {
		return nil, &ExitError{Code: ExitAuth, Message: "not logged in", Hint: "Run: taskboard login"}
	}
	return a, nil
}

func (e *env) report(err error) {
	code := GetExitCode(err)
	var exitErr *ExitError
	msg, hint, details := err.Error(), "", ""
	if errors.As(err, &exitErr) {
		if exitErr.Message == "" && exitErr.Err == nil {
			return
		}
		hint = exitErr.Hint
		if exitErr.Err != nil && exitErr.Message != "" {
			msg, details = exitErr.Message, exitErr.Err.Error()
		}
	}

	if e.json() {
		_ = e.formatter().Error(errorCode(code), msg, details)
		return
	}
	p := e.printer
	if p == nil {
		p = ui.NewPrinter(e.opt.Stdout, e.opt.Stderr, ui.ThemeByName("mono"), false)
	}
	if details != "" {
		msg += ": " + details
	}
	p.Fail(msg)
	if hint != "" {
		p.Hint(hint)
	}
}
