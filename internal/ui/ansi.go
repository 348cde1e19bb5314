package ui

import (
	"fmt"
	"io"
	"os"
)

const (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray    = "\033[90m"
	fgGreen   = "\033[32m"
	fgYellow  = "\033[33m"
	fgBlue    = "\033[34m"
	fgRed     = "\033[31m"
	fgMagenta = "\033[35m"
)

// ColorEnabled decides whether w gets ANSI colors. disable and NO_COLOR
// win over force; otherwise only terminals are colored.
func ColorEnabled(w io.Writer, force, disable bool) bool {
	if disable || os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	return isTTY(w)
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// Printer writes themed output for the CLI.
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	Theme Theme
	color bool
}

func NewPrinter(out, errOut io.Writer, theme Theme, color bool) *Printer {
	if theme.Plain {
		color = false
	}
	return &Printer{Out: out, Err: errOut, Theme: theme, color: color}
}

func (p *Printer) C(color, s string) string {
	if !p.color || color == "" {
		return s
	}
	return color + s + reset
}

func (p *Printer) OK(msg string) {
	fmt.Fprintln(p.Out, p.C(p.Theme.Success, p.Theme.SymOK+" "+msg))
}

func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.Err, p.C(p.Theme.Error, p.Theme.SymFail+" "+msg))
}

func (p *Printer) Hint(msg string) {
	fmt.Fprintln(p.Err, p.C(p.Theme.Muted, msg))
}
