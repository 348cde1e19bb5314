package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Replaced in tests.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// prompt writes label to stderr and reads one line from stdin.
func (e *env) prompt(label string) (string, error) {
	if e.stdin == nil {
		e.stdin = bufio.NewReader(e.opt.Stdin)
	}
	fmt.Fprint(e.opt.Stderr, label)
	line, err := e.stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", usageError("no input for " + strings.TrimSuffix(strings.TrimSpace(label), ":"))
		}
		return "", failure("read input", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptPassword reads a secret with echo off when stdin is a terminal and
// falls back to prompt for pipes and files.
func (e *env) promptPassword(label string) (string, error) {
	f, ok := e.opt.Stdin.(*os.File)
	if !ok || !isTerminal(int(f.Fd())) {
		return e.prompt(label)
	}
	fmt.Fprint(e.opt.Stderr, label)
	pw, err := readPassword(int(f.Fd()))
	fmt.Fprintln(e.opt.Stderr)
	if err != nil {
		return "", failure("read password", err)
	}
	return string(pw), nil
}

// confirm asks a yes/no question; only y or yes confirms.
func (e *env) confirm(question string) (bool, error) {
	answer, err := e.prompt(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
