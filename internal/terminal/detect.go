// Package terminal answers questions about the operator's terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

var (
	stdinFd  = func() int { return int(os.Stdin.Fd()) }
	stdoutFd = func() int { return int(os.Stdout.Fd()) }
)

// IsInteractive reports whether stdin and stdout are both interactive terminals.
// Prompts are only shown when this is true.
func IsInteractive() bool {
	return term.IsTerminal(stdinFd()) && term.IsTerminal(stdoutFd())
}

// Width returns the column count of stdout, or 0 when stdout is not a terminal.
func Width() int {
	fd := stdoutFd()
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
