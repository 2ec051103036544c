package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
)

// isTerminal reports whether w is attached to an interactive terminal,
// used to decide whether diagnostics get ANSI colour.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
