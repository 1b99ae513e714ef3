// Package terminal reports terminal capabilities of the standard streams.
package terminal

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTTYSupportForStdout reports whether stdout is attached to a terminal.
// Styled tables degrade to tab-separated output when it is not.
func IsTTYSupportForStdout() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// IsTTYSupportForStdin reports whether stdin is attached to a terminal.
// Interactive prompts are skipped when it is not.
func IsTTYSupportForStdin() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
