package service

import (
	"os"

	"golang.org/x/term"
)

// IsInteractiveEnvironment reports whether stderr is attached to a terminal
// and we are not running under CI
func IsInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
