package tui

import (
	"os"

	"golang.org/x/term"
)

// NonInteractiveEnv forces the plain listing when set to "1".
const NonInteractiveEnv = "LFM_NON_INTERACTIVE"

// terminal describes the process streams the browser would draw on.
type terminal struct {
	getenv     func(string) string
	isTerminal func(fd int) bool
	fds        []int
}

func currentTerminal() terminal {
	return terminal{
		getenv:     os.Getenv,
		isTerminal: term.IsTerminal,
		fds:        []int{int(os.Stdin.Fd()), int(os.Stdout.Fd())},
	}
}

// fullScreen reports whether the browser may take over the terminal: no
// opt-out in the environment, not under CI, and every stream is a TTY.
func (t terminal) fullScreen() bool {
	if t.getenv(NonInteractiveEnv) == "1" || t.getenv("CI") != "" {
		return false
	}
	for _, fd := range t.fds {
		if !t.isTerminal(fd) {
			return false
		}
	}
	return true
}

// IsInteractive reports whether lfm runs the full-screen browser. Pipes,
// redirected output, CI and LFM_NON_INTERACTIVE=1 get the plain listing.
func IsInteractive() bool {
	return currentTerminal().fullScreen()
}
