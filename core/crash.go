package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/lixenwraith/rain/terminal"
)

var (
	crashMu       sync.Mutex
	crashTerminal terminal.Terminal
	exit          = os.Exit
	reset         = terminal.EmergencyReset
)

// SetCrashTerminal registers the terminal HandleCrash restores; nil falls back to EmergencyReset
func SetCrashTerminal(t terminal.Terminal) {
	crashMu.Lock()
	crashTerminal = t
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	RestoreTerminal()

	// Use \r\n in case the tty is still in raw mode
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mRAIN CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	exit(1)
}

// RestoreTerminal finalizes the registered terminal, falling back to an emergency reset
// when none is registered or Fini fails
func RestoreTerminal() {
	crashMu.Lock()
	t := crashTerminal
	crashMu.Unlock()

	if t == nil || t.Fini() != nil {
		reset(os.Stdout)
	}
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
