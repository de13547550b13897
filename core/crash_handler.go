package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync/atomic"
)

var (
	crashFinalizer atomic.Pointer[func()]

	// Overridable in tests
	crashOutput io.Writer = os.Stderr
	crashExit             = os.Exit
)

// SetCrashFinalizer registers the terminal restore run before the stack trace is printed
// Passing nil clears it
func SetCrashFinalizer(fn func()) {
	if fn == nil {
		crashFinalizer.Store(nil)
		return
	}
	crashFinalizer.Store(&fn)
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if fn := crashFinalizer.Swap(nil); fn != nil {
		(*fn)()
	}

	fmt.Fprintf(crashOutput, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(crashOutput, "Stack Trace:\n%s\n", debug.Stack())

	crashExit(1)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
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
