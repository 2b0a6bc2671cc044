// Package main provides the findsqlite command.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/leapstack-labs/findsqlite/internal/cli"
)

const (
	exitError = 1
	exitPanic = 2
)

func main() {
	// Recover from panics to print a readable report instead of a bare trace.
	defer func() {
		if r := recover(); r != nil {
			writeCrashReport(os.Stderr, r, debug.Stack())
			os.Exit(exitPanic)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(exitError)
	}
}

func writeCrashReport(w io.Writer, r any, stack []byte) {
	_, _ = fmt.Fprintf(w, "findsqlite %s crashed (%s %s/%s)\n\n", cli.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	_, _ = fmt.Fprintf(w, "panic: %v\n\n%s\n", r, stack)
	_, _ = fmt.Fprintln(w, "Please report this with the command line that triggered it.")
}
