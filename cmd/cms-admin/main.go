// Command cms-admin is the operator CLI for the CMS console. It signs in against the
// content API, keeps the session in a local file and runs content actions from a shell.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "error:", err)
	var exit exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code) //nolint:forbidigo // CLI must propagate command status to callers
	}
	os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
}

// exitError carries a specific process exit status.
type exitError struct {
	code int
	msg  string
}

func (e exitError) Error() string { return e.msg }
