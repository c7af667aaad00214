// Command stride parses, converts and combines running distances, durations
// and paces.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/stride/internal/cli"
	"github.com/rshade/stride/pkg/version"
)

// Exit codes.
const (
	exitOK = iota
	exitError
	// exitPartial means a batch rendered but some of its lines failed.
	exitPartial
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	root.SilenceErrors = true
	return root.ExecuteContext(ctx)
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, cli.ErrBatchFailures):
		return exitPartial
	default:
		return exitError
	}
}
