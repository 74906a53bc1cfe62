// Command lvsearch solves grid path-finding problems with the search engines
// of this module.
//
// Usage:
//
//	lvsearch solve maze.yaml --algorithm bestfirst
//	lvsearch compare maze.yaml --metrics
//
// Global flags select a config file (--config), the log level (--log-level)
// and span export to stderr (--trace). See package config for the file
// layout and the LVSEARCH_* environment variables.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// execute runs the command line args and flushes telemetry before returning.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	defer a.shutdown(context.WithoutCancel(ctx))

	return root.ExecuteContext(ctx)
}
