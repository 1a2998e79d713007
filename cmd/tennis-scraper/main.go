// Package main is the entry point for the tennis-statistic-scraper application
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Version is set during build using ldflags
var (
	version = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}

// run executes the command line and always releases what setup started.
func run(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	cleanup()
	return err
}
