// Package main provides the bookpage command-line tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/listenupapp/bookpage/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
