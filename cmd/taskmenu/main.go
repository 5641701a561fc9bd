// Package main is the entry point for the taskmenu CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskmenu/internal/backend/googletasks"
	"taskmenu/internal/cli"
	"taskmenu/internal/commands"
	"taskmenu/internal/config"
	"taskmenu/internal/service"
)

func main() {
	// Cancel on interrupt so the menu can stop between prompts.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// The export backend is only created when the menu's export option is used.
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return googletasks.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
