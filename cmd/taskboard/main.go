// Package main is the entry point for the taskboard CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"taskboard/internal/backend/taskapi"
	"taskboard/internal/cli"
	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/service"
	"taskboard/internal/session"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config, guard *session.Guard, logger *slog.Logger) (service.Service, error) {
		return taskapi.New(cfg, guard, logger), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory).WithInput(os.Stdin)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
