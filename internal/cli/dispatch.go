// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/internal/session"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config, guard *session.Guard, logger *slog.Logger) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
	in       io.Reader
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// WithInput sets the reader commands use for prompts and the board.
func (d *Dispatcher) WithInput(in io.Reader) *Dispatcher {
	d.in = in
	return d
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// A positional arg starting with - should have been parsed as a flag
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	logger := logging.New(errOut, cfg.LogLevel, cfg.Debug)
	guard := session.NewGuard(session.NewFileStore(cfg.SessionPath()), func() {
		logger.Debug("session rejected, credentials cleared")
	})

	if cmd.NeedsAuth() && !guard.Authenticated() {
		fmt.Fprintln(errOut, "error: not logged in (run: taskboard login)")
		return exitcode.AuthError
	}

	var svc service.Service
	if d.factory != nil {
		svc, err = d.factory(ctx, cfg, guard, logger)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	logger.Debug("dispatch", "command", cmd.Name(), "server", cfg.ServerURL)

	env := &commands.Env{
		Config:  cfg,
		Service: svc,
		Guard:   guard,
		Logger:  logger,
		In:      d.in,
		Out:     out,
		ErrOut:  errOut,
	}
	return cmd.Run(ctx, env, positionalArgs)
}

// flagError rewrites a flag package error into the CLI's wording.
func flagError(err error) string {
	errStr := err.Error()

	// Missing flag value
	if strings.Contains(errStr, "flag needs an argument") {
		parts := strings.Split(errStr, ":")
		if len(parts) > 1 {
			return "flag needs an argument: " + strings.TrimSpace(parts[len(parts)-1])
		}
	}

	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		return "unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	}

	return errStr
}
