// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"
	"log/slog"

	"taskboard/internal/config"
	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/internal/session"
)

// Env carries everything a command needs for one invocation.
type Env struct {
	Config  *config.Config
	Service service.Service
	Guard   *session.Guard
	Logger  *slog.Logger

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a stored session.
	// Commands like help, version, login, register and logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// env.Config and env.Guard are always provided.
	// env.Service may be nil for commands that make no remote calls.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string) int
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return logging.Discard()
	}
	return e.Logger
}
