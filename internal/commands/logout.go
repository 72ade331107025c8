package commands

import (
	"context"
	"flag"
	"fmt"

	"taskboard/internal/exitcode"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "Remove stored credentials" }
func (c *LogoutCmd) Usage() string     { return "taskboard logout" }
func (c *LogoutCmd) NeedsAuth() bool   { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, env *Env, args []string) int {
	if !env.Guard.Authenticated() {
		if !env.Config.Quiet {
			fmt.Fprintln(env.Out, "not logged in")
		}
		return exitcode.Success
	}

	if err := env.Guard.Invalidate(); err != nil {
		fmt.Fprintf(env.ErrOut, "error: failed to remove session: %v\n", err)
		return exitcode.AuthError
	}

	if !env.Config.Quiet {
		fmt.Fprintln(env.Out, "ok")
	}
	return exitcode.Success
}
