package commands

import (
	"context"
	"flag"
	"fmt"

	"taskboard/internal/exitcode"
)

// Version is the application version. Set at build time with
// -ldflags "-X taskboard/internal/commands.Version=...".
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd prints the version and, with --verbose, which task service
// and config files this binary would use.
type VersionCmd struct {
	verbose bool
}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version" }
func (c *VersionCmd) Usage() string     { return "taskboard version [--verbose]" }
func (c *VersionCmd) NeedsAuth() bool   { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {
	c.verbose = false
	fs.BoolVar(&c.verbose, "verbose", false, "")
	fs.BoolVar(&c.verbose, "v", false, "")
}

func (c *VersionCmd) Run(ctx context.Context, env *Env, args []string) int {
	fmt.Fprintf(env.Out, "taskboard %s\n", Version)
	if !c.verbose {
		return exitcode.Success
	}

	session := "none"
	if env.Guard != nil && env.Guard.Authenticated() {
		session = "active"
	}
	fmt.Fprintf(env.Out, "server:  %s\n", env.Config.ServerURL)
	fmt.Fprintf(env.Out, "config:  %s\n", env.Config.ConfigPath())
	fmt.Fprintf(env.Out, "session: %s (%s)\n", env.Config.SessionPath(), session)
	return exitcode.Success
}
