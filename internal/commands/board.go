package commands

import (
	"context"
	"flag"

	"taskboard/internal/exitcode"
	"taskboard/internal/tui"
)

func init() {
	Register(&BoardCmd{})
}

// BoardCmd implements the board command, the interactive task board.
type BoardCmd struct {
	flags criteriaFlags
}

func (c *BoardCmd) Name() string      { return "board" }
func (c *BoardCmd) Aliases() []string { return []string{"ui"} }
func (c *BoardCmd) Synopsis() string  { return "Open the interactive task board" }
func (c *BoardCmd) Usage() string {
	return "taskboard board [--category <c>] [--priority <p>] [--status <s>] [--overdue] [--sort <key>] [--asc] [keyword...]"
}
func (c *BoardCmd) NeedsAuth() bool { return true }

func (c *BoardCmd) RegisterFlags(fs *flag.FlagSet) {
	c.flags.register(fs)
}

func (c *BoardCmd) Run(ctx context.Context, env *Env, args []string) int {
	crit, err := c.flags.criteria(args)
	if err != nil {
		return report(env, err)
	}

	err = tui.Run(ctx, tui.Options{
		Service:  env.Service,
		Guard:    env.Guard,
		Logger:   env.logger(),
		Criteria: crit,
		In:       env.In,
		Out:      env.Out,
	})
	if err != nil {
		return report(env, err)
	}
	return exitcode.Success
}
