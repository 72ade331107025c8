package commands

import (
	"context"
	"flag"

	"taskboard/internal/board"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskboard` (no args) and `taskboard list [flags] [keyword...]`.
type ListCmd struct {
	flags criteriaFlags
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskboard list [--category <c>] [--priority <p>] [--status <s>] [--overdue] [--sort <key>] [--asc] [keyword...]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	c.flags.register(fs)
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string) int {
	crit, err := c.flags.criteria(args)
	if err != nil {
		return report(env, err)
	}

	p := output.NewPrinter(env.Out, env.Config.Quiet)
	e := board.New(env.Service, board.Options{Surface: p, Logger: env.logger()})
	e.Criteria().SetFilter(crit.Filter)
	e.Criteria().SetSort(crit.Sort)

	view, err := e.Refresh(ctx)
	if err != nil {
		if view.Stale && !env.Config.Quiet {
			p.Flush(false)
		}
		return report(env, err)
	}

	// Positions are only stable in the default ordering, which is what
	// task references resolve against.
	numbered := !view.FilterActive && !view.SortActive
	if len(view.Tasks) == 0 && env.Config.Quiet {
		return exitcode.Success
	}
	p.Flush(numbered)
	return exitcode.Success
}
