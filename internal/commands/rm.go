package commands

import (
	"context"
	"flag"

	"taskboard/internal/board"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	yes bool
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskboard rm [--yes] <ref>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	c.yes = false
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string) int {
	var confirm board.Confirmer = board.ConfirmFunc(newPrompter(env).confirmDelete)
	if c.yes {
		confirm = board.ConfirmFunc(func(context.Context, service.Task) (bool, error) {
			return true, nil
		})
	}

	p := output.NewPrinter(env.Out, env.Config.Quiet)
	e, task, err := lookupTask(ctx, env, p, confirm, args)
	if err != nil {
		return report(env, err)
	}
	return dispatch(ctx, env, e, p, board.DeleteTask{ID: task.ID})
}
