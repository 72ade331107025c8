package commands

import (
	"context"
	"flag"

	"taskboard/internal/board"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

func init() {
	Register(&StartCmd{})
	Register(&DoneCmd{})
}

// StartCmd implements the start command.
type StartCmd struct{}

func (c *StartCmd) Name() string      { return "start" }
func (c *StartCmd) Aliases() []string { return nil }
func (c *StartCmd) Synopsis() string  { return "Move a task to In Progress" }
func (c *StartCmd) Usage() string     { return "taskboard start <ref>" }
func (c *StartCmd) NeedsAuth() bool   { return true }

func (c *StartCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StartCmd) Run(ctx context.Context, env *Env, args []string) int {
	return runAction(ctx, env, service.ActionStart, args)
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "taskboard done <ref>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string) int {
	return runAction(ctx, env, service.ActionComplete, args)
}

// runAction is the shared implementation for start and done.
// The engine rejects moves the task's current status does not allow.
func runAction(ctx context.Context, env *Env, action service.Action, args []string) int {
	p := output.NewPrinter(env.Out, env.Config.Quiet)
	e, task, err := lookupTask(ctx, env, p, nil, args)
	if err != nil {
		return report(env, err)
	}
	intent, _ := board.ActionIntent(action, task.ID)
	return dispatch(ctx, env, e, p, intent)
}
