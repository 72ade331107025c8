package commands

import (
	"context"
	"flag"

	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct {
	format string
}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return nil }
func (c *ShowCmd) Synopsis() string  { return "Print one task" }
func (c *ShowCmd) Usage() string     { return "taskboard show [--format text|yaml|json] <ref>" }
func (c *ShowCmd) NeedsAuth() bool   { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", string(output.FormatText), "")
	fs.StringVar(&c.format, "f", string(output.FormatText), "")
}

func (c *ShowCmd) Run(ctx context.Context, env *Env, args []string) int {
	format, err := output.ParseFormat(c.format)
	if err != nil {
		return report(env, &service.ValidationError{Field: "format", Message: err.Error()})
	}

	p := output.NewPrinter(env.Out, env.Config.Quiet)
	_, task, err := lookupTask(ctx, env, p, nil, args)
	if err != nil {
		return report(env, err)
	}
	if err := output.WriteTask(env.Out, task, format); err != nil {
		return report(env, err)
	}
	return exitcode.Success
}
