package commands

import (
	"context"
	"flag"
	"strings"

	"taskboard/internal/board"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

const (
	// Form defaults for a new task.
	defaultPriority = service.PriorityMedium
	defaultCategory = service.CategoryPersonal
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	desc     string
	due      string
	priority string
	category string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskboard add [--desc <text>] [--due YYYY-MM-DD] [--priority <p>] [--category <c>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.desc, "d", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.priority, "priority", string(defaultPriority), "")
	fs.StringVar(&c.priority, "p", string(defaultPriority), "")
	fs.StringVar(&c.category, "category", string(defaultCategory), "")
	fs.StringVar(&c.category, "c", string(defaultCategory), "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string) int {
	draft, err := c.draft(strings.Join(args, " "))
	if err != nil {
		return report(env, err)
	}

	p := output.NewPrinter(env.Out, env.Config.Quiet)
	e := board.New(env.Service, board.Options{Surface: p, Logger: env.logger()})
	return dispatch(ctx, env, e, p, board.CreateTask{Draft: draft})
}

func (c *AddCmd) draft(title string) (service.Draft, error) {
	d := service.Draft{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(c.desc),
	}
	if d.Title == "" {
		return d, service.Required("title")
	}

	var err error
	if d.DueDate, err = service.ParseOptionalDueDate(c.due); err != nil {
		return d, &service.ValidationError{Field: "due", Message: err.Error()}
	}
	if d.Priority, err = service.ParsePriority(c.priority); err != nil {
		return d, &service.ValidationError{Field: "priority", Message: err.Error()}
	}
	if d.Category, err = service.ParseCategory(c.category); err != nil {
		return d, &service.ValidationError{Field: "category", Message: err.Error()}
	}
	return d, nil
}
