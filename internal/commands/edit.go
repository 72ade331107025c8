package commands

import (
	"context"
	"flag"
	"strings"

	"taskboard/internal/board"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Only the given fields change;
// the rest are prefilled from the task as last fetched.
type EditCmd struct {
	title    optString
	desc     optString
	due      optString
	priority optString
	category optString
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "taskboard edit [--title <t>] [--desc <text>] [--due YYYY-MM-DD|none] [--priority <p>] [--category <c>] <ref>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	optionalFlag(fs, &c.title, "title", "t")
	optionalFlag(fs, &c.desc, "desc", "d")
	optionalFlag(fs, &c.due, "due")
	optionalFlag(fs, &c.priority, "priority", "p")
	optionalFlag(fs, &c.category, "category", "c")
}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string) int {
	if !c.title.set && !c.desc.set && !c.due.set && !c.priority.set && !c.category.set {
		return report(env, &service.ValidationError{Field: "edit", Message: "nothing to change"})
	}

	p := output.NewPrinter(env.Out, env.Config.Quiet)
	e, task, err := lookupTask(ctx, env, p, nil, args)
	if err != nil {
		return report(env, err)
	}

	patch, err := e.BeginEdit(task.ID)
	if err != nil {
		return report(env, err)
	}
	if err := c.apply(&patch); err != nil {
		return report(env, err)
	}
	return dispatch(ctx, env, e, p, board.EditTask{ID: task.ID, Patch: patch})
}

func (c *EditCmd) apply(p *service.Patch) error {
	if c.title.set {
		p.Title = c.title.value
	}
	if c.desc.set {
		p.Description = strings.TrimSpace(c.desc.value)
	}
	if c.due.set {
		if strings.EqualFold(strings.TrimSpace(c.due.value), "none") {
			p.DueDate = nil
		} else {
			d, err := service.ParseOptionalDueDate(c.due.value)
			if err != nil {
				return &service.ValidationError{Field: "due", Message: err.Error()}
			}
			p.DueDate = d
		}
	}
	if c.priority.set {
		pr, err := service.ParsePriority(c.priority.value)
		if err != nil {
			return &service.ValidationError{Field: "priority", Message: err.Error()}
		}
		p.Priority = pr
	}
	if c.category.set {
		cat, err := service.ParseCategory(c.category.value)
		if err != nil {
			return &service.ValidationError{Field: "category", Message: err.Error()}
		}
		p.Category = cat
	}
	return nil
}
