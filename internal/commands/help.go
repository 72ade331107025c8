package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command. It lists the commands of Registry,
// or DefaultRegistry when that is nil.
type HelpCmd struct {
	Registry *Registry
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskboard help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string) int {
	reg := c.Registry
	if reg == nil {
		reg = DefaultRegistry
	}
	writeHelp(env.Out, reg)
	return exitcode.Success
}

func writeHelp(w io.Writer, reg *Registry) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %-40s %s\n", "taskboard", "List all tasks, newest first")
	for _, s := range reg.Sections() {
		if len(s.Commands) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", s.Title)
		for _, cmd := range s.Commands {
			name := cmd.Name()
			if aliases := cmd.Aliases(); len(aliases) > 0 {
				name += " (" + strings.Join(aliases, ", ") + ")"
			}
			fmt.Fprintf(w, "  %-40s %s\n", name, cmd.Synopsis())
			fmt.Fprintf(w, "      %s\n", cmd.Usage())
		}
	}
	fmt.Fprint(w, helpFooter)
}

const helpFooter = `
Criteria flags:
  --keyword <text>      Match title or description
  --category <c>        WORK, PERSONAL or HEALTH
  --priority <p>        LOW, MEDIUM or HIGH
  --status <s>          CREATED, TODO, IN_PROGRESS or DONE
  --overdue             Only overdue tasks
  --sort <key>          createdAt, dueDate, title or priority
  --asc                 Ascending order (default descending)

A <ref> is the number printed by 'taskboard list', a task id or a unique id prefix.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
