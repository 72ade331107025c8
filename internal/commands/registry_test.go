package commands_test

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	"taskboard/internal/commands"
	"taskboard/internal/config"
)

type stubCmd struct {
	name    string
	aliases []string
	auth    bool
}

func (c *stubCmd) Name() string                   { return c.name }
func (c *stubCmd) Aliases() []string              { return c.aliases }
func (c *stubCmd) Synopsis() string               { return "does " + c.name }
func (c *stubCmd) Usage() string                  { return "taskboard " + c.name + " <ref>" }
func (c *stubCmd) NeedsAuth() bool                { return c.auth }
func (c *stubCmd) RegisterFlags(fs *flag.FlagSet) {}
func (c *stubCmd) Run(ctx context.Context, env *commands.Env, args []string) int {
	return 0
}

func TestRegistry_RejectsNameClashes(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&stubCmd{name: "rm", aliases: []string{"delete"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := r.Register(&stubCmd{name: "delete"})
	if err == nil || !strings.Contains(err.Error(), `"delete" already taken by rm`) {
		t.Errorf("expected alias clash, got %v", err)
	}
	if err := r.Register(&stubCmd{name: "remove", aliases: []string{"rm"}}); err == nil {
		t.Error("expected name clash for alias rm")
	}
	if _, ok := r.Find("remove"); ok {
		t.Error("a rejected command must not be partially registered")
	}
}

func TestRegistry_RejectsFlagLikeNames(t *testing.T) {
	r := commands.NewRegistry()
	for _, c := range []*stubCmd{{name: ""}, {name: "-x"}, {name: "ok", aliases: []string{"--ok"}}} {
		if err := r.Register(c); err == nil {
			t.Errorf("expected %q/%v to be rejected", c.name, c.aliases)
		}
	}
	if len(r.All()) != 0 {
		t.Errorf("expected empty registry, got %d commands", len(r.All()))
	}
}

func TestRegistry_AllListsEachCommandOnce(t *testing.T) {
	r := commands.NewRegistry()
	_ = r.Register(&stubCmd{name: "show"})
	_ = r.Register(&stubCmd{name: "list", aliases: []string{"ls"}})

	all := r.All()
	if len(all) != 2 || all[0].Name() != "list" || all[1].Name() != "show" {
		t.Errorf("expected [list show], got %v", all)
	}
	if c, ok := r.Find("ls"); !ok || c.Name() != "list" {
		t.Error("expected alias ls to find list")
	}
}

func TestRegistry_SectionsSplitBySession(t *testing.T) {
	r := commands.NewRegistry()
	_ = r.Register(&stubCmd{name: "login"})
	_ = r.Register(&stubCmd{name: "done", auth: true})
	_ = r.Register(&stubCmd{name: "add", auth: true})

	sections := r.Sections()
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	names := func(s commands.Section) string {
		var out []string
		for _, c := range s.Commands {
			out = append(out, c.Name())
		}
		return strings.Join(out, ",")
	}
	if got := names(sections[0]); got != "add,done" {
		t.Errorf("expected task section add,done, got %s", got)
	}
	if got := names(sections[1]); got != "login" {
		t.Errorf("expected other section login, got %s", got)
	}
}

func TestHelpCommand_ListsRegistrySections(t *testing.T) {
	r := commands.NewRegistry()
	_ = r.Register(&stubCmd{name: "add", aliases: []string{"create"}, auth: true})
	_ = r.Register(&stubCmd{name: "login"})

	var out bytes.Buffer
	env := &commands.Env{Out: &out, ErrOut: &out, Config: &config.Config{}}
	(&commands.HelpCmd{Registry: r}).Run(context.Background(), env, nil)

	got := out.String()
	task := strings.Index(got, "Task commands (need a session):")
	other := strings.Index(got, "Account and other commands:")
	if task < 0 || other < 0 || task > other {
		t.Fatalf("expected task section before account section, got:\n%s", got)
	}
	if !strings.Contains(got, "add (create)") || !strings.Contains(got, "taskboard add <ref>") {
		t.Errorf("expected add with alias and usage, got:\n%s", got)
	}
	if idx := strings.Index(got, "taskboard login <ref>"); idx < other {
		t.Errorf("expected login under the account section, got:\n%s", got)
	}
}
