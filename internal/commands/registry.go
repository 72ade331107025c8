package commands

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Command
	primary map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Command),
		primary: make(map[string]Command),
	}
}

// Register adds c under its name and aliases. Names must be non-empty,
// must not look like a flag, and must not collide with one already taken.
func (r *Registry) Register(c Command) error {
	names := append([]string{c.Name()}, c.Aliases()...)
	for _, n := range names {
		if n == "" || strings.HasPrefix(n, "-") {
			return fmt.Errorf("invalid command name: %q", n)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		if prev, ok := r.byName[n]; ok {
			return fmt.Errorf("command name %q already taken by %s", n, prev.Name())
		}
	}
	for _, n := range names {
		r.byName[n] = c
	}
	r.primary[c.Name()] = c
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.byName[name]
	return cmd, ok
}

// All returns every command once, sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.primary))
	for n := range r.primary {
		names = append(names, n)
	}
	slices.Sort(names)
	out := make([]Command, len(names))
	for i, n := range names {
		out[i] = r.primary[n]
	}
	return out
}

// Section is a titled group of commands for help output.
type Section struct {
	Title    string
	Commands []Command
}

// Sections splits the commands into those that work on the task board,
// which need a session, and the rest.
func (r *Registry) Sections() []Section {
	tasks := Section{Title: "Task commands (need a session)"}
	other := Section{Title: "Account and other commands"}
	for _, c := range r.All() {
		if c.NeedsAuth() {
			tasks.Commands = append(tasks.Commands, c)
		} else {
			other.Commands = append(other.Commands, c)
		}
	}
	return []Section{tasks, other}
}

// DefaultRegistry holds the commands registered by this package.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a name clash.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
