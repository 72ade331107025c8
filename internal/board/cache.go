package board

import (
	"fmt"
	"strings"
	"sync"

	"taskboard/internal/service"
)

// Cache holds the last unfiltered task set fetched from the server.
// It is replaced wholesale on every successful fetch and never patched.
type Cache struct {
	mu     sync.RWMutex
	tasks  []service.Task
	loaded bool
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// All returns a copy of the cached tasks in server order.
func (c *Cache) All() []service.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]service.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Loaded reports whether the cache has been filled at least once.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// FindByID returns the cached task with id or service.ErrTaskNotFound.
func (c *Cache) FindByID(id string) (service.Task, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, service.ErrTaskNotFound
}

// Replace swaps in a new task set.
func (c *Cache) Replace(tasks []service.Task) {
	next := make([]service.Task, len(tasks))
	copy(next, tasks)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = next
	c.loaded = true
}

// Resolve finds a cached task by exact id or by a unique id prefix.
func (c *Cache) Resolve(ref string) (service.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return service.Task{}, service.Required("task reference")
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var match []service.Task
	for _, t := range c.tasks {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			match = append(match, t)
		}
	}
	switch len(match) {
	case 0:
		return service.Task{}, fmt.Errorf("%w: %s", service.ErrTaskNotFound, ref)
	case 1:
		return match[0], nil
	default:
		return service.Task{}, &service.ValidationError{
			Field:   "task",
			Message: fmt.Sprintf("ambiguous task reference: %s matches %d tasks", ref, len(match)),
		}
	}
}
