// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"taskboard/internal/service"
)

// Ensure FakeService implements service.Service.
var _ service.Service = (*FakeService)(nil)

// Call records one invocation of a FakeService method.
type Call struct {
	Op     string
	ID     string
	IDs    []string
	Filter service.Filter
	Sort   service.Sort
	Target service.Status
	Draft  service.Draft
	Patch  service.Patch
}

// FakeService is an in-memory implementation of service.Service for testing.
// It follows the server's filter and sort semantics and records every call.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	users  map[string]string
	calls  []Call
	nextID int

	// Error injection for testing
	ListAllErr      error
	ListFilteredErr error
	SortErr         error
	CreateErr       error
	UpdateErr       error
	RemoveErr       error
	TransitionErr   error
	LoginErr        error
	RegisterErr     error

	// OnCall runs after a call is recorded, before it is served.
	OnCall func(Call)
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{users: make(map[string]string)}
}

// AddTask seeds a task. CreatedAt is assigned in insertion order when empty.
func (f *FakeService) AddTask(t service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	if t.CreatedAt == "" {
		t.CreatedAt = fmt.Sprintf("2024-01-01T00:00:%02d", f.nextID)
	}
	f.tasks = append(f.tasks, t)
}

// AddUser seeds an account.
func (f *FakeService) AddUser(email, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = password
}

// Task returns the stored task with id.
func (f *FakeService) Task(id string) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	i := f.index(id)
	if i < 0 {
		return service.Task{}, false
	}
	return f.withOverdue(f.tasks[i]), true
}

// Calls returns a copy of the recorded calls.
func (f *FakeService) Calls() []Call {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Ops returns the names of the recorded calls in order.
func (f *FakeService) Ops() []string {
	calls := f.Calls()
	ops := make([]string, len(calls))
	for i, c := range calls {
		ops[i] = c.Op
	}
	return ops
}

// ResetCalls forgets recorded calls.
func (f *FakeService) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FakeService) record(c Call) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	hook := f.OnCall
	f.mu.Unlock()
	if hook != nil {
		hook(c)
	}
}

func (f *FakeService) index(id string) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeService) withOverdue(t service.Task) service.Task {
	t.Overdue = overdue(t)
	return t
}

func (f *FakeService) snapshot() []service.Task {
	out := make([]service.Task, len(f.tasks))
	for i, t := range f.tasks {
		out[i] = f.withOverdue(t)
	}
	return out
}

// ListAll implements service.Service.
func (f *FakeService) ListAll(ctx context.Context) ([]service.Task, error) {
	f.record(Call{Op: "ListAll"})
	if f.ListAllErr != nil {
		return nil, f.ListAllErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshot(), nil
}

// ListFiltered implements service.Service.
func (f *FakeService) ListFiltered(ctx context.Context, filter service.Filter) ([]service.Task, error) {
	f.record(Call{Op: "ListFiltered", Filter: filter})
	if f.ListFilteredErr != nil {
		return nil, f.ListFilteredErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []service.Task
	for _, t := range f.snapshot() {
		if matches(t, filter) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Sort implements service.Service.
func (f *FakeService) Sort(ctx context.Context, ids []string, s service.Sort) ([]service.Task, error) {
	f.record(Call{Op: "Sort", IDs: append([]string(nil), ids...), Sort: s})
	if f.SortErr != nil {
		return nil, f.SortErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, 0, len(ids))
	for _, id := range ids {
		i := f.index(id)
		if i < 0 {
			return nil, &service.RemoteError{Status: 500, Message: "Task not found: " + id}
		}
		out = append(out, f.withOverdue(f.tasks[i]))
	}
	sortTasks(out, s)
	return out, nil
}

// Create implements service.Service.
func (f *FakeService) Create(ctx context.Context, d service.Draft) (service.Task, error) {
	f.record(Call{Op: "Create", Draft: d})
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	t := service.Task{
		ID:          fmt.Sprintf("task-%d", f.nextID),
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		Priority:    d.Priority,
		Category:    d.Category,
		DueDate:     d.DueDate,
		CreatedAt:   fmt.Sprintf("2024-01-01T00:00:%02d", f.nextID),
	}
	f.tasks = append(f.tasks, t)
	return f.withOverdue(t), nil
}

// Update implements service.Service.
func (f *FakeService) Update(ctx context.Context, id string, p service.Patch) (service.Task, error) {
	f.record(Call{Op: "Update", ID: id, Patch: p})
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.index(id)
	if i < 0 {
		return service.Task{}, &service.RemoteError{Status: 500, Message: "Task not found"}
	}
	t := &f.tasks[i]
	t.Title = p.Title
	t.Description = p.Description
	t.DueDate = p.DueDate
	t.Priority = p.Priority
	t.Category = p.Category
	return f.withOverdue(*t), nil
}

// Remove implements service.Service.
func (f *FakeService) Remove(ctx context.Context, id string) error {
	f.record(Call{Op: "Remove", ID: id})
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.index(id)
	if i < 0 {
		return &service.RemoteError{Status: 500, Message: "Task not found"}
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}

// Transition implements service.Service.
func (f *FakeService) Transition(ctx context.Context, id string, target service.Status) error {
	f.record(Call{Op: "Transition", ID: id, Target: target})
	if f.TransitionErr != nil {
		return f.TransitionErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.index(id)
	if i < 0 {
		return &service.RemoteError{Status: 500, Message: "Task not found"}
	}
	f.tasks[i].Status = target
	return nil
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, c service.Credentials) (service.Tokens, error) {
	f.record(Call{Op: "Login"})
	if f.LoginErr != nil {
		return service.Tokens{}, f.LoginErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	if pw, ok := f.users[c.Email]; !ok || pw != c.Password {
		return service.Tokens{}, &service.RemoteError{Status: 401, Message: "Invalid email or password"}
	}
	return service.Tokens{
		AccessToken:  "access-" + c.Email,
		RefreshToken: "refresh-" + c.Email,
	}, nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, c service.Credentials) error {
	f.record(Call{Op: "Register"})
	if f.RegisterErr != nil {
		return f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	email := strings.TrimSpace(c.Email)
	if _, exists := f.users[email]; exists {
		return &service.RemoteError{Status: 400, Message: "Email already registered"}
	}
	f.users[email] = c.Password
	return nil
}
