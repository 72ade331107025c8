// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All task service HTTP calls go through this interface.
// Commands and the board engine never build requests directly.
type Service interface {
	// ListAll returns every task of the current user in server order.
	ListAll(ctx context.Context) ([]Task, error)

	// ListFiltered returns the tasks matching f, filtered by the server.
	ListFiltered(ctx context.Context, f Filter) ([]Task, error)

	// Sort returns the tasks with the given ids reordered by the server.
	// ids must be a subset of the currently known tasks.
	Sort(ctx context.Context, ids []string, s Sort) ([]Task, error)

	// Create creates a task and returns it as stored.
	Create(ctx context.Context, d Draft) (Task, error)

	// Update replaces the editable fields of a task.
	Update(ctx context.Context, id string, p Patch) (Task, error)

	// Remove deletes a task.
	Remove(ctx context.Context, id string) error

	// Transition moves a task to IN_PROGRESS or DONE.
	Transition(ctx context.Context, id string, target Status) error

	// Login exchanges credentials for an access/refresh token pair.
	Login(ctx context.Context, c Credentials) (Tokens, error)

	// Register creates a new account.
	Register(ctx context.Context, c Credentials) error
}
