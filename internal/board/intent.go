package board

import "taskboard/internal/service"

// Intent is the sealed interface for user actions the engine consumes.
//
// go-sumtype:decl Intent
type Intent interface {
	intent()
}

// CreateTask asks for a new task from a filled-in create form.
type CreateTask struct {
	Draft service.Draft
}

// EditTask saves an edit form for an existing task.
type EditTask struct {
	ID    string
	Patch service.Patch
}

// StartTask moves a pre-work task to IN_PROGRESS.
type StartTask struct {
	ID string
}

// CompleteTask moves an in-progress task to DONE.
type CompleteTask struct {
	ID string
}

// DeleteTask removes a task after the user confirms.
type DeleteTask struct {
	ID string
}

// ApplyFilter submits the filter form.
type ApplyFilter struct {
	Filter service.Filter
}

// ApplySort submits the sort form.
type ApplySort struct {
	Sort service.Sort
}

// ResetCriteria clears filter and sort.
type ResetCriteria struct{}

// Reload re-fetches every task from the server.
type Reload struct{}

func (CreateTask) intent()    {}
func (EditTask) intent()      {}
func (StartTask) intent()     {}
func (CompleteTask) intent()  {}
func (DeleteTask) intent()    {}
func (ApplyFilter) intent()   {}
func (ApplySort) intent()     {}
func (ResetCriteria) intent() {}
func (Reload) intent()        {}

// ActionIntent returns the intent for a status action on task id.
func ActionIntent(a service.Action, id string) (Intent, bool) {
	switch a {
	case service.ActionStart:
		return StartTask{ID: id}, true
	case service.ActionComplete:
		return CompleteTask{ID: id}, true
	default:
		return nil, false
	}
}
