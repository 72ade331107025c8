package board

import (
	"context"
	"fmt"
	"strings"

	"taskboard/internal/service"
)

// Dispatch runs a user intent. Mutations are validated locally first; on
// success a notice is shown, any open modal is closed and every task is
// re-fetched. On failure an error notice is shown and local state is untouched.
func (e *Engine) Dispatch(ctx context.Context, in Intent) error {
	switch in := in.(type) {
	case CreateTask:
		return e.create(ctx, in.Draft)
	case EditTask:
		return e.edit(ctx, in.ID, in.Patch)
	case StartTask:
		return e.transition(ctx, in.ID, service.ActionStart)
	case CompleteTask:
		return e.transition(ctx, in.ID, service.ActionComplete)
	case DeleteTask:
		return e.remove(ctx, in.ID)
	case ApplyFilter:
		if err := validateFilter(in.Filter); err != nil {
			e.notifyError(err)
			return err
		}
		e.criteria.SetFilter(in.Filter)
		_, err := e.Reconcile(ctx)
		return err
	case ApplySort:
		if in.Sort.Key != "" {
			if _, err := service.ParseSortKey(string(in.Sort.Key)); err != nil {
				verr := &service.ValidationError{Field: "sort", Message: err.Error()}
				e.notifyError(verr)
				return verr
			}
		}
		e.criteria.SetSort(in.Sort)
		_, err := e.Reconcile(ctx)
		return err
	case ResetCriteria:
		e.criteria.Reset()
		_, err := e.Reconcile(ctx)
		return err
	case Reload:
		_, err := e.Refresh(ctx)
		return err
	default:
		return fmt.Errorf("unknown intent %T", in)
	}
}

func (e *Engine) create(ctx context.Context, d service.Draft) error {
	d.Title = strings.TrimSpace(d.Title)
	d.Status = service.StatusCreated
	if err := validateFields(d.Title, d.Priority, d.Category); err != nil {
		e.notifyError(err)
		return err
	}

	if _, err := e.svc.Create(ctx, d); err != nil {
		e.notifyError(err)
		return err
	}
	return e.succeeded(ctx, "Task created", true)
}

func (e *Engine) edit(ctx context.Context, id string, p service.Patch) error {
	if id == "" {
		err := service.Required("task id")
		e.notifyError(err)
		return err
	}
	p.Title = strings.TrimSpace(p.Title)
	if err := validateFields(p.Title, p.Priority, p.Category); err != nil {
		e.notifyError(err)
		return err
	}

	if _, err := e.svc.Update(ctx, id, p); err != nil {
		e.notifyError(err)
		return err
	}
	return e.succeeded(ctx, "Task updated", true)
}

// transition only offers forward moves from the task's cached status.
func (e *Engine) transition(ctx context.Context, id string, action service.Action) error {
	t, err := e.cache.FindByID(id)
	if err != nil {
		e.notifyError(err)
		return err
	}
	next, ok := t.Status.NextAction()
	if !ok || next != action {
		verr := &service.ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("cannot %s a task that is %s", action, t.Status.Display()),
		}
		e.notifyError(verr)
		return verr
	}

	if err := e.svc.Transition(ctx, id, action.Target()); err != nil {
		e.notifyError(err)
		return err
	}
	msg := "Task started"
	if action == service.ActionComplete {
		msg = "Task completed"
	}
	return e.succeeded(ctx, msg, false)
}

// remove issues the delete only after an explicit confirmation.
func (e *Engine) remove(ctx context.Context, id string) error {
	t, err := e.cache.FindByID(id)
	if err != nil {
		e.notifyError(err)
		return err
	}
	if e.confirm == nil {
		return service.ErrCancelled
	}
	ok, err := e.confirm.Confirm(ctx, t)
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		e.logger.Debug("delete not confirmed", "id", id)
		return service.ErrCancelled
	}

	if err := e.svc.Remove(ctx, id); err != nil {
		e.notifyError(err)
		return err
	}
	return e.succeeded(ctx, "Task deleted", true)
}

func (e *Engine) succeeded(ctx context.Context, msg string, closeModal bool) error {
	e.surface.Notify(Notice{Kind: NoticeSuccess, Text: msg})
	if closeModal {
		e.surface.CloseModal()
	}
	// The mutation stands even if the re-fetch fails; that failure has
	// already been shown and the view fell back to the cache.
	if _, err := e.Refresh(ctx); service.IsAuth(err) {
		return err
	}
	return nil
}

func validateFields(title string, p service.Priority, c service.Category) error {
	if title == "" {
		return service.Required("title")
	}
	if !p.IsValid() {
		return &service.ValidationError{Field: "priority", Message: fmt.Sprintf("invalid priority: %q", p)}
	}
	if !c.IsValid() {
		return &service.ValidationError{Field: "category", Message: fmt.Sprintf("invalid category: %q", c)}
	}
	return nil
}

func validateFilter(f service.Filter) error {
	if f.Category != "" && !f.Category.IsValid() {
		return &service.ValidationError{Field: "category", Message: fmt.Sprintf("invalid category: %q", f.Category)}
	}
	if f.Priority != "" && !f.Priority.IsValid() {
		return &service.ValidationError{Field: "priority", Message: fmt.Sprintf("invalid priority: %q", f.Priority)}
	}
	if f.Status != "" && !f.Status.IsValid() {
		return &service.ValidationError{Field: "status", Message: fmt.Sprintf("invalid status: %q", f.Status)}
	}
	return nil
}
