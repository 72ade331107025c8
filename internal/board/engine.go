// Package board keeps the local view of a user's tasks in step with the task service.
//
// The Engine owns the task cache and the filter/sort criteria. Every mutation
// of those two stores goes through the engine; overlapping reconciliations
// are tagged with a generation number and a result older than the one
// already rendered is dropped. A fetch that replaces the cache takes a new
// generation for its render, so a view built from fresher tasks always wins.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"taskboard/internal/logging"
	"taskboard/internal/service"
)

// Options configures an Engine.
type Options struct {
	Surface   Surface
	Confirmer Confirmer
	Logger    *slog.Logger
}

// Engine reconciles the rendered task list with the server and runs user intents.
type Engine struct {
	svc      service.Service
	surface  Surface
	confirm  Confirmer
	logger   *slog.Logger
	cache    *Cache
	criteria *CriteriaStore

	gen atomic.Uint64

	mu       sync.Mutex
	cacheGen uint64
	shownGen uint64
	view     View
}

// New creates an engine over svc.
func New(svc service.Service, opts Options) *Engine {
	e := &Engine{
		svc:      svc,
		surface:  opts.Surface,
		confirm:  opts.Confirmer,
		logger:   opts.Logger,
		cache:    NewCache(),
		criteria: NewCriteriaStore(),
	}
	if e.surface == nil {
		e.surface = nopSurface{}
	}
	if e.logger == nil {
		e.logger = logging.Discard()
	}
	return e
}

// Cache returns the task cache.
func (e *Engine) Cache() *Cache { return e.cache }

// Criteria returns the criteria store.
func (e *Engine) Criteria() *CriteriaStore { return e.criteria }

// View returns the last rendered view.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view
}

// Refresh fetches every task, replaces the cache and reconciles.
func (e *Engine) Refresh(ctx context.Context) (View, error) {
	gen := e.gen.Add(1)

	tasks, err := e.svc.ListAll(ctx)
	if err != nil {
		return e.fail(gen, err)
	}

	e.mu.Lock()
	if gen > e.cacheGen {
		e.cache.Replace(tasks)
		e.cacheGen = gen
		// Reconciles started while this fetch was in flight rendered from
		// the old cache; this one must be allowed to replace them.
		gen = e.gen.Add(1)
	} else {
		e.logger.Debug("stale fetch discarded", "generation", gen)
	}
	e.mu.Unlock()

	return e.reconcile(ctx, gen)
}

// Reconcile recomputes the view from the cache and the current criteria.
func (e *Engine) Reconcile(ctx context.Context) (View, error) {
	return e.reconcile(ctx, e.gen.Add(1))
}

func (e *Engine) reconcile(ctx context.Context, gen uint64) (View, error) {
	crit := e.criteria.Criteria()

	var candidates []service.Task
	if crit.Filter.IsZero() {
		candidates = e.cache.All()
		e.logger.Debug("reconcile from cache", "tasks", len(candidates))
	} else {
		filtered, err := e.svc.ListFiltered(ctx, crit.Filter)
		if err != nil {
			return e.fail(gen, err)
		}
		candidates = filtered
		e.logger.Debug("reconcile from server filter", "tasks", len(candidates))
	}

	ordered := candidates
	if len(candidates) > 0 {
		ids := make([]string, len(candidates))
		for i, t := range candidates {
			ids[i] = t.ID
		}
		sorted, err := e.svc.Sort(ctx, ids, crit.Sort)
		if err != nil {
			return e.fail(gen, err)
		}
		ordered = sorted
	}

	v := e.viewOf(ordered, crit)
	e.render(gen, v)
	return v, nil
}

// fail reports err and falls back to the cached tasks unfiltered.
// Authorization failures have already been routed to the session guard
// and leave the view alone.
func (e *Engine) fail(gen uint64, err error) (View, error) {
	if service.IsAuth(err) {
		e.logger.Debug("reconcile stopped: unauthorized")
		return e.View(), err
	}

	e.logger.Warn("reconcile failed, showing cached tasks", "error", err)
	e.surface.Notify(Notice{Kind: NoticeError, Text: err.Error()})

	v := e.viewOf(e.cache.All(), e.criteria.Criteria())
	v.Stale = true
	e.render(gen, v)
	return v, err
}

func (e *Engine) viewOf(tasks []service.Task, crit service.Criteria) View {
	return View{
		Tasks:        tasks,
		Criteria:     crit,
		FilterActive: !crit.Filter.IsZero(),
		SortActive:   !crit.Sort.IsDefault(),
	}
}

func (e *Engine) render(gen uint64, v View) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen < e.shownGen {
		e.logger.Debug("stale view discarded", "generation", gen, "shown", e.shownGen)
		return
	}
	e.shownGen = gen
	e.view = v
	e.surface.Render(v)
}

// BeginEdit returns the edit form prefilled from the cached task.
func (e *Engine) BeginEdit(id string) (service.Patch, error) {
	t, err := e.cache.FindByID(id)
	if err != nil {
		return service.Patch{}, err
	}
	return service.PatchFrom(t), nil
}

// notifyError shows err inline unless it is an authorization failure,
// which is never shown as a message.
func (e *Engine) notifyError(err error) {
	if err == nil || service.IsAuth(err) || errors.Is(err, service.ErrCancelled) {
		return
	}
	e.surface.Notify(Notice{Kind: NoticeError, Text: err.Error()})
}

// Resolve finds a task by its 1-based position in the last rendered view,
// falling back to an exact id or unique id prefix in the cache.
func (e *Engine) Resolve(ref string) (service.Task, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		tasks := e.View().Tasks
		if n < 1 || n > len(tasks) {
			return service.Task{}, &service.ValidationError{
				Field:   "task",
				Message: fmt.Sprintf("task number out of range: %d", n),
			}
		}
		return tasks[n-1], nil
	}
	return e.cache.Resolve(ref)
}
