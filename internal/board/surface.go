package board

import (
	"context"
	"time"

	"taskboard/internal/service"
)

// NoticeTTL is how long a notice stays visible before it clears.
const NoticeTTL = 3 * time.Second

// NoticeKind distinguishes outcome messages.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is a transient user-facing outcome message.
type Notice struct {
	Kind NoticeKind
	Text string
}

// View is an ordered task list ready to render, with the indicator state.
type View struct {
	Tasks        []service.Task
	Criteria     service.Criteria
	FilterActive bool
	SortActive   bool

	// Stale is set when a reconciliation failed and the view shows
	// the last fetched tasks unfiltered.
	Stale bool
}

// Surface renders views and outcome messages. It receives task data only.
type Surface interface {
	Render(v View)
	Notify(n Notice)
	CloseModal()
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, t service.Task) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, t service.Task) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, t service.Task) (bool, error) {
	return f(ctx, t)
}

type nopSurface struct{}

func (nopSurface) Render(View)   {}
func (nopSurface) Notify(Notice) {}
func (nopSurface) CloseModal()   {}
