package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/board"
	"taskboard/internal/service"
)

// Ensure the adapters satisfy the engine's surface interfaces.
var (
	_ board.Surface   = (*Surface)(nil)
	_ board.Confirmer = (*Confirmations)(nil)
)

// Surface forwards engine output into the bubbletea event loop.
// Its methods must not be called from inside Update.
type Surface struct {
	send func(tea.Msg)
}

// NewSurface creates a surface that delivers messages through send,
// usually (*tea.Program).Send.
func NewSurface(send func(tea.Msg)) *Surface {
	return &Surface{send: send}
}

// Render implements board.Surface.
func (s *Surface) Render(v board.View) { s.send(MsgRender{View: v}) }

// Notify implements board.Surface.
func (s *Surface) Notify(n board.Notice) { s.send(MsgNotice{Notice: n}) }

// CloseModal implements board.Surface.
func (s *Surface) CloseModal() { s.send(MsgCloseModal{}) }

// Confirmations records deletes the user has confirmed in the dialog.
// Each confirmation is consumed by exactly one delete.
type Confirmations struct {
	mu  sync.Mutex
	ids map[string]bool
}

// NewConfirmations creates an empty set of confirmations.
func NewConfirmations() *Confirmations {
	return &Confirmations{ids: make(map[string]bool)}
}

// Allow records that the user confirmed deleting id.
func (c *Confirmations) Allow(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids[id] = true
}

// Revoke drops an approval for id that no delete consumed.
func (c *Confirmations) Revoke(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.ids, id)
}

// Pending reports whether an approval for id is waiting to be consumed.
func (c *Confirmations) Pending(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ids[id]
}

// Confirm implements board.Confirmer.
func (c *Confirmations) Confirm(ctx context.Context, t service.Task) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ok := c.ids[t.ID]
	delete(c.ids, t.ID)
	return ok, nil
}
