package output

import (
	"fmt"
	"io"
	"sync"

	"taskboard/internal/board"
)

// Ensure Printer can be handed to the board engine.
var _ board.Surface = (*Printer)(nil)

// Printer is the render surface for one-shot CLI commands.
// It keeps the last rendered view for the command to print once the
// engine settles; success notices go straight to out unless quiet.
// Error notices are kept for the command to print once it settles.
type Printer struct {
	out   io.Writer
	quiet bool

	mu   sync.Mutex
	view board.View
	errs []board.Notice
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer, quiet bool) *Printer {
	return &Printer{out: out, quiet: quiet}
}

// Render implements board.Surface.
func (p *Printer) Render(v board.View) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view = v
}

// Notify implements board.Surface.
func (p *Printer) Notify(n board.Notice) {
	if n.Kind == board.NoticeError {
		p.mu.Lock()
		p.errs = append(p.errs, n)
		p.mu.Unlock()
		return
	}
	if !p.quiet {
		fmt.Fprintln(p.out, n.Text)
	}
}

// CloseModal implements board.Surface. A one-shot command has no modal.
func (p *Printer) CloseModal() {}

// View returns the last rendered view.
func (p *Printer) View() board.View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// Errors returns the error notices received so far.
func (p *Printer) Errors() []board.Notice {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]board.Notice(nil), p.errs...)
}

// Flush prints the last rendered view.
func (p *Printer) Flush(numbered bool) {
	FormatView(p.out, p.View(), numbered)
}
