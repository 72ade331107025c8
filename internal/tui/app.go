package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/board"
	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/internal/session"
)

// Model is the bubbletea model for the board.
type Model struct {
	// Dependencies
	ctx      context.Context
	engine   *board.Engine
	confirms *Confirmations
	logger   *slog.Logger

	// State from the engine
	view   board.View
	notice *board.Notice

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model

	// Open modal, at most one of these is set
	taskForm   *taskForm
	filterForm *filterForm
	sortForm   *sortForm
	confirmID  string

	// Numeric state
	mode        Mode
	cursor      int
	offset      int
	noticeSeq   int
	width       int
	height      int
	loaded      bool
	sessionLost bool
}

// New creates a board model over engine. Deletes are only issued for
// tasks the user confirmed in the dialog, recorded in confirms.
func New(ctx context.Context, engine *board.Engine, confirms *Confirmations, logger *slog.Logger) *Model {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Model{
		ctx:      ctx,
		engine:   engine,
		confirms: confirms,
		logger:   logger,
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		help:     help.New(),
		mode:     ModeNormal,
	}
}

// Init loads every task.
func (m *Model) Init() tea.Cmd {
	return m.dispatch(board.Reload{})
}

// dispatch runs an intent off the event loop. The engine reports back
// through the surface; the returned message only carries the error.
func (m *Model) dispatch(in board.Intent) tea.Cmd {
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		return MsgDispatched{Err: engine.Dispatch(ctx, in)}
	}
}

// confirmDelete deletes id with the user's approval. The approval lives
// only for this one dispatch, whether or not the engine got to consume it.
func (m *Model) confirmDelete(id string) tea.Cmd {
	ctx, engine, confirms := m.ctx, m.engine, m.confirms
	return func() tea.Msg {
		confirms.Allow(id)
		defer confirms.Revoke(id)
		return MsgDispatched{Err: engine.Dispatch(ctx, board.DeleteTask{ID: id})}
	}
}

// SelectedTask returns the task under the cursor.
func (m *Model) SelectedTask() (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Tasks) {
		return service.Task{}, false
	}
	return m.view.Tasks[m.cursor], true
}

// SessionLost reports whether the board closed because the session ended.
func (m *Model) SessionLost() bool { return m.sessionLost }

// Options configures Run.
type Options struct {
	Service  service.Service
	Guard    *session.Guard
	Logger   *slog.Logger
	Criteria service.Criteria
	In       io.Reader
	Out      io.Writer
}

// Run shows the board until the user quits. It returns
// service.ErrUnauthenticated when the session ended while the board was open.
func Run(ctx context.Context, opts Options) error {
	var p *tea.Program
	send := func(msg tea.Msg) { p.Send(msg) }

	confirms := NewConfirmations()
	engine := board.New(opts.Service, board.Options{
		Surface:   NewSurface(send),
		Confirmer: confirms,
		Logger:    opts.Logger,
	})
	engine.Criteria().SetFilter(opts.Criteria.Filter)
	engine.Criteria().SetSort(opts.Criteria.Sort)

	m := New(ctx, engine, confirms, opts.Logger)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if opts.In != nil {
		progOpts = append(progOpts, tea.WithInput(opts.In))
	}
	if opts.Out != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Out))
	}
	p = tea.NewProgram(m, progOpts...)

	if opts.Guard != nil {
		opts.Guard.SetRedirect(func() { send(MsgSessionLost{}) })
		defer opts.Guard.SetRedirect(nil)
	}

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	if fm, ok := final.(*Model); ok && fm.SessionLost() {
		return service.ErrUnauthenticated
	}
	return nil
}
