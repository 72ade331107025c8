package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/board"
	"taskboard/internal/service"
)

// Update handles messages and key presses.
// Engine methods that take the view lock must not be called from here.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil

	case MsgRender:
		m.setView(msg.View)
		return m, nil

	case MsgNotice:
		m.noticeSeq++
		n := msg.Notice
		m.notice = &n
		seq := m.noticeSeq
		return m, tea.Tick(board.NoticeTTL, func(time.Time) tea.Msg {
			return MsgNoticeExpired{Seq: seq}
		})

	case MsgNoticeExpired:
		if msg.Seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil

	case MsgCloseModal:
		m.closeModal()
		return m, nil

	case MsgDispatched:
		if service.IsAuth(msg.Err) {
			m.sessionLost = true
			return m, tea.Quit
		}
		if msg.Err != nil {
			m.logger.Debug("intent failed", "error", msg.Err)
		}
		return m, nil

	case MsgSessionLost:
		m.sessionLost = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) setView(v board.View) {
	var selected string
	if t, ok := m.SelectedTask(); ok {
		selected = t.ID
	}
	m.view = v
	m.loaded = true

	m.cursor = 0
	for i, t := range v.Tasks {
		if t.ID == selected {
			m.cursor = i
			break
		}
	}
	m.clampCursor()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeCreate, ModeEdit:
		return m.handleTaskFormMode(msg)
	case ModeFilter:
		return m.handleFilterMode(msg)
	case ModeSort:
		return m.handleSortMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeNormal:
		return m.handleNormalMode(msg)
	}
	return m, nil
}

func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()

	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()

	case key.Matches(msg, m.keys.New):
		m.taskForm = newCreateForm()
		m.mode = ModeCreate

	case key.Matches(msg, m.keys.Edit):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		patch, err := m.engine.BeginEdit(task.ID)
		if err != nil {
			return m, m.flash(board.Notice{Kind: board.NoticeError, Text: err.Error()})
		}
		m.taskForm = newEditForm(task.ID, patch)
		m.mode = ModeEdit

	case key.Matches(msg, m.keys.Advance):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		action, ok := task.Status.NextAction()
		if !ok {
			return m, nil
		}
		intent, _ := board.ActionIntent(action, task.ID)
		return m, m.dispatch(intent)

	case key.Matches(msg, m.keys.Delete):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		m.confirmID = task.ID
		m.mode = ModeConfirm

	case key.Matches(msg, m.keys.Filter):
		m.filterForm = newFilterForm(m.view.Criteria.Filter)
		m.mode = ModeFilter

	case key.Matches(msg, m.keys.Sort):
		m.sortForm = newSortForm(m.view.Criteria.Sort)
		m.mode = ModeSort

	case key.Matches(msg, m.keys.Reset):
		return m, m.dispatch(board.ResetCriteria{})

	case key.Matches(msg, m.keys.Refresh):
		return m, m.dispatch(board.Reload{})

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleTaskFormMode handles keys in the create and edit forms.
// The form stays open until the engine reports success.
func (m *Model) handleTaskFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tf := m.taskForm
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeModal()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.mode == ModeEdit {
			patch, err := tf.patch()
			if err != nil {
				return m, m.flash(board.Notice{Kind: board.NoticeError, Text: err.Error()})
			}
			return m, m.dispatch(board.EditTask{ID: tf.id, Patch: patch})
		}
		draft, err := tf.draft()
		if err != nil {
			return m, m.flash(board.Notice{Kind: board.NoticeError, Text: err.Error()})
		}
		return m, m.dispatch(board.CreateTask{Draft: draft})
	}
	return m, m.handleFormKey(&tf.form, msg)
}

func (m *Model) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeModal()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		f := m.filterForm.filter()
		m.closeModal()
		return m, m.dispatch(board.ApplyFilter{Filter: f})
	}
	return m, m.handleFormKey(&m.filterForm.form, msg)
}

func (m *Model) handleSortMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeModal()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		s := m.sortForm.sort()
		m.closeModal()
		return m, m.dispatch(board.ApplySort{Sort: s})
	}
	return m, m.handleFormKey(&m.sortForm.form, msg)
}

// handleFormKey moves focus, cycles choices and toggles, and forwards
// everything else to the focused text input.
func (m *Model) handleFormKey(f *form, msg tea.KeyMsg) tea.Cmd {
	cur := f.current()
	toggle := msg.Type == tea.KeySpace || key.Matches(msg, m.keys.Toggle)
	switch {
	case key.Matches(msg, m.keys.NextField):
		f.next()
		return nil
	case key.Matches(msg, m.keys.PrevField):
		f.prev()
		return nil
	case cur.choice != nil && (toggle || key.Matches(msg, m.keys.Right)):
		cur.choice.next()
		return nil
	case cur.choice != nil && key.Matches(msg, m.keys.Left):
		cur.choice.prev()
		return nil
	case cur.toggle != nil && (toggle || key.Matches(msg, m.keys.Left, m.keys.Right)):
		*cur.toggle = !*cur.toggle
		return nil
	}
	return f.update(msg)
}

// handleConfirmMode issues the delete only on an explicit yes.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirmID
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.closeModal()
		return m, m.confirmDelete(id)
	case key.Matches(msg, m.keys.Escape), msg.String() == "n", msg.String() == "N", msg.Type == tea.KeyEnter:
		m.closeModal()
	}
	return m, nil
}

func (m *Model) closeModal() {
	m.mode = ModeNormal
	m.taskForm = nil
	m.filterForm = nil
	m.sortForm = nil
	m.confirmID = ""
}

// flash shows a local notice, such as a form error found before dispatch.
func (m *Model) flash(n board.Notice) tea.Cmd {
	return func() tea.Msg { return MsgNotice{Notice: n} }
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.view.Tasks) {
		m.cursor = len(m.view.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if rows > 0 && m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// listRows is how many task lines fit on screen, or 0 when unknown.
func (m *Model) listRows() int {
	if m.height == 0 {
		return 0
	}
	rows := m.height - 8
	if m.mode.IsModal() {
		rows -= 8
	}
	if rows < 3 {
		rows = 3
	}
	return rows
}
