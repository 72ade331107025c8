package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/board"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

// View renders the board.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewTaskList())
	b.WriteString("\n")

	if m.mode.IsModal() {
		b.WriteString(m.viewModal())
		b.WriteString("\n")
	}

	b.WriteString(m.viewNotice())
	b.WriteString("\n")
	b.WriteString(m.viewFooter())

	return m.styles.App.Render(b.String())
}

func (m *Model) viewHeader() string {
	parts := []string{m.styles.Header.Render("taskboard")}
	if line := output.CriteriaLine(m.view); line != "" {
		parts = append(parts, m.styles.Criteria.Render(line))
	}
	if m.view.Stale {
		parts = append(parts, m.styles.Stale.Render("(showing cached tasks)"))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) viewTaskList() string {
	if !m.loaded {
		return m.styles.Muted.Render("Loading...")
	}
	if len(m.view.Tasks) == 0 {
		if m.view.FilterActive {
			return m.styles.Muted.Render("No tasks match the filter. Press c to clear it.")
		}
		return m.styles.Muted.Render("No tasks yet. Press n to create one.")
	}

	end := len(m.view.Tasks)
	if rows := m.listRows(); rows > 0 && m.offset+rows < end {
		end = m.offset + rows
	}

	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderTask(m.view.Tasks[i], i == m.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderTask(t service.Task, selected bool) string {
	cursor := "  "
	title := output.NormalizeTitle(t.Title)
	if selected {
		cursor = "> "
		title = m.styles.Selected.Render(title)
	}

	status := output.StatusStyle(t.Status).Render(fmt.Sprintf("%-11s", t.Status.Display()))
	due := output.DueText(t)
	if t.Overdue {
		due = output.OverdueStyle().Render(due + " !")
	}
	line := fmt.Sprintf("%s%s  %-6s  %-8s  %-12s  %s",
		cursor, status, t.Priority.Display(), t.Category.Display(), due, title)

	if selected {
		if a, ok := t.Status.NextAction(); ok {
			line += m.styles.Muted.Render("  [s] " + a.Display())
		}
	}
	return line
}

func (m *Model) viewModal() string {
	switch m.mode {
	case ModeCreate, ModeEdit:
		return m.viewForm(&m.taskForm.form)
	case ModeFilter:
		return m.viewForm(&m.filterForm.form)
	case ModeSort:
		return m.viewForm(&m.sortForm.form)
	case ModeConfirm:
		return m.viewConfirm()
	}
	return ""
}

func (m *Model) viewForm(f *form) string {
	rows := []string{m.styles.ModalTitle.Render(f.heading), ""}
	for i, fd := range f.fields {
		label := m.styles.Label.Render(fd.label)
		if i == f.focus {
			label = m.styles.Focused.Render(fd.label)
		}

		var value string
		switch {
		case fd.input != nil:
			value = fd.input.View()
		case fd.choice != nil:
			value = "‹ " + fd.choice.text() + " ›"
		case fd.toggle != nil:
			value = "[ ]"
			if *fd.toggle {
				value = "[x]"
			}
		}
		rows = append(rows, label+value)
	}
	return m.styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) viewConfirm() string {
	title := m.confirmID
	for _, t := range m.view.Tasks {
		if t.ID == m.confirmID {
			title = output.NormalizeTitle(t.Title)
			break
		}
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.ModalTitle.Render("Delete task"),
		"",
		fmt.Sprintf("Delete %q? This cannot be undone.", title),
		"",
		m.styles.Muted.Render("y: delete   n/esc: keep"),
	)
	return m.styles.Modal.Render(body)
}

func (m *Model) viewNotice() string {
	if m.notice == nil {
		return ""
	}
	if m.notice.Kind == board.NoticeError {
		return m.styles.Error.Render(m.notice.Text)
	}
	return m.styles.Success.Render(m.notice.Text)
}

func (m *Model) viewFooter() string {
	if m.mode.IsModal() && m.mode != ModeConfirm {
		return m.help.View(formKeys{m.keys})
	}
	return m.help.View(m.keys)
}
