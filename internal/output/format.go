// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"taskboard/internal/board"
	"taskboard/internal/service"
)

const (
	// Separator is printed between the criteria line and the task lines.
	Separator = "------------"

	// ShortIDLen is the id prefix length shown in task lines.
	ShortIDLen = 8

	statusWidth = 11
)

// Format selects how a single task is printed.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat parses a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

var (
	statusStyles = map[service.Status]lipgloss.Style{
		service.StatusCreated:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		service.StatusTodo:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		service.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		service.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// StatusStyle returns the color used for a status badge.
func StatusStyle(s service.Status) lipgloss.Style {
	if st, ok := statusStyles[s]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// OverdueStyle returns the color used to flag overdue tasks.
func OverdueStyle() lipgloss.Style { return overdueStyle }

// MutedStyle returns the color used for secondary text.
func MutedStyle() lipgloss.Style { return mutedStyle }

// FormatTask formats one task line.
// Format: "{N:>4}  {ID:8}  {STATUS:11}  {PRIORITY:6}  {CATEGORY:8}  {DUE:10}  {TITLE}"
// num < 1 prints "-" in place of the position.
func FormatTask(w io.Writer, num int, task service.Task) {
	pos := "-"
	if num > 0 {
		pos = strconv.Itoa(num)
	}
	status := StatusStyle(task.Status).Render(pad(task.Status.Display(), statusWidth))
	line := fmt.Sprintf("%4s  %-8s  %s  %-6s  %-8s  %-10s  %s",
		pos,
		ShortID(task.ID),
		status,
		task.Priority.Display(),
		task.Category.Display(),
		DueText(task),
		NormalizeTitle(task.Title),
	)
	if task.Overdue {
		line += "  " + overdueStyle.Render("(overdue)")
	}
	fmt.Fprintln(w, line)
}

// FormatView prints the criteria indicator and every task in v.
// Positions are printed only when numbered is set.
func FormatView(w io.Writer, v board.View, numbered bool) {
	if v.Stale {
		fmt.Fprintln(w, mutedStyle.Render("(showing cached tasks)"))
	}
	if line := CriteriaLine(v); line != "" {
		fmt.Fprintln(w, line)
		fmt.Fprintln(w, Separator)
	}
	if len(v.Tasks) == 0 {
		fmt.Fprintln(w, "no tasks found")
		return
	}
	for i, t := range v.Tasks {
		num := 0
		if numbered {
			num = i + 1
		}
		FormatTask(w, num, t)
	}
}

// CriteriaLine describes the active filter and sort, or "" when both are default.
func CriteriaLine(v board.View) string {
	var parts []string
	if v.FilterActive {
		parts = append(parts, "filter: "+FilterText(v.Criteria.Filter))
	}
	if v.SortActive {
		parts = append(parts, "sort: "+SortText(v.Criteria.Sort))
	}
	return strings.Join(parts, "  ")
}

// FilterText summarizes the set filter fields.
func FilterText(f service.Filter) string {
	var parts []string
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		parts = append(parts, strconv.Quote(kw))
	}
	if f.Category != "" {
		parts = append(parts, "category="+f.Category.Display())
	}
	if f.Priority != "" {
		parts = append(parts, "priority="+f.Priority.Display())
	}
	if f.Status != "" {
		parts = append(parts, "status="+f.Status.Display())
	}
	if f.OverdueOnly {
		parts = append(parts, "overdue")
	}
	return strings.Join(parts, ", ")
}

// SortText summarizes a sort.
func SortText(s service.Sort) string {
	dir := "desc"
	if s.Ascending {
		dir = "asc"
	}
	return string(s.Key) + " " + dir
}

// DueText returns the calendar due date or "-".
func DueText(t service.Task) string {
	if t.DueDate == nil {
		return "-"
	}
	return t.DueDate.Date()
}

// ShortID returns the id prefix shown in task lines.
func ShortID(id string) string {
	if len(id) <= ShortIDLen {
		return id
	}
	return id[:ShortIDLen]
}

// WriteTask prints a single task in the given format.
func WriteTask(w io.Writer, task service.Task, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(task); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(task)
	default:
		writeTaskText(w, task)
		return nil
	}
}

func writeTaskText(w io.Writer, t service.Task) {
	row := func(label, value string) {
		fmt.Fprintf(w, "%-13s%s\n", label+":", value)
	}
	row("ID", t.ID)
	row("Title", NormalizeTitle(t.Title))
	if t.Description != "" {
		row("Description", t.Description)
	}
	row("Status", StatusStyle(t.Status).Render(t.Status.Display()))
	row("Priority", t.Priority.Display())
	row("Category", t.Category.Display())
	due := DueText(t)
	if t.Overdue {
		due += " " + overdueStyle.Render("(overdue)")
	}
	row("Due", due)
	if t.CreatedAt != "" {
		row("Created", t.CreatedAt)
	}
	if a, ok := t.Status.NextAction(); ok {
		row("Next", a.Display())
	}
}

// NormalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
