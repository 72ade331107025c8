package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the board.
type Styles struct {
	App        lipgloss.Style
	Header     lipgloss.Style
	Criteria   lipgloss.Style
	Stale      lipgloss.Style
	Selected   lipgloss.Style
	Muted      lipgloss.Style
	Success    lipgloss.Style
	Error      lipgloss.Style
	Modal      lipgloss.Style
	ModalTitle lipgloss.Style
	Label      lipgloss.Style
	Focused    lipgloss.Style
}

// DefaultStyles returns the default board styles.
func DefaultStyles() Styles {
	return Styles{
		App:        lipgloss.NewStyle().Padding(0, 1),
		Header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C5CE7")),
		Criteria:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FDCB6E")),
		Stale:      lipgloss.NewStyle().Foreground(lipgloss.Color("#636E72")).Italic(true),
		Selected:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("#636E72")),
		Success:    lipgloss.NewStyle().Foreground(lipgloss.Color("#00B894")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("#D63031")),
		Modal:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#A29BFE")).Padding(0, 1),
		ModalTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A29BFE")),
		Label:      lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("#B2BEC3")),
		Focused:    lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
	}
}
