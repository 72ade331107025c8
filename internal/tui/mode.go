// Package tui provides the interactive task board.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal  Mode = iota // List navigation
	ModeCreate              // New task form
	ModeEdit                // Edit task form
	ModeFilter              // Filter form
	ModeSort                // Sort picker
	ModeConfirm             // Delete confirmation
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	case ModeFilter:
		return "filter"
	case ModeSort:
		return "sort"
	case ModeConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// IsModal returns true if the mode shows a form or dialog over the list.
func (m Mode) IsModal() bool {
	return m != ModeNormal
}
