package commands

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"taskboard/internal/service"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Raw      string // as typed
	Position int    // 1-based position in the default listing, 0 for an id reference
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = service.Required("task reference")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. No args → error: task reference required
// 2. All digits → position in the default listing (as printed by `taskboard list`)
// 3. Letters, digits, '-' and '_' → task id or unique id prefix
// 4. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, invalidRef(strings.Join(args, " "))
	}

	raw := strings.TrimSpace(args[0])

	if isAllDigits(raw) {
		num, err := strconv.Atoi(raw)
		if err != nil {
			return TaskRef{}, invalidRef(raw)
		}
		if num < 1 {
			return TaskRef{}, &service.ValidationError{
				Field:   "task",
				Message: fmt.Sprintf("task number out of range: %d", num),
			}
		}
		return TaskRef{Raw: raw, Position: num}, nil
	}

	for _, r := range raw {
		if !isIDRune(r) {
			return TaskRef{}, invalidRef(raw)
		}
	}
	return TaskRef{Raw: raw}, nil
}

func invalidRef(ref string) error {
	return &service.ValidationError{Field: "task", Message: "invalid task reference: " + ref}
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isIDRune(r rune) bool {
	return r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
