package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar date a user enters and sees.
	DateLayout = "2006-01-02"

	// DueTimeOfDay is appended to an entered date before it is sent.
	DueTimeOfDay = "T18:00:00"
)

// DueDate holds the wire form of a due date ("2024-03-15T18:00:00").
// Display truncates it back to the calendar date.
type DueDate string

// ParseDueDate expands a user-entered calendar date to its wire form.
func ParseDueDate(s string) (DueDate, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", s)
	}
	return DueDate(s + DueTimeOfDay), nil
}

// ParseOptionalDueDate returns nil for an empty input.
func ParseOptionalDueDate(s string) (*DueDate, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := ParseDueDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Date returns the calendar date portion for display.
func (d DueDate) Date() string {
	if len(d) < len(DateLayout) {
		return string(d)
	}
	return string(d[:len(DateLayout)])
}

// String implements fmt.Stringer.
func (d DueDate) String() string { return d.Date() }

// UnmarshalJSON accepts any ISO-8601 date-time string the server returns.
func (d *DueDate) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < len(DateLayout) {
		return fmt.Errorf("invalid due date: %q", raw)
	}
	if _, err := time.Parse(DateLayout, raw[:len(DateLayout)]); err != nil {
		return fmt.Errorf("invalid due date: %q", raw)
	}
	*d = DueDate(raw)
	return nil
}

// MarshalYAML renders the calendar date in detail output.
func (d DueDate) MarshalYAML() (any, error) {
	return d.Date(), nil
}
