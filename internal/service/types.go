// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusCreated    Status = "CREATED"
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Category groups tasks by area of life.
type Category string

const (
	CategoryWork     Category = "WORK"
	CategoryPersonal Category = "PERSONAL"
	CategoryHealth   Category = "HEALTH"
)

var statusLabels = map[Status]string{
	StatusCreated:    "New",
	StatusTodo:       "To Do",
	StatusInProgress: "In Progress",
	StatusDone:       "Done",
}

var priorityLabels = map[Priority]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
}

var categoryLabels = map[Category]string{
	CategoryWork:     "Work",
	CategoryPersonal: "Personal",
	CategoryHealth:   "Health",
}

// AllStatuses returns every status in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusCreated, StatusTodo, StatusInProgress, StatusDone}
}

// AllPriorities returns every priority from lowest to highest.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// AllCategories returns every category.
func AllCategories() []Category {
	return []Category{CategoryWork, CategoryPersonal, CategoryHealth}
}

// ParseStatus parses a status name (case-insensitive).
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := statusLabels[st]; !ok {
		return "", fmt.Errorf("unknown status: %s", s)
	}
	return st, nil
}

// ParsePriority parses a priority name (case-insensitive).
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := priorityLabels[p]; !ok {
		return "", fmt.Errorf("unknown priority: %s", s)
	}
	return p, nil
}

// ParseCategory parses a category name (case-insensitive).
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := categoryLabels[c]; !ok {
		return "", fmt.Errorf("unknown category: %s", s)
	}
	return c, nil
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Display returns the human-readable label.
func (s Status) Display() string { return statusLabels[s] }

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	_, ok := priorityLabels[p]
	return ok
}

// Display returns the human-readable label.
func (p Priority) Display() string { return priorityLabels[p] }

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Display returns the human-readable label.
func (c Category) Display() string { return categoryLabels[c] }

// Unknown enumeration values from the server are a data error, not a fallback.

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !Status(raw).IsValid() {
		return fmt.Errorf("unknown status: %q", raw)
	}
	*s = Status(raw)
	return nil
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !Priority(raw).IsValid() {
		return fmt.Errorf("unknown priority: %q", raw)
	}
	*p = Priority(raw)
	return nil
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !Category(raw).IsValid() {
		return fmt.Errorf("unknown category: %q", raw)
	}
	*c = Category(raw)
	return nil
}

// Task represents a single task item as returned by the task service.
// Overdue and CreatedAt are computed by the server.
type Task struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Status      Status   `json:"status" yaml:"status"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Category    Category `json:"category" yaml:"category"`
	DueDate     *DueDate `json:"dueDate" yaml:"due_date,omitempty"`
	Overdue     bool     `json:"overdue" yaml:"overdue"`
	CreatedAt   string   `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
}

// Draft is the body of a create request.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     *DueDate `json:"dueDate"`
	Priority    Priority `json:"priority"`
	Category    Category `json:"category"`
	Status      Status   `json:"status"`
}

// Patch is the body of an edit request. Status is changed only through transitions.
type Patch struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     *DueDate `json:"dueDate"`
	Priority    Priority `json:"priority"`
	Category    Category `json:"category"`
}

// PatchFrom returns an edit body prefilled from an existing task.
func PatchFrom(t Task) Patch {
	return Patch{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Category:    t.Category,
	}
}

// Tokens is the credential pair issued by a successful login.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Credentials is the body of login and register requests.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
