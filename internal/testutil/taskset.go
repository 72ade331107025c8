package testutil

import (
	"sort"
	"strings"
	"time"

	"taskboard/internal/service"
)

// Now is the clock the fakes use to compute the overdue flag.
var Now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

// NewTask builds a task with the given id and title and sensible defaults.
func NewTask(id, title string) service.Task {
	return service.Task{
		ID:       id,
		Title:    title,
		Status:   service.StatusCreated,
		Priority: service.PriorityMedium,
		Category: service.CategoryPersonal,
	}
}

// Due returns a pointer to the wire form of a calendar date; it panics on bad input.
func Due(date string) *service.DueDate {
	d, err := service.ParseDueDate(date)
	if err != nil {
		panic(err)
	}
	return &d
}

// overdue mirrors the server rule: due date passed and not done.
func overdue(t service.Task) bool {
	if t.DueDate == nil || t.Status == service.StatusDone {
		return false
	}
	due, err := time.Parse("2006-01-02T15:04:05", string(*t.DueDate))
	if err != nil {
		return false
	}
	return due.Before(Now())
}

// matches mirrors the server's filter semantics.
func matches(t service.Task, f service.Filter) bool {
	if kw := strings.ToLower(strings.TrimSpace(f.Keyword)); kw != "" {
		if !strings.Contains(strings.ToLower(t.Title), kw) &&
			!strings.Contains(strings.ToLower(t.Description), kw) {
			return false
		}
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.OverdueOnly && !t.Overdue {
		return false
	}
	return true
}

var priorityRank = map[service.Priority]int{
	service.PriorityLow:    0,
	service.PriorityMedium: 1,
	service.PriorityHigh:   2,
}

// sortTasks mirrors the server's ordering; tasks without a due date sort last.
func sortTasks(tasks []service.Task, s service.Sort) {
	less := func(a, b service.Task) bool {
		switch s.Key {
		case service.SortByTitle:
			return a.Title < b.Title
		case service.SortByPriority:
			return priorityRank[a.Priority] < priorityRank[b.Priority]
		case service.SortByDueDate:
			if a.DueDate == nil || b.DueDate == nil {
				return a.DueDate != nil && b.DueDate == nil
			}
			return *a.DueDate < *b.DueDate
		default:
			return a.CreatedAt < b.CreatedAt
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if s.Ascending {
			return less(tasks[i], tasks[j])
		}
		return less(tasks[j], tasks[i])
	})
}
