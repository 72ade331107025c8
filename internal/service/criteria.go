package service

import (
	"fmt"
	"net/url"
	"strings"
)

// SortKey is a field the server can order tasks by.
type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByDueDate   SortKey = "dueDate"
	SortByTitle     SortKey = "title"
	SortByPriority  SortKey = "priority"
)

// DefaultSortKey is used when the user has not chosen one.
const DefaultSortKey = SortByCreatedAt

// AllSortKeys returns every supported sort key.
func AllSortKeys() []SortKey {
	return []SortKey{SortByCreatedAt, SortByDueDate, SortByTitle, SortByPriority}
}

// ParseSortKey parses a sort key name.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range AllSortKeys() {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key: %s", s)
}

// Filter narrows the task set on the server. Zero values mean "not filtered".
type Filter struct {
	Keyword     string
	Category    Category
	Priority    Priority
	Status      Status
	OverdueOnly bool
}

// IsZero reports whether no field is set.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Keyword) == "" &&
		f.Category == "" &&
		f.Priority == "" &&
		f.Status == "" &&
		!f.OverdueOnly
}

// Query encodes the non-default fields in the order keyword, category,
// priority, status, overdue.
func (f Filter) Query() string {
	var parts []string
	add := func(k, v string) {
		parts = append(parts, k+"="+url.QueryEscape(v))
	}
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		add("keyword", kw)
	}
	if f.Category != "" {
		add("category", string(f.Category))
	}
	if f.Priority != "" {
		add("priority", string(f.Priority))
	}
	if f.Status != "" {
		add("status", string(f.Status))
	}
	if f.OverdueOnly {
		add("overdue", "true")
	}
	return strings.Join(parts, "&")
}

// Sort orders the task set on the server.
type Sort struct {
	Key       SortKey
	Ascending bool
}

// DefaultSort is newest first.
func DefaultSort() Sort {
	return Sort{Key: DefaultSortKey, Ascending: false}
}

// IsDefault reports whether s equals DefaultSort.
func (s Sort) IsDefault() bool {
	return s == DefaultSort()
}

// Criteria is the filter and sort currently applied to the view.
type Criteria struct {
	Filter Filter
	Sort   Sort
}

// DefaultCriteria returns criteria with no filter and the default sort.
func DefaultCriteria() Criteria {
	return Criteria{Sort: DefaultSort()}
}
