package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestParseDueDate(t *testing.T) {
	d, err := ParseDueDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDueDate: %v", err)
	}
	if d != "2024-03-15T18:00:00" {
		t.Errorf("wire form = %q, want %q", d, "2024-03-15T18:00:00")
	}
	if d.Date() != "2024-03-15" {
		t.Errorf("Date() = %q, want %q", d.Date(), "2024-03-15")
	}

	for _, bad := range []string{"15/03/2024", "2024-13-01", "tomorrow"} {
		if _, err := ParseDueDate(bad); err == nil {
			t.Errorf("ParseDueDate(%q) should fail", bad)
		}
	}
}

func TestParseOptionalDueDate(t *testing.T) {
	d, err := ParseOptionalDueDate("  ")
	if err != nil || d != nil {
		t.Errorf("empty input = (%v, %v), want (nil, nil)", d, err)
	}
	d, err = ParseOptionalDueDate("2024-03-15")
	if err != nil || d == nil || *d != "2024-03-15T18:00:00" {
		t.Errorf("ParseOptionalDueDate = (%v, %v)", d, err)
	}
}

func TestTaskJSON_DueDate(t *testing.T) {
	var task Task
	data := `{"id":"1","title":"t","status":"TODO","priority":"LOW","category":"WORK","dueDate":"2024-03-15T18:00:00.000","overdue":true}`
	if err := json.Unmarshal([]byte(data), &task); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if task.DueDate == nil || task.DueDate.Date() != "2024-03-15" {
		t.Errorf("DueDate = %v, want 2024-03-15", task.DueDate)
	}
	if !task.Overdue {
		t.Error("Overdue should be carried from the server")
	}

	if err := json.Unmarshal([]byte(`{"dueDate":null,"status":"DONE","priority":"HIGH","category":"HEALTH"}`), &task); err != nil {
		t.Fatalf("Unmarshal null due date: %v", err)
	}
	if task.DueDate != nil {
		t.Errorf("null due date decoded as %v", *task.DueDate)
	}

	draft, _ := json.Marshal(Draft{Title: "x"})
	var raw map[string]any
	_ = json.Unmarshal(draft, &raw)
	if v, ok := raw["dueDate"]; !ok || v != nil {
		t.Errorf("draft without due date should send null, got %v", raw["dueDate"])
	}
}

func TestEnumUnmarshal_RejectsUnknown(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"status", `{"status":"ARCHIVED","priority":"LOW","category":"WORK"}`},
		{"priority", `{"status":"TODO","priority":"URGENT","category":"WORK"}`},
		{"category", `{"status":"TODO","priority":"LOW","category":"HOBBY"}`},
		{"due date", `{"status":"TODO","priority":"LOW","category":"WORK","dueDate":"soon"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var task Task
			if err := json.Unmarshal([]byte(tt.data), &task); err == nil {
				t.Errorf("expected error for unknown %s", tt.name)
			}
		})
	}
}

func TestParseEnums(t *testing.T) {
	if s, err := ParseStatus("in_progress"); err != nil || s != StatusInProgress {
		t.Errorf("ParseStatus = (%q, %v)", s, err)
	}
	if p, err := ParsePriority(" High "); err != nil || p != PriorityHigh {
		t.Errorf("ParsePriority = (%q, %v)", p, err)
	}
	if c, err := ParseCategory("health"); err != nil || c != CategoryHealth {
		t.Errorf("ParseCategory = (%q, %v)", c, err)
	}
	if _, err := ParseCategory("hobby"); err == nil {
		t.Error("ParseCategory should reject unknown values")
	}
	if k, err := ParseSortKey("DUEDATE"); err != nil || k != SortByDueDate {
		t.Errorf("ParseSortKey = (%q, %v)", k, err)
	}
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		from   Status
		action Action
		ok     bool
	}{
		{StatusCreated, ActionStart, true},
		{StatusTodo, ActionStart, true},
		{StatusInProgress, ActionComplete, true},
		{StatusDone, "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			got, ok := tt.from.NextAction()
			if ok != tt.ok || got != tt.action {
				t.Errorf("NextAction() = (%q, %v), want (%q, %v)", got, ok, tt.action, tt.ok)
			}
		})
	}

	backward := [][2]Status{
		{StatusDone, StatusInProgress},
		{StatusInProgress, StatusTodo},
		{StatusCreated, StatusDone},
		{StatusDone, StatusDone},
	}
	for _, b := range backward {
		if b[0].CanTransitionTo(b[1]) {
			t.Errorf("%s -> %s should not be allowed", b[0], b[1])
		}
	}
	if ActionComplete.Target() != StatusDone || ActionStart.Display() != "Start" {
		t.Error("action target or label mismatch")
	}
}

func TestFilter(t *testing.T) {
	if !(Filter{Keyword: "  "}).IsZero() {
		t.Error("blank keyword should not count as a filter")
	}
	if (Filter{OverdueOnly: true}).IsZero() {
		t.Error("overdue-only is a filter")
	}

	f := Filter{
		Keyword:     "pay bills",
		Category:    CategoryWork,
		Priority:    PriorityHigh,
		Status:      StatusTodo,
		OverdueOnly: true,
	}
	want := "keyword=pay+bills&category=WORK&priority=HIGH&status=TODO&overdue=true"
	if got := f.Query(); got != want {
		t.Errorf("Query() = %q, want %q", got, want)
	}
	if got := (Filter{Category: CategoryWork, OverdueOnly: true}).Query(); got != "category=WORK&overdue=true" {
		t.Errorf("Query() = %q", got)
	}
}

func TestSort_IsDefault(t *testing.T) {
	if !DefaultSort().IsDefault() {
		t.Error("default sort should be default")
	}
	if (Sort{Key: SortByCreatedAt, Ascending: true}).IsDefault() {
		t.Error("ascending createdAt is an explicit choice")
	}
	if DefaultCriteria().Sort != (Sort{Key: SortByCreatedAt}) {
		t.Errorf("DefaultCriteria() = %+v", DefaultCriteria())
	}
}

func TestErrors(t *testing.T) {
	wrapped := fmt.Errorf("list: %w", &AuthError{Reason: "expired"})
	if !IsAuth(wrapped) {
		t.Error("wrapped AuthError should be an auth failure")
	}
	if IsAuth(&RemoteError{Status: 500}) {
		t.Error("RemoteError is not an auth failure")
	}
	if got := (&RemoteError{Status: 500}).Error(); got != GenericFailure {
		t.Errorf("empty remote error = %q, want %q", got, GenericFailure)
	}
	if got := Required("title").Error(); got != "title required" {
		t.Errorf("Required = %q", got)
	}
	base := errors.New("dial tcp: refused")
	if !errors.Is(&NetworkError{Err: base}, base) {
		t.Error("NetworkError should unwrap")
	}
}
