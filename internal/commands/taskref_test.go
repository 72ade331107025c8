package commands

import (
	"errors"
	"testing"

	"taskboard/internal/service"
)

func TestParseTaskRef_NumericOnly(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Position != 5 {
		t.Errorf("expected Position 5, got %d", ref.Position)
	}
	if ref.Raw != "5" {
		t.Errorf("expected Raw '5', got %q", ref.Raw)
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	for _, raw := range []string{"a1", "3f2b9c1e-77aa-4c1e-9f00-1b2c3d4e5f60", "task_12", "3f2b"} {
		ref, err := ParseTaskRef([]string{raw})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", raw, err)
		}
		if ref.Position != 0 {
			t.Errorf("%s: expected id reference, got Position %d", raw, ref.Position)
		}
		if ref.Raw != raw {
			t.Errorf("expected Raw %q, got %q", raw, ref.Raw)
		}
	}
}

func TestParseTaskRef_TrimsSpace(t *testing.T) {
	ref, err := ParseTaskRef([]string{" 12 "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Position != 12 {
		t.Errorf("expected Position 12, got %d", ref.Position)
	}
}

func TestParseTaskRef_SeparatedRef_Error(t *testing.T) {
	_, err := ParseTaskRef([]string{"c", "3"})
	if err == nil {
		t.Fatal("expected error for separated ref")
	}
	expectedMsg := "invalid task reference: c 3"
	if err.Error() != expectedMsg {
		t.Errorf("expected %q, got %q", expectedMsg, err.Error())
	}
}

func TestParseTaskRef_NoArgs_Error(t *testing.T) {
	for _, args := range [][]string{nil, {""}, {"   "}} {
		_, err := ParseTaskRef(args)
		if !errors.Is(err, ErrTaskRefRequired) {
			t.Errorf("%q: expected ErrTaskRefRequired, got %v", args, err)
		}
	}
}

func TestParseTaskRef_Zero_Error(t *testing.T) {
	_, err := ParseTaskRef([]string{"0"})
	if err == nil {
		t.Fatal("expected error for position 0")
	}
	expectedMsg := "task number out of range: 0"
	if err.Error() != expectedMsg {
		t.Errorf("expected %q, got %q", expectedMsg, err.Error())
	}
}

func TestParseTaskRef_InvalidRef_Error(t *testing.T) {
	for _, raw := range []string{"a.1", "x/y", "#3", "two words"} {
		_, err := ParseTaskRef([]string{raw})
		if err == nil {
			t.Fatalf("%q: expected error", raw)
		}
		var verr *service.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%q: expected ValidationError, got %T", raw, err)
		}
		expectedMsg := "invalid task reference: " + raw
		if err.Error() != expectedMsg {
			t.Errorf("expected %q, got %q", expectedMsg, err.Error())
		}
	}
}
