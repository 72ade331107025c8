package testutil

import "testing"

func TestFirstDiff(t *testing.T) {
	tests := []struct {
		name       string
		want, got  string
		line       int
		wLine, gLn string
	}{
		{"changed line", "a\nb\nc\n", "a\nx\nc\n", 2, "b", "x"},
		{"missing line", "a\nb\n", "a\n", 2, "b", ""},
		{"extra line", "a\n", "a\nb\n", 2, "", "b"},
		{"trailing space", "a \n", "a\n", 1, "a ", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, w, g := firstDiff(tt.want, tt.got)
			if line != tt.line || w != tt.wLine || g != tt.gLn {
				t.Errorf("firstDiff() = %d %q %q, want %d %q %q", line, w, g, tt.line, tt.wLine, tt.gLn)
			}
		})
	}
}
