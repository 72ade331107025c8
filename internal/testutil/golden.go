package testutil

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var updateGolden = flag.Bool("update", false, "rewrite testdata/*.golden with the current output")

// GoldenPath returns where the golden file for name lives.
func GoldenPath(name string) string {
	return filepath.Join("testdata", name+".golden")
}

// Golden compares rendered board output against testdata/<name>.golden.
// Run the tests with -update to rewrite the file instead.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()
	path := GoldenPath(name)

	if *updateGolden {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s (run with -update to create it): %v\nGot:\n%s", path, err, got)
	}
	if bytes.Equal(got, want) {
		return
	}
	line, w, g := firstDiff(string(want), string(got))
	t.Errorf("output mismatch for %s at line %d\nwant: %q\ngot:  %q\nWant:\n%s\nGot:\n%s", name, line, w, g, want, got)
}

// firstDiff returns the 1-based number of the first line where want and
// got differ, with both versions of that line.
func firstDiff(want, got string) (int, string, string) {
	wl := strings.Split(want, "\n")
	gl := strings.Split(got, "\n")
	for i := 0; i < len(wl) || i < len(gl); i++ {
		var w, g string
		if i < len(wl) {
			w = wl[i]
		}
		if i < len(gl) {
			g = gl[i]
		}
		if w != g || i >= len(wl) || i >= len(gl) {
			return i + 1, w, g
		}
	}
	return 0, "", ""
}
