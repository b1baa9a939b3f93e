package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UpdateGoldenEnv is the environment variable that switches MatchGolden
// from comparing to rewriting golden files.
const UpdateGoldenEnv = "TOASTKIT_UPDATE_GOLDEN"

// TestingT is the subset of *testing.T used by MatchGolden, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// MatchGolden compares got against the golden file at path. On mismatch it
// reports a diff and instructions for updating. When TOASTKIT_UPDATE_GOLDEN=1
// is set, the file is silently updated instead.
func MatchGolden(t TestingT, path, got string) {
	t.Helper()

	if os.Getenv(UpdateGoldenEnv) == "1" {
		if err := UpdateGolden(path, got); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("golden file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateGoldenEnv, t.Name())
			return
		}
		t.Fatalf("failed to load golden file: %v", err)
		return
	}

	if diff := Diff(string(data), got); diff != "" {
		t.Errorf("golden mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateGoldenEnv, t.Name())
	}
}

// UpdateGolden writes got to path, creating directories as needed.
func UpdateGolden(path, got string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(got), 0o644)
}

// Diff returns a line-oriented diff between expected and actual, or "" if
// they are equal.
func Diff(expected, actual string) string {
	if expected == actual {
		return ""
	}
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := range max(len(expectedLines), len(actualLines)) {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e == a {
			continue
		}
		if i < len(expectedLines) {
			fmt.Fprintf(&buf, "-%s\n", e)
		}
		if i < len(actualLines) {
			fmt.Fprintf(&buf, "+%s\n", a)
		}
	}
	return buf.String()
}
