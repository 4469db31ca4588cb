package testkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff of want and got, or "" when they are equal.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	s, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  2,
	})
	if err != nil || s == "" {
		return "(outputs differ)"
	}
	return s
}

// AssertText fails the test with a diff when got differs from want.
func AssertText(t testing.TB, want, got string) {
	t.Helper()
	if d := Diff(want, got); d != "" {
		t.Errorf("output mismatch:\n%s", d)
	}
}

// Golden compares got with testdata/<name>. With CPPLINT_UPDATE_GOLDEN=1 the
// file is rewritten instead.
func Golden(t testing.TB, name, got string) {
	t.Helper()
	path := filepath.Join("testdata", name)
	if os.Getenv("CPPLINT_UPDATE_GOLDEN") == "1" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatal(err)
		}
		return
	}
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file: %v", err)
	}
	AssertText(t, string(want), got)
}
