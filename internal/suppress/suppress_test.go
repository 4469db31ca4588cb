package suppress

import (
	"testing"

	"cpplint/internal/diag"
)

type report struct {
	line int
	msg  string
}

type recorder struct {
	diag.ReporterFunc
	got []report
}

func newRecorder() *recorder {
	r := &recorder{}
	r.ReporterFunc = func(line int, category string, confidence int, message string) {
		if category != "readability/nolint" || confidence != 5 {
			panic("unexpected category " + category)
		}
		r.got = append(r.got, report{line, message})
	}
	return r
}

func TestNolintForms(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		category   string
		suppressed []int
		free       []int
	}{
		{"bare", "int x;  // NOLINT", "whitespace/tab", []int{10}, []int{9, 11}},
		{"star", "int x;  // NOLINT(*)", "runtime/int", []int{10}, []int{11}},
		{"category", "long x;  // NOLINT(runtime/int)", "runtime/int", []int{10}, []int{11}},
		{"other category", "long x;  // NOLINT(runtime/int)", "whitespace/tab", nil, []int{10}},
		{"list", "x;  // NOLINT(runtime/int, whitespace/tab)", "whitespace/tab", []int{10}, nil},
		{"next line", "// NOLINTNEXTLINE(runtime/int)", "runtime/int", []int{11}, []int{10, 12}},
		{"next line all", "// NOLINTNEXTLINE", "build/include", []int{11}, []int{10}},
		{"word boundary", "// NOLINTED", "runtime/int", nil, []int{10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			r := newRecorder()
			s.ParseNolint(tt.line, 10, r)
			if len(r.got) != 0 {
				t.Fatalf("unexpected reports %v", r.got)
			}
			for _, l := range tt.suppressed {
				if !s.IsSuppressed(tt.category, l) {
					t.Errorf("Expected %s suppressed on line %d", tt.category, l)
				}
			}
			for _, l := range tt.free {
				if s.IsSuppressed(tt.category, l) {
					t.Errorf("Expected %s not suppressed on line %d", tt.category, l)
				}
			}
		})
	}
}

func TestUnknownCategories(t *testing.T) {
	s := New()
	r := newRecorder()
	s.ParseNolint("// NOLINT(foo/bar, clang-analyzer-core, build/class, runtime/int)", 3, r)

	if len(r.got) != 1 || r.got[0].msg != "Unknown NOLINT error category: foo/bar" {
		t.Fatalf("Expected one unknown category report, got %v", r.got)
	}
	if !s.IsSuppressed("runtime/int", 3) {
		t.Errorf("known category in the same list should still apply")
	}
}

func TestBlocks(t *testing.T) {
	s := New()
	r := newRecorder()
	s.ParseNolint("// NOLINTBEGIN(runtime/int)", 5, r)
	if !s.HasOpenBlock() || s.OpenBlockStart() != 5 {
		t.Fatalf("Expected open block at 5, got %v/%d", s.HasOpenBlock(), s.OpenBlockStart())
	}
	if !s.IsSuppressed("runtime/int", 1000) {
		t.Errorf("open block should reach the end of file")
	}
	s.ParseNolint("// NOLINTEND", 8, r)
	if len(r.got) != 0 {
		t.Fatalf("unexpected reports %v", r.got)
	}
	if s.HasOpenBlock() {
		t.Errorf("block should be closed")
	}
	for line, want := range map[int]bool{4: false, 5: true, 7: true, 8: true, 9: false} {
		if got := s.IsSuppressed("runtime/int", line); got != want {
			t.Errorf("line %d: Expected %v, got %v", line, want, got)
		}
	}
}

func TestBlockErrors(t *testing.T) {
	s := New()
	r := newRecorder()
	s.ParseNolint("// NOLINTEND", 2, r)
	s.ParseNolint("// NOLINTBEGIN", 3, r)
	s.ParseNolint("// NOLINTBEGIN(runtime/int)", 4, r)
	s.ParseNolint("// NOLINTEND(runtime/int)", 6, r)

	want := []report{
		{2, "Not in a NOLINT block"},
		{4, "NOLINT block already defined on line 3"},
		{6, "NOLINT categories not supported in block END: runtime/int"},
	}
	if len(r.got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, r.got)
	}
	for i := range want {
		if r.got[i] != want[i] {
			t.Errorf("report %d: Expected %v, got %v", i, want[i], r.got[i])
		}
	}
	if s.HasOpenBlock() {
		t.Errorf("END closes every open block")
	}
	if !s.IsSuppressed("whitespace/tab", 5) || s.IsSuppressed("whitespace/tab", 7) {
		t.Errorf("suppress-all block should cover 3..6")
	}
}

// Диапазон, уже покрытый предыдущим, не добавляется; блок без записи
// не должен ломать OpenBlockStart.
func TestCoveredBlockIsSkipped(t *testing.T) {
	s := New()
	s.AddGlobal("runtime/int")
	s.StartBlock("runtime/int", 7)
	if got := len(s.ranges["runtime/int"]); got != 1 {
		t.Errorf("Expected 1 range, got %d", got)
	}
	if !s.HasOpenBlock() {
		t.Fatalf("block must still count as open")
	}
	if got := s.OpenBlockStart(); got != -1 {
		t.Errorf("Expected -1, got %d", got)
	}
	s.EndBlock(9)
	if !s.IsSuppressed("runtime/int", 100) {
		t.Errorf("global range must stay intact")
	}
}

func TestGlobalMarkers(t *testing.T) {
	tests := []struct {
		line     string
		category string
	}{
		{"// LINT_C_FILE", "readability/casting"},
		{"/* vim: set filetype=c : */", "readability/casting"},
		{"// vi: filetype=c", "readability/casting"},
		{"// LINT_KERNEL_FILE", "whitespace/tab"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s := New()
			s.ProcessGlobal(tt.line)
			if !s.IsSuppressed(tt.category, 1) || !s.IsSuppressed(tt.category, 5000) {
				t.Errorf("Expected %s suppressed everywhere", tt.category)
			}
			if s.IsSuppressed("runtime/int", 1) {
				t.Errorf("unrelated category suppressed")
			}
		})
	}

	s := New()
	s.ProcessGlobal("// filetype=c")
	if s.IsSuppressed("readability/casting", 1) {
		t.Errorf("filetype without a modeline is not a C marker")
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.AddLine(All, 3)
	s.StartBlock("runtime/int", 4)
	s.Clear()
	if s.IsSuppressed("runtime/int", 3) || s.HasOpenBlock() {
		t.Errorf("Clear should drop everything")
	}
}
