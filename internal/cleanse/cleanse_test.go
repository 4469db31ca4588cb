package cleanse

import (
	"strings"
	"testing"
)

func TestCleanseComments(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		comment bool
	}{
		{"int a;  // trailing", "int a;", true},
		{`printf("//not a comment");`, `printf("//not a comment");`, false},
		// решает только первое вхождение "//"
		{`s = "a\"//b"; // real`, `s = "a\"//b"; // real`, false},
		{"f(a /* x */, b);", "f(a, b);", true},
		{"f(/* x */ a);", "f(a);", true},
		{"int x; /* tail */   ", "int x;", true},
		{"a/*x*/b", "ab", true},
		{"no comment", "no comment", false},
	}
	for _, tt := range tests {
		got, comment := CleanseComments(tt.in)
		if got != tt.want || comment != tt.comment {
			t.Errorf("CleanseComments(%q): Expected (%q,%v), got (%q,%v)", tt.in, tt.want, tt.comment, got, comment)
		}
	}
}

func TestIsCppString(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`a = "abc`, true},
		{`a = "abc"`, false},
		{`a = "\"`, true},
		{`a = "\\"`, false},
		{`c = '"'; s = "`, true},
	}
	for _, tt := range tests {
		if got := IsCppString(tt.in); got != tt.want {
			t.Errorf("IsCppString(%q): Expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestCollapseStrings(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`s = "hello";`, `s = "";`},
		{`c = 'x';`, `c = '';`},
		{`c = '\'';`, `c = '';`},
		{`s = "a\"b" + "c";`, `s = "" + "";`},
		{`n = 1'000'000;`, `n = 1000000;`},
		{`n = 0x7f'ff;`, `n = 0x7fff;`},
		{`s = "unterminated`, `s = "unterminated`},
		{`c = 'u`, `c = 'u`},
		{`#include "foo\bar.h"`, `#include "foo\bar.h"`},
		{`x = "a" 'b' "c";`, `x = "" '' "";`},
	}
	for _, tt := range tests {
		if got := CollapseStrings(tt.in); got != tt.want {
			t.Errorf("CollapseStrings(%q): Expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestReplaceAlternateTokens(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"if (a and b)", "if (a && b)"},
		{"if (not x)", "if (!x)"},
		{"x = a bitor b", "x = a | b"},
		{"x and_eq y", "x &= y"},
		{"x = compl y", "x = ~y"},
		{"band and_x", "band and_x"},
		{"if (a not_eq b)", "if (a != b)"},
	}
	for _, tt := range tests {
		if got := ReplaceAlternateTokens(tt.in); got != tt.want {
			t.Errorf("ReplaceAlternateTokens(%q): Expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestCleanseRawStrings(t *testing.T) {
	raw := []string{
		`x = R"(one)" + y;`,
		`static const char k[] = R"delim(`,
		`  body "with quotes"`,
		`  )delim";`,
		`// R"(not a raw string`,
		`z = u8R"(a)" R"(b)";`,
	}
	want := []string{
		`x = "" + y;`,
		`static const char k[] = ""`,
		`""`,
		`  "";`,
		`// R"(not a raw string`,
		`z = "" "";`,
	}
	got := CleanseRawStrings(raw)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: Expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestCleanseRawStringsUnterminated(t *testing.T) {
	got := CleanseRawStrings([]string{`a = R"(`, `b`, `c`})
	// всё до конца файла считается телом строки
	if got[1] != `""` || got[2] != `""` {
		t.Errorf("Expected blank continuation lines, got %q", got)
	}
}

func TestNewMultiLineRawString(t *testing.T) {
	raw := []string{"// marker", `R"(`, "multi", `)"`, "// marker"}
	c := New(raw, true)

	if c.LineWithoutRawStrings(1) != `""` || c.LineWithoutRawStrings(2) != `""` || c.LineWithoutRawStrings(3) != `""` {
		t.Errorf("unexpected raw-string view: %q", c.LinesWithoutRawStrings())
	}
	for i := 1; i <= 3; i++ {
		if strings.Contains(c.Line(i), "multi") || strings.Contains(c.Elided(i), "multi") {
			t.Errorf("line %d still contains literal text", i)
		}
	}
}

func TestNewViewsAligned(t *testing.T) {
	raw := []string{
		"// marker",
		`#include <vector>  // for vector`,
		`int a = 'c';  /* trailing */`,
		`const char* s = "//x";`,
		`R"(`,
		"// marker",
	}
	c := New(raw, true)
	n := c.NumLines()
	if n != len(raw) || len(c.ElidedLines()) != n || len(c.LinesWithoutRawStrings()) != n || len(c.RawLines()) != n {
		t.Fatalf("views are not aligned")
	}
	if !c.HasComment(1) || !c.HasComment(2) || c.HasComment(3) {
		t.Errorf("unexpected comment flags")
	}
	if got := c.Elided(2); got != "int a = '';" {
		t.Errorf("Expected elided char literal, got %q", got)
	}
	if got := c.Elided(3); got != `const char* s = "";` {
		t.Errorf("Expected elided string, got %q", got)
	}
}

func TestElisionIsIdempotent(t *testing.T) {
	raw := []string{
		"// marker",
		`s = "a\"b" + 'c';  // note`,
		`f(/* c */ x, 1'000);`,
		`x = R"(raw)";`,
		"// marker",
	}
	first := New(append([]string(nil), raw...), true)
	second := New(append([]string(nil), first.ElidedLines()...), true)
	for i := 0; i < first.NumLines(); i++ {
		if first.Elided(i) != second.Elided(i) {
			t.Errorf("line %d: elision changed on second pass: %q -> %q", i, first.Elided(i), second.Elided(i))
		}
	}
}

func TestAltTokensRewriteRaw(t *testing.T) {
	raw := []string{"// marker", "if (a and b) {}", "// marker"}
	c := New(raw, false)
	if c.Raw(1) != "if (a && b) {}" || c.Elided(1) != "if (a && b) {}" {
		t.Errorf("Expected alternative tokens rewritten, got %q / %q", c.Raw(1), c.Elided(1))
	}
	kept := New([]string{"// marker", "if (a and b) {}", "// marker"}, true)
	if kept.Raw(1) != "if (a and b) {}" {
		t.Errorf("Expected tokens kept, got %q", kept.Raw(1))
	}
}

func TestRemoveMultiLineComments(t *testing.T) {
	lines := []string{"a", "  /* start", " still", " end */", "b", "/* one line */"}
	var seen []string
	if open := RemoveMultiLineComments(lines, func(l string) { seen = append(seen, l) }); open != -1 {
		t.Fatalf("Expected -1, got %d", open)
	}
	for i := 1; i <= 3; i++ {
		if lines[i] != "/**/" {
			t.Errorf("line %d: Expected /**/, got %q", i, lines[i])
		}
	}
	if lines[5] != "/* one line */" || len(seen) != 3 {
		t.Errorf("single-line comment must stay, visited %d", len(seen))
	}

	unterminated := []string{"a", "/* never", "ends"}
	if open := RemoveMultiLineComments(unterminated, nil); open != 1 {
		t.Errorf("Expected open comment at 1, got %d", open)
	}
}
