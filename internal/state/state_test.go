package state

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"

	"cpplint/internal/diag"
	"cpplint/internal/diagfmt"
)

func init() {
	color.NoColor = true
}

func newState(format diagfmt.Format, counting string) (*State, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return New(format, counting, &out, &errOut), &out, &errOut
}

func tabAt(file string, line int) diag.Diagnostic {
	return diag.Diagnostic{File: file, Line: line, Category: "whitespace/tab", Confidence: 1, Message: "Tab found; better to use spaces"}
}

func TestCountingStyles(t *testing.T) {
	tests := []struct {
		counting string
		want     map[string]int
	}{
		{"total", map[string]int{}},
		{"toplevel", map[string]int{"whitespace": 2, "build": 1}},
		{"detailed", map[string]int{"whitespace/tab": 1, "whitespace/newline": 1, "build/include": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.counting, func(t *testing.T) {
			s, _, _ := newState(diagfmt.Emacs, tt.counting)
			for _, c := range []string{"whitespace/tab", "whitespace/newline", "build/include"} {
				s.IncrementErrorCount(c)
			}
			if s.ErrorCount() != 3 {
				t.Errorf("Expected 3 errors, got %d", s.ErrorCount())
			}
			got := s.CategoryCounts()
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s: Expected %d, got %d", k, v, got[k])
				}
			}
		})
	}
}

func TestPrintErrorCounts(t *testing.T) {
	s, out, _ := newState(diagfmt.Emacs, "toplevel")
	s.IncrementErrorCount("whitespace/tab")
	s.IncrementErrorCount("build/include")
	s.IncrementErrorCount("whitespace/tab")
	s.PrintErrorCounts()

	want := "Category 'build' errors found: 1\n" +
		"Category 'whitespace' errors found: 2\n" +
		"Total errors found: 3\n"
	if out.String() != want {
		t.Errorf("Expected %q, got %q", want, out.String())
	}

	s.ResetErrorCounts()
	out.Reset()
	s.PrintErrorCounts()
	if out.Len() != 0 {
		t.Errorf("Expected nothing without errors, got %q", out.String())
	}
}

func TestFileOutputFlush(t *testing.T) {
	s, out, errOut := newState(diagfmt.Emacs, "total")
	f := s.NewFile()
	f.Error(tabAt("a.cc", 2))
	f.PrintInfo("Done processing a.cc\n")

	if out.Len() != 0 || errOut.Len() != 0 || s.ErrorCount() != 0 {
		t.Fatalf("nothing should be written before Flush")
	}
	if len(f.Diagnostics()) != 1 {
		t.Errorf("Expected one recorded diagnostic")
	}
	f.Flush()

	if got := errOut.String(); got != "a.cc:2:  Tab found; better to use spaces  [whitespace/tab] [1]\n" {
		t.Errorf("unexpected stderr %q", got)
	}
	if out.String() != "Done processing a.cc\n" {
		t.Errorf("unexpected stdout %q", out.String())
	}
	if s.ErrorCount() != 1 {
		t.Errorf("Expected 1 error, got %d", s.ErrorCount())
	}
}

func TestConcurrentFlushDoesNotInterleave(t *testing.T) {
	s, _, errOut := newState(diagfmt.Emacs, "total")
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f := s.NewFile()
			file := string(rune('a'+i)) + ".cc"
			for line := 1; line <= 50; line++ {
				f.Error(tabAt(file, line))
			}
			f.Flush()
		}()
	}
	wg.Wait()

	if s.ErrorCount() != 400 {
		t.Errorf("Expected 400 errors, got %d", s.ErrorCount())
	}
	// строки одного файла идут подряд
	lines := strings.Split(strings.TrimSuffix(errOut.String(), "\n"), "\n")
	for i := 0; i < len(lines); i += 50 {
		prefix := lines[i][:5]
		for _, l := range lines[i : i+50] {
			if !strings.HasPrefix(l, prefix) {
				t.Fatalf("interleaved output: %q after %q", l, prefix)
			}
		}
	}
}

func TestCollectedFormats(t *testing.T) {
	s, out, errOut := newState(diagfmt.JSONFormat, "total")
	s.PrintError("Skipping input 'x.cc': Can't open for reading\n")

	b := s.NewFile()
	b.Error(tabAt("b.cc", 1))
	b.PrintInfo("Done processing b.cc\n")
	b.Flush()
	a := s.NewFile()
	a.Error(tabAt("a.cc", 4))
	a.Flush()

	if !strings.Contains(errOut.String(), "Done processing b.cc") {
		t.Errorf("json info goes to stderr, got %q", errOut.String())
	}
	diags, errs := s.Collected()
	if len(diags) != 2 || diags[0].File != "a.cc" {
		t.Errorf("Expected diagnostics grouped by file, got %v", diags)
	}
	if len(errs) != 1 || errs[0] != "Skipping input 'x.cc': Can't open for reading" {
		t.Errorf("unexpected errs %q", errs)
	}

	if err := s.WriteDocument(DocumentOptions{}); err != nil {
		t.Fatalf("WriteDocument() error: %v", err)
	}
	if !strings.Contains(out.String(), `"count": 2`) {
		t.Errorf("Expected the json document on stdout, got %q", out.String())
	}
}

func TestCollectedFormatsBufferNoLines(t *testing.T) {
	for _, format := range []diagfmt.Format{diagfmt.JSONFormat, diagfmt.SARIF, diagfmt.JUnit} {
		t.Run(format.String(), func(t *testing.T) {
			s, _, _ := newState(format, "total")
			f := s.NewFile()
			f.Error(tabAt("a.cc", 1))
			f.Error(tabAt("a.cc", 2))
			f.Flush()
			if s.ErrorCount() != 2 {
				t.Errorf("Expected 2 errors, got %d", s.ErrorCount())
			}
			if diags, _ := s.Collected(); len(diags) != 2 {
				t.Errorf("Expected 2 collected diagnostics, got %d", len(diags))
			}
		})
	}
}

func TestJUnitDocumentOnStderr(t *testing.T) {
	s, out, errOut := newState(diagfmt.JUnit, "total")
	f := s.NewFile()
	f.Error(tabAt("a.cc", 1))
	f.PrintInfo("Done processing a.cc\n")
	f.Flush()
	if err := s.WriteDocument(DocumentOptions{}); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("junit writes nothing to stdout, got %q", out.String())
	}
	if !strings.HasPrefix(errOut.String(), "<?xml") {
		t.Errorf("Expected the junit document, got %q", errOut.String())
	}
}
