package linter

import (
	"strings"
	"testing"

	"github.com/spf13/afero"

	"cpplint/internal/config"
	"cpplint/internal/diag"
	"cpplint/internal/project"
	"cpplint/internal/source"
)

const copyright = "// Copyright 2024 Example Authors\n"

type recorder struct {
	diags []diag.Diagnostic
	infos []string
	errs  []string
}

func (r *recorder) Error(d diag.Diagnostic) { r.diags = append(r.diags, d) }
func (r *recorder) PrintInfo(msg string)    { r.infos = append(r.infos, msg) }
func (r *recorder) PrintError(msg string)   { r.errs = append(r.errs, msg) }

func (r *recorder) has(line int, category string) bool {
	for _, d := range r.diags {
		if d.Line == line && d.Category == category {
			return true
		}
	}
	return false
}

func (r *recorder) count(category string) int {
	n := 0
	for _, d := range r.diags {
		if d.Category == category {
			n++
		}
	}
	return n
}

// newRepo creates an in-memory repository rooted at /repo.
func newRepo(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/repo/.git", 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func newLinter(fs afero.Fs, opts *config.Options) *Linter {
	return New(Config{Files: source.NewFileSet(fs), Options: opts, Verbose: 1})
}

func lintOne(t *testing.T, name, content string) *recorder {
	t.Helper()
	fs := newRepo(t, map[string]string{name: content})
	rec := &recorder{}
	newLinter(fs, nil).ProcessFile(name, rec)
	return rec
}

func TestCleanFile(t *testing.T) {
	src := copyright +
		"#include \"src/foo.h\"\n" +
		"\n" +
		"#include <stdio.h>\n" +
		"\n" +
		"#include <string>\n" +
		"\n" +
		"namespace foo {\n" +
		"\n" +
		"int Add(int a, int b) {\n" +
		"  return a + b;\n" +
		"}\n" +
		"\n" +
		"}  // namespace foo\n"

	rec := lintOne(t, "/repo/src/foo.cc", src)
	for _, d := range rec.diags {
		t.Errorf("unexpected diagnostic %d [%s] %s", d.Line, d.Category, d.Message)
	}
	if len(rec.infos) != 1 || rec.infos[0] != "Done processing /repo/src/foo.cc\n" {
		t.Errorf("unexpected info %q", rec.infos)
	}
}

func TestSingleLineChecks(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		line     int
		category string
	}{
		{"tab", "\tint a;\n", 2, "whitespace/tab"},
		{"trailing space", "int a; \n", 2, "whitespace/end_of_line"},
		{"odd indent", "int f() {\n   return 1;\n}\n", 3, "whitespace/indent"},
		{"line length", "int a = 1;  // " + strings.Repeat("word ", 20) + "\n", 2, "whitespace/line_length"},
		{"alt token", "bool b = x and y;\n", 2, "readability/alt_tokens"},
		{"using namespace", "using namespace std;\n", 2, "build/namespaces"},
		{"literals namespace", "using namespace std::literals;\n", 2, "build/namespaces_literals"},
		{"c++11 header", "#include <ratio>\n", 2, "build/c++11"},
		{"c++17 header", "#include <filesystem>\n", 2, "build/c++17"},
		{"vlog", "VLOG(INFO) << x;\n", 2, "runtime/vlog"},
		{"threadsafe", "int r = rand();\n", 2, "runtime/threadsafe_fn"},
		{"make_pair", "auto p = make_pair<int, int>(1, 2);\n", 2, "build/explicit_make_pair"},
		{"invalid increment", "*count++;\n", 2, "runtime/invalid_increment"},
		{"todo username", "// TODO: fix\n", 2, "readability/todo"},
		{"comment spacing", "int a;// note\n", 2, "whitespace/comments"},
		{"duplicate include", "#include <string>\n#include <string>\n", 3, "build/include"},
		{"c int", "long x;\n", 2, "runtime/int"},
		{"memset", "memset(buf, sizeof(buf), 0);\n", 2, "runtime/memset"},
		{"for colon", "for (auto x:v) {}\n", 2, "whitespace/forcolon"},
		{"space before bracket", "int a [3];\n", 2, "whitespace/braces"},
		{"no newline at eof", "int a;", 2, "whitespace/ending_newline"},
		{"unterminated comment", "/* open\nint a;\n", 3, "readability/multiline_comment"},
		{"include order", "#include <string>\n#include <stdio.h>\n", 3, "build/include_order"},
		{"include subdir", "#include \"bar.h\"\n", 2, "build/include_subdir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := lintOne(t, "/repo/src/foo.cc", copyright+tt.body)
			if !rec.has(tt.line, tt.category) {
				t.Errorf("Expected [%s] at line %d, got %+v", tt.category, tt.line, rec.diags)
			}
		})
	}
}

func TestMissingCopyright(t *testing.T) {
	rec := lintOne(t, "/repo/a.cc", "int a;\n")
	if !rec.has(0, "legal/copyright") {
		t.Errorf("Expected legal/copyright at line 0, got %+v", rec.diags)
	}
}

func TestNolint(t *testing.T) {
	rec := lintOne(t, "/repo/a.cc", copyright+
		"long a;  // NOLINT\n"+
		"// NOLINTNEXTLINE(runtime/int)\n"+
		"long b;\n"+
		"long c;\n")
	if got := rec.count("runtime/int"); got != 1 || !rec.has(5, "runtime/int") {
		t.Errorf("Expected only line 5 reported, got %+v", rec.diags)
	}
}

func TestNolintBlockNeverEnded(t *testing.T) {
	rec := lintOne(t, "/repo/a.cc", copyright+"// NOLINTBEGIN(runtime/int)\nlong a;\n")
	if !rec.has(2, "readability/nolint") {
		t.Errorf("Expected readability/nolint at line 2, got %+v", rec.diags)
	}
	if rec.count("runtime/int") != 0 {
		t.Errorf("runtime/int should be suppressed inside the block")
	}
}

func TestHeaderGuard(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		line    int
		message string
	}{
		{
			"good",
			"#ifndef SRC_FOO_H_\n#define SRC_FOO_H_\n\nint Add(int a, int b);\n\n#endif  // SRC_FOO_H_\n",
			-1, "",
		},
		{
			"pragma once",
			"#pragma once\n\nint Add(int a, int b);\n",
			-1, "",
		},
		{
			"missing",
			"int Add(int a, int b);\n",
			0, "No #ifndef header guard found, suggested CPP variable is: SRC_FOO_H_",
		},
		{
			"wrong style",
			"#ifndef FOO_H\n#define FOO_H\n\n#endif  // FOO_H\n",
			2, "#ifndef header guard has wrong style, please use: SRC_FOO_H_",
		},
		{
			"endif comment",
			"#ifndef SRC_FOO_H_\n#define SRC_FOO_H_\n\n#endif\n",
			5, `#endif line should be "#endif  // SRC_FOO_H_"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := lintOne(t, "/repo/src/foo.h", copyright+tt.body)
			var guards []diag.Diagnostic
			for _, d := range rec.diags {
				if d.Category == "build/header_guard" {
					guards = append(guards, d)
				}
			}
			if tt.line < 0 {
				if len(guards) != 0 {
					t.Errorf("Expected no header guard errors, got %+v", guards)
				}
				return
			}
			found := false
			for _, d := range guards {
				if d.Line == tt.line && d.Message == tt.message {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected %q at line %d, got %+v", tt.message, tt.line, guards)
			}
		})
	}
}

func TestHeaderGuardVariable(t *testing.T) {
	fs := newRepo(t, nil)
	tests := []struct {
		file string
		root string
		want string
	}{
		{"/repo/src/foo.h", "", "SRC_FOO_H_"},
		{"/repo/src/foo.h", "src", "FOO_H_"},
		{"/repo/src/foo.h", "/repo/src", "FOO_H_"},
		{"/repo/src/c++/bar-baz.h", "", "SRC_CPP_BAR_BAZ_H_"},
		{"/repo/src/foo_flymake.h", "", "SRC_FOO_H_"},
	}
	for _, tt := range tests {
		t.Run(tt.file+" "+tt.root, func(t *testing.T) {
			opts := config.Default()
			opts.Root = tt.root
			l := newLinter(fs, opts)
			f := newFileLinter(l, opts, tt.file, tt.file, "h", &recorder{})
			if got := f.headerGuardVariable(); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestHeaderFileIncluded(t *testing.T) {
	fs := newRepo(t, map[string]string{
		"/repo/src/foo.h":       "",
		"/repo/src/foo.cc":      copyright + "#include <string>\n",
		"/repo/src/bar.h":       "",
		"/repo/src/bar.cc":      copyright + "#include \"src/bar.h\"\n",
		"/repo/src/foo_test.h":  "",
		"/repo/src/foo_test.cc": copyright + "#include <string>\n",
	})
	l := newLinter(fs, nil)

	rec := &recorder{}
	l.ProcessFile("/repo/src/foo.cc", rec)
	want := "src/foo.cc should include its header file src/foo.h"
	found := false
	for _, d := range rec.diags {
		if d.Category == "build/include" && d.Line == 2 && d.Message == want {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected %q, got %+v", want, rec.diags)
	}

	for _, name := range []string{"/repo/src/bar.cc", "/repo/src/foo_test.cc"} {
		rec := &recorder{}
		l.ProcessFile(name, rec)
		if rec.count("build/include") != 0 {
			t.Errorf("%s: unexpected %+v", name, rec.diags)
		}
	}
}

func TestConfigOverrides(t *testing.T) {
	fs := newRepo(t, map[string]string{
		"/repo/CPPLINT.cfg":      "filter=-whitespace/tab\nlinelength=20\n",
		"/repo/src/a.cc":         copyright + "\tint a;\n",
		"/repo/gen/CPPLINT.cfg":  "exclude_files=.*\\.cc\n",
		"/repo/gen/generated.cc": "\tint a;\n",
	})
	l := newLinter(fs, nil)

	rec := &recorder{}
	res := l.ProcessFile("/repo/src/a.cc", rec)
	if rec.count("whitespace/tab") != 0 {
		t.Errorf("whitespace/tab should be filtered by CPPLINT.cfg")
	}
	if !rec.has(1, "whitespace/line_length") {
		t.Errorf("Expected the line length from CPPLINT.cfg, got %+v", rec.diags)
	}
	if res.Skipped || res.Errors != len(rec.diags) {
		t.Errorf("unexpected result %+v", res)
	}

	rec = &recorder{}
	res = l.ProcessFile("/repo/gen/generated.cc", rec)
	if !res.Skipped || len(rec.diags) != 0 {
		t.Errorf("Expected the file to be excluded, got %+v", res)
	}
}

func TestSkippedInputs(t *testing.T) {
	fs := newRepo(t, map[string]string{"/repo/notes.txt": "hello\n"})
	l := newLinter(fs, nil)

	rec := &recorder{}
	if res := l.ProcessFile("/repo/missing.cc", rec); !res.Skipped {
		t.Errorf("Expected a missing file to be skipped")
	}
	if len(rec.errs) != 1 || rec.errs[0] != "Skipping input '/repo/missing.cc': Can't open for reading\n" {
		t.Errorf("unexpected errors %q", rec.errs)
	}

	rec = &recorder{}
	l.ProcessFile("/repo/notes.txt", rec)
	if len(rec.errs) != 1 || !strings.HasPrefix(rec.errs[0], "Ignoring /repo/notes.txt; not a valid file name (") {
		t.Errorf("unexpected errors %q", rec.errs)
	}
}

func TestEncodingReports(t *testing.T) {
	rec := lintOne(t, "/repo/a.cc", copyright+"int a;\r\nint b;\n")
	if !rec.has(2, "whitespace/newline") {
		t.Errorf("Expected a CR report on line 2, got %+v", rec.diags)
	}

	crlf := strings.ReplaceAll(copyright, "\n", "\r\n")
	rec = lintOne(t, "/repo/a.cc", crlf+"int a;\r\nint b;\r\n")
	if rec.count("whitespace/newline") != 0 {
		t.Errorf("uniform CR-LF endings should not be reported, got %+v", rec.diags)
	}

	rec = lintOne(t, "/repo/a.cc", copyright+"int a = 1;  // \xff\n")
	if !rec.has(2, "readability/utf8") {
		t.Errorf("Expected readability/utf8 on line 2, got %+v", rec.diags)
	}
}

type memCache map[project.Digest][]diag.Diagnostic

func (m memCache) Get(key project.Digest) ([]diag.Diagnostic, bool) {
	d, ok := m[key]
	return d, ok
}

func (m memCache) Put(key project.Digest, diags []diag.Diagnostic) { m[key] = diags }

func TestResultCache(t *testing.T) {
	fs := newRepo(t, map[string]string{"/repo/a.cc": copyright + "long a;\n"})
	cache := memCache{}
	l := New(Config{Files: source.NewFileSet(fs), Verbose: 1, Results: cache})

	first := &recorder{}
	res := l.ProcessFile("/repo/a.cc", first)
	if res.Cached || len(cache) != 1 {
		t.Fatalf("Expected a stored result, got %+v", res)
	}

	second := &recorder{}
	res = l.ProcessFile("/repo/a.cc", second)
	if !res.Cached {
		t.Fatalf("Expected a cache hit")
	}
	if len(second.diags) != len(first.diags) || res.Errors != len(first.diags) {
		t.Errorf("Expected %d replayed diagnostics, got %d", len(first.diags), len(second.diags))
	}

	// другая verbosity дает другой ключ
	l = New(Config{Files: source.NewFileSet(fs), Verbose: 5, Results: cache})
	if res := l.ProcessFile("/repo/a.cc", &recorder{}); res.Cached {
		t.Errorf("a different verbosity must not hit the cache")
	}
}

func TestQuietAndTiming(t *testing.T) {
	fs := newRepo(t, map[string]string{"/repo/a.cc": copyright + "int a;\n"})
	l := New(Config{Files: source.NewFileSet(fs), Verbose: 1, Quiet: true, Timing: true})

	rec := &recorder{}
	res := l.ProcessFile("/repo/a.cc", rec)
	if len(rec.infos) != 0 {
		t.Errorf("quiet run without errors should print nothing, got %q", rec.infos)
	}
	if res.Timing == nil || len(res.Timing.Phases) < 3 {
		t.Errorf("Expected read, cleanse and check phases, got %+v", res.Timing)
	}
}
