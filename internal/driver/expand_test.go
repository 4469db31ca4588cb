package driver

import (
	"errors"
	"slices"
	"testing"

	"github.com/spf13/afero"

	"cpplint/internal/config"
	"cpplint/internal/strutil"
)

type errorRecorder struct{ msgs []string }

func (r *errorRecorder) PrintError(msg string) { r.msgs = append(r.msgs, msg) }

func newTree(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		if err := afero.WriteFile(fs, f, []byte("int a;\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func TestExpandInputs(t *testing.T) {
	fs := newTree(t,
		"/src/a.cc",
		"/src/a.h",
		"/src/README.md",
		"/src/sub/b.cpp",
		"/src/gen/c.cc",
		"/src/gen/d.cc",
		"/other/e.cc",
	)
	exts := strutil.NewSet("cc", "h", "cpp")

	tests := []struct {
		name string
		args []string
		opts ExpandOptions
		want []string
	}{
		{
			name: "plain files are kept as given",
			args: []string{"/src/a.h", "/src/README.md", "/src/a.cc"},
			want: []string{"/src/README.md", "/src/a.cc", "/src/a.h"},
		},
		{
			name: "duplicates",
			args: []string{"/src/a.cc", "/src/./a.cc"},
			want: []string{"/src/a.cc"},
		},
		{
			name: "recursive",
			args: []string{"/src"},
			opts: ExpandOptions{Recursive: true, Extensions: exts},
			want: []string{"/src/a.cc", "/src/a.h", "/src/gen/c.cc", "/src/gen/d.cc", "/src/sub/b.cpp"},
		},
		{
			name: "exclude directory",
			args: []string{"/src", "/other"},
			opts: ExpandOptions{Recursive: true, Extensions: exts, Excludes: []string{"/src/gen"}},
			want: []string{"/other/e.cc", "/src/a.cc", "/src/a.h", "/src/sub/b.cpp"},
		},
		{
			name: "exclude glob",
			args: []string{"/src"},
			opts: ExpandOptions{Recursive: true, Extensions: exts, Excludes: []string{"/src/gen/*.cc", "/src/*.h"}},
			want: []string{"/src/a.cc", "/src/sub/b.cpp"},
		},
		{
			name: "stdin",
			args: []string{"-"},
			opts: ExpandOptions{Recursive: true, Extensions: exts, Excludes: []string{"/src"}},
			want: []string{"-"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &errorRecorder{}
			got, err := ExpandInputs(fs, tt.args, tt.opts, rec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
			if len(rec.msgs) != 0 {
				t.Errorf("unexpected messages %q", rec.msgs)
			}
		})
	}
}

func TestExpandInputsMissing(t *testing.T) {
	fs := newTree(t, "/src/a.cc")
	rec := &errorRecorder{}

	got, err := ExpandInputs(fs, []string{"/src/missing.cc", "/src/a.cc"}, ExpandOptions{}, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, []string{"/src/a.cc"}) {
		t.Errorf("Expected only /src/a.cc, got %v", got)
	}
	want := "Skipping input '/src/missing.cc': Path not found.\n"
	if len(rec.msgs) != 1 || rec.msgs[0] != want {
		t.Errorf("Expected %q, got %q", want, rec.msgs)
	}

	_, err = ExpandInputs(fs, []string{"/nowhere"}, ExpandOptions{}, rec)
	if !errors.Is(err, config.ErrNoFiles) {
		t.Errorf("Expected ErrNoFiles, got %v", err)
	}
}

func TestIsExcluded(t *testing.T) {
	excludes := []string{"/a/b", "/c/d.cc"}
	tests := map[string]bool{
		"/a/b":       true,
		"/a/b/x.cc":  true,
		"/a/bc/x.cc": false,
		"/c/d.cc":    true,
		"/c/d.cc.h":  false,
		"-":          false,
	}
	for file, want := range tests {
		if got := isExcluded(file, excludes); got != want {
			t.Errorf("isExcluded(%q): expected %v, got %v", file, want, got)
		}
	}
}
