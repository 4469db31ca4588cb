package driver

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"

	"cpplint/internal/config"
	"cpplint/internal/diagfmt"
	"cpplint/internal/linter"
	"cpplint/internal/observ"
	"cpplint/internal/source"
	"cpplint/internal/state"
)

type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) OnEvent(e Event) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

func (l *eventLog) final(file string) Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	var s Status
	for _, e := range l.events {
		if e.File == file {
			s = e.Status
		}
	}
	return s
}

func TestRunner(t *testing.T) {
	fs := afero.NewMemMapFs()
	const copyright = "// Copyright 2024 Example Authors\n"
	var files []string
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("/repo/f%02d.cc", i)
		files = append(files, name)
		// одна ошибка на файл: табуляция
		if err := afero.WriteFile(fs, name, []byte(copyright+"\tint a;\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := afero.WriteFile(fs, "/repo/notes.txt", []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	files = append(files, "/repo/notes.txt")

	var stdout, stderr bytes.Buffer
	st := state.New(diagfmt.Emacs, "detailed", &stdout, &stderr)
	agg := observ.NewAggregate()
	events := &eventLog{}
	r := &Runner{
		Linter: linter.New(linter.Config{
			Files:   source.NewFileSet(fs),
			Options: config.Default(),
			Verbose: 1,
			Timing:  true,
		}),
		State:    st,
		Workers:  4,
		Progress: events,
		Timings:  agg,
	}

	sum, err := r.Run(context.Background(), files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Linted != 12 || sum.Skipped != 1 || sum.Errors != 12 {
		t.Errorf("unexpected summary %+v", sum)
	}
	if st.ErrorCount() != 12 {
		t.Errorf("Expected 12 counted errors, got %d", st.ErrorCount())
	}
	if got := st.CategoryCounts()["whitespace/tab"]; got != 12 {
		t.Errorf("Expected 12 whitespace/tab, got %d", got)
	}
	if n := strings.Count(stderr.String(), "[whitespace/tab]"); n != 12 {
		t.Errorf("Expected 12 emitted lines, got %d:\n%s", n, stderr.String())
	}
	if !strings.Contains(stderr.String(), "Ignoring /repo/notes.txt; not a valid file name") {
		t.Errorf("Expected ignore message, got %q", stderr.String())
	}
	if events.final("/repo/f00.cc") != StatusDone || events.final("/repo/notes.txt") != StatusSkipped {
		t.Errorf("unexpected final statuses")
	}
	if agg.Files() != 13 {
		t.Errorf("Expected 13 timed files, got %d", agg.Files())
	}
}

func TestRunnerCache(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/repo/a.cc", []byte("long a;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cache, err := OpenDiskCache(fs, "/cache", nil)
	if err != nil {
		t.Fatal(err)
	}

	run := func() (Summary, string) {
		var stdout, stderr bytes.Buffer
		st := state.New(diagfmt.Emacs, "total", &stdout, &stderr)
		r := &Runner{
			Linter: linter.New(linter.Config{
				Files:   source.NewFileSet(fs),
				Verbose: 1,
				Results: cache.Results(),
			}),
			State:   st,
			Workers: 1,
		}
		sum, err := r.Run(context.Background(), []string{"/repo/a.cc"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return sum, stderr.String()
	}

	first, out1 := run()
	second, out2 := run()
	if first.Linted != 1 || first.Cached != 0 {
		t.Errorf("unexpected first run %+v", first)
	}
	if second.Cached != 1 || second.Errors != first.Errors {
		t.Errorf("unexpected second run %+v", second)
	}
	if out1 != out2 {
		t.Errorf("cached output differs:\n%s\n---\n%s", out1, out2)
	}
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	r := &Runner{
		Linter:  linter.New(linter.Config{Files: source.NewFileSet(afero.NewMemMapFs())}),
		State:   state.New(diagfmt.Emacs, "total", &stdout, &stderr),
		Workers: 2,
	}
	sum, err := r.Run(ctx, []string{"/a.cc", "/b.cc"})
	if err == nil {
		t.Error("Expected context error")
	}
	if sum.Linted != 0 {
		t.Errorf("Expected nothing linted, got %+v", sum)
	}
}
