// Package state aggregates the results of a lint run: error counts, the
// output streams and the diagnostics kept for document formats. Workers
// buffer per-file output in a FileOutput and flush it in one piece.
package state

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/fatih/color"

	"cpplint/internal/diag"
	"cpplint/internal/diagfmt"
)

// State is shared by all workers of a run.
type State struct {
	format   diagfmt.Format
	counting string
	stdout   io.Writer
	stderr   io.Writer

	mu         sync.Mutex
	errorCount int
	byCategory map[string]int
	diags      *diag.Bag
	errs       []string
}

// New creates the run state. counting is one of total, toplevel, detailed.
func New(format diagfmt.Format, counting string, stdout, stderr io.Writer) *State {
	return &State{
		format:     format,
		counting:   counting,
		stdout:     stdout,
		stderr:     stderr,
		byCategory: make(map[string]int),
		diags:      diag.NewBag(0),
	}
}

// Format returns the output format of the run.
func (s *State) Format() diagfmt.Format { return s.format }

func (s *State) writer(stream diagfmt.Stream) io.Writer {
	switch stream {
	case diagfmt.Stdout:
		return s.stdout
	case diagfmt.Stderr:
		return s.stderr
	}
	return io.Discard
}

// PrintInfo writes an informational message to the info stream of the
// format.
func (s *State) PrintInfo(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	io.WriteString(s.writer(s.format.InfoStream()), msg)
}

// PrintError reports a run problem. Document formats keep it for the
// document, the others write it to stderr.
func (s *State) PrintError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.printErrorLocked(msg)
}

func (s *State) printErrorLocked(msg string) {
	if s.format.Collected() {
		s.errs = append(s.errs, strings.TrimRight(msg, "\n"))
		return
	}
	io.WriteString(s.stderr, msg)
}

// incrementLocked counts one reported error.
func (s *State) incrementLocked(category string) {
	s.errorCount++
	switch s.counting {
	case "toplevel":
		top, _, _ := strings.Cut(category, "/")
		s.byCategory[top]++
	case "detailed":
		s.byCategory[category]++
	}
}

// IncrementErrorCount counts one error in category.
func (s *State) IncrementErrorCount(category string) {
	s.mu.Lock()
	s.incrementLocked(category)
	s.mu.Unlock()
}

// ErrorCount returns the number of errors counted so far.
func (s *State) ErrorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errorCount
}

// CategoryCounts returns a copy of the per-category counts.
func (s *State) CategoryCounts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.byCategory))
	for k, v := range s.byCategory {
		out[k] = v
	}
	return out
}

// ResetErrorCounts clears all counters.
func (s *State) ResetErrorCounts() {
	s.mu.Lock()
	s.errorCount = 0
	s.byCategory = make(map[string]int)
	s.mu.Unlock()
}

// PrintErrorCounts writes the per-category counts followed by the total.
func (s *State) PrintErrorCounts() {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.writer(s.format.InfoStream())
	cats := make([]string, 0, len(s.byCategory))
	for c := range s.byCategory {
		cats = append(cats, c)
	}
	slices.Sort(cats)
	for _, c := range cats {
		fmt.Fprintf(w, "Category '%s' errors found: %d\n", c, s.byCategory[c])
	}
	if s.errorCount > 0 {
		color.New(color.FgRed, color.Bold).Fprintf(w, "Total errors found: %d\n", s.errorCount)
	}
}

// DocumentOptions configures WriteDocument.
type DocumentOptions struct {
	JSON  diagfmt.JSONOpts
	Sarif diagfmt.SarifRunMeta
}

// Collected returns the diagnostics kept for the document, grouped by file
// in the order each file reported.
func (s *State) Collected() ([]diag.Diagnostic, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	diags := slices.Clone(s.diags.Items())
	slices.SortStableFunc(diags, func(a, b diag.Diagnostic) int {
		return strings.Compare(a.File, b.File)
	})
	return diags, slices.Clone(s.errs)
}

// WriteDocument renders the collected document for junit, json and sarif.
// Other formats write nothing.
func (s *State) WriteDocument(opts DocumentOptions) error {
	if !s.format.Collected() {
		return nil
	}
	diags, errs := s.Collected()

	var buf bytes.Buffer
	var err error
	switch s.format {
	case diagfmt.JUnit:
		err = diagfmt.WriteJUnit(&buf, diags, errs)
	case diagfmt.JSONFormat:
		err = diagfmt.JSON(&buf, diags, errs, opts.JSON)
	case diagfmt.SARIF:
		err = diagfmt.Sarif(&buf, diags, opts.Sarif)
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.writer(s.format.DocumentStream()).Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s document: %w", s.format, err)
	}
	return nil
}

// FileOutput buffers what one file produces. It is owned by one worker.
type FileOutput struct {
	s      *State
	stdout bytes.Buffer
	stderr bytes.Buffer
	diags  *diag.Bag
	errs   []string
}

// NewFile starts the buffered output of one file.
func (s *State) NewFile() *FileOutput {
	return &FileOutput{s: s, diags: diag.NewBag(0)}
}

// Error records a diagnostic that already passed the filters.
func (f *FileOutput) Error(d diag.Diagnostic) {
	f.diags.Add(d)
	line, stream := diagfmt.FormatLine(f.s.format, d)
	if b := f.buffer(stream); b != nil {
		b.WriteString(line)
	}
}

func (f *FileOutput) buffer(stream diagfmt.Stream) *bytes.Buffer {
	switch stream {
	case diagfmt.Stdout:
		return &f.stdout
	case diagfmt.Stderr:
		return &f.stderr
	}
	return nil
}

// PrintInfo buffers an informational message.
func (f *FileOutput) PrintInfo(msg string) {
	if b := f.buffer(f.s.format.InfoStream()); b != nil {
		b.WriteString(msg)
	}
}

// PrintError buffers a run problem.
func (f *FileOutput) PrintError(msg string) {
	if f.s.format.Collected() {
		f.errs = append(f.errs, msg)
		return
	}
	f.stderr.WriteString(msg)
}

// Diagnostics returns what was recorded so far.
func (f *FileOutput) Diagnostics() []diag.Diagnostic { return f.diags.Items() }

// Flush counts the recorded diagnostics and writes the buffers under the
// state lock. The FileOutput is empty afterwards.
func (f *FileOutput) Flush() {
	s := f.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range f.diags.Items() {
		s.incrementLocked(d.Category)
	}
	if s.format.Collected() {
		s.diags.Merge(f.diags)
	}
	for _, msg := range f.errs {
		s.printErrorLocked(msg)
	}
	if f.stdout.Len() > 0 {
		s.stdout.Write(f.stdout.Bytes())
	}
	if f.stderr.Len() > 0 {
		s.stderr.Write(f.stderr.Bytes())
	}

	f.diags = diag.NewBag(0)
	f.errs = nil
	f.stdout.Reset()
	f.stderr.Reset()
}
