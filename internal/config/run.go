package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
)

// Output formats accepted by --output.
var OutputFormats = []string{"emacs", "vs7", "eclipse", "junit", "sed", "gsed", "json", "sarif"}

// Counting styles accepted by --counting.
var CountingStyles = []string{"total", "toplevel", "detailed"}

// Run holds the settings that apply to the whole run rather than one file.
type Run struct {
	Verbose   int
	Output    string
	Quiet     bool
	Counting  string
	Threads   int // <= 0 means one worker per CPU
	Recursive bool
	Excludes  []string
	Timing    bool
}

// DefaultRun returns the run settings used without flags or a manifest.
func DefaultRun() Run {
	return Run{Output: "emacs", Counting: "total", Verbose: 1}
}

// Validate checks the enumerated settings.
func (r *Run) Validate() error {
	if !slices.Contains(OutputFormats, r.Output) {
		return errors.New("The only allowed output formats are emacs, vs7, eclipse, sed, gsed, junit, json and sarif.")
	}
	if !slices.Contains(CountingStyles, r.Counting) {
		return errors.New("Valid counting options are total, toplevel, and detailed")
	}
	if r.Verbose < 0 {
		return fmt.Errorf("Verbosity should be an integer. (%d)", r.Verbose)
	}
	return nil
}

// Workers resolves Threads to a worker count.
func (r *Run) Workers() int {
	if r.Threads <= 0 {
		return max(runtime.NumCPU(), 1)
	}
	return r.Threads
}
