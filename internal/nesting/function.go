package nesting

import (
	"fmt"
	"math"
	"strings"

	"cpplint/internal/diag"
)

const (
	normalTrigger = 250 // for --v=0, 500 for --v=1, etc.
	testTrigger   = 400 // about 50% more than normalTrigger
)

// FunctionState counts the non-comment lines of the current function body.
type FunctionState struct {
	inFunction bool
	lines      int
	name       string
}

// Begin starts counting a new function body.
func (f *FunctionState) Begin(name string) {
	f.inFunction = true
	f.lines = 0
	f.name = name
}

// Count adds one line when inside a function.
func (f *FunctionState) Count() {
	if f.inFunction {
		f.lines++
	}
}

// End stops counting.
func (f *FunctionState) End() {
	f.inFunction = false
}

// InFunction reports whether a body is being counted.
func (f *FunctionState) InFunction() bool {
	return f.inFunction
}

// Check reports a function that outgrew the trigger for the given verbosity.
func (f *FunctionState) Check(r diag.Reporter, linenum, verbose int) {
	if !f.inFunction {
		return
	}

	base := normalTrigger
	if strings.HasPrefix(f.name, "TEST") || strings.HasPrefix(f.name, "Test") {
		base = testTrigger
	}
	trigger := base << max(verbose, 0)

	if f.lines <= trigger {
		return
	}
	// 50 => 0, 100 => 1, 200 => 2, 400 => 3, 800 => 4, 1600 => 5, ...
	level := min(int(math.Log2(float64(f.lines)/float64(base))), 5)
	r.Report(linenum, "readability/fn_size", level, fmt.Sprintf(
		"Small and focused functions are preferred: %s has %d non-comment lines (error triggered by exceeding %d lines).",
		f.name, f.lines, trigger))
}
