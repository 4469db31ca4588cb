// Package suppress keeps the NOLINT and file-wide suppressions of one file.
package suppress

import (
	"fmt"
	"math"
	"strings"

	"cpplint/internal/diag"
	"cpplint/internal/regex"
	"cpplint/internal/strutil"
)

// All is the category that suppresses every diagnostic.
const All = ""

// LineRange is an inclusive range of line numbers.
type LineRange struct {
	Begin, End int
}

// Contains reports whether line falls inside r.
func (r LineRange) Contains(line int) bool {
	return r.Begin <= line && line <= r.End
}

// ContainsRange reports whether other lies inside r.
func (r LineRange) ContainsRange(other LineRange) bool {
	return r.Begin <= other.Begin && other.End <= r.End
}

func (r LineRange) String() string {
	return fmt.Sprintf("[%d-%d]", r.Begin, r.End)
}

// blockRef points at an open NOLINTBEGIN range. ok is false when the range
// was already covered and nothing was recorded.
type blockRef struct {
	category string
	index    int
	ok       bool
}

// Set holds suppressions per category. The zero value is not usable, call New.
type Set struct {
	ranges map[string][]LineRange
	open   []blockRef
}

// New returns an empty set.
func New() *Set {
	return &Set{ranges: make(map[string][]LineRange)}
}

// Clear drops everything, including open blocks.
func (s *Set) Clear() {
	clear(s.ranges)
	s.open = s.open[:0]
}

// add records r unless the last range of the category already covers it.
// It returns the index of the new range, or -1.
func (s *Set) add(category string, r LineRange) int {
	list := s.ranges[category]
	if n := len(list); n > 0 && list[n-1].ContainsRange(r) {
		return -1
	}
	s.ranges[category] = append(list, r)
	return len(list)
}

// AddGlobal suppresses category on every line.
func (s *Set) AddGlobal(category string) {
	s.add(category, LineRange{0, math.MaxInt})
}

// AddLine suppresses category on one line.
func (s *Set) AddLine(category string, line int) {
	s.add(category, LineRange{line, line})
}

// StartBlock opens a range from line to the end of the file.
func (s *Set) StartBlock(category string, line int) {
	idx := s.add(category, LineRange{line, math.MaxInt})
	s.open = append(s.open, blockRef{category: category, index: idx, ok: idx >= 0})
}

// EndBlock closes every open block at line.
func (s *Set) EndBlock(line int) {
	for i := len(s.open) - 1; i >= 0; i-- {
		if ref := s.open[i]; ref.ok {
			s.ranges[ref.category][ref.index].End = line
		}
	}
	s.open = s.open[:0]
}

// HasOpenBlock reports whether a NOLINTBEGIN is still waiting for its END.
func (s *Set) HasOpenBlock() bool {
	return len(s.open) > 0
}

// OpenBlockStart returns the first line of the innermost open block that was
// recorded, or -1. Entries that recorded nothing are discarded on the way.
func (s *Set) OpenBlockStart() int {
	for len(s.open) > 0 {
		ref := s.open[len(s.open)-1]
		if ref.ok {
			return s.ranges[ref.category][ref.index].Begin
		}
		s.open = s.open[:len(s.open)-1]
	}
	return -1
}

// IsSuppressed reports whether category is silenced on line, either by a
// suppress-all range or by one naming the category.
func (s *Set) IsSuppressed(category string, line int) bool {
	for _, r := range s.ranges[All] {
		if r.Contains(line) {
			return true
		}
	}
	if category == All {
		return false
	}
	for _, r := range s.ranges[category] {
		if r.Contains(line) {
			return true
		}
	}
	return false
}

// AddDefaultC applies the suppressions of a file marked as C.
func (s *Set) AddDefaultC() {
	s.AddGlobal("readability/casting")
}

// AddDefaultKernel applies the suppressions of a file following the Linux
// kernel style.
func (s *Set) AddDefaultKernel() {
	s.AddGlobal("whitespace/tab")
}

var (
	nolintPattern = regex.MustCompile(`\bNOLINT(NEXTLINE|BEGIN|END)?\b(\([^)]+\))?`)
	cFileMarker   = regex.MustCompile(`\b(?:LINT_C_FILE|vim?:\s*.*(\s*|:)filetype=c(\s*|:|$))`)
	kernelMarker  = regex.MustCompile(`\b(?:LINT_KERNEL_FILE)`)
)

// ParseNolint records the suppression carried by a NOLINT comment on
// rawLine. Malformed comments are reported as readability/nolint.
func (s *Set) ParseNolint(rawLine string, line int, r diag.Reporter) {
	m := nolintPattern.Search(rawLine)
	if m == nil {
		return
	}

	var apply func(category string)
	switch m.Group(1) {
	case "NEXTLINE":
		apply = func(category string) { s.AddLine(category, line+1) }
	case "BEGIN":
		if s.HasOpenBlock() {
			r.Report(line, "readability/nolint", 5,
				fmt.Sprintf("NOLINT block already defined on line %d", s.OpenBlockStart()))
		}
		apply = func(category string) { s.StartBlock(category, line) }
	case "END":
		if !s.HasOpenBlock() {
			r.Report(line, "readability/nolint", 5, "Not in a NOLINT block")
		}
		apply = func(category string) {
			if category != All {
				r.Report(line, "readability/nolint", 5, "NOLINT categories not supported in block END: "+category)
			}
			s.EndBlock(line)
		}
	default:
		apply = func(category string) { s.AddLine(category, line) }
	}

	categories := m.Group(2)
	if categories == "" || categories == "(*)" {
		apply(All)
		return
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(categories, "("), ")")
	for _, category := range strutil.ParseSet(inner).Sorted() {
		switch {
		case diag.IsCategory(category):
			apply(category)
		case diag.IsOtherToolCategory(category), diag.IsLegacyCategory(category):
		default:
			r.Report(line, "readability/nolint", 5, "Unknown NOLINT error category: "+category)
		}
	}
}

// ProcessGlobal applies file-wide markers such as LINT_C_FILE or a vim
// modeline with filetype=c.
func (s *Set) ProcessGlobal(line string) {
	if cFileMarker.MatchString(line) {
		s.AddDefaultC()
	}
	if kernelMarker.MatchString(line) {
		s.AddDefaultKernel()
	}
}
