// Package includes tracks the #include lines of one file and checks that
// they follow the expected section order.
package includes

import (
	"sort"
	"strings"

	"cpplint/internal/regex"
)

// HeaderType is the classification of one #include.
type HeaderType int

const (
	CSysHeader HeaderType = iota + 1
	CppSysHeader
	OtherSysHeader
	LikelyMyHeader
	PossibleMyHeader
	OtherHeader
)

var typeNames = [...]string{
	"",
	"C system header",
	"C++ system header",
	"other system header",
	"header this file implements",
	"header this file may implement",
	"other header",
}

func (t HeaderType) String() string {
	if t < CSysHeader || t > OtherHeader {
		return "unknown header"
	}
	return typeNames[t]
}

// section moves monotonically; moving back is an ordering error.
type section int

const (
	initialSection section = iota
	myHeaderSection
	cSection
	cppSection
	otherSysSection
	otherHeaderSection
)

var sectionNames = [...]string{
	"... nothing. (This can't be an error.)",
	"a header this file implements",
	"C system header",
	"C++ system header",
	"other system header",
	"other header",
}

// Include is one seen header and the line it was included on.
type Include struct {
	Path string
	Line int
}

// State tracks includes across preprocessor sections. The list of sections
// only grows: #if opens a new one, #else/#elif clears the current one.
type State struct {
	section    section
	lastHeader string
	lists      [][]Include
}

var includeDirective = regex.MustCompile(`^\s*#\s*include\b`)

// New returns an empty tracker.
func New() *State {
	return &State{lists: [][]Include{{}}}
}

// FindHeader returns the line where header was first included, or -1.
func (s *State) FindHeader(header string) int {
	for _, list := range s.lists {
		for _, inc := range list {
			if inc.Path == header {
				return inc.Line
			}
		}
	}
	return -1
}

// ResetSection restarts order checking at a preprocessor directive.
func (s *State) ResetSection(directive string) {
	s.section = initialSection
	s.lastHeader = ""

	switch directive {
	case "if", "ifdef", "ifndef":
		s.lists = append(s.lists, []Include{})
	case "else", "elif":
		s.lists[len(s.lists)-1] = []Include{}
	}
}

// SetLastHeader records the canonical path of the previous include.
func (s *State) SetLastHeader(path string) {
	s.lastHeader = path
}

// Add appends an include to the current section.
func (s *State) Add(path string, line int) {
	last := len(s.lists) - 1
	s.lists[last] = append(s.lists[last], Include{Path: path, Line: line})
}

// LastIncludeList returns the includes of the current section.
func (s *State) LastIncludeList() []Include {
	return s.lists[len(s.lists)-1]
}

// IncludeList returns every section.
func (s *State) IncludeList() [][]Include {
	return s.lists
}

// Includes returns the sorted set of included paths.
func (s *State) Includes() []string {
	seen := make(map[string]struct{})
	for _, list := range s.lists {
		for _, inc := range list {
			seen[inc.Path] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// CanonicalizeAlphabeticalOrder maps a path to the form used for
// alphabetical comparison: "-inl.h" drops to ".h", '-' sorts like '_',
// and case is ignored.
func CanonicalizeAlphabeticalOrder(path string) string {
	path = strings.ReplaceAll(path, "-inl.h", ".h")
	path = strings.ReplaceAll(path, "-", "_")
	return strings.ToLower(path)
}

// ElidedLines is what IsInAlphabeticalOrder needs from CleansedLines.
type ElidedLines interface {
	Elided(i int) string
}

// IsInAlphabeticalOrder reports whether header may follow the previous
// include. A blank line or any other statement in between resets the order.
func (s *State) IsInAlphabeticalOrder(lines ElidedLines, linenum int, header string) bool {
	return !(s.lastHeader > header && includeDirective.MatchesStart(lines.Elided(linenum-1)))
}

// CheckNextIncludeOrder advances the section for t and returns a message
// when t is out of order.
func (s *State) CheckNextIncludeOrder(t HeaderType) string {
	msg := "Found " + t.String() + " after " + sectionNames[s.section]
	last := s.section

	switch t {
	case CSysHeader:
		if s.section > cSection {
			s.lastHeader = ""
			return msg
		}
		s.section = cSection
	case CppSysHeader:
		if s.section > cppSection {
			s.lastHeader = ""
			return msg
		}
		s.section = cppSection
	case OtherSysHeader:
		if s.section > otherSysSection {
			s.lastHeader = ""
			return msg
		}
		s.section = otherSysSection
	case LikelyMyHeader, PossibleMyHeader:
		// never an error: we are not sure enough the header belongs here
		if s.section <= myHeaderSection {
			s.section = myHeaderSection
		} else {
			s.section = otherHeaderSection
		}
	default:
		s.section = otherHeaderSection
	}

	if last != s.section {
		s.lastHeader = ""
	}
	return ""
}
