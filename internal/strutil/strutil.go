// Package strutil holds the small string helpers every checker leans on.
package strutil

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Whitespace is the C locale isspace set.
const Whitespace = " \t\n\v\f\r"

// StripLeft removes leading whitespace.
func StripLeft(s string) string {
	return strings.TrimLeft(s, Whitespace)
}

// StripRight removes trailing whitespace.
func StripRight(s string) string {
	return strings.TrimRight(s, Whitespace)
}

// Strip removes whitespace on both sides.
func Strip(s string) string {
	return strings.Trim(s, Whitespace)
}

// IsBlank reports whether s holds only whitespace.
func IsBlank(s string) bool {
	return Strip(s) == ""
}

// LeadingSpaces counts leading ' ' characters.
func LeadingSpaces(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

// IndentLevel is the number of leading spaces before the first non-blank
// character. Blank lines and a tab after the spaces give 0.
func IndentLevel(s string) int {
	n := LeadingSpaces(s)
	if n == len(s) || strings.IndexByte(Whitespace, s[n]) >= 0 {
		return 0
	}
	return n
}

// FirstNonSpace returns the first byte that is not a space or tab, or 0.
func FirstNonSpace(s string) byte {
	t := StripLeft(s)
	if t == "" {
		return 0
	}
	return t[0]
}

// CountByte counts occurrences of c in s.
func CountByte(s string, c byte) int {
	return strings.Count(s, string(c))
}

// SplitTrim splits on sep, trims each piece and drops empty ones.
func SplitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := parts[:0]
	for _, p := range parts {
		if p = Strip(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ToLowerASCII lowercases ASCII letters only.
func ToLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// ToUpperASCII uppercases ASCII letters only.
func ToUpperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// Set is an ordered set of strings.
type Set map[string]struct{}

// NewSet builds a set from items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// ParseSet parses a comma separated list into a set.
func ParseSet(list string) Set {
	return NewSet(SplitTrim(list, ",")...)
}

// Has reports membership.
func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Add inserts items.
func (s Set) Add(items ...string) {
	for _, it := range items {
		s[it] = struct{}{}
	}
}

// Sorted returns the elements in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Join returns the sorted elements joined by sep.
func (s Set) Join(sep string) string {
	return strings.Join(s.Sorted(), sep)
}

// Width returns the display width of s in terminal columns, measured on
// the NFC form. East Asian wide and fullwidth characters count as two
// columns and nonspacing marks as zero.
func Width(s string) int {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return len(s)
	}
	n := 0
	for _, r := range norm.NFC.String(s) {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			if !unicode.Is(unicode.Mn, r) {
				n++
			}
		}
	}
	return n
}
