package config

import (
	"fmt"
	"strconv"
	"strings"

	"cpplint/internal/strutil"
)

// Filter is one entry of --filter: a sign, a category prefix and an
// optional file and line restriction ("-whitespace:foo.h:14").
type Filter struct {
	Positive bool
	Category string
	File     string
	Line     int // -1 matches every line
}

// ParseFilter parses a single signed filter.
func ParseFilter(s string) (Filter, error) {
	if s == "" || (s[0] != '+' && s[0] != '-') {
		return Filter{}, fmt.Errorf("%w (%s)", ErrBadFilter, s)
	}
	f := Filter{Positive: s[0] == '+', Line: -1}
	body := s[1:]

	category, rest, ok := strings.Cut(body, ":")
	f.Category = category
	if !ok {
		return f, nil
	}
	file, line, ok := strings.Cut(rest, ":")
	f.File = file
	if !ok {
		return f, nil
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 0 {
		return Filter{}, fmt.Errorf("%w: bad line number in %q", ErrBadFilter, s)
	}
	f.Line = n
	return f, nil
}

// ParseFilters parses a comma separated list. Filters parsed before a bad
// entry are returned together with the error.
func ParseFilters(list string) ([]Filter, error) {
	var out []Filter
	for _, item := range strutil.SplitTrim(list, ",") {
		f, err := ParseFilter(item)
		if err != nil {
			return out, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Matches reports whether the filter applies to a diagnostic.
func (f Filter) Matches(category, file string, line int) bool {
	return strings.HasPrefix(category, f.Category) &&
		(f.File == "" || f.File == file) &&
		(f.Line == -1 || f.Line == line)
}

func (f Filter) String() string {
	var b strings.Builder
	if f.Positive {
		b.WriteByte('+')
	} else {
		b.WriteByte('-')
	}
	b.WriteString(f.Category)
	if f.File != "" || f.Line != -1 {
		b.WriteByte(':')
		b.WriteString(f.File)
	}
	if f.Line != -1 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(f.Line))
	}
	return b.String()
}

// DefaultFilters are on before any --filter. Categories listed here must be
// enabled explicitly.
var DefaultFilters = []Filter{
	{Category: "build/include_alpha", Line: -1},
}

// ShouldPrint evaluates filters left to right; the last matching one wins.
func ShouldPrint(filters []Filter, category, file string, line int) bool {
	filtered := false
	for _, f := range filters {
		if f.Matches(category, file, line) {
			filtered = !f.Positive
		}
	}
	return !filtered
}
