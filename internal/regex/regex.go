// Package regex wraps two regular expression engines behind one API.
//
// Patterns are compiled with the standard RE2 engine when possible. Patterns
// that use lookaround or backreferences are compiled with the backtracking
// engine github.com/dlclark/regexp2 instead. Every Regexp keeps an anchored
// program for Match (anchored at the start of the subject) and an unanchored
// one for Search.
//
// All offsets returned by this package are byte offsets into the subject.
package regex

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dlclark/regexp2"
)

// BacktrackTimeout bounds a single backtracking match. A match that times out
// is reported as no match.
const BacktrackTimeout = 2 * time.Second

// Regexp is a compiled pattern. It is safe for concurrent use.
type Regexp struct {
	expr string

	re2      *regexp.Regexp
	re2Start *regexp.Regexp

	bt      *regexp2.Regexp
	btStart *regexp2.Regexp
}

// Compile compiles expr. The RE2 engine is tried first.
func Compile(expr string) (*Regexp, error) {
	if re, err := regexp.Compile(expr); err == nil {
		anchored, err := regexp.Compile(`\A(?:` + expr + `)`)
		if err != nil {
			return nil, fmt.Errorf("failed to compile anchored pattern %q: %w", expr, err)
		}
		return &Regexp{expr: expr, re2: re, re2Start: anchored}, nil
	}

	bt, err := regexp2.Compile(expr, regexp2.RE2)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", expr, err)
	}
	btStart, err := regexp2.Compile(`\A(?:`+expr+`)`, regexp2.RE2)
	if err != nil {
		return nil, fmt.Errorf("failed to compile anchored pattern %q: %w", expr, err)
	}
	bt.MatchTimeout = BacktrackTimeout
	btStart.MatchTimeout = BacktrackTimeout
	return &Regexp{expr: expr, bt: bt, btStart: btStart}, nil
}

// MustCompile is like Compile but panics on error. Use it for package-level
// patterns only.
func MustCompile(expr string) *Regexp {
	re, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return re
}

// Escape quotes all regex metacharacters in s.
func Escape(s string) string {
	return regexp.QuoteMeta(s)
}

// String returns the source text of the pattern.
func (r *Regexp) String() string {
	return r.expr
}

// Backtracking reports whether the pattern runs on the backtracking engine.
func (r *Regexp) Backtracking() bool {
	return r.bt != nil
}

// Match matches the pattern at the start of s.
func (r *Regexp) Match(s string) *Match {
	if r.re2 != nil {
		return newMatch(s, r.re2Start.FindStringSubmatchIndex(s))
	}
	return btFind(r.btStart, s)
}

// Search finds the leftmost match anywhere in s.
func (r *Regexp) Search(s string) *Match {
	if r.re2 != nil {
		return newMatch(s, r.re2.FindStringSubmatchIndex(s))
	}
	return btFind(r.bt, s)
}

// MatchString reports whether s contains a match.
func (r *Regexp) MatchString(s string) bool {
	if r.re2 != nil {
		return r.re2.MatchString(s)
	}
	ok, err := r.bt.MatchString(s)
	return err == nil && ok
}

// MatchesStart reports whether the pattern matches at the start of s.
func (r *Regexp) MatchesStart(s string) bool {
	if r.re2 != nil {
		return r.re2Start.MatchString(s)
	}
	ok, err := r.btStart.MatchString(s)
	return err == nil && ok
}

// MatchAt matches the pattern at the start of s[pos:]. Offsets of the result
// are relative to s.
func (r *Regexp) MatchAt(s string, pos int) *Match {
	if pos < 0 || pos > len(s) {
		return nil
	}
	m := r.Match(s[pos:])
	if m == nil {
		return nil
	}
	return m.shift(s, pos)
}

// FindAll returns all non-overlapping matches in s.
func (r *Regexp) FindAll(s string) []*Match {
	if r.re2 != nil {
		all := r.re2.FindAllStringSubmatchIndex(s, -1)
		out := make([]*Match, 0, len(all))
		for _, idx := range all {
			out = append(out, newMatch(s, idx))
		}
		return out
	}

	var out []*Match
	conv := newOffsets(s)
	m, err := r.bt.FindStringMatch(s)
	for err == nil && m != nil {
		out = append(out, btMatch(s, conv, m))
		m, err = r.bt.FindNextMatch(m)
	}
	return out
}

// ReplaceAll replaces every match with repl, where ${n} expands to group n.
// The second result reports whether anything matched.
func (r *Regexp) ReplaceAll(s, repl string) (string, bool) {
	if !r.MatchString(s) {
		return s, false
	}
	if r.re2 != nil {
		return r.re2.ReplaceAllString(s, repl), true
	}
	out, err := r.bt.Replace(s, repl, -1, -1)
	if err != nil {
		return s, false
	}
	return out, true
}

// ReplaceFirst replaces the leftmost match with repl.
func (r *Regexp) ReplaceFirst(s, repl string) (string, bool) {
	if r.re2 != nil {
		idx := r.re2.FindStringSubmatchIndex(s)
		if idx == nil {
			return s, false
		}
		var dst []byte
		dst = append(dst, s[:idx[0]]...)
		dst = r.re2.ExpandString(dst, repl, s, idx)
		dst = append(dst, s[idx[1]:]...)
		return string(dst), true
	}
	if !r.MatchString(s) {
		return s, false
	}
	out, err := r.bt.Replace(s, repl, -1, 1)
	if err != nil {
		return s, false
	}
	return out, true
}

// ReplaceAllFunc replaces every match with the result of fn.
func (r *Regexp) ReplaceAllFunc(s string, fn func(*Match) string) (string, bool) {
	matches := r.FindAll(s)
	if len(matches) == 0 {
		return s, false
	}
	var out []byte
	last := 0
	for _, m := range matches {
		out = append(out, s[last:m.Start(0)]...)
		out = append(out, fn(m)...)
		last = m.End(0)
	}
	out = append(out, s[last:]...)
	return string(out), true
}

// Split splits s around every match.
func (r *Regexp) Split(s string) []string {
	if r.re2 != nil {
		return r.re2.Split(s, -1)
	}
	matches := r.FindAll(s)
	out := make([]string, 0, len(matches)+1)
	last := 0
	for _, m := range matches {
		out = append(out, s[last:m.Start(0)])
		last = m.End(0)
	}
	return append(out, s[last:])
}

func btFind(re *regexp2.Regexp, s string) *Match {
	m, err := re.FindStringMatch(s)
	if err != nil || m == nil {
		return nil
	}
	return btMatch(s, newOffsets(s), m)
}

func btMatch(s string, conv offsets, m *regexp2.Match) *Match {
	groups := m.Groups()
	idx := make([]int, 2*len(groups))
	for i := range groups {
		g := &groups[i]
		if len(g.Captures) == 0 {
			idx[2*i], idx[2*i+1] = -1, -1
			continue
		}
		idx[2*i] = conv.byteAt(g.Index)
		idx[2*i+1] = conv.byteAt(g.Index + g.Length)
	}
	return newMatch(s, idx)
}

// offsets maps rune indexes reported by regexp2 to byte offsets.
type offsets struct {
	ascii bool
	bytes []int
}

func newOffsets(s string) offsets {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return offsets{ascii: true}
	}
	table := make([]int, 0, len(s)+1)
	for i := range s {
		table = append(table, i)
	}
	table = append(table, len(s))
	return offsets{bytes: table}
}

func (o offsets) byteAt(runeIdx int) int {
	if o.ascii {
		return runeIdx
	}
	if runeIdx < 0 {
		return 0
	}
	if runeIdx >= len(o.bytes) {
		return o.bytes[len(o.bytes)-1]
	}
	return o.bytes[runeIdx]
}
