package cleanse

import (
	"cpplint/internal/regex"
)

// AltTokens maps alternative tokens to their symbolic spelling. Digraphs
// such as "%:" are not included.
var AltTokens = map[string]string{
	"and":    "&&",
	"bitor":  "|",
	"or":     "||",
	"xor":    "^",
	"compl":  "~",
	"bitand": "&",
	"and_eq": "&=",
	"or_eq":  "|=",
	"xor_eq": "^=",
	"not":    "!",
	"not_eq": "!=",
}

// AltTokenPattern matches an alternative token inside a plausible boolean
// expression; the surrounding [ =()] keeps it away from identifiers.
// Group 1 is the leading context, group 2 the token, group 3 the trailer.
var AltTokenPattern = regex.MustCompile(
	`([ =()])(and|and_eq|bitand|bitor|compl|not|not_eq|or|or_eq|xor|xor_eq)([ (]|$)`)

// ReplaceAlternateTokens rewrites alternative tokens to their symbolic form.
// A space after the unary "not" and "compl" is dropped.
func ReplaceAlternateTokens(line string) string {
	out, _ := AltTokenPattern.ReplaceAllFunc(line, func(m *regex.Match) string {
		key := m.Group(2)
		tail := m.Group(3)
		if (key == "not" || key == "compl") && tail == " " {
			tail = ""
		}
		return m.Group(1) + AltTokens[key] + tail
	})
	return out
}
