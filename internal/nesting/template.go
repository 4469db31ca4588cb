package nesting

import (
	"cpplint/internal/bracket"
	"cpplint/internal/regex"
)

var templateArgToken = regex.MustCompile(`^[^{};=\[\]\.<>]*(.)`)

// InTemplateArgumentList reports whether position pos of line sits inside a
// template argument list, scanning forward over later lines as needed.
func InTemplateArgumentList(lines Lines, line, pos int) bool {
	for line < lines.NumLines() {
		text := lines.Elided(line)
		if pos > len(text) {
			pos = len(text)
		}
		rest := text[pos:]
		m := templateArgToken.Match(rest)
		if m == nil {
			line++
			pos = 0
			continue
		}
		token := m.Group(1)[0]
		pos += m.End(0)

		switch token {
		case '{', '}', ';':
			// class Suspect {
			// class Suspect x; }
			return false
		case '>', '=', '[', ']', '.':
			// template <class Suspect>
			// template <class Suspect = default_value>
			// template <class Suspect[]>
			// template <class Suspect...>
			return true
		}

		if token != '<' {
			pos++
			if pos >= len(rest) {
				line++
				pos = 0
			}
			continue
		}

		// A lone '<' decides nothing until its '>' is found.
		endLine, endPos := bracket.CloseExpression(lines, line, pos-1)
		if endPos == bracket.None {
			return false
		}
		line, pos = endLine, endPos
	}
	return false
}
