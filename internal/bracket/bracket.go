// Package bracket matches (), [], {} and template <> pairs across lines.
//
// The scanners work on elided lines, so brackets inside comments and
// literals are never seen. A '<' is only a tentative template opener: it is
// dropped when a statement terminator or a real closing bracket shows up
// before its '>'.
package bracket

import (
	"strings"

	"cpplint/internal/regex"
)

// None marks a position that was not found.
const None = -1

// Lines is the view the scanners walk over.
type Lines interface {
	NumLines() int
	Elided(i int) string
}

// Stack holds the brackets that are still open.
type Stack []byte

func (s Stack) top() byte {
	return s[len(s)-1]
}

func (s *Stack) push(c byte) {
	*s = append(*s, c)
}

func (s *Stack) pop() {
	*s = (*s)[:len(*s)-1]
}

// popAll drops trailing c entries.
func (s *Stack) popAll(c byte) {
	for len(*s) > 0 && s.top() == c {
		s.pop()
	}
}

var (
	operatorSuffix  = regex.MustCompile(`\boperator\s*$`)
	spacedGreaterEq = regex.MustCompile(`\s>=\s`)
)

func afterOperator(prefix string) bool {
	return operatorSuffix.MatchString(prefix)
}

// FindEndOfExpressionInLine scans line from start for the end of the
// expression whose openers are on stack. It returns the position just past
// the closing bracket and an empty stack, or None. None with a non-empty
// stack means the expression continues on the next line; None with an empty
// stack means it can not be closed.
func FindEndOfExpressionInLine(line string, start int, stack Stack) (int, Stack) {
	for i := start; i < len(line); i++ {
		c := line[i]
		switch c {
		case '(', '[', '{':
			stack.push(c)
		case '<':
			switch {
			case i > 0 && line[i-1] == '<':
				// сдвиг влево
				if len(stack) > 0 && stack.top() == '<' {
					stack.pop()
					if len(stack) == 0 {
						return None, nil
					}
				}
			case i > 0 && afterOperator(line[:i]):
				// operator<
			default:
				stack.push('<')
			}
		case ')', ']', '}':
			// A pending '<' before a real closer was a comparison.
			stack.popAll('<')
			if len(stack) == 0 {
				return None, nil
			}
			if !matches(stack.top(), c) {
				return None, nil
			}
			stack.pop()
			if len(stack) == 0 {
				return i + 1, nil
			}
		case '>':
			if i > 0 && (line[i-1] == '-' || afterOperator(line[:i-1])) {
				continue
			}
			if len(stack) > 0 && stack.top() == '<' {
				stack.pop()
				if len(stack) == 0 {
					return i + 1, nil
				}
			}
		case ';':
			stack.popAll('<')
			if len(stack) == 0 {
				return None, nil
			}
		}
	}
	return None, stack
}

// CloseExpression finds the end of the expression opened at lines[line][pos],
// which must be one of ( { [ <. It returns the line and the position just
// past the closing bracket. When the expression is not closed before the end
// of the file it returns (NumLines()-1, None); when pos is not an opener it
// returns (NumLines(), None).
func CloseExpression(lines Lines, line, pos int) (int, int) {
	text := lines.Elided(line)
	if pos < 0 || pos >= len(text) {
		return lines.NumLines(), None
	}
	c := text[pos]
	if c != '(' && c != '{' && c != '[' && c != '<' {
		return lines.NumLines(), None
	}
	if rest := text[pos:]; strings.HasPrefix(rest, "<<") || strings.HasPrefix(rest, "<=") {
		return lines.NumLines(), None
	}

	end, stack := FindEndOfExpressionInLine(text, pos, nil)
	if end != None {
		return line, end
	}
	for len(stack) > 0 && line < lines.NumLines()-1 {
		line++
		end, stack = FindEndOfExpressionInLine(lines.Elided(line), 0, stack)
		if end != None {
			return line, end
		}
	}
	return lines.NumLines() - 1, None
}

// FindStartOfExpressionInLine scans line backwards from end for the start of
// the expression whose closers are on stack. It returns the position of the
// opening bracket, or None with the stack to carry to the previous line.
func FindStartOfExpressionInLine(line string, end int, stack Stack) (int, Stack) {
	for i := end; i >= 0; i-- {
		c := line[i]
		switch c {
		case ')', ']', '}':
			stack.push(c)
		case '>':
			// "->", " >= " and operator> are not template closers.
			if i > 0 && (line[i-1] == '-' ||
				spacedGreaterEq.MatchesStart(line[i-1:]) ||
				afterOperator(line[:i])) {
				i--
			} else {
				stack.push('>')
			}
		case '<':
			if i > 0 && line[i-1] == '<' {
				i--
			} else if len(stack) > 0 && stack.top() == '>' {
				stack.pop()
				if len(stack) == 0 {
					return i, nil
				}
			}
		case '(', '[', '{':
			// unmatched '>' were operators
			stack.popAll('>')
			if len(stack) == 0 {
				return None, nil
			}
			if !matches(c, stack.top()) {
				return None, nil
			}
			stack.pop()
			if len(stack) == 0 {
				return i, nil
			}
		case ';':
			stack.popAll('>')
			if len(stack) == 0 {
				return None, nil
			}
		}
	}
	return None, stack
}

// ReverseCloseExpression finds the start of the expression closed at
// lines[line][pos], which must be one of ) } ] >. It returns the line and
// position of the opening bracket, or (0, None).
func ReverseCloseExpression(lines Lines, line, pos int) (int, int) {
	text := lines.Elided(line)
	if pos < 0 || pos >= len(text) {
		return 0, None
	}
	c := text[pos]
	if c != ')' && c != '}' && c != ']' && c != '>' {
		return 0, None
	}

	start, stack := FindStartOfExpressionInLine(text, pos, nil)
	if start != None {
		return line, start
	}
	for len(stack) > 0 && line > 0 {
		line--
		l := lines.Elided(line)
		start, stack = FindStartOfExpressionInLine(l, len(l)-1, stack)
		if start != None {
			return line, start
		}
	}
	return 0, None
}

func matches(open, closer byte) bool {
	switch open {
	case '(':
		return closer == ')'
	case '[':
		return closer == ']'
	case '{':
		return closer == '}'
	}
	return false
}
