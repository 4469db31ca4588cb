package cleanse

import (
	"strings"

	"cpplint/internal/strutil"
)

// FindNextMultiLineCommentStart returns the first line at or after from that
// opens a /* comment not closed on the same line, or len(lines).
func FindNextMultiLineCommentStart(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		line := lines[i]
		t := strutil.StripLeft(line)
		if strings.HasPrefix(t, "/*") {
			pos := len(line) - len(t)
			if !strings.Contains(line[pos+2:], "*/") {
				return i
			}
		}
	}
	return len(lines)
}

// FindNextMultiLineCommentEnd returns the first line at or after from whose
// trimmed text ends with */, or len(lines).
func FindNextMultiLineCommentEnd(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.HasSuffix(strutil.StripRight(lines[i]), "*/") {
			return i
		}
	}
	return len(lines)
}

// RemoveMultiLineComments replaces every line of each multi-line /* */
// comment with "/**/" so later blank-line checks see non-empty lines.
// visit is called with each line before it is cleared. It returns the
// index of a comment start that never ends, or -1.
func RemoveMultiLineComments(lines []string, visit func(line string)) int {
	for i := 0; i < len(lines); {
		begin := FindNextMultiLineCommentStart(lines, i)
		if begin >= len(lines) {
			return -1
		}
		end := FindNextMultiLineCommentEnd(lines, begin)
		if end >= len(lines) {
			return begin
		}
		for j := begin; j <= end; j++ {
			if visit != nil {
				visit(lines[j])
			}
			lines[j] = "/**/"
		}
		i = end + 1
	}
	return -1
}
