// Package cleanse builds the four aligned views of a source file that every
// check works on: raw lines, lines without raw strings, lines without
// comments and fully elided lines.
package cleanse

import (
	"strings"

	"cpplint/internal/regex"
	"cpplint/internal/strutil"
)

// CleansedLines holds four copies of all lines with different preprocessing
// applied. All views share line numbering.
type CleansedLines struct {
	raw          []string
	noRawStrings []string
	lines        []string
	elided       []string
	hasComment   []bool
}

// New cleanses raw. Alternate tokens are rewritten in place in raw unless
// keepAltTokens is set.
func New(raw []string, keepAltTokens bool) *CleansedLines {
	if !keepAltTokens {
		for i, line := range raw {
			raw[i] = ReplaceAlternateTokens(line)
		}
	}
	c := &CleansedLines{
		raw:          raw,
		noRawStrings: CleanseRawStrings(raw),
		lines:        make([]string, len(raw)),
		elided:       make([]string, len(raw)),
		hasComment:   make([]bool, len(raw)),
	}
	for i, line := range c.noRawStrings {
		stripped, comment := CleanseComments(line)
		c.lines[i] = stripped
		c.hasComment[i] = comment
		c.elided[i] = CollapseStrings(stripped)
	}
	return c
}

// NumLines returns the number of lines in every view.
func (c *CleansedLines) NumLines() int { return len(c.lines) }

// Line returns line i with comments removed.
func (c *CleansedLines) Line(i int) string { return c.lines[i] }

// Elided returns line i with comments and literal contents removed.
func (c *CleansedLines) Elided(i int) string { return c.elided[i] }

// Raw returns the unprocessed line i.
func (c *CleansedLines) Raw(i int) string { return c.raw[i] }

// LineWithoutRawStrings returns line i with raw string bodies removed.
func (c *CleansedLines) LineWithoutRawStrings(i int) string { return c.noRawStrings[i] }

// HasComment reports whether line i held a comment.
func (c *CleansedLines) HasComment(i int) bool { return c.hasComment[i] }

// ElidedLines returns the elided view. Do not modify it.
func (c *CleansedLines) ElidedLines() []string { return c.elided }

// RawLines returns the raw view. Do not modify it.
func (c *CleansedLines) RawLines() []string { return c.raw }

// LinesWithoutRawStrings returns that view. Do not modify it.
func (c *CleansedLines) LinesWithoutRawStrings() []string { return c.noRawStrings }

var (
	rawStringStart = regex.MustCompile(`^(.*?)\b(?:R|u8R|uR|UR|LR)"([^\s\\()]*)\((.*)$`)
	// prefix of a raw-string match that is itself inside a // comment
	rawStringInComment = regex.MustCompile(`^([^'"]|'(\\.|[^'])*'|"(\\.|[^"])*")*//`)
	leadingSpace       = regex.MustCompile(`^(\s*)\S`)
)

// CleanseRawStrings replaces C++11 raw string bodies with "" and blank
// continuation lines:
//
//	static const char kData[] = R"(
//	    multi-line string
//	    )";
//
// becomes
//
//	static const char kData[] = ""
//	""
//	"";
func CleanseRawStrings(raw []string) []string {
	delimiter := ""
	out := make([]string, 0, len(raw))

	for _, line := range raw {
		newLine := line
		if delimiter != "" {
			if end := strings.Index(line, delimiter); end >= 0 {
				indent := ""
				if m := leadingSpace.Match(line); m != nil {
					indent = m.Group(1)
				}
				newLine = indent + `""` + line[end+len(delimiter):]
				delimiter = ""
			} else {
				newLine = `""`
			}
		}

		for delimiter == "" {
			m := rawStringStart.Match(newLine)
			if m == nil {
				break
			}
			prefix := m.Group(1)
			if rawStringInComment.MatchesStart(prefix) {
				break
			}
			delimiter = ")" + m.Group(2) + `"`
			body := m.Group(3)
			if end := strings.Index(body, delimiter); end >= 0 {
				newLine = prefix + `""` + body[end+len(delimiter):]
				delimiter = ""
			} else {
				newLine = prefix + `""`
			}
		}
		out = append(out, newLine)
	}
	// Незакрытая raw-строка тянется до конца файла.
	return out
}

const cComment = `/\*(?:[^*]|\*(?!/))*\*/`

// Removes single-line C comments. Surrounding spaces go on both sides only at
// end of line; otherwise from the right, or from the left when a non-word
// character follows.
var cleanseCComments = regex.MustCompile(
	`(\s*` + cComment + `\s*$|` + cComment + `\s+|\s+` + cComment + `(?=\W)|` + cComment + `)`)

// CleanseComments removes // comments and single-line /* */ comments. The
// second result reports whether a comment was found.
func CleanseComments(line string) (string, bool) {
	comment := false
	if pos := strings.Index(line, "//"); pos >= 0 {
		if prefix := line[:pos]; !IsCppString(prefix) {
			line = strutil.StripRight(prefix)
			comment = true
		}
	}
	if replaced, ok := cleanseCComments.ReplaceAll(line, ""); ok {
		line = replaced
		comment = true
	}
	return line, comment
}

// IsCppString reports whether the next character appended to line would be
// inside a string constant. Comments are not considered.
func IsCppString(line string) bool {
	line = strings.ReplaceAll(line, `\\`, "XX")
	n := strings.Count(line, `"`) - strings.Count(line, `\"`) - strings.Count(line, `'"'`)
	return n&1 == 1
}

var (
	// IncludePattern matches an #include line; group 1 is the opening
	// delimiter and group 2 the path.
	IncludePattern = regex.MustCompile(`^\s*#\s*include\s*([<"])([^>"]*)[>"].*$`)

	escapes        = regex.MustCompile(`\\([abfnrtv?"\\']|\d+|x[0-9a-fA-F]+)`)
	firstQuote     = regex.MustCompile(`^([^'"]*)(['"])(.*)$`)
	digitBefore    = regex.MustCompile(`\b(?:0[bBxX]?|[1-9])[0-9a-fA-F]*$`)
	digitSeparated = regex.MustCompile(`^((?:'?[0-9a-zA-Z_])*)(.*)$`)
)

// CollapseStrings collapses string and character literals to "" and ''.
// Digit separators (1'000) are removed rather than collapsed. Include lines
// are left alone.
func CollapseStrings(line string) string {
	if IncludePattern.MatchesStart(line) {
		return line
	}
	// Escapes go first so an escaped quote never ends a literal.
	line, _ = escapes.ReplaceAll(line, "")

	var collapsed strings.Builder
	for {
		m := firstQuote.Match(line)
		if m == nil {
			collapsed.WriteString(line)
			break
		}
		head, quote, tail := m.Group(1), m.Group(2), m.Group(3)

		if quote == `"` {
			second := strings.IndexByte(tail, '"')
			if second < 0 {
				// probably a multi-line string
				collapsed.WriteString(line)
				break
			}
			collapsed.WriteString(head + `""`)
			line = tail[second+1:]
			continue
		}

		if digitBefore.MatchString(head) {
			subject := "'" + tail
			dm := digitSeparated.Match(subject)
			collapsed.WriteString(head + strings.ReplaceAll(dm.Group(1), "'", ""))
			line = dm.Group(2)
			continue
		}
		second := strings.IndexByte(tail, '\'')
		if second < 0 {
			collapsed.WriteString(line)
			break
		}
		collapsed.WriteString(head + "''")
		line = tail[second+1:]
	}
	return collapsed.String()
}
