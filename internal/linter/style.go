package linter

import (
	"strconv"
	"strings"

	"cpplint/internal/cleanse"
	"cpplint/internal/nesting"
	"cpplint/internal/regex"
	"cpplint/internal/strutil"
)

var (
	forwardClassDecl = regex.MustCompile(`^\s*(\btemplate\b)*.*class\s+\w+;\s*$`)

	functionHead = regex.MustCompile(`(\w(\w|::|\*|\&|\s)*)\(`)
	macroName    = regex.MustCompile(`[A-Z_]+$`)
	functionName = regex.MustCompile(`((\w|:)*)\(`)
	testArgs     = regex.MustCompile(`(\(.*\))`)

	continuationEnd = regex.MustCompile(`[",=><] *$`)
	scopeOrLabel    = regex.MustCompile(`\s*(?:public|private|protected|signals)(?:\s+(?:slots\s*)?)?:\s*\\?$`)
	rawStringStart  = regex.MustCompile(`^\s*""`)

	longURL        = regex.MustCompile(`^\s*//.*http(s?)://\S*$`)
	singleWordNote = regex.MustCompile(`^\s*//\s*[^\s]*$`)
	idKeyword      = regex.MustCompile(`^// \$Id:.*#[0-9]+ \$$`)
	doxygenCopy    = regex.MustCompile(`^\s*/// [@\\](copydoc|copydetails|copybrief) .*$`)
	simpleLambda   = regex.MustCompile(`^[^{};]*\[[^\[\]]*\][^{}]*\{[^{}\n\r]*\}`)

	classSection      = regex.MustCompile(`\s*(public|protected|private):`)
	initializerIndent = regex.MustCompile(` {6}\w`)
	functionArgsEnd   = regex.MustCompile(` {4}\w[^\(]*\)\s*(const\s*)?(\{\s*$|:)`)
	initializerColon  = regex.MustCompile(` {4}:`)

	spaceForScope  = regex.MustCompile(`^.*{ *//`)
	todoComment    = regex.MustCompile(`^//(\s*)TODO(\(.+?\))?:?(\s|$)?`)
	commentNoSpace = regex.MustCompile(`//[^ ]*\w`)
	doxygenComment = regex.MustCompile(`(///|//\!)(\s+|$)`)

	spaceBeforeBracket  = regex.MustCompile(`\w\s+\[(?!\[)`)
	bracketAfterKeyword = regex.MustCompile(`(?:auto&?|delete|return)\s+\[`)
	forColonLeft        = regex.MustCompile(`for *\(.*[^:]:[^: ]`)
	forColonRight       = regex.MustCompile(`for *\(.*[^: ]:[^:]`)

	classOrStruct = regex.MustCompile(`\b(class|struct)\b`)
	openBraceEnd  = regex.MustCompile(`\{\s*$`)
)

func (f *fileLinter) checkNamespaceIndentation(clean *cleanse.CleansedLines, linenum int, nest *nesting.State) {
	elided := clean.Elided(linenum)
	forward := strings.Contains(elided, "class") && forwardClassDecl.MatchesStart(elided)
	if !nest.IsNamespaceIndentInfo() && !forward {
		return
	}
	if isMacroDefinition(clean, linenum) || !nest.IsBlockInNamespace(forward) {
		return
	}
	if elided != "" && strings.IndexByte(strutil.Whitespace, elided[0]) >= 0 {
		f.Report(linenum, "whitespace/indent_namespace", 4, "Do not indent within a namespace.")
	}
}

func isMacroDefinition(clean *cleanse.CleansedLines, linenum int) bool {
	if strings.HasPrefix(clean.Elided(linenum), "#define") {
		return true
	}
	return linenum > 0 && strings.HasSuffix(clean.Elided(linenum-1), `\`)
}

// checkFunctionLength counts the body lines of top-level functions. A body
// starts at the first "{" after a function head and ends at a line holding
// only "}".
func (f *fileLinter) checkFunctionLength(clean *cleanse.CleansedLines, linenum int, fn *nesting.FunctionState) {
	line := clean.Line(linenum)

	starting := false
	if m := functionHead.Match(line); m != nil {
		fields := strings.Fields(m.Group(1))
		name := ""
		if len(fields) > 0 {
			name = fields[len(fields)-1]
		}
		// ALL_CAPS names are macros, except the test macros.
		if name == "TEST" || name == "TEST_F" || !macroName.MatchesStart(name) {
			starting = true
		}
	}

	switch {
	case starting:
		bodyFound := false
		var joined strings.Builder
		for i := linenum; i < clean.NumLines(); i++ {
			start := clean.Line(i)
			joined.WriteString(" " + strutil.StripLeft(start))
			if strings.ContainsAny(start, ";}") {
				// declaration or a one-line body
				bodyFound = true
				break
			}
			if strings.Contains(start, "{") {
				bodyFound = true
				m := functionName.Search(line)
				if m == nil {
					break
				}
				name := m.Group(1)
				if strings.HasPrefix(name, "TEST") {
					if args := testArgs.Search(joined.String()); args != nil {
						name += args.Group(1)
					}
				} else {
					name += "()"
				}
				fn.Begin(name)
				break
			}
		}
		if !bodyFound {
			f.Report(linenum, "readability/fn_size", 5, "Lint failed to find start of function body.")
		}
	case strutil.StripRight(line) == "}":
		fn.Check(f, linenum, f.l.cfg.Verbose)
		fn.End()
	case !strutil.IsBlank(line):
		fn.Count()
	}
}

func (f *fileLinter) checkMultilineCommentsAndStrings(elided string, linenum int) {
	line := strings.ReplaceAll(elided, `\\`, "")

	if strings.Count(line, "/*") > strings.Count(line, "*/") {
		f.Report(linenum, "readability/multiline_comment", 5,
			"Complex multi-line /*...*/-style comment found. Lint may give bogus warnings.  "+
				"Consider replacing these with //-style comments, with #if 0...#endif, "+
				"or with more clearly structured multi-line comments.")
	}
	if (strings.Count(line, `"`)-strings.Count(line, `\"`))%2 != 0 {
		f.Report(linenum, "readability/multiline_string", 5,
			`Multi-line string ("...") found.  This lint script doesn't do well with such strings, `+
				"and may give bogus warnings.  Use C++11 raw strings or concatenation instead.")
	}
}

// checkStyle runs the whitespace and layout checks that look at a single
// line. Comments are still present in the text it reads.
func (f *fileLinter) checkStyle(clean *cleanse.CleansedLines, linenum int, header bool) {
	line := clean.LineWithoutRawStrings(linenum)
	elided := clean.Elided(linenum)

	if strings.Contains(line, "\t") {
		f.Report(linenum, "whitespace/tab", 1, "Tab found; better to use spaces")
	}

	// One or three leading spaces do not fit a 2-space indent. Section
	// labels, continuation lines and raw string bodies are exempt.
	spaces := strutil.LeadingSpaces(line)
	if (spaces == 1 || spaces == 3) &&
		!(linenum > 0 && continuationEnd.Search(clean.LineWithoutRawStrings(linenum-1)) != nil) &&
		!scopeOrLabel.MatchesStart(elided) &&
		!(clean.Raw(linenum) != line && rawStringStart.MatchesStart(line)) {
		f.Report(linenum, "whitespace/indent", 3,
			"Weird number of spaces at line-start.  Are you using a 2-space indent?")
	}

	if line != "" && strings.IndexByte(strutil.Whitespace, line[len(line)-1]) >= 0 {
		f.Report(linenum, "whitespace/end_of_line", 4,
			"Line ends in whitespace.  Consider deleting these extra spaces.")
	}

	f.checkLineLength(line, linenum, header)

	if strings.Count(elided, ";") > 1 &&
		!simpleLambda.MatchesStart(line) &&
		// for loops may carry two of them, possibly over two lines
		!strings.Contains(elided, "for") {
		prev := previousNonBlankLine(clean, linenum)
		caseLine := (strings.Contains(elided, "case ") || strings.Contains(elided, "default:")) &&
			strings.Contains(elided, "break;")
		if (!strings.Contains(prev, "for") || strings.Contains(prev, ";")) && !caseLine {
			f.Report(linenum, "whitespace/newline", 0, "More than one command on the same line")
		}
	}

	f.checkAltTokens(elided, linenum)
}

func (f *fileLinter) checkLineLength(line string, linenum int, header bool) {
	if strings.HasPrefix(line, "#include") {
		return
	}
	// header guards cannot be split either
	if header && f.cppvar != "" && (strings.HasPrefix(line, "#ifndef "+f.cppvar) ||
		strings.HasPrefix(line, "#define "+f.cppvar) ||
		strings.HasPrefix(line, "#endif  // "+f.cppvar)) {
		return
	}
	if longURL.MatchesStart(line) || singleWordNote.MatchesStart(line) ||
		idKeyword.MatchesStart(line) || doxygenCopy.MatchesStart(line) {
		return
	}
	if limit := f.opts.LineLength; strutil.Width(line) > limit {
		f.Report(linenum, "whitespace/line_length", 2,
			"Lines should be <= "+strconv.Itoa(limit)+" characters long")
	}
}

// previousNonBlankLine returns the nearest elided line above linenum that
// is not blank.
func previousNonBlankLine(clean *cleanse.CleansedLines, linenum int) string {
	for i := linenum - 1; i >= 0; i-- {
		if prev := clean.Elided(i); !strutil.IsBlank(prev) {
			return prev
		}
	}
	return ""
}

func (f *fileLinter) checkAltTokens(elided string, linenum int) {
	if strutil.FirstNonSpace(elided) == '#' {
		return
	}
	// A multi-line comment inside a macro would look like prose.
	if strings.Contains(elided, "/*") || strings.Contains(elided, "*/") {
		return
	}
	for _, m := range cleanse.AltTokenPattern.FindAll(elided) {
		key := m.Group(2)
		f.Report(linenum, "readability/alt_tokens", 2,
			"Use operator "+cleanse.AltTokens[key]+" instead of "+key)
	}
}

// checkSpacing covers blank lines around blocks, comment spacing and a few
// token spacing rules.
func (f *fileLinter) checkSpacing(clean *cleanse.CleansedLines, linenum int, nest *nesting.State) {
	line := clean.LineWithoutRawStrings(linenum)

	// Namespaces and extern "C" blocks are usually not indented, so blank
	// lines right inside them are fine.
	if linenum > 0 && strutil.IsBlank(line) && !nest.InNamespaceBody() && !nest.InExternC() {
		f.checkBlankLine(clean, linenum)
	}

	nextStart := 0
	if linenum+1 < clean.NumLines() {
		next := clean.LineWithoutRawStrings(linenum + 1)
		nextStart = len(next) - len(strutil.StripLeft(next))
	}
	f.checkComment(line, linenum, nextStart)

	elided := clean.Elided(linenum)
	// C++11 attributes and "delete []", "return []() {}", "auto [a, b]" are fine.
	if spaceBeforeBracket.Search(elided) != nil && bracketAfterKeyword.Search(elided) == nil {
		f.Report(linenum, "whitespace/braces", 5, "Extra space before [")
	}
	if forColonLeft.Search(elided) != nil || forColonRight.Search(elided) != nil {
		f.Report(linenum, "whitespace/forcolon", 2, "Missing space around colon in range-based for loop")
	}
}

func (f *fileLinter) checkBlankLine(clean *cleanse.CleansedLines, linenum int) {
	prev := clean.Elided(linenum - 1)

	if brace := strings.LastIndexByte(prev, '{'); brace >= 0 && !strings.Contains(prev[brace:], "}") {
		// Function headers wrapped with a 4-space indent and constructor
		// initializer lists may be followed by a blank line.
		exception := false
		if initializerIndent.MatchesStart(prev) {
			i := linenum - 2
			for i >= 0 && initializerIndent.MatchesStart(clean.Elided(i)) {
				i--
			}
			exception = i >= 0 && strings.HasPrefix(clean.Elided(i), "    :")
		} else {
			exception = functionArgsEnd.MatchesStart(prev) || initializerColon.MatchesStart(prev)
		}
		if !exception {
			f.Report(linenum, "whitespace/blank_line", 2,
				"Redundant blank line at the start of a code block should be deleted.")
		}
	}

	// Blank lines before "} else" keep long if-else chains readable.
	if linenum+1 < clean.NumLines() {
		next := clean.LineWithoutRawStrings(linenum + 1)
		if strutil.FirstNonSpace(next) == '}' && !strings.Contains(next, "} else ") {
			f.Report(linenum, "whitespace/blank_line", 3,
				"Redundant blank line at the end of a code block should be deleted.")
		}
	}

	if m := classSection.Match(prev); m != nil {
		f.Report(linenum, "whitespace/blank_line", 3, `Do not leave a blank line after "`+m.Group(1)+`:"`)
	}
}

func (f *fileLinter) checkComment(line string, linenum, nextStart int) {
	pos := strings.Index(line, "//")
	if pos < 0 {
		return
	}

	// "//" inside a string literal
	quotes := 0
	escaped := false
	for i := 0; i < pos; i++ {
		if escaped || line[i] == '\\' {
			escaped = !escaped
			continue
		}
		if line[i] == '"' {
			quotes++
		}
	}
	if quotes%2 != 0 {
		return
	}

	// One space is enough after the brace of a new scope.
	isSpace := func(c byte) bool { return strings.IndexByte(strutil.Whitespace, c) >= 0 }
	if !(spaceForScope.MatchesStart(line) && nextStart == pos) &&
		((pos >= 1 && !isSpace(line[pos-1])) || (pos >= 2 && !isSpace(line[pos-2]))) {
		f.Report(linenum, "whitespace/comments", 2, "At least two spaces is best between code and comments")
	}

	comment := line[pos:]
	if m := todoComment.Match(comment); m != nil {
		if m.Len(1) > 1 {
			f.Report(linenum, "whitespace/todo", 2, "Too many spaces before TODO")
		}
		if !m.Matched(2) {
			f.Report(linenum, "readability/todo", 2,
				`Missing username in TODO; it should look like "// TODO(my_username): Stuff."`)
		}
		if middle := m.Group(3); !m.Matched(3) || (middle != " " && middle != "") {
			f.Report(linenum, "whitespace/todo", 2, "TODO(my_username) should be followed by a space")
		}
	}

	// Alphanumeric text needs a space after "//", Doxygen "///" and "//!"
	// markers aside.
	if commentNoSpace.MatchesStart(comment) && !doxygenComment.MatchesStart(comment) {
		f.Report(linenum, "whitespace/comments", 4, "Should have a space between // and comment")
	}
}

// checkSectionSpacing wants a blank line before access labels of classes
// longer than 25 lines.
func (f *fileLinter) checkSectionSpacing(clean *cleanse.CleansedLines, class *nesting.Block, linenum int) {
	if class.LastLine-class.StartLine <= 24 || linenum <= class.StartLine {
		return
	}
	line := clean.Line(linenum)
	m := classSection.Match(line)
	if m == nil {
		return
	}

	// The start of the class, inner forward declarations and macro bodies
	// are left alone.
	prev := clean.Line(linenum - 1)
	if strutil.IsBlank(prev) || classOrStruct.Search(prev) != nil || strings.HasSuffix(prev, `\`) {
		return
	}

	// class Derived
	//     : public Base {
	endOfHead := class.StartLine
	for i := class.StartLine; i < linenum; i++ {
		if openBraceEnd.Search(clean.Line(i)) != nil {
			endOfHead = i
			break
		}
	}
	if endOfHead < linenum-1 {
		f.Report(linenum, "whitespace/blank_line", 3, `"`+m.Group(1)+`:" should be preceded by a blank line`)
	}
}
