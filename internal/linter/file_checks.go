package linter

import (
	"path/filepath"
	"strings"

	"cpplint/internal/cleanse"
	"cpplint/internal/includes"
	"cpplint/internal/regex"
)

var (
	copyrightLine     = regex.MustCompile(`(?i)copyright`)
	nolintHeaderGuard = regex.MustCompile(`//\s*NOLINT\(build/header_guard\)`)
	pragmaOnce        = regex.MustCompile(`^\s*#pragma\s+once`)
	lineComment       = regex.MustCompile(`^(?:(?:'(?:\.|[^'])*')|(?:"(?:\.|[^"])*")|[^'"])*//`)
	testFileSuffix    = regex.MustCompile(`(_test|_regtest|_unittest)$`)
)

// checkCopyright looks for a copyright notice in the first ten lines.
func (f *fileLinter) checkCopyright(lines []string) {
	for i := 1; i < min(len(lines), 11); i++ {
		if copyrightLine.Search(lines[i]) != nil {
			return
		}
	}
	f.Report(0, "legal/copyright", 5,
		`No copyright message found.  You should have a line: "Copyright [year] <Copyright Owner>"`)
}

// checkNewlineAtEOF relies on the trailing marker: a file ending in "\n"
// decodes to an empty line right before it.
func (f *fileLinter) checkNewlineAtEOF(lines []string) {
	if len(lines) < 3 || lines[len(lines)-2] != "" {
		f.Report(len(lines)-2, "whitespace/ending_newline", 5,
			"Could not find a newline character at the end of the file.")
	}
}

// checkHeaderGuard accepts #pragma once or an #ifndef/#define/#endif guard
// named after the file.
func (f *fileLinter) checkHeaderGuard(clean *cleanse.CleansedLines) {
	lines := clean.LinesWithoutRawStrings()

	// Only the exact NOLINT(build/header_guard) form silences this check,
	// the error sits on a line that does not exist.
	for _, line := range lines {
		if nolintHeaderGuard.Search(line) != nil || pragmaOnce.MatchesStart(line) {
			return
		}
	}

	var ifndef, define, endif string
	ifndefLine, endifLine := 0, 0
	for linenum, line := range lines {
		if !strings.HasPrefix(line, "#") {
			continue
		}
		if fields := strings.Fields(line); len(fields) >= 2 {
			if ifndef == "" && fields[0] == "#ifndef" {
				ifndef = fields[1]
				ifndefLine = linenum
			}
			if define == "" && fields[0] == "#define" {
				define = fields[1]
			}
		}
		if strings.HasPrefix(line, "#endif") {
			endif = line
			endifLine = linenum
		}
	}

	cppvar := f.cppvar
	if ifndef == "" || define == "" || ifndef != define {
		f.Report(0, "build/header_guard", 5,
			"No #ifndef header guard found, suggested CPP variable is: "+cppvar)
		return
	}

	// FOO_H__ is still accepted, quietly.
	if ifndef != cppvar {
		level := 5
		if ifndef == cppvar+"_" {
			level = 0
		}
		f.Report(ifndefLine, "build/header_guard", level,
			"#ifndef header guard has wrong style, please use: "+cppvar)
	}

	guard := regex.Escape(cppvar)
	if m := regex.MustCompile(`#endif\s*//\s*` + guard + `(_)?\b`).Match(endif); m != nil {
		if m.Group(1) == "_" {
			f.Report(endifLine, "build/header_guard", 0, `#endif line should be "#endif  // `+cppvar+`"`)
		}
		return
	}

	// A file without any // comment may be written for a compiler that
	// only takes /* */ comments.
	noLineComments := true
	for _, line := range lines[1 : len(lines)-1] {
		if lineComment.MatchesStart(line) {
			noLineComments = false
			break
		}
	}
	if noLineComments {
		if m := regex.MustCompile(`#endif\s*/\*\s*` + guard + `(_)?\s*\*/`).Match(endif); m != nil {
			if m.Group(1) == "_" {
				f.Report(endifLine, "build/header_guard", 0, `#endif line should be "#endif  /* `+cppvar+` */"`)
			}
			return
		}
	}

	f.Report(endifLine, "build/header_guard", 5, `#endif line should be "#endif  // `+cppvar+`"`)
}

// checkHeaderFileIncluded reports a source file that does not include the
// header next to it.
func (f *fileLinter) checkHeaderFileIncluded(inc *includes.State) {
	if f.filename == "-" || testFileSuffix.Search(f.baseName()) != nil {
		return
	}

	dir := filepath.Dir(f.abs)
	base := f.baseName()
	message := ""
	firstInclude := -1

	for _, ext := range f.headerExts.Sorted() {
		headerPath := filepath.Join(dir, base+"."+ext)
		info, err := f.l.fs.Stat(headerPath)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		headerName := f.repositoryName(headerPath)

		dirAliases := false
		for _, section := range inc.IncludeList() {
			for _, include := range section {
				if strings.Contains(include.Path, "./") {
					dirAliases = true
				}
				if strings.Contains(headerName, include.Path) || strings.Contains(include.Path, headerName) {
					return
				}
				if firstInclude < 0 {
					firstInclude = include.Line
				}
			}
		}

		message = f.fromRepo + " should include its header file " + headerName
		if dirAliases {
			message += ". Relative paths like . and .. are not allowed."
		}
	}

	if message != "" {
		f.Report(max(firstInclude, 0), "build/include", 5, message)
	}
}
