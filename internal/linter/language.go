package linter

import (
	"path"
	"strconv"
	"strings"

	"cpplint/internal/cleanse"
	"cpplint/internal/includes"
	"cpplint/internal/regex"
)

var (
	includeLine       = regex.MustCompile(`^\s*#\s*include\s*([<"])([^>"]*)[>"].*$`)
	includeNoSubdir   = regex.MustCompile(`#include\s*"([^/]+\.(.*))"`)
	thirdPartyHeader  = regex.MustCompile(`^(?:[^/]*[A-Z][^/]*\.h|lua\.h|lauxlib\.h|lualib\.h)$`)
	conditionalMacro  = regex.MustCompile(`^\s*#\s*(if|ifdef|ifndef|elif|else|endif)\b`)
	shortPort         = regex.MustCompile(`\bshort port\b`)
	unsignedShortPort = regex.MustCompile(`\bunsigned short port\b`)
	cIntType          = regex.MustCompile(`\b(short|long(?! +double)|long long)\b`)
	unaryAmpersand    = regex.MustCompile(`\boperator\s*&\s*\(\s*\)`)
	ifAfterBrace      = regex.MustCompile(`\}\s*if\s*\(`)
	memsetCall        = regex.MustCompile(`memset\s*\(([^,]*),\s*([^,]*),\s*0\s*\)`)
	memsetLiteral     = regex.MustCompile(`^''|-?[0-9]+|0x[0-9A-Fa-f]$`)
	usingNamespace    = regex.MustCompile(`\busing namespace\b`)
	literalsWord      = regex.MustCompile(`\bliterals\b`)
	unnamedNamespace  = regex.MustCompile(`\bnamespace\s*{`)

	variableArray   = regex.MustCompile(`^\s*(.+::)?(\w+) [a-z]\w*\[(.+)];`)
	arraySizeSplit  = regex.MustCompile(`\s|\+|\-|\*|\/|<<|>>]`)
	sizeofCall      = regex.MustCompile(`sizeof\(.+\)`)
	arraysizeCall   = regex.MustCompile(`arraysize\(\w+\)`)
	constSizeTokens = []*regex.Regexp{
		regex.MustCompile(`\d+`),
		regex.MustCompile(`0[xX][0-9a-fA-F]+`),
		regex.MustCompile(`k[A-Z0-9]\w*`),
		regex.MustCompile(`(.+::)?k[A-Z0-9]\w*`),
		regex.MustCompile(`(.+::)?[A-Z][A-Z0-9_]*`),
	}

	vlogSeverity     = regex.MustCompile(`\bVLOG\((INFO|ERROR|WARNING|DFATAL|FATAL)\)`)
	unsafeFunction   = regex.MustCompile(`(?:[-+*/=%^&|(<]\s*|>\s+)(asctime|ctime|getgrgid|getgrnam|getlogin|getpwnam|getpwuid|gmtime|localtime|rand|strtok|ttyname)\([^)]*\)`)
	invalidIncrement = regex.MustCompile(`^\s*\*\w+(\+\+|--);`)
	explicitMakePair = regex.MustCompile(`\bmake_pair\s*<`)
	cxxInclude       = regex.MustCompile(`\s*#\s*include\s+[<"]([^<"]+)[">]`)
)

// checkLanguage covers includes and C++ usage on the elided line.
func (f *fileLinter) checkLanguage(clean *cleanse.CleansedLines, linenum int, header bool, inc *includes.State) {
	line := clean.Elided(linenum)
	if line == "" {
		return
	}

	if includeLine.Search(line) != nil {
		f.checkIncludeLine(clean, linenum, inc)
		return
	}

	// Conditional includes start a fresh order.
	if m := conditionalMacro.Match(line); m != nil {
		inc.ResetSection(m.Group(1))
	}

	// "unsigned short port" is the one tolerated C integer type.
	if shortPort.Search(line) != nil {
		if unsignedShortPort.Search(line) == nil {
			f.Report(linenum, "runtime/int", 4, `Use "unsigned short" for ports, not "short"`)
		}
	} else if m := cIntType.Search(line); m != nil {
		f.Report(linenum, "runtime/int", 4, "Use int16/int64/etc, rather than the C type "+m.Group(1))
	}

	if unaryAmpersand.Search(line) != nil {
		f.Report(linenum, "runtime/operator", 4, "Unary operator& is dangerous.  Do not use it.")
	}

	if ifAfterBrace.Search(line) != nil {
		f.Report(linenum, "readability/braces", 4, `Did you mean "else if"? If not, start a new line for "if".`)
	}

	// memset(buf, sizeof(buf), 0)
	if m := memsetCall.Search(line); m != nil && !memsetLiteral.MatchesStart(m.Group(2)) {
		f.Report(linenum, "runtime/memset", 4,
			`Did you mean "memset(`+m.Group(1)+", 0, "+m.Group(2)+`)"?`)
	}

	if usingNamespace.Search(line) != nil {
		category := "build/namespaces"
		if literalsWord.Search(line) != nil {
			category = "build/namespaces_literals"
		}
		f.Report(linenum, category, 5, "Do not use namespace using-directives.  Use using-declarations instead.")
	}

	f.checkVariableLengthArray(line, linenum)

	// Registration macros may open an unnamed namespace on a continued line.
	if header && unnamedNamespace.Search(line) != nil && !strings.HasSuffix(line, `\`) {
		f.Report(linenum, "build/namespaces_headers", 4,
			"Do not use unnamed namespaces in header files.  See "+
				"https://google-styleguide.googlecode.com/svn/trunk/cppguide.xml#Namespaces"+
				" for more information.")
	}
}

// checkVariableLengthArray flags array sizes that are not compile-time
// constants by naming convention.
func (f *fileLinter) checkVariableLengthArray(line string, linenum int) {
	m := variableArray.Search(line)
	if m == nil {
		return
	}
	if kw := m.Group(2); kw == "return" || kw == "delete" || strings.Contains(m.Group(3), "]") {
		return
	}

	skipNext := false
	for _, tok := range arraySizeSplit.Split(m.Group(3)) {
		if skipNext {
			skipNext = false
			continue
		}
		if sizeofCall.Search(tok) != nil || arraysizeCall.Search(tok) != nil {
			continue
		}
		tok = strings.TrimRight(strings.TrimLeft(tok, "("), ")")
		if tok == "" || isConstantSize(tok) {
			continue
		}
		// "sizeof expr", "sizeof(*type)": the split leaves the operand in
		// the next token.
		if strings.HasPrefix(tok, "sizeof") {
			skipNext = true
			continue
		}
		f.Report(linenum, "runtime/arrays", 1,
			"Do not use variable-length arrays.  Use an appropriately named "+
				"('k' followed by CamelCase) compile-time constant for the size.")
		return
	}
}

func isConstantSize(tok string) bool {
	for _, re := range constSizeTokens {
		if re.MatchesStart(tok) {
			return true
		}
	}
	return false
}

func (f *fileLinter) checkIncludeLine(clean *cleanse.CleansedLines, linenum int, inc *includes.State) {
	line := clean.Line(linenum)

	// "foo/bar.h" rather than "bar.h", unless the name does not follow the
	// usual conventions and is likely a third party header.
	if m := includeNoSubdir.Match(line); m != nil {
		if f.headerExts.Has(m.Group(2)) && !thirdPartyHeader.MatchesStart(m.Group(1)) {
			f.Report(linenum, "build/include_subdir", 4, "Include the directory when naming header files")
		}
	}

	m := includeLine.Search(line)
	if m == nil {
		return
	}
	include := m.Group(2)
	angle := m.Group(1) == "<"

	if dup := inc.FindHeader(include); dup >= 0 {
		f.Report(linenum, "build/include", 4,
			`"`+include+`" already included at `+f.filename+":"+strconv.Itoa(dup))
		return
	}

	for _, ext := range f.nonHeaderExts.Sorted() {
		if strings.HasSuffix(include, "."+ext) && path.Dir(f.fromRepo) != path.Dir(include) {
			f.Report(linenum, "build/include", 4, "Do not include ."+ext+" files from other packages")
			return
		}
	}

	// A third party looking header named after this file is still ours.
	ownHeader := false
	base := strings.TrimSuffix(f.fromRepo, path.Ext(f.fromRepo))
	for _, ext := range f.headerExts.Sorted() {
		name := base + "." + ext
		if strings.Contains(name, include) || strings.Contains(include, name) {
			ownHeader = true
			break
		}
	}
	if !ownHeader && thirdPartyHeader.MatchesStart(include) {
		return
	}

	inc.Add(include, linenum)

	// foo.h, C system, C++ system, other system, then everything else.
	if msg := inc.CheckNextIncludeOrder(f.classifier.Classify(f.fromRepo, include, angle)); msg != "" {
		f.Report(linenum, "build/include_order", 4,
			msg+". Should be: "+f.baseName()+".h, c system, c++ system, other.")
	}
	canonical := includes.CanonicalizeAlphabeticalOrder(include)
	if !inc.IsInAlphabeticalOrder(clean, linenum, canonical) {
		f.Report(linenum, "build/include_alpha", 4, `Include "`+include+`" not in alphabetical order`)
	}
	inc.SetLastHeader(canonical)
}

func (f *fileLinter) checkVlogArguments(elided string, linenum int) {
	if vlogSeverity.Search(elided) != nil {
		f.Report(linenum, "runtime/vlog", 5,
			"VLOG() should be used with numeric verbosity level.  Use LOG() if you want symbolic severity levels.")
	}
}

// checkPosixThreading requires the result of the call to be used in an
// expression, which keeps member functions and variables named rand out.
func (f *fileLinter) checkPosixThreading(elided string, linenum int) {
	if m := unsafeFunction.Search(elided); m != nil {
		name := m.Group(1)
		f.Report(linenum, "runtime/threadsafe_fn", 2,
			"Consider using "+name+"_r(...) instead of "+name+"(...) for improved thread safety.")
	}
}

func (f *fileLinter) checkInvalidIncrement(elided string, linenum int) {
	if invalidIncrement.MatchesStart(elided) {
		f.Report(linenum, "runtime/invalid_increment", 5,
			"Changing pointer instead of value (or unused value of operator*).")
	}
}

func (f *fileLinter) checkMakePairUsesDeduction(elided string, linenum int) {
	if explicitMakePair.Search(elided) != nil {
		f.Report(linenum, "build/explicit_make_pair", 4,
			"For C++11-compatibility, omit template arguments from make_pair OR use pair directly "+
				"OR if appropriate, construct a pair directly")
	}
}

func (f *fileLinter) checkCxxHeaders(elided string, linenum int) {
	m := cxxInclude.Match(elided)
	if m == nil {
		return
	}
	switch header := m.Group(1); header {
	case "cfenv", "fenv.h", "ratio":
		f.Report(linenum, "build/c++11", 5, "<"+header+"> is an unapproved C++11 header.")
	case "filesystem":
		f.Report(linenum, "build/c++17", 5, "<filesystem> is an unapproved C++17 header.")
	}
}
