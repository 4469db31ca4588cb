package nesting

import (
	"strings"

	"cpplint/internal/diag"
	"cpplint/internal/regex"
	"cpplint/internal/strutil"
)

// Kind tags the variant stored in a Block.
type Kind uint8

const (
	KindGeneric Kind = iota
	KindExternC
	KindClass
	KindNamespace
)

func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "block"
	case KindExternC:
		return "extern \"C\""
	case KindClass:
		return "class"
	case KindNamespace:
		return "namespace"
	}
	return "unknown"
}

// AsmState tracks inline assembly inside a block.
type AsmState uint8

const (
	NoAsm     AsmState = iota // outside inline assembly
	InsideAsm                 // inside an asm(...) statement
	EndAsm                    // last line of the asm statement
	BlockAsm                  // the whole block is assembly
)

// Block is one entry of the nesting stack. Class and namespace fields are
// only meaningful for the matching Kind.
type Block struct {
	Kind          Kind
	StartLine     int
	SeenOpenBrace bool
	OpenParens    int
	Asm           AsmState

	// CheckNamespaceIndentation is set for classes and namespaces.
	CheckNamespaceIndentation bool

	// Name is the class name, or the namespace name ("" when anonymous).
	Name string

	// class only
	Basename    string
	Access      string
	IsStruct    bool
	IsDerived   bool
	ClassIndent int
	// LastLine is the line where braces balance out after the class head,
	// 0 when never found.
	LastLine int
}

// Lines is the subset of CleansedLines the state machine reads.
type Lines interface {
	NumLines() int
	Elided(i int) string
	Raw(i int) string
}

var (
	bareColon          = regex.MustCompile(`(^|[^:]):($|[^:])`)
	closingBraceIndent = regex.MustCompile(`^( *)\}`)
	namespaceEndMarker = regex.MustCompile(`^\s*};*\s*(//|/\*).*\bnamespace\b`)
	anonNamespaceEnd   = regex.MustCompile(`^\s*};*\s*(//|/\*).*\bnamespace[\*/\.\\\s]*$`)
	anonNamespaceWords = regex.MustCompile(`^\s*}.*\b(namespace anonymous|anonymous namespace)\b`)
	namedNamespaceEnd  = regex.MustCompile(`^\s*};*\s*(//|/\*).*\bnamespace\s+(\S+?)[\*/\.\\\s]*$`)
	disallowMacro      = regex.MustCompile(`\b(DISALLOW_COPY_AND_ASSIGN|DISALLOW_IMPLICIT_CONSTRUCTORS)\(([^)]*)\)`)
)

func newClass(name, keyword string, lines Lines, linenum int) Block {
	b := Block{
		Kind:                      KindClass,
		StartLine:                 linenum,
		CheckNamespaceIndentation: true,
		Name:                      name,
		Access:                    "private",
	}
	if keyword == "struct" {
		b.Access = "public"
		b.IsStruct = true
	}
	parts := strings.Split(name, "::")
	b.Basename = parts[len(parts)-1]

	// raw, so that a leading comment still counts
	b.ClassIndent = strutil.IndentLevel(lines.Raw(linenum))

	// Confused by "class A {} *x = {...", good enough for section spacing.
	depth := 0
	for i := linenum; i < lines.NumLines(); i++ {
		l := lines.Elided(i)
		depth += strutil.CountByte(l, '{') - strutil.CountByte(l, '}')
		if depth == 0 {
			b.LastLine = i
			break
		}
	}
	return b
}

func newNamespace(name string, linenum int) Block {
	return Block{
		Kind:                      KindNamespace,
		StartLine:                 linenum,
		CheckNamespaceIndentation: true,
		Name:                      name,
	}
}

// describe names a class the way indentation messages do.
func (b *Block) describe() string {
	if b.IsStruct {
		return "struct " + b.Name
	}
	return "class " + b.Name
}

// checkBegin runs on lines between a class head and its opening brace.
func (b *Block) checkBegin(lines Lines, linenum int) {
	if b.Kind != KindClass {
		return
	}
	if bareColon.MatchString(lines.Elided(linenum)) {
		b.IsDerived = true
	}
}

// checkEnd runs on the line holding the closing brace.
func (b *Block) checkEnd(lines Lines, linenum int, r diag.Reporter) {
	switch b.Kind {
	case KindClass:
		b.checkClassEnd(lines, linenum, r)
	case KindNamespace:
		b.checkNamespaceEnd(lines, linenum, r)
	}
}

func (b *Block) checkClassEnd(lines Lines, linenum int, r diag.Reporter) {
	// DISALLOW_* macros belong at the very end of the class.
	seenLastThing := false
	for i := linenum - 1; i > b.StartLine; i-- {
		elided := lines.Elided(i)
		if strings.Contains(elided, "DISALLOW_") {
			if macro := b.disallowFor(elided); macro != "" {
				if seenLastThing {
					r.Report(i, "readability/constructors", 3, macro+" should be the last thing in the class")
				}
				break
			}
		}
		if !strutil.IsBlank(elided) {
			seenLastThing = true
		}
	}

	// Single-line class definitions are not checked.
	if m := closingBraceIndent.Match(lines.Elided(linenum)); m != nil && m.Len(1) != b.ClassIndent {
		r.Report(linenum, "whitespace/indent", 3, "Closing brace should be aligned with beginning of "+b.describe())
	}
}

func (b *Block) checkNamespaceEnd(lines Lines, linenum int, r diag.Reporter) {
	line := lines.Raw(linenum)

	// Short namespaces only get checked when they already carry a comment.
	if linenum-b.StartLine < 10 && !namespaceEndMarker.MatchesStart(line) {
		return
	}

	if b.Name != "" {
		if m := namedNamespaceEnd.Match(line); m == nil || m.Group(2) != b.Name {
			r.Report(linenum, "readability/namespace", 5,
				`Namespace should be terminated with "// namespace `+b.Name+`"`)
		}
		return
	}

	if anonNamespaceEnd.MatchesStart(line) {
		return
	}
	if anonNamespaceWords.MatchesStart(line) {
		r.Report(linenum, "readability/namespace", 5,
			`Anonymous namespace should be terminated with "// namespace" or "// anonymous namespace"`)
		return
	}
	r.Report(linenum, "readability/namespace", 5, `Anonymous namespace should be terminated with "// namespace"`)
}

// disallowFor returns the DISALLOW_* macro on line that names this class.
func (b *Block) disallowFor(line string) string {
	for _, m := range disallowMacro.FindAll(line) {
		if m.Group(2) == b.Name {
			return m.Group(1)
		}
	}
	return ""
}
