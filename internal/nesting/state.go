// Package nesting tracks braces, classes, namespaces and preprocessor
// conditionals while a file is scanned line by line.
//
// Blocks live in a per-file arena; the stack and the preprocessor
// checkpoints hold arena indices, so a snapshot is a copy of an index slice
// and blocks stay shared between the live stack and its snapshots.
package nesting

import (
	"slices"
	"strings"

	"cpplint/internal/diag"
	"cpplint/internal/regex"
	"cpplint/internal/strutil"
)

// None marks an absent block index.
const None = -1

// ppInfo is a checkpoint taken at #if.
type ppInfo struct {
	stackBeforeIf   []int
	stackBeforeElse []int
	seenElse        bool
}

// State is the nesting state of one file.
type State struct {
	blocks      []Block
	stack       []int
	previousTop int
	pp          []ppInfo
}

var (
	ifDirective    = regex.MustCompile(`^\s*#\s*(if|ifdef|ifndef)\b`)
	elseDirective  = regex.MustCompile(`^\s*#\s*(else|elif)\b`)
	endifDirective = regex.MustCompile(`^\s*#\s*endif\b`)

	asmStart = regex.MustCompile(`^\s*(?:asm|_asm|__asm|__asm__)(?:\s+(volatile|__volatile__))?\s*[{(]`)

	// "\b\s*" also catches "namespace{" so the spacing check can flag it
	namespaceStart = regex.MustCompile(`^\s*namespace\b\s*([:\w]+)?(.*)$`)
	classDecl      = regex.MustCompile(`^(\s*(?:template\s*<[\w\s<>,:=]*>\s*)?(class|struct)\s+(?:[a-zA-Z0-9_]+\s+)*(\w+(?:::\w+)*))(.*)$`)
	classAccess    = regex.MustCompile(`^(.*)\b(public|private|protected|signals)(\s+(?:slots\s*)?)?:(?:[^:]|$)`)
	nextToken      = regex.MustCompile(`^[^{;)}]*([{;)}])(.*)$`)
	externCOpen    = regex.MustCompile(`^extern\s*"[^"]*"\s*\{`)
)

// New returns an empty state.
func New() *State {
	return &State{previousTop: None}
}

func (s *State) push(b Block) int {
	s.blocks = append(s.blocks, b)
	idx := len(s.blocks) - 1
	s.stack = append(s.stack, idx)
	return idx
}

func (s *State) pop() {
	s.stack = s.stack[:len(s.stack)-1]
}

// Top returns the innermost block, or nil. The pointer stays valid until the
// next Update.
func (s *State) Top() *Block {
	if len(s.stack) == 0 {
		return nil
	}
	return &s.blocks[s.stack[len(s.stack)-1]]
}

// StackSize returns the depth of the stack.
func (s *State) StackSize() int {
	return len(s.stack)
}

// StackAt returns the i-th block from the bottom of the stack.
func (s *State) StackAt(i int) *Block {
	return &s.blocks[s.stack[i]]
}

// PreviousStackTop returns the innermost block as it was before the last
// Update, or nil.
func (s *State) PreviousStackTop() *Block {
	if s.previousTop == None {
		return nil
	}
	return &s.blocks[s.previousTop]
}

// SeenOpenBrace reports whether the innermost block has its opening brace.
// An empty stack counts as seen.
func (s *State) SeenOpenBrace() bool {
	top := s.Top()
	return top == nil || top.SeenOpenBrace
}

// InNamespaceBody reports whether we are one level inside a namespace.
func (s *State) InNamespaceBody() bool {
	top := s.Top()
	return top != nil && top.Kind == KindNamespace
}

// InExternC reports whether we are one level inside an extern "C" block.
func (s *State) InExternC() bool {
	top := s.Top()
	return top != nil && top.Kind == KindExternC
}

// InClassDeclaration reports whether we are one level inside a class or struct.
func (s *State) InClassDeclaration() bool {
	top := s.Top()
	return top != nil && top.Kind == KindClass
}

// InAsmBlock reports whether we are one level inside inline assembly.
func (s *State) InAsmBlock() bool {
	top := s.Top()
	return top != nil && top.Asm != NoAsm
}

// InnermostClass returns the nearest enclosing class, or nil.
func (s *State) InnermostClass() *Block {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if b := &s.blocks[s.stack[i]]; b.Kind == KindClass {
			return b
		}
	}
	return nil
}

// IsNamespaceIndentInfo reports whether the current or the previous top is a
// namespace.
func (s *State) IsNamespaceIndentInfo() bool {
	if len(s.stack) == 0 {
		return false
	}
	if s.Top().Kind == KindNamespace {
		return true
	}
	prev := s.PreviousStackTop()
	return prev != nil && prev.Kind == KindNamespace
}

// IsBlockInNamespace reports whether a new block starts directly inside a
// namespace. Forward declarations never push a block, so only the current
// top matters for them.
func (s *State) IsBlockInNamespace(forward bool) bool {
	if len(s.stack) == 0 {
		return false
	}
	if s.Top().Kind == KindNamespace {
		return true
	}
	if forward {
		return false
	}
	prev := s.PreviousStackTop()
	return len(s.stack) > 1 && prev != nil && prev.Kind == KindNamespace &&
		s.blocks[s.stack[len(s.stack)-2]].Kind == KindNamespace
}

// UpdatePreprocessor maintains the #if checkpoints.
//
// The condition is assumed true from #if up to the first #else/#elif/#endif,
// and false from #else/#elif up to #endif. Lines in the false part are still
// checked but their braces are undone at the next #else/#elif, and at #endif
// the stack recorded at the first #else wins.
func (s *State) UpdatePreprocessor(line string) {
	if strutil.FirstNonSpace(line) != '#' {
		return
	}

	switch {
	case ifDirective.MatchesStart(line):
		s.pp = append(s.pp, ppInfo{stackBeforeIf: slices.Clone(s.stack)})

	case elseDirective.MatchesStart(line):
		if len(s.pp) == 0 {
			// #else без #if: игнорируем
			return
		}
		pp := &s.pp[len(s.pp)-1]
		if !pp.seenElse {
			pp.seenElse = true
			pp.stackBeforeElse = slices.Clone(s.stack)
		}
		s.stack = slices.Clone(pp.stackBeforeIf)

	case endifDirective.MatchesStart(line):
		if len(s.pp) == 0 {
			return
		}
		pp := s.pp[len(s.pp)-1]
		if pp.seenElse {
			s.stack = pp.stackBeforeElse
		}
		s.pp = s.pp[:len(s.pp)-1]
	}
}

// PreprocessorDepth returns the number of open #if checkpoints.
func (s *State) PreprocessorDepth() int {
	return len(s.pp)
}

// Update advances the state over one line. Class and namespace checks fire
// through r as blocks open and close.
func (s *State) Update(lines Lines, linenum int, r diag.Reporter) {
	line := lines.Elided(linenum)

	// Blocks are never modified after a pop, so remembering the index is
	// enough to answer questions about the previous scope.
	s.previousTop = None
	if len(s.stack) > 0 {
		s.previousTop = s.stack[len(s.stack)-1]
	}

	s.UpdatePreprocessor(line)

	// Parentheses keep struct arguments off the stack.
	if top := s.Top(); top != nil {
		depthChange := strutil.CountByte(line, '(') - strutil.CountByte(line, ')')
		top.OpenParens += depthChange

		switch top.Asm {
		case NoAsm, EndAsm:
			if depthChange != 0 && top.OpenParens == 1 && asmStart.MatchesStart(line) {
				top.Asm = InsideAsm
			} else {
				top.Asm = NoAsm
			}
		case InsideAsm:
			if top.OpenParens == 0 {
				top.Asm = EndAsm
			}
		}
	}

	// namespace a { namespace b { class C; } }
	for {
		m := namespaceStart.Match(line)
		if m == nil {
			break
		}
		idx := s.push(newNamespace(m.Group(1), linenum))
		line = m.Group(2)
		if i := strings.IndexByte(line, '{'); i >= 0 {
			s.blocks[idx].SeenOpenBrace = true
			line = line[i+1:]
		}
	}

	// Decorated heads such as "class LOCKABLE API Object {" count too.
	if m := classDecl.Match(line); m != nil && (len(s.stack) == 0 || s.Top().OpenParens == 0) {
		// template <class T, template <class> class U> is not a class
		if !InTemplateArgumentList(lines, linenum, m.End(1)) {
			s.push(newClass(m.Group(3), m.Group(2), lines, linenum))
			line = m.Group(4)
		}
	}

	if !s.SeenOpenBrace() {
		s.Top().checkBegin(lines, linenum)
	}

	if top := s.Top(); top != nil && top.Kind == KindClass {
		if m := classAccess.Match(line); m != nil {
			top.Access = m.Group(2)

			indent := m.Group(1)
			if len(indent) != top.ClassIndent+1 && strutil.IsBlank(indent) {
				r.Report(linenum, "whitespace/indent", 3,
					m.Group(2)+m.Group(3)+": should be indented +1 space inside "+top.describe())
			}
		}
	}

	// Consume braces, semicolons and closing parens from what is left.
	for pos := 0; pos < len(line); {
		m := nextToken.MatchAt(line, pos)
		if m == nil {
			break
		}
		switch line[m.Start(1)] {
		case '{':
			switch {
			case !s.SeenOpenBrace():
				s.Top().SeenOpenBrace = true
			case externCOpen.MatchesStart(line[pos:]):
				s.push(Block{Kind: KindExternC, StartLine: linenum, SeenOpenBrace: true})
			default:
				idx := s.push(Block{Kind: KindGeneric, StartLine: linenum, SeenOpenBrace: true})
				if asmStart.MatchesStart(line[pos:]) {
					s.blocks[idx].Asm = BlockAsm
				}
			}
		case ';', ')':
			// Forward declaration, or "struct" inside an argument list.
			if !s.SeenOpenBrace() {
				s.pop()
			}
		default:
			if top := s.Top(); top != nil {
				top.checkEnd(lines, linenum, r)
				s.pop()
			}
		}
		pos = m.Start(2)
	}
}
