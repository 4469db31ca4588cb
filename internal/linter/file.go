package linter

import (
	"path/filepath"
	"strings"

	"cpplint/internal/cleanse"
	"cpplint/internal/config"
	"cpplint/internal/diag"
	"cpplint/internal/includes"
	"cpplint/internal/nesting"
	"cpplint/internal/observ"
	"cpplint/internal/source"
	"cpplint/internal/strutil"
	"cpplint/internal/suppress"
)

// fileLinter holds the state of one file. It implements diag.Reporter, so
// the nesting and suppression packages report through the same gate as the
// checks here.
type fileLinter struct {
	l     *Linter
	opts  *config.Options
	sink  Sink
	supp  *suppress.Set
	timer *observ.Timer

	filename string // as given on the command line
	abs      string
	ext      string // without the dot
	fromRepo string // slash separated, relative to the repository root
	cppvar   string // header guard, headers only

	headerExts    strutil.Set
	nonHeaderExts strutil.Set
	classifier    includes.Classifier

	emitted *diag.Bag
}

func newFileLinter(l *Linter, opts *config.Options, filename, abs, ext string, sink Sink) *fileLinter {
	f := &fileLinter{
		l:             l,
		opts:          opts,
		sink:          sink,
		supp:          suppress.New(),
		filename:      filename,
		abs:           abs,
		ext:           ext,
		headerExts:    opts.HeaderExtensions(),
		nonHeaderExts: opts.NonHeaderExtensions(),
		classifier:    opts.Classifier(),
		emitted:       diag.NewBag(0),
	}
	f.fromRepo = f.repositoryName(abs)
	if filename == source.StdinName {
		f.fromRepo = filename
	}
	return f
}

// Report is the error gate: suppressed, filtered and low-confidence
// diagnostics are dropped here.
func (f *fileLinter) Report(line int, category string, confidence int, message string) {
	if f.supp.IsSuppressed(category, line) {
		return
	}
	if !f.opts.ShouldPrintError(category, f.filename, line) {
		return
	}
	if confidence < f.l.cfg.Verbose {
		return
	}
	d := diag.Diagnostic{
		File:       f.filename,
		Line:       line,
		Category:   category,
		Confidence: confidence,
		Message:    message,
	}
	f.emitted.Add(d)
	f.sink.Error(d)
}

var _ diag.Reporter = (*fileLinter)(nil)

func (f *fileLinter) isHeader() bool {
	return f.headerExts.Has(f.ext)
}

// processFileData runs every check over lines, which include the marker
// lines. lines is modified.
func (f *fileLinter) processFileData(lines []string) {
	f.supp.Clear()

	f.checkCopyright(lines)

	phase := begin(f.timer, "cleanse")
	if start := cleanse.RemoveMultiLineComments(lines, f.supp.ProcessGlobal); start >= 0 {
		f.Report(start+1, "readability/multiline_comment", 5, "Could not find end of multi-line comment")
	}
	keepAlt := f.opts.ShouldPrintError("readability/alt_tokens", f.filename, -1)
	clean := cleanse.New(lines, keepAlt)
	end(f.timer, phase, "")

	phase = begin(f.timer, "check")
	defer end(f.timer, phase, "")

	for i, line := range lines {
		if clean.HasComment(i) {
			f.supp.ParseNolint(line, i, f)
			f.supp.ProcessGlobal(line)
		}
	}
	if f.supp.HasOpenBlock() {
		f.Report(f.supp.OpenBlockStart(), "readability/nolint", 5, "NOLINT block never ended")
	}

	header := f.isHeader()
	if header {
		f.cppvar = f.headerGuardVariable()
		f.checkHeaderGuard(clean)
	}

	st := &lineState{
		clean:    clean,
		header:   header,
		nest:     nesting.New(),
		includes: includes.New(),
		fn:       &nesting.FunctionState{},
	}
	for linenum := 0; linenum < clean.NumLines(); linenum++ {
		f.processLine(st, linenum)
	}

	if f.nonHeaderExts.Has(f.ext) {
		f.checkHeaderFileIncluded(st.includes)
	}
	f.checkNewlineAtEOF(lines)
}

// lineState is what processLine threads from one line to the next.
type lineState struct {
	clean    *cleanse.CleansedLines
	header   bool
	nest     *nesting.State
	includes *includes.State
	fn       *nesting.FunctionState
}

func (f *fileLinter) processLine(st *lineState, linenum int) {
	clean := st.clean
	elided := clean.Elided(linenum)

	st.nest.Update(clean, linenum, f)
	f.checkNamespaceIndentation(clean, linenum, st.nest)
	if st.nest.InAsmBlock() {
		return
	}
	f.checkFunctionLength(clean, linenum, st.fn)
	f.checkMultilineCommentsAndStrings(elided, linenum)
	f.checkStyle(clean, linenum, st.header)
	f.checkSpacing(clean, linenum, st.nest)
	if class := st.nest.InnermostClass(); class != nil {
		f.checkSectionSpacing(clean, class, linenum)
	}
	f.checkLanguage(clean, linenum, st.header, st.includes)
	f.checkVlogArguments(elided, linenum)
	f.checkPosixThreading(elided, linenum)
	f.checkInvalidIncrement(elided, linenum)
	f.checkMakePairUsesDeduction(elided, linenum)
	f.checkCxxHeaders(elided, linenum)
}

// reportEncoding reports line-ending and encoding anomalies found while
// the file was decoded.
func (f *fileLinter) reportEncoding(file *source.File) {
	// Uniform CR-LF files are fine; only a mix is reported.
	if file.LFLines > 0 {
		for _, linenum := range file.CRLFLines {
			f.Report(linenum, "whitespace/newline", 1, "Unexpected \\r (^M) found; better to use only \\n")
		}
	}
	for _, linenum := range file.BadRuneLines {
		f.Report(linenum, "readability/utf8", 5, "Line contains invalid UTF-8 (or Unicode replacement character).")
	}
	for _, linenum := range file.NulLines {
		f.Report(linenum, "readability/nul", 5, "Line contains NUL byte.")
	}
}

// baseName returns the file name without directory and extension.
func (f *fileLinter) baseName() string {
	base := filepath.Base(f.filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
