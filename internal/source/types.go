package source

type (
	// FileID uniquely identifies a loaded file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file did not come from disk (stdin, tests).
	FileVirtual FileFlags = 1 << iota
	// FileMixedEOL is set when both LF and CR-LF line endings occur.
	FileMixedEOL
)

// Marker lines bracket the real content so that index i is line i.
const (
	HeadMarker = "// marker so line numbers and indices both start at 1"
	TailMarker = "// marker so line numbers end in a known way"
)

// File is a decoded source file ready for linting.
type File struct {
	ID   FileID
	Path string
	// Lines holds the marker lines plus the decoded content; Lines[n] is
	// line n of the file.
	Lines []string
	Hash  [32]byte
	Flags FileFlags

	// LFLines counts lines that ended without a carriage return.
	LFLines int
	// CRLFLines lists line numbers that ended in "\r\n".
	CRLFLines []int
	// BadRuneLines lists lines holding invalid UTF-8 or U+FFFD.
	BadRuneLines []int
	// NulLines lists lines holding NUL bytes.
	NulLines []int
}

// NumLines returns the number of content lines, markers excluded.
func (f *File) NumLines() int {
	return len(f.Lines) - 2
}
