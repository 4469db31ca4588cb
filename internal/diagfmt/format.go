// Package diagfmt renders diagnostics in the output formats understood by
// editors and CI systems.
package diagfmt

// Format is an --output value.
type Format uint8

const (
	Emacs Format = iota
	VS7
	Eclipse
	JUnit
	Sed
	GSed
	JSONFormat
	SARIF
)

var formatNames = [...]string{
	Emacs:      "emacs",
	VS7:        "vs7",
	Eclipse:    "eclipse",
	JUnit:      "junit",
	Sed:        "sed",
	GSed:       "gsed",
	JSONFormat: "json",
	SARIF:      "sarif",
}

// ParseFormat parses an --output value.
func ParseFormat(s string) (Format, bool) {
	for f, name := range formatNames {
		if name == s {
			return Format(f), true
		}
	}
	return Emacs, false
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "unknown"
}

// Stream selects where a piece of output goes.
type Stream uint8

const (
	Discard Stream = iota
	Stdout
	Stderr
)

// Collected reports whether diagnostics are gathered and rendered as one
// document after the run instead of line by line.
func (f Format) Collected() bool {
	return f == JUnit || f == JSONFormat || f == SARIF
}

// InfoStream tells where informational messages ("Done processing ...")
// go. sed output must stay a runnable script and the collected documents
// own stdout.
func (f Format) InfoStream() Stream {
	switch f {
	case JUnit, Sed, GSed:
		return Discard
	case JSONFormat, SARIF:
		return Stderr
	}
	return Stdout
}

// DocumentStream tells where the collected document is written.
func (f Format) DocumentStream() Stream {
	switch f {
	case JUnit:
		return Stderr
	case JSONFormat, SARIF:
		return Stdout
	}
	return Discard
}
