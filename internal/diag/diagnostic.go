package diag

import "fmt"

// Diagnostic is one finding: a category and a confidence attached to a line.
type Diagnostic struct {
	File       string
	Line       int
	Category   string
	Confidence int
	Message    string
}

// Severity derives the coarse level used by structured formats.
func (d Diagnostic) Severity() Severity {
	return SeverityOf(d.Confidence)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s [%s] [%d]", d.File, d.Line, d.Message, d.Category, d.Confidence)
}
