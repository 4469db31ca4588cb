package testkit

import (
	"fmt"

	"cpplint/internal/cleanse"
	"cpplint/internal/source"
)

// CheckLineInvariants runs a minimal set of invariants on cleansed lines:
// 1) all four views have the same length, equal to the raw line count
// 2) the first and last lines are the marker lines
// 3) elided lines never contain a comment opener that survived cleansing
//    outside of an #include line
func CheckLineInvariants(c *cleanse.CleansedLines, raw []string) error {
	if c == nil {
		return fmt.Errorf("nil cleansed lines")
	}
	n := c.NumLines()
	if n != len(raw) {
		return fmt.Errorf("line count changed: %d -> %d", len(raw), n)
	}
	if len(c.ElidedLines()) != n || len(c.RawLines()) != n || len(c.LinesWithoutRawStrings()) != n {
		return fmt.Errorf("views are not aligned: elided=%d raw=%d norawstr=%d lines=%d",
			len(c.ElidedLines()), len(c.RawLines()), len(c.LinesWithoutRawStrings()), n)
	}
	if n < 2 {
		return fmt.Errorf("missing marker lines")
	}
	if c.Raw(0) != source.HeadMarker || c.Raw(n-1) != source.TailMarker {
		return fmt.Errorf("marker lines are missing: %q ... %q", c.Raw(0), c.Raw(n-1))
	}
	for i := 1; i < n-1; i++ {
		if c.HasComment(i) && c.Line(i) == c.LineWithoutRawStrings(i) {
			return fmt.Errorf("line %d: comment flag set but nothing was removed", i)
		}
	}
	return nil
}
