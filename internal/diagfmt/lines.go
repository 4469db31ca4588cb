package diagfmt

import (
	"fmt"

	"cpplint/internal/diag"
)

// sedFixups map messages to the sed expression that fixes them.
var sedFixups = map[string]string{
	"Remove spaces around =":                                          `s/ = /=/`,
	"Remove spaces around !=":                                         `s/ != /!=/`,
	"Remove space before ( in if (":                                   `s/if (/if(/`,
	"Remove space before ( in for (":                                  `s/for (/for(/`,
	"Remove space before ( in while (":                                `s/while (/while(/`,
	"Remove space before ( in switch (":                               `s/switch (/switch(/`,
	"Should have a space between // and comment":                      `s/\/\//\/\/ /`,
	"Missing space before {":                                          `s/\([^ ]\){/\1 {/`,
	"Tab found, replace by spaces":                                    `s/\t/  /g`,
	"Line ends in whitespace.  Consider deleting these extra spaces.": `s/\s*$//`,
	"You don't need a ; after a }":                                    `s/};/}/`,
	"Missing space after ,":                                           `s/,\([^ ]\)/, \1/g`,
}

// SedFixup returns the sed expression for message, if one is known.
func SedFixup(message string) (string, bool) {
	s, ok := sedFixups[message]
	return s, ok
}

// FormatLine renders one diagnostic for the line-oriented formats and says
// which stream it belongs to. Collected formats return Discard.
func FormatLine(f Format, d diag.Diagnostic) (string, Stream) {
	switch f {
	case VS7:
		return fmt.Sprintf("%s(%d): error cpplint: [%s] %s [%d]\n",
			d.File, d.Line, d.Category, d.Message, d.Confidence), Stderr
	case Eclipse:
		return fmt.Sprintf("%s:%d: warning: %s  [%s] [%d]\n",
			d.File, d.Line, d.Message, d.Category, d.Confidence), Stderr
	case Sed, GSed:
		// Known fixes become commands on stdout, everything else a comment.
		if fix, ok := SedFixup(d.Message); ok {
			return fmt.Sprintf("%s -i '%d%s' %s # %s  [%s] [%d]\n",
				f, d.Line, fix, d.File, d.Message, d.Category, d.Confidence), Stdout
		}
		return fmt.Sprintf("# %s:%d:  \"%s\"  [%s] [%d]\n",
			d.File, d.Line, d.Message, d.Category, d.Confidence), Stderr
	case JUnit, JSONFormat, SARIF:
		return "", Discard
	}
	return fmt.Sprintf("%s:%d:  %s  [%s] [%d]\n",
		d.File, d.Line, d.Message, d.Category, d.Confidence), Stderr
}
