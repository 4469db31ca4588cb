package diagfmt

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"cpplint/internal/diag"
)

const xmlDecl = `<?xml version="1.0" encoding="UTF-8" ?>` + "\n"

type junitSuite struct {
	XMLName  xml.Name    `xml:"testsuite"`
	Errors   int         `xml:"errors,attr"`
	Failures int         `xml:"failures,attr"`
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Cases    []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name    string     `xml:"name,attr"`
	Error   *junitText `xml:"error,omitempty"`
	Failure *junitText `xml:"failure,omitempty"`
}

type junitText struct {
	Text string `xml:",chardata"`
}

// WriteJUnit writes a single test suite: one "errors" case holding the run
// problems (unreadable files and the like) and one failing case per file,
// in the order files first reported.
func WriteJUnit(w io.Writer, diags []diag.Diagnostic, errs []string) error {
	suite := junitSuite{
		Errors:   len(errs),
		Failures: len(diags),
		Name:     "cpplint",
	}

	if len(errs) == 0 && len(diags) == 0 {
		suite.Tests = 1
		suite.Cases = []junitCase{{Name: "passed"}}
	} else {
		suite.Tests = len(errs) + len(diags)
		if len(errs) > 0 {
			suite.Cases = append(suite.Cases, junitCase{
				Name:  "errors",
				Error: &junitText{Text: strings.Join(errs, "\n")},
			})
		}

		var order []string
		byFile := make(map[string][]string)
		for _, d := range diags {
			if _, ok := byFile[d.File]; !ok {
				order = append(order, d.File)
			}
			byFile[d.File] = append(byFile[d.File],
				fmt.Sprintf("%d: %s [%s] [%d]", d.Line, d.Message, d.Category, d.Confidence))
		}
		for _, file := range order {
			suite.Cases = append(suite.Cases, junitCase{
				Name:    file,
				Failure: &junitText{Text: strings.Join(byFile[file], "\n")},
			})
		}
	}

	out, err := xml.Marshal(suite)
	if err != nil {
		return fmt.Errorf("failed to encode junit report: %w", err)
	}
	if _, err := io.WriteString(w, xmlDecl); err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
