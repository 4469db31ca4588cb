package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"cpplint/internal/diag"
	"cpplint/internal/testkit"
)

var sample = []diag.Diagnostic{
	{File: "src/a.cc", Line: 3, Category: "whitespace/tab", Confidence: 1, Message: "Tab found, replace by spaces"},
	{File: "src/a.cc", Line: 7, Category: "build/include_order", Confidence: 4, Message: "Found C system header after other header"},
	{File: "src/b.h", Line: 0, Category: "legal/copyright", Confidence: 5, Message: "No copyright message found."},
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"emacs", "vs7", "eclipse", "junit", "sed", "gsed", "json", "sarif"} {
		f, ok := ParseFormat(name)
		if !ok || f.String() != name {
			t.Errorf("%s: Expected round trip, got %v/%v", name, f, ok)
		}
	}
	if _, ok := ParseFormat("xml"); ok {
		t.Errorf("xml should not parse")
	}
}

func TestFormatLine(t *testing.T) {
	tab, order := sample[0], sample[1]
	tests := []struct {
		name   string
		format Format
		d      diag.Diagnostic
		want   string
		stream Stream
	}{
		{"emacs", Emacs, order, "src/a.cc:7:  Found C system header after other header  [build/include_order] [4]\n", Stderr},
		{"vs7", VS7, order, "src/a.cc(7): error cpplint: [build/include_order] Found C system header after other header [4]\n", Stderr},
		{"eclipse", Eclipse, order, "src/a.cc:7: warning: Found C system header after other header  [build/include_order] [4]\n", Stderr},
		{"sed with fix", Sed, tab, "sed -i '3s/\\t/  /g' src/a.cc # Tab found, replace by spaces  [whitespace/tab] [1]\n", Stdout},
		{"gsed with fix", GSed, tab, "gsed -i '3s/\\t/  /g' src/a.cc # Tab found, replace by spaces  [whitespace/tab] [1]\n", Stdout},
		{"sed without fix", Sed, order, "# src/a.cc:7:  \"Found C system header after other header\"  [build/include_order] [4]\n", Stderr},
		{"junit", JUnit, order, "", Discard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, stream := FormatLine(tt.format, tt.d)
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
			if stream != tt.stream {
				t.Errorf("Expected stream %d, got %d", tt.stream, stream)
			}
		})
	}
}

func TestSedFixup(t *testing.T) {
	if fix, ok := SedFixup("You don't need a ; after a }"); !ok || fix != `s/};/}/` {
		t.Errorf("Expected s/};/}/, got %q (%v)", fix, ok)
	}
	if _, ok := SedFixup("Found C system header after other header"); ok {
		t.Errorf("Expected no fix for include order")
	}
}

func TestStreams(t *testing.T) {
	if Emacs.InfoStream() != Stdout || Sed.InfoStream() != Discard || JSONFormat.InfoStream() != Stderr {
		t.Errorf("unexpected info streams")
	}
	if !SARIF.Collected() || Emacs.Collected() {
		t.Errorf("unexpected Collected")
	}
	if JUnit.DocumentStream() != Stderr || JSONFormat.DocumentStream() != Stdout {
		t.Errorf("unexpected document streams")
	}
}

func TestJUnit(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJUnit(&buf, sample, []string{"Skipping input 'x.cc': Can't open for reading"}); err != nil {
		t.Fatalf("WriteJUnit() error: %v", err)
	}
	want := `<?xml version="1.0" encoding="UTF-8" ?>` + "\n" +
		`<testsuite errors="1" failures="3" name="cpplint" tests="4">` +
		`<testcase name="errors"><error>Skipping input &#39;x.cc&#39;: Can&#39;t open for reading</error></testcase>` +
		`<testcase name="src/a.cc"><failure>3: Tab found, replace by spaces [whitespace/tab] [1]&#xA;` +
		`7: Found C system header after other header [build/include_order] [4]</failure></testcase>` +
		`<testcase name="src/b.h"><failure>0: No copyright message found. [legal/copyright] [5]</failure></testcase>` +
		`</testsuite>`
	testkit.AssertText(t, want, buf.String())
}

func TestJUnitPassed(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJUnit(&buf, nil, nil); err != nil {
		t.Fatalf("WriteJUnit() error: %v", err)
	}
	if !strings.HasSuffix(buf.String(), `<testsuite errors="0" failures="0" name="cpplint" tests="1"><testcase name="passed"></testcase></testsuite>`) {
		t.Errorf("unexpected output %s", buf.String())
	}
}

// TestJSON проверяет базовое JSON форматирование
func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sample, nil, JSONOpts{PathMode: PathModeBasename, Max: 2}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	// Парсим JSON чтобы убедиться что он валидный
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 2 || len(output.Diagnostics) != 2 {
		t.Fatalf("Expected 2 diagnostics, got %d", output.Count)
	}
	d := output.Diagnostics[1]
	if d.Severity != "ERROR" || d.Category != "build/include_order" || d.Location.File != "a.cc" || d.Location.Line != 7 {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if output.Diagnostics[0].Severity != "INFO" {
		t.Errorf("Expected INFO for confidence 1, got %s", output.Diagnostics[0].Severity)
	}
}

func TestSarif(t *testing.T) {
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "cpplint", ToolVersion: "1.0.0", InvocationArgs: []string{"cpplint", "src"}}
	if err := Sarif(&buf, sample, meta); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("Invalid SARIF output: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log %+v", log)
	}
	run := log.Runs[0]
	rules := run.Tool.Driver.Rules
	if len(rules) != 3 || rules[0].ID != "build/include_order" || rules[2].ID != "whitespace/tab" {
		t.Errorf("unexpected rules %+v", rules)
	}
	if len(run.Results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(run.Results))
	}
	tab := run.Results[0]
	if tab.RuleIndex != 2 || tab.Level != "note" || tab.Locations[0].PhysicalLocation.Region.StartLine != 3 {
		t.Errorf("unexpected result %+v", tab)
	}
	if run.Results[2].Locations[0].PhysicalLocation.Region != nil {
		t.Errorf("line 0 should have no region")
	}
	if run.Results[1].Level != "error" {
		t.Errorf("Expected error level, got %s", run.Results[1].Level)
	}
}

func TestFormatPath(t *testing.T) {
	if got := formatPath("/home/u/p/src/a.cc", PathModeRelative, "/home/u/p"); got != "src/a.cc" {
		t.Errorf("Expected src/a.cc, got %s", got)
	}
	if got := formatPath("src/a.cc", PathModeAsIs, ""); got != "src/a.cc" {
		t.Errorf("Expected path as is, got %s", got)
	}
	if got := formatPath("src/a.cc", PathModeBasename, ""); got != "a.cc" {
		t.Errorf("Expected a.cc, got %s", got)
	}
}
