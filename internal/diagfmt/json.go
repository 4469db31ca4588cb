package diagfmt

import (
	"encoding/json"
	"io"

	"cpplint/internal/diag"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity   string       `json:"severity"`
	Category   string       `json:"category"`
	Confidence int          `json:"confidence"`
	Message    string       `json:"message"`
	Location   LocationJSON `json:"location"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      []string         `json:"errors,omitempty"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
// errs are the non-diagnostic problems of the run (unreadable files and the
// like).
func BuildDiagnosticsOutput(diags []diag.Diagnostic, errs []string, opts JSONOpts) DiagnosticsOutput {
	kept := diag.NewBag(opts.Max)
	for _, d := range diags {
		if !kept.Add(d) {
			break
		}
	}
	out := make([]DiagnosticJSON, 0, kept.Len())
	for _, d := range kept.Items() {
		out = append(out, DiagnosticJSON{
			Severity:   d.Severity().String(),
			Category:   d.Category,
			Confidence: d.Confidence,
			Message:    d.Message,
			Location: LocationJSON{
				File: formatPath(d.File, opts.PathMode, opts.BaseDir),
				Line: d.Line,
			},
		})
	}
	return DiagnosticsOutput{Diagnostics: out, Count: len(out), Errors: errs}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, diags []diag.Diagnostic, errs []string, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(diags, errs, opts))
}
