// Package diag defines the diagnostic model shared by the checks and the
// output layer.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - File and Line (1-based, marker lines excluded) locate the finding.
//   - Category is a "group/name" string from Categories, e.g.
//     "whitespace/indent". Filters and NOLINT comments operate on it.
//   - Confidence runs from 0 (probably wrong) to 5 (certain). The
//     --verbose level hides findings below it.
//   - Message is human oriented text; keep it short and actionable.
//
// Severity is derived from confidence for formats that need a level
// (json, sarif). It is not stored.
//
// # Emitting diagnostics
//
// Checks receive a diag.Reporter and call Report(line, category,
// confidence, message). They never filter: suppression, category filters
// and the verbosity gate are applied by internal/linter before anything
// reaches a Bag or an output format.
//
// # Consumers
//
//   - internal/linter: gates reports and collects them per file.
//   - internal/diagfmt: renders Diagnostics into emacs/vs7/eclipse/junit/
//     json/sarif output.
//   - internal/driver: caches per-file bags between runs.
package diag
