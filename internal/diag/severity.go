package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

// SeverityOf maps a 0..5 confidence onto a severity.
func SeverityOf(confidence int) Severity {
	switch {
	case confidence >= 4:
		return SevError
	case confidence >= 2:
		return SevWarning
	}
	return SevInfo
}

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
