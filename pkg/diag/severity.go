package diag

import "strings"

// Severity indicates how serious a diagnostic is.
type Severity int

// Severity levels, most severe first.
const (
	// SeverityBug indicates an internal error in the tool itself.
	SeverityBug Severity = iota
	// SeverityError indicates input that cannot be processed.
	SeverityError
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityNote indicates informational feedback.
	SeverityNote
	// SeverityHelp indicates a suggestion for fixing another diagnostic.
	SeverityHelp
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityBug:
		return "bug"
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	case SeverityHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityError and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "bug":
		return SeverityBug, true
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "note":
		return SeverityNote, true
	case "help":
		return SeverityHelp, true
	default:
		return SeverityError, false
	}
}
