// Package diag describes diagnostics anchored to source spans.
//
// A Diagnostic is a message plus labels pointing into registered source
// files. Lexical errors and token-consumption errors both end up here, so a
// single Renderer can print either without special-casing.
package diag

import (
	"fmt"

	"github.com/leapstack-labs/casm/pkg/source"
)

// LabelStyle distinguishes the point of failure from related context.
type LabelStyle int

// Label styles.
const (
	LabelPrimary   LabelStyle = iota // where the problem is
	LabelSecondary                   // context that explains it
)

func (s LabelStyle) String() string {
	if s == LabelPrimary {
		return "primary"
	}
	return "secondary"
}

// Label marks a byte range [Start, End) in one source file.
type Label struct {
	Style   LabelStyle
	Source  source.ID
	Start   int
	End     int
	Message string
}

// NewLabel creates a label without a message.
func NewLabel(style LabelStyle, src source.ID, start, end int) Label {
	return Label{Style: style, Source: src, Start: start, End: end}
}

// WithMessage returns a copy of the label carrying msg.
func (l Label) WithMessage(msg string) Label {
	l.Message = msg
	return l
}

// Diagnostic is a renderable error description.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Labels   []Label
	Notes    []string
}

// New creates an empty diagnostic with the given severity.
func New(severity Severity) *Diagnostic {
	return &Diagnostic{Severity: severity}
}

// Error creates an error diagnostic.
func Error() *Diagnostic { return New(SeverityError) }

// Warning creates a warning diagnostic.
func Warning() *Diagnostic { return New(SeverityWarning) }

// Note creates a note diagnostic.
func Note() *Diagnostic { return New(SeverityNote) }

// Help creates a help diagnostic.
func Help() *Diagnostic { return New(SeverityHelp) }

// Errorf creates an error diagnostic with a formatted message.
func Errorf(format string, args ...any) *Diagnostic {
	return Error().WithMessage(fmt.Sprintf(format, args...))
}

// WithMessage sets the headline message.
func (d *Diagnostic) WithMessage(msg string) *Diagnostic {
	d.Message = msg
	return d
}

// WithCode sets an optional identifying code such as "E0001".
func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

// WithLabels appends labels.
func (d *Diagnostic) WithLabels(labels ...Label) *Diagnostic {
	d.Labels = append(d.Labels, labels...)
	return d
}

// WithNotes appends free-form notes printed after the source snippet.
func (d *Diagnostic) WithNotes(notes ...string) *Diagnostic {
	d.Notes = append(d.Notes, notes...)
	return d
}

// Primary returns the first primary label, if any.
func (d *Diagnostic) Primary() (Label, bool) {
	for _, l := range d.Labels {
		if l.Style == LabelPrimary {
			return l, true
		}
	}
	return Label{}, false
}

// Error lets a Diagnostic travel as a Go error.
func (d *Diagnostic) Error() string {
	if d.Code != "" {
		return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}
