package token

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/casm/pkg/diag"
	"github.com/leapstack-labs/casm/pkg/source"
)

// Span is a half-open byte range [Start, End) within one source file.
type Span struct {
	Source source.ID
	Start  int // 0-based byte offset
	End    int // 0-based byte offset, exclusive
}

// NullSpan is the "nowhere" sentinel: no source, both offsets at the maximum.
var NullSpan = Span{Source: source.NullID, Start: math.MaxInt, End: math.MaxInt}

// NewSpan creates a span covering [start, end) in src.
func NewSpan(src source.ID, start, end int) Span {
	return Span{Source: src, Start: start, End: end}
}

// IsNull reports whether s is NullSpan.
func (s Span) IsNull() bool {
	return s == NullSpan
}

// WithStart returns s with its start replaced.
func (s Span) WithStart(start int) Span {
	return NewSpan(s.Source, start, s.End)
}

// WithEnd returns s with its end replaced.
func (s Span) WithEnd(end int) Span {
	return NewSpan(s.Source, s.Start, end)
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// SourceMismatchError is the panic value of Join when the spans come from
// different files.
type SourceMismatchError struct {
	Left  Span
	Right Span
}

func (e *SourceMismatchError) Error() string {
	return fmt.Sprintf("cannot join spans from different sources: %s and %s", e.Left, e.Right)
}

// Join merges two spans into the smallest span covering both. Both spans
// must belong to the same source; joining across sources is a programming
// error and panics with *SourceMismatchError.
func (s Span) Join(other Span) Span {
	if s.Source != other.Source {
		panic(&SourceMismatchError{Left: s, Right: other})
	}
	return NewSpan(s.Source, min(s.Start, other.Start), max(s.End, other.End))
}

func (s Span) String() string {
	if s.IsNull() {
		return "<null span>"
	}
	return fmt.Sprintf("%s[%d..%d]", s.Source, s.Start, s.End)
}

// Label converts the span into a diagnostic label of the given style.
func (s Span) Label(style diag.LabelStyle) diag.Label {
	return diag.NewLabel(style, s.Source, s.Start, s.End)
}

// PrimaryLabel marks the span as the point of failure.
func (s Span) PrimaryLabel() diag.Label {
	return s.Label(diag.LabelPrimary)
}

// SecondaryLabel marks the span as related context.
func (s Span) SecondaryLabel() diag.Label {
	return s.Label(diag.LabelSecondary)
}
