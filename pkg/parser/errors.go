package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/casm/pkg/diag"
	"github.com/leapstack-labs/casm/pkg/token"
)

// Diagnostic messages.
const (
	MsgUnexpectedEOF    = "Unexpected end of file"
	MsgUnexpectedChar   = "Unexpected character: '%c'"
	MsgExpected         = "Expected %s, found %s"
	LabelExpectedMore   = "expected more input here"
	LabelUnexpectedChar = "this character is not expected here"
	LabelExpected       = "expected %s here"
)

// Error is a lexical error. Every Error can be turned into a diagnostic
// anchored at the offending span.
type Error interface {
	error
	Span() token.Span
	Diagnostic() *diag.Diagnostic
}

// UnexpectedEOFError reports that the input ran out.
type UnexpectedEOFError struct {
	At token.Span
}

// NewUnexpectedEOFError creates a new end-of-file error.
func NewUnexpectedEOFError(at token.Span) *UnexpectedEOFError {
	return &UnexpectedEOFError{At: at}
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("unexpected end of file at offset %d", e.At.Start)
}

// Span returns where the input ended.
func (e *UnexpectedEOFError) Span() token.Span { return e.At }

// Diagnostic converts the error into a diagnostic.
func (e *UnexpectedEOFError) Diagnostic() *diag.Diagnostic {
	return diag.Error().
		WithMessage(MsgUnexpectedEOF).
		WithLabels(e.At.PrimaryLabel().WithMessage(LabelExpectedMore))
}

// UnexpectedCharError reports a character no token can start with.
type UnexpectedCharError struct {
	At   token.Span
	Char rune
}

// NewUnexpectedCharError creates a new unexpected-character error.
func NewUnexpectedCharError(at token.Span, c rune) *UnexpectedCharError {
	return &UnexpectedCharError{At: at, Char: c}
}

func (e *UnexpectedCharError) Error() string {
	return fmt.Sprintf("unexpected character %q at offset %d", e.Char, e.At.Start)
}

// Span returns the span of the offending character.
func (e *UnexpectedCharError) Span() token.Span { return e.At }

// Diagnostic converts the error into a diagnostic.
func (e *UnexpectedCharError) Diagnostic() *diag.Diagnostic {
	return diag.Error().
		WithMessage(fmt.Sprintf(MsgUnexpectedChar, e.Char)).
		WithLabels(e.At.PrimaryLabel().WithMessage(LabelUnexpectedChar))
}

// Expected builds the diagnostic for a token that does not match what a
// consumer wanted. what reads as a noun phrase, e.g. "an identifier".
func Expected(what string, found token.Token) *diag.Diagnostic {
	return diag.Error().
		WithMessage(fmt.Sprintf(MsgExpected, what, token.Describe(found.Kind))).
		WithLabels(found.Span.PrimaryLabel().WithMessage(fmt.Sprintf(LabelExpected, what)))
}

// AsDiagnostic extracts a diagnostic from err, which may be a lexical Error
// or a *diag.Diagnostic from token consumption.
func AsDiagnostic(err error) (*diag.Diagnostic, bool) {
	var lexErr Error
	if errors.As(err, &lexErr) {
		return lexErr.Diagnostic(), true
	}
	var d *diag.Diagnostic
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
