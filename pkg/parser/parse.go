// Package parser turns source text into a TokenStream and defines how typed
// values are pulled back out of it.
//
// # Usage
//
//	ts, err := parser.Lex(file.Contents, id)
//	if err != nil {
//	    d, _ := parser.AsDiagnostic(err)
//	    // render d
//	}
//	name, err := parser.ParseIdent(ts)
//
// Every failure is reported immediately; nothing in this package recovers
// from an error or resynchronises. Backtracking is done by the caller with
// TokenStream.Clone or Try.
package parser

import (
	"github.com/leapstack-labs/casm/pkg/token"
)

// Parser is implemented by anything that can read a T from a TokenStream.
// Parse either consumes the tokens it needs and returns a value, or fails
// with a diagnostic.
type Parser[T any] interface {
	Parse(ts *TokenStream) (T, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc[T any] func(ts *TokenStream) (T, error)

// Parse calls f(ts).
func (f ParserFunc[T]) Parse(ts *TokenStream) (T, error) {
	return f(ts)
}

// Parse runs p against ts.
func Parse[T any](ts *TokenStream, p Parser[T]) (T, error) {
	return p.Parse(ts)
}

// Try runs p on a clone of ts and only moves the cursor of ts when p
// succeeds.
func Try[T any](ts *TokenStream, p Parser[T]) (T, error) {
	fork := ts.Clone()
	v, err := p.Parse(fork)
	if err != nil {
		var zero T
		return zero, err
	}
	ts.index = fork.index
	return v, nil
}

// Reference parsers.
var (
	IdentParser   Parser[token.Ident] = ParserFunc[token.Ident](ParseIdent)
	IntegerParser Parser[int64]       = ParserFunc[int64](ParseInteger)
)

// ParseIdent reads one identifier. On any other token it fails without
// advancing, leaving the token for the caller.
func ParseIdent(ts *TokenStream) (token.Ident, error) {
	tok, err := ts.Peek()
	if err != nil {
		return token.Ident{}, err
	}
	ident, ok := tok.Kind.(token.Ident)
	if !ok {
		return token.Ident{}, Expected("an identifier", tok)
	}
	ts.index++
	return ident, nil
}

// ParseInteger reads one integer literal.
func ParseInteger(ts *TokenStream) (int64, error) {
	tok, err := ts.Peek()
	if err != nil {
		return 0, err
	}
	n, ok := tok.Kind.(token.Integer)
	if !ok {
		return 0, Expected("an integer", tok)
	}
	ts.index++
	return int64(n), nil
}

// ExpectColon consumes a ':' and returns its span.
func ExpectColon(ts *TokenStream) (token.Span, error) {
	return expectPunct[token.Colon](ts, "`:`")
}

// ExpectComma consumes a ',' and returns its span.
func ExpectComma(ts *TokenStream) (token.Span, error) {
	return expectPunct[token.Comma](ts, "`,`")
}

func expectPunct[K token.Kind](ts *TokenStream, what string) (token.Span, error) {
	tok, err := ts.Peek()
	if err != nil {
		return token.NullSpan, err
	}
	if _, ok := tok.Kind.(K); !ok {
		return token.NullSpan, Expected(what, tok)
	}
	ts.index++
	return tok.Span, nil
}
