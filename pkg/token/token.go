// Package token defines the tokens produced by the lexer.
//
// Kind is a closed sum type: the only implementations are the variant types
// declared in this file, and new variants are added here. Consumers switch
// over the concrete types:
//
//	switch k := tok.Kind.(type) {
//	case token.Ident:
//	case token.Comment:
//	case token.Integer:
//	case token.Colon, token.Comma:
//	}
package token

import (
	"fmt"
	"strconv"
)

// Kind classifies a token and carries its decoded value.
type Kind interface {
	isKind()
}

// Comment is a line comment including the leading ';' and, when present,
// the trailing newline.
type Comment string

// Integer is a decoded integer literal.
type Integer int64

// Colon is the ':' punctuation mark.
type Colon struct{}

// Comma is the ',' punctuation mark.
type Comma struct{}

func (Ident) isKind() {}
func (Comment) isKind() {}
func (Integer) isKind() {}
func (Colon) isKind() {}
func (Comma) isKind() {}

// KindName returns the short name of a kind, e.g. "ident" or "colon".
func KindName(k Kind) string {
	switch k.(type) {
	case Ident:
		return "ident"
	case Comment:
		return "comment"
	case Integer:
		return "integer"
	case Colon:
		return "colon"
	case Comma:
		return "comma"
	default:
		return "unknown"
	}
}

// Describe returns a human-readable description of k for diagnostics.
func Describe(k Kind) string {
	switch k := k.(type) {
	case Ident:
		return fmt.Sprintf("identifier `%s`", k)
	case Comment:
		return "comment"
	case Integer:
		return fmt.Sprintf("integer `%d`", int64(k))
	case Colon:
		return "`:`"
	case Comma:
		return "`,`"
	default:
		return "unknown token"
	}
}

// Literal returns the value carried by k in its source-like form: the
// identifier name, the comment text, the decimal value, or the punctuation
// character.
func Literal(k Kind) string {
	switch k := k.(type) {
	case Ident:
		return k.String()
	case Comment:
		return string(k)
	case Integer:
		return strconv.FormatInt(int64(k), 10)
	case Colon:
		return ":"
	case Comma:
		return ","
	default:
		return ""
	}
}

// Token is a classified lexeme and the span it occupies.
type Token struct {
	Kind Kind
	Span Span
}

// New creates a token.
func New(kind Kind, span Span) Token {
	return Token{Kind: kind, Span: span}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s) %s", KindName(t.Kind), strconv.Quote(Literal(t.Kind)), t.Span)
}
