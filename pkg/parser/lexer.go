package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/casm/pkg/source"
	"github.com/leapstack-labs/casm/pkg/token"
)

// Lexer scans the text of one source file into tokens, one call at a time.
//
// The cursor is a byte offset but every accessor works on whole runes, so it
// never lands inside a multi-byte sequence.
type Lexer struct {
	input  string
	source source.ID
	offset int // current byte offset in input
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string, src source.ID) *Lexer {
	return &Lexer{
		input:  input,
		source: src,
	}
}

// Offset returns the current byte offset.
func (l *Lexer) Offset() int {
	return l.offset
}

// Span returns a zero-width span at the current offset.
func (l *Lexer) Span() token.Span {
	return token.NewSpan(l.source, l.offset, l.offset)
}

// IsEmpty reports whether the input is exhausted.
func (l *Lexer) IsEmpty() bool {
	_, ok := l.Peek()
	return !ok
}

// rest returns the unconsumed input.
func (l *Lexer) rest() string {
	return l.input[l.offset:]
}

// Peek returns the next rune without consuming it.
func (l *Lexer) Peek() (rune, bool) {
	return l.PeekNth(0)
}

// PeekNth returns the rune n positions ahead of the cursor without consuming
// anything. PeekNth(0) is Peek.
func (l *Lexer) PeekNth(n int) (rune, bool) {
	offset := l.offset
	for i := 0; i < n; i++ {
		_, size := utf8.DecodeRuneInString(l.input[offset:])
		if size == 0 {
			return 0, false
		}
		offset += size
	}

	c, size := utf8.DecodeRuneInString(l.input[offset:])
	if size == 0 {
		return 0, false
	}
	return c, true
}

// Consume advances past the next rune and returns it.
func (l *Lexer) Consume() (rune, bool) {
	c, size := utf8.DecodeRuneInString(l.rest())
	if size == 0 {
		return 0, false
	}
	l.offset += size
	return c, true
}

// ConsumeN advances past up to n runes.
func (l *Lexer) ConsumeN(n int) {
	for i := 0; i < n; i++ {
		if _, ok := l.Consume(); !ok {
			return
		}
	}
}

// SkipWhitespace consumes any Unicode whitespace at the cursor.
func (l *Lexer) SkipWhitespace() {
	for {
		c, ok := l.Peek()
		if !ok || !unicode.IsSpace(c) {
			return
		}
		l.Consume()
	}
}

// Next skips whitespace and scans one token.
//
// Dispatch order: end of input, comment, integer (digit or leading '-'),
// identifier, then single-character punctuation. Anything else is an
// *UnexpectedCharError.
func (l *Lexer) Next() (token.Token, error) {
	l.SkipWhitespace()

	c, ok := l.Peek()
	if !ok {
		return token.Token{}, NewUnexpectedEOFError(l.Span())
	}

	switch {
	case c == ';':
		return l.lexComment(), nil
	case isDecimalDigit(c) || c == '-':
		return l.lexInteger(), nil
	case isIdentStart(c):
		return l.lexIdent(), nil
	default:
		return l.lexSymbol()
	}
}

// lexComment scans from ';' through the next newline, or to the end of the
// input when there is none.
func (l *Lexer) lexComment() token.Token {
	start := l.offset
	for {
		c, ok := l.Consume()
		if !ok || c == '\n' {
			break
		}
	}

	return token.New(token.Comment(l.input[start:l.offset]), token.NewSpan(l.source, start, l.offset))
}

// lexInteger scans an optionally signed integer with an optional 0x, 0b or
// 0o radix prefix.
//
// The sign is applied to every digit as it is accumulated. The accumulator
// is a plain int64, so literals outside its range wrap.
func (l *Lexer) lexInteger() token.Token {
	start := l.offset
	var value int64
	radix := int64(10)
	sign := int64(1)

	if strings.HasPrefix(l.rest(), "-") {
		l.Consume()
		sign = -1
	}

	switch {
	case strings.HasPrefix(l.rest(), "0x"):
		l.ConsumeN(2)
		radix = 16
	case strings.HasPrefix(l.rest(), "0b"):
		l.ConsumeN(2)
		radix = 2
	case strings.HasPrefix(l.rest(), "0o"):
		l.ConsumeN(2)
		radix = 8
	}

	for {
		c, ok := l.Peek()
		if !ok {
			break
		}
		digit, ok := digitValue(c, radix)
		if !ok {
			break
		}
		l.Consume()

		value *= radix
		value += digit * sign
	}

	return token.New(token.Integer(value), token.NewSpan(l.source, start, l.offset))
}

// lexIdent scans an identifier. The cursor must be on an identifier start.
func (l *Lexer) lexIdent() token.Token {
	start := l.offset
	for {
		c, ok := l.Peek()
		if !ok || !isIdentContinue(c) {
			break
		}
		l.Consume()
	}

	return token.New(token.NewIdent(l.input[start:l.offset]), token.NewSpan(l.source, start, l.offset))
}

// lexSymbol scans single-character punctuation.
func (l *Lexer) lexSymbol() (token.Token, error) {
	start := l.offset
	c, _ := l.Consume()
	span := token.NewSpan(l.source, start, l.offset)

	switch c {
	case ':':
		return token.New(token.Colon{}, span), nil
	case ',':
		return token.New(token.Comma{}, span), nil
	default:
		return token.Token{}, NewUnexpectedCharError(span, c)
	}
}

// isDecimalDigit returns true if c is an ASCII decimal digit.
func isDecimalDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// isAlphabetic reports whether c has the Unicode Alphabetic property, which
// adds letter numbers and combining vowel signs to the letter categories.
func isAlphabetic(c rune) bool {
	return unicode.IsLetter(c) || unicode.In(c, unicode.Nl, unicode.Other_Alphabetic)
}

func isIdentStart(c rune) bool {
	return isAlphabetic(c) || c == '_'
}

func isIdentContinue(c rune) bool {
	return isAlphabetic(c) || unicode.IsNumber(c) || c == '_'
}

// digitValue returns the value of c as a digit in radix, accepting ASCII
// digits and letters in either case.
func digitValue(c rune, radix int64) (int64, bool) {
	var d int64
	switch {
	case c >= '0' && c <= '9':
		d = int64(c - '0')
	case c >= 'a' && c <= 'z':
		d = int64(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		d = int64(c-'A') + 10
	default:
		return 0, false
	}
	if d >= radix {
		return 0, false
	}
	return d, true
}
