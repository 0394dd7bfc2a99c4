package parser

import (
	"slices"

	"github.com/leapstack-labs/casm/pkg/diag"
	"github.com/leapstack-labs/casm/pkg/source"
	"github.com/leapstack-labs/casm/pkg/token"
)

// TokenStream is a finished token sequence with a read cursor.
//
// The token slice is never written after construction, so copies of a
// stream share it and only duplicate the cursor. Clone a stream to look
// ahead speculatively and throw the clone away if the attempt fails.
type TokenStream struct {
	tokens []token.Token
	span   token.Span // the whole scanned input
	index  int
}

// NewTokenStream creates a stream over tokens. span covers the whole input
// and anchors the end-of-file location.
func NewTokenStream(tokens []token.Token, span token.Span) *TokenStream {
	return &TokenStream{
		tokens: slices.Clip(slices.Clone(tokens)),
		span:   span,
	}
}

// Lex scans all of input into a TokenStream. The first lexical error aborts
// the scan and no stream is returned.
func Lex(input string, src source.ID) (*TokenStream, error) {
	l := NewLexer(input, src)
	var tokens []token.Token

	l.SkipWhitespace()
	for !l.IsEmpty() {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		l.SkipWhitespace()
	}

	return &TokenStream{
		tokens: slices.Clip(tokens),
		span:   token.NewSpan(src, 0, len(input)),
	}, nil
}

// Clone returns an independent cursor over the same tokens.
func (ts *TokenStream) Clone() *TokenStream {
	c := *ts
	return &c
}

// Span returns the span of the whole scanned input.
func (ts *TokenStream) Span() token.Span {
	return ts.span
}

// EOFSpan returns the zero-width span at the end of the input.
func (ts *TokenStream) EOFSpan() token.Span {
	return ts.span.WithStart(ts.span.End)
}

// Len returns the total number of tokens.
func (ts *TokenStream) Len() int {
	return len(ts.tokens)
}

// Remaining returns the number of tokens not yet consumed.
func (ts *TokenStream) Remaining() int {
	return max(len(ts.tokens)-ts.index, 0)
}

// IsEmpty reports whether every token has been consumed.
func (ts *TokenStream) IsEmpty() bool {
	return ts.index >= len(ts.tokens)
}

// Position returns the cursor index.
func (ts *TokenStream) Position() int {
	return ts.index
}

// Reset moves the cursor back to a position returned by Position.
func (ts *TokenStream) Reset(pos int) {
	ts.index = min(max(pos, 0), len(ts.tokens))
}

// Tokens returns a copy of all tokens, consumed or not.
func (ts *TokenStream) Tokens() []token.Token {
	return slices.Clone(ts.tokens)
}

// TryPeek returns the next token without advancing.
func (ts *TokenStream) TryPeek() (token.Token, bool) {
	return ts.TryPeekNth(0)
}

// TryPeekNth returns the token n positions past the cursor without advancing.
func (ts *TokenStream) TryPeekNth(n int) (token.Token, bool) {
	i := ts.index + n
	if n < 0 || i >= len(ts.tokens) {
		return token.Token{}, false
	}
	return ts.tokens[i], true
}

// TryNext returns the next token and advances past it.
func (ts *TokenStream) TryNext() (token.Token, bool) {
	tok, ok := ts.TryPeek()
	if ok {
		ts.index++
	}
	return tok, ok
}

// Peek returns the next token without advancing, or an end-of-file
// diagnostic when the stream is exhausted.
func (ts *TokenStream) Peek() (token.Token, error) {
	return ts.PeekNth(0)
}

// PeekNth is Peek for the token n positions past the cursor.
func (ts *TokenStream) PeekNth(n int) (token.Token, error) {
	tok, ok := ts.TryPeekNth(n)
	if !ok {
		return token.Token{}, ts.eofError()
	}
	return tok, nil
}

// Next returns the next token and advances past it, or an end-of-file
// diagnostic when the stream is exhausted.
func (ts *TokenStream) Next() (token.Token, error) {
	tok, ok := ts.TryNext()
	if !ok {
		return token.Token{}, ts.eofError()
	}
	return tok, nil
}

// SkipComments advances past any comment tokens at the cursor.
func (ts *TokenStream) SkipComments() {
	for {
		tok, ok := ts.TryPeek()
		if !ok {
			return
		}
		if _, isComment := tok.Kind.(token.Comment); !isComment {
			return
		}
		ts.index++
	}
}

// eofError points at the end of the input rather than at the last token.
func (ts *TokenStream) eofError() *diag.Diagnostic {
	return diag.Error().
		WithMessage(MsgUnexpectedEOF).
		WithLabels(ts.EOFSpan().PrimaryLabel().WithMessage(LabelExpectedMore))
}
