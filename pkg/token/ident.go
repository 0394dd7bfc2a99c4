package token

import (
	"strconv"
	"unique"
)

// Ident is an interned identifier name.
//
// Two Idents built from equal text are equal under == and hash the same as
// map keys, however they were constructed.
type Ident struct {
	h unique.Handle[string]
}

// NewIdent interns name. The empty name maps to the zero Ident.
func NewIdent(name string) Ident {
	if name == "" {
		return Ident{}
	}
	return Ident{h: unique.Make(name)}
}

// String returns the identifier text. The zero Ident has empty text.
func (i Ident) String() string {
	if i == (Ident{}) {
		return ""
	}
	return i.h.Value()
}

// GoString makes %#v print the name rather than the handle internals.
func (i Ident) GoString() string {
	return "token.NewIdent(" + strconv.Quote(i.String()) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (i Ident) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Ident) UnmarshalText(text []byte) error {
	*i = NewIdent(string(text))
	return nil
}
