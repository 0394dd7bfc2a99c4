package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/casm/pkg/source"
	"github.com/leapstack-labs/casm/pkg/token"
)

// TokenRecord is the serializable view of one token.
type TokenRecord struct {
	Kind    string `json:"kind" yaml:"kind"`
	Literal string `json:"literal" yaml:"literal"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Start   int    `json:"start" yaml:"start"`
	End     int    `json:"end" yaml:"end"`
}

// TokenListing is the token output of one file.
type TokenListing struct {
	Path   string        `json:"path" yaml:"path"`
	Tokens []TokenRecord `json:"tokens" yaml:"tokens"`

	raw []token.Token
}

// NewTokenListing builds a listing of tokens scanned from file.
func NewTokenListing(file *source.File, tokens []token.Token) *TokenListing {
	records := make([]TokenRecord, len(tokens))
	for i, tok := range tokens {
		loc := file.Location(tok.Span.Start)
		records[i] = TokenRecord{
			Kind:    token.KindName(tok.Kind),
			Literal: strings.TrimRight(token.Literal(tok.Kind), "\r\n"),
			Line:    loc.Line,
			Column:  loc.Column,
			Start:   tok.Span.Start,
			End:     tok.Span.End,
		}
	}
	return &TokenListing{Path: file.Path, Tokens: records, raw: tokens}
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Tokens writes one or more listings in the renderer's effective mode.
func (r *Renderer) Tokens(listings ...*TokenListing) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(listings)
	case ModeYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(listings); err != nil {
			return err
		}
		return enc.Close()
	case ModeDump:
		for _, l := range listings {
			r.Println(l.Path)
			dumper.Fdump(r.out, l.raw)
		}
		return nil
	case ModeTable:
		for _, l := range listings {
			r.tokenTable(l)
		}
		return nil
	default:
		for _, l := range listings {
			r.tokenLines(l, len(listings) > 1)
		}
		return nil
	}
}

func (r *Renderer) tokenLines(l *TokenListing, withPath bool) {
	for _, rec := range l.Tokens {
		loc := fmt.Sprintf("%d:%d", rec.Line, rec.Column)
		if withPath {
			loc = l.Path + ":" + loc
		}
		r.Printf("%-8s %-8s %s\n", loc, rec.Kind, rec.Literal)
	}
}

func (r *Renderer) tokenTable(l *TokenListing) {
	r.Header(fmt.Sprintf("%s (%d tokens)", l.Path, len(l.Tokens)))

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Kind", "Literal", "Location", "Span"})
	for i, rec := range l.Tokens {
		t.AppendRow(table.Row{
			i + 1,
			rec.Kind,
			rec.Literal,
			fmt.Sprintf("%d:%d", rec.Line, rec.Column),
			fmt.Sprintf("%d..%d", rec.Start, rec.End),
		})
	}
	t.Render()
}
