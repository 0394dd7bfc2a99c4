package parser_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/casm/pkg/diag"
	"github.com/leapstack-labs/casm/pkg/parser"
	"github.com/leapstack-labs/casm/pkg/token"
)

func TestUnexpectedCharError_Diagnostic(t *testing.T) {
	err := parser.NewUnexpectedCharError(token.NewSpan(4, 7, 8), '$')
	assert.Equal(t, "unexpected character '$' at offset 7", err.Error())

	d := err.Diagnostic()
	assert.Equal(t, diag.SeverityError, d.Severity)
	assert.Equal(t, "Unexpected character: '$'", d.Message)
	require.Len(t, d.Labels, 1)

	l := d.Labels[0]
	assert.Equal(t, diag.LabelPrimary, l.Style)
	assert.EqualValues(t, 4, l.Source)
	assert.Equal(t, 7, l.Start)
	assert.Equal(t, 8, l.End)
	assert.Equal(t, parser.LabelUnexpectedChar, l.Message)
}

func TestUnexpectedEOFError_Diagnostic(t *testing.T) {
	err := parser.NewUnexpectedEOFError(token.NewSpan(0, 12, 12))
	assert.Equal(t, "unexpected end of file at offset 12", err.Error())

	d := err.Diagnostic()
	assert.Equal(t, parser.MsgUnexpectedEOF, d.Message)
	primary, ok := d.Primary()
	require.True(t, ok)
	assert.Equal(t, 12, primary.Start)
	assert.Equal(t, 12, primary.End)
	assert.Equal(t, parser.LabelExpectedMore, primary.Message)
}

func TestAsDiagnostic(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		ok      bool
		message string
	}{
		{
			name:    "lexical error",
			err:     parser.NewUnexpectedCharError(token.NewSpan(0, 0, 1), '#'),
			ok:      true,
			message: "Unexpected character: '#'",
		},
		{
			name:    "wrapped lexical error",
			err:     fmt.Errorf("lex main.casm: %w", parser.NewUnexpectedEOFError(token.NewSpan(0, 3, 3))),
			ok:      true,
			message: parser.MsgUnexpectedEOF,
		},
		{
			name:    "diagnostic",
			err:     diag.Errorf("custom"),
			ok:      true,
			message: "custom",
		},
		{
			name: "plain error",
			err:  errors.New("disk on fire"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := parser.AsDiagnostic(tt.err)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.message, d.Message)
			} else {
				assert.Nil(t, d)
			}
		})
	}
}

func TestExpected(t *testing.T) {
	found := token.New(token.Comment("; x"), token.NewSpan(1, 5, 8))
	d := parser.Expected("an identifier", found)

	assert.Equal(t, "Expected an identifier, found comment", d.Message)
	primary, ok := d.Primary()
	require.True(t, ok)
	assert.EqualValues(t, 1, primary.Source)
	assert.Equal(t, 5, primary.Start)
}
