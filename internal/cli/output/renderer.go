// Package output provides output formatting for CLI commands.
//
// Output adapts to where it is going: a terminal gets a styled table, a pipe
// gets plain lines. --output overrides the choice with one of the explicit
// modes.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/leapstack-labs/casm/pkg/diag"
)

// Mode selects how command output is formatted.
type Mode string

// Output modes.
const (
	ModeAuto  Mode = "auto"  // table on a terminal, text otherwise
	ModeText  Mode = "text"  // one line per item
	ModeTable Mode = "table" // bordered table
	ModeJSON  Mode = "json"  // indented JSON
	ModeYAML  Mode = "yaml"  // YAML document
	ModeDump  Mode = "dump"  // Go value dump for debugging
)

// Styles holds the lipgloss styles commands print with.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:  r.NewStyle().Bold(true).Underline(true),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Success: r.NewStyle().Foreground(lipgloss.Color("2")),
		Error:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	color  diag.ColorMode
	styles *Styles
}

// NewRenderer creates a Renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, mode, IsTerminal(out))
}

// NewRendererWithTTY creates a Renderer with an explicit terminal flag.
func NewRendererWithTTY(out, errOut io.Writer, mode Mode, isTTY bool) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	r := &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
	}
	r.SetColor(diag.ColorAuto)
	return r
}

// IsTerminal reports whether w is a file descriptor attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// SetColor chooses whether styles emit ANSI sequences.
func (r *Renderer) SetColor(c diag.ColorMode) {
	r.color = c
	lr := lipgloss.NewRenderer(r.out)
	if !r.UseColor() {
		lr.SetColorProfile(termenv.Ascii)
	} else if c == diag.ColorAlways {
		lr.SetColorProfile(termenv.ANSI256)
	}
	r.styles = newStyles(lr)
}

// UseColor reports whether output is styled.
func (r *Renderer) UseColor() bool {
	switch r.color {
	case diag.ColorAlways:
		return true
	case diag.ColorNever:
		return false
	default:
		return r.isTTY
	}
}

// ColorMode returns the color mode to hand to a diagnostic renderer.
func (r *Renderer) ColorMode() diag.ColorMode {
	if r.UseColor() {
		return diag.ColorAlways
	}
	return diag.ColorNever
}

// EffectiveMode resolves ModeAuto against the terminal flag.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeTable
	}
	return ModeText
}

// Styles returns the styles for the current color setting.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns the standard output writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the error output writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Println writes a line to standard output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to standard output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header prints a section header.
func (r *Renderer) Header(text string) {
	r.Println(r.styles.Header.Render(text))
}

// Success prints a success line.
func (r *Renderer) Success(text string) {
	r.Println(r.styles.Success.Render(text))
}

// Errorf prints a styled error line to the error writer.
func (r *Renderer) Errorf(format string, a ...any) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render(fmt.Sprintf(format, a...)))
}
