package diag

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/text/width"

	"github.com/leapstack-labs/casm/pkg/source"
)

// ColorMode controls whether the Renderer emits ANSI styling.
type ColorMode string

// Color modes.
const (
	ColorAuto   ColorMode = "auto"   // style only when writing to a terminal
	ColorAlways ColorMode = "always" // always style
	ColorNever  ColorMode = "never"  // plain text
)

// DefaultTabWidth is used when Options.TabWidth is not positive.
const DefaultTabWidth = 4

// Files resolves source ids to file contents. *source.Map satisfies it.
type Files interface {
	Get(id source.ID) (*source.File, bool)
}

// Options configures a Renderer.
type Options struct {
	Color    ColorMode
	TabWidth int
}

// Styles holds the lipgloss styles used while rendering.
type Styles struct {
	Bug       lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Note      lipgloss.Style
	Help      lipgloss.Style
	Message   lipgloss.Style
	Gutter    lipgloss.Style
	Secondary lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Bug:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		Error:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		Warning:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		Note:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		Help:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Message:   r.NewStyle().Bold(true),
		Gutter:    r.NewStyle().Foreground(lipgloss.Color("4")),
		Secondary: r.NewStyle().Foreground(lipgloss.Color("4")),
	}
}

func (s Styles) severity(sev Severity) lipgloss.Style {
	switch sev {
	case SeverityBug:
		return s.Bug
	case SeverityError:
		return s.Error
	case SeverityWarning:
		return s.Warning
	case SeverityNote:
		return s.Note
	default:
		return s.Help
	}
}

// Renderer prints diagnostics with annotated source snippets.
type Renderer struct {
	w        io.Writer
	files    Files
	styles   Styles
	tabWidth int
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer, files Files, opts Options) *Renderer {
	lr := lipgloss.NewRenderer(w)
	switch opts.Color {
	case ColorNever:
		lr.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		lr.SetColorProfile(termenv.ANSI256)
	}

	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	return &Renderer{
		w:        w,
		files:    files,
		styles:   newStyles(lr),
		tabWidth: tabWidth,
	}
}

// RenderAll renders each diagnostic in turn, separated by blank lines.
func (r *Renderer) RenderAll(diags []*Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := fmt.Fprintln(r.w); err != nil {
				return err
			}
		}
		if err := r.Render(d); err != nil {
			return err
		}
	}
	return nil
}

// snippetLine is one source line with the labels that start on it.
type snippetLine struct {
	file   *source.File
	number int
	start  int
	labels []Label
}

// Render prints a single diagnostic.
func (r *Renderer) Render(d *Diagnostic) error {
	var b strings.Builder

	sevStyle := r.styles.severity(d.Severity)
	header := d.Severity.String()
	if d.Code != "" {
		header += "[" + d.Code + "]"
	}
	b.WriteString(sevStyle.Render(header))
	b.WriteString(r.styles.Message.Render(": " + d.Message))
	b.WriteByte('\n')

	lines, unresolved := r.collectLines(d.Labels)
	gutter := 1
	for _, ln := range lines {
		if n := len(strconv.Itoa(ln.number)); n > gutter {
			gutter = n
		}
	}
	pad := strings.Repeat(" ", gutter)
	bar := r.styles.Gutter.Render("|")

	var lastFile *source.File
	for _, ln := range lines {
		if ln.file != lastFile {
			loc := ln.file.Location(ln.labels[0].Start)
			fmt.Fprintf(&b, "%s%s %s:%s\n", pad, r.styles.Gutter.Render("-->"), ln.file.Path, loc)
			fmt.Fprintf(&b, "%s %s\n", pad, bar)
			lastFile = ln.file
		}

		text := ln.file.LineText(ln.start)
		number := r.styles.Gutter.Render(fmt.Sprintf("%*d", gutter, ln.number))
		fmt.Fprintf(&b, "%s %s %s\n", number, bar, strings.TrimRight(r.expandTabs(text), " "))

		for _, l := range ln.labels {
			b.WriteString(pad + " " + bar + " " + r.underline(ln, text, l) + "\n")
		}
	}

	for _, l := range unresolved {
		fmt.Fprintf(&b, "%s%s %s:%d..%d\n", pad, r.styles.Gutter.Render("-->"), l.Source, l.Start, l.End)
	}

	if len(lines) > 0 && len(d.Notes) > 0 {
		fmt.Fprintf(&b, "%s %s\n", pad, bar)
	}
	for _, note := range d.Notes {
		fmt.Fprintf(&b, "%s %s %s\n", pad, r.styles.Gutter.Render("="), note)
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// collectLines groups labels by the line they start on, ordered by file and
// offset. Labels whose source cannot be resolved are returned separately.
func (r *Renderer) collectLines(labels []Label) ([]snippetLine, []Label) {
	sorted := make([]Label, len(labels))
	copy(sorted, labels)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Source != sorted[j].Source {
			return sorted[i].Source < sorted[j].Source
		}
		return sorted[i].Start < sorted[j].Start
	})

	var lines []snippetLine
	var unresolved []Label
	for _, l := range sorted {
		var file *source.File
		if r.files != nil && !l.Source.IsNull() {
			file, _ = r.files.Get(l.Source)
		}
		if file == nil || l.Start < 0 || l.End < l.Start || l.Start > len(file.Contents) {
			unresolved = append(unresolved, l)
			continue
		}

		start := file.LineStart(l.Start)
		if n := len(lines); n > 0 && lines[n-1].file == file && lines[n-1].start == start {
			lines[n-1].labels = append(lines[n-1].labels, l)
			continue
		}
		lines = append(lines, snippetLine{
			file:   file,
			number: file.Location(l.Start).Line,
			start:  start,
			labels: []Label{l},
		})
	}
	return lines, unresolved
}

// underline builds the marker row for one label. Labels spanning several
// lines are underlined up to the end of their first line.
func (r *Renderer) underline(ln snippetLine, text string, l Label) string {
	startCol := l.Start - ln.start
	endCol := l.End - ln.start
	if startCol > len(text) {
		startCol = len(text)
	}
	if endCol > len(text) {
		endCol = len(text)
	}
	if endCol < startCol {
		endCol = startCol
	}

	lead := r.displayWidth(text[:startCol], 0)
	span := r.displayWidth(text[startCol:endCol], lead)
	if span == 0 {
		span = 1
	}

	marker, style := "^", r.styles.severity(SeverityError)
	if l.Style == LabelSecondary {
		marker, style = "-", r.styles.Secondary
	}

	out := strings.Repeat(" ", lead) + style.Render(strings.Repeat(marker, span))
	if l.Message != "" {
		out += " " + style.Render(l.Message)
	}
	return out
}

// displayWidth measures s in terminal cells, starting at column col so tab
// stops line up with expandTabs.
func (r *Renderer) displayWidth(s string, col int) int {
	start := col
	for _, c := range s {
		col += r.runeWidth(c, col)
	}
	return col - start
}

func (r *Renderer) runeWidth(c rune, col int) int {
	switch {
	case c == '\t':
		return r.tabWidth - col%r.tabWidth
	case unicode.Is(unicode.Mn, c):
		return 0
	}
	switch width.LookupRune(c).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

func (r *Renderer) expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, c := range s {
		if c == '\t' {
			n := r.runeWidth(c, col)
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(c)
		col += r.runeWidth(c, col)
	}
	return b.String()
}
