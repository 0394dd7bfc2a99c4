package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/casm/pkg/source"
)

const replPrompt = "casm> "

// ReplOptions holds the flags of the repl command.
type ReplOptions struct {
	HistoryFile string
}

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	opts := &ReplOptions{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Lex lines interactively",
		Long: `Start an interactive session. Every line entered is registered as a new
source and lexed; its tokens or diagnostic are printed immediately.

Type .help for commands, .quit to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.HistoryFile, "history", "", "File to keep line history in")

	return cmd
}

func runRepl(cmd *cobra.Command, opts *ReplOptions) error {
	s := newReplSession(NewCommandContext(cmd))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     opts.HistoryFile,
		AutoComplete:    newReplCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s.c.Renderer.Println("casm lexer REPL")
	s.c.Renderer.Println("Type .help for commands, .quit to exit")
	s.c.Renderer.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !s.eval(line) {
			return nil
		}
	}
}

// replSession lexes one line at a time. Every line becomes its own source so
// diagnostics from earlier lines stay resolvable.
type replSession struct {
	c     *CommandContext
	lines int
}

func newReplSession(c *CommandContext) *replSession {
	return &replSession{c: c}
}

// eval handles one input line and reports whether the session continues.
func (s *replSession) eval(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	if strings.HasPrefix(trimmed, ".") {
		return s.dotCommand(trimmed)
	}

	s.lines++
	res := s.c.Lex(source.NewFile(fmt.Sprintf("<repl:%d>", s.lines), line))
	if res.Err != nil {
		s.c.ReportError(res.Err)
		return true
	}
	if err := s.c.Renderer.Tokens(s.c.Listing(res, nil)); err != nil {
		s.c.Renderer.Errorf("error: %v", err)
	}
	return true
}

func (s *replSession) dotCommand(line string) bool {
	switch strings.ToLower(strings.Fields(line)[0]) {
	case ".quit", ".exit":
		return false
	case ".help":
		printReplHelp(s.c.Renderer.Writer())
	case ".sources":
		for _, id := range s.c.Sources.IDs() {
			f := s.c.Sources.MustGet(id)
			s.c.Renderer.Printf("%s  %s\n", id, f.Path)
		}
	default:
		s.c.Renderer.Errorf("Unknown command: %s (type .help for commands)", line)
	}
	return true
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .sources        List the sources entered so far
  .quit / .exit   Exit the REPL

Every other line is lexed as a new source.
`
	_, _ = fmt.Fprintln(w, help)
}

func newReplCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".sources"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
