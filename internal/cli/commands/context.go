package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/casm/internal/cli/config"
	"github.com/leapstack-labs/casm/internal/cli/output"
	"github.com/leapstack-labs/casm/pkg/diag"
	"github.com/leapstack-labs/casm/pkg/parser"
	"github.com/leapstack-labs/casm/pkg/source"
	"github.com/leapstack-labs/casm/pkg/token"
)

// ErrLexFailed is returned by commands when at least one input failed to lex.
// The diagnostics have already been printed by then.
var ErrLexFailed = errors.New("lexing failed")

// maxConcurrentReads bounds how many input files are read at once.
const maxConcurrentReads = 8

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Sources  *source.Map
}

// NewCommandContext creates a CommandContext from the config and logger the
// root command stored in the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.GetConfig(ctx)

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))
	r.SetColor(diag.ColorMode(cfg.Color))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(ctx),
		Renderer: r,
		Sources:  source.NewMap(),
	}
}

// LexResult is the outcome of lexing one registered file.
type LexResult struct {
	ID     source.ID
	File   *source.File
	Stream *parser.TokenStream
	Err    error
}

// ReadFiles reads paths concurrently. The result preserves the order of
// paths; the first read error cancels the rest.
func ReadFiles(ctx context.Context, paths []string) ([]*source.File, error) {
	files := make([]*source.File, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := source.ReadFile(path)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// Lex registers file in the source map and scans it.
func (c *CommandContext) Lex(file *source.File) LexResult {
	id := c.Sources.Insert(file)
	ts, err := parser.Lex(file.Contents, id)
	if err != nil {
		c.Logger.Debug("lex failed", slog.String("path", file.Path), slog.Any("error", err))
		return LexResult{ID: id, File: file, Err: err}
	}
	c.Logger.Debug("lexed file",
		slog.String("path", file.Path),
		slog.Any("source", id),
		slog.Int("tokens", ts.Len()))
	return LexResult{ID: id, File: file, Stream: ts}
}

// LexPaths reads every path and lexes the files in order. Read failures
// abort; lex failures are reported per file.
func (c *CommandContext) LexPaths(ctx context.Context, paths []string) ([]LexResult, error) {
	files, err := ReadFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	results := make([]LexResult, len(files))
	for i, f := range files {
		results[i] = c.Lex(f)
	}
	return results, nil
}

// ReportError prints err, rendering it with source context when it carries a
// diagnostic.
func (c *CommandContext) ReportError(err error) {
	d, ok := parser.AsDiagnostic(err)
	if !ok {
		c.Renderer.Errorf("error: %v", err)
		return
	}
	opts := c.Cfg.RenderOptions()
	opts.Color = c.Renderer.ColorMode()
	if rerr := diag.NewRenderer(c.Renderer.ErrWriter(), c.Sources, opts).Render(d); rerr != nil {
		c.Logger.Warn("failed to render diagnostic", slog.Any("error", rerr))
	}
}

// Listing builds the token listing for a successful result. Comments are
// dropped unless the config keeps them; keep, when non-nil, filters further.
func (c *CommandContext) Listing(res LexResult, keep func(token.Token) bool) *output.TokenListing {
	tokens := slices.DeleteFunc(res.Stream.Tokens(), func(tok token.Token) bool {
		if _, ok := tok.Kind.(token.Comment); ok && !c.Cfg.IncludeComments {
			return true
		}
		return keep != nil && !keep(tok)
	})
	return output.NewTokenListing(res.File, tokens)
}

// failedCount returns how many results carry an error.
func failedCount(results []LexResult) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

func lexFailure(failed, total int) error {
	if total == 1 {
		return ErrLexFailed
	}
	return fmt.Errorf("%d of %d files: %w", failed, total, ErrLexFailed)
}
