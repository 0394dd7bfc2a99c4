package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/casm/pkg/token"
)

var tokenKinds = []string{"ident", "comment", "integer", "colon", "comma"}

// TokensOptions holds the flags of the tokens command.
type TokensOptions struct {
	Kinds []string
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	opts := &TokensOptions{}

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "List the tokens of one file",
		Long: `Lex a single file and list its tokens with their locations.

Use --kind to keep only some token kinds.`,
		Example: `  # All tokens as a table
  casm tokens -o table main.casm

  # Only identifiers and integers
  casm tokens --kind ident --kind integer main.casm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Kinds, "kind", "k", nil, "Token kinds to keep ("+strings.Join(tokenKinds, "|")+")")
	_ = cmd.RegisterFlagCompletionFunc("kind", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return tokenKinds, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runTokens(cmd *cobra.Command, path string, opts *TokensOptions) error {
	for _, k := range opts.Kinds {
		if !slices.Contains(tokenKinds, k) {
			return fmt.Errorf("unknown token kind %q: must be one of %s", k, strings.Join(tokenKinds, ", "))
		}
	}

	c := NewCommandContext(cmd)

	results, err := c.LexPaths(cmd.Context(), []string{path})
	if err != nil {
		return err
	}
	res := results[0]
	if res.Err != nil {
		c.ReportError(res.Err)
		return ErrLexFailed
	}

	var keep func(token.Token) bool
	if len(opts.Kinds) > 0 {
		keep = func(tok token.Token) bool {
			return slices.Contains(opts.Kinds, token.KindName(tok.Kind))
		}
	}
	return c.Renderer.Tokens(c.Listing(res, keep))
}
