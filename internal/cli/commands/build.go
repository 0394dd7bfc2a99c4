package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/casm/internal/cli/output"
)

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build <file>...",
		Short: "Lex source files and print their token streams",
		Long: `Read each file, register it as a source, and lex it into a token stream.

Every successfully lexed file is printed; every failure is rendered as a
diagnostic on stderr. The command fails if any file failed to lex.

Output adapts to environment:
  - Terminal: one table per file
  - Piped/Scripted: one line per token

Use --output to override: auto, text, table, json, yaml, dump`,
		Example: `  # Lex a program
  casm build main.casm

  # Lex several files as JSON
  casm build -o json boot.casm main.casm

  # Hide comment tokens
  casm build --comments=false main.casm`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args)
		},
	}
}

func runBuild(cmd *cobra.Command, paths []string) error {
	c := NewCommandContext(cmd)

	results, err := c.LexPaths(cmd.Context(), paths)
	if err != nil {
		return err
	}

	var listings []*output.TokenListing
	for _, res := range results {
		if res.Err != nil {
			c.ReportError(res.Err)
			continue
		}
		listings = append(listings, c.Listing(res, nil))
	}

	if len(listings) > 0 {
		if err := c.Renderer.Tokens(listings...); err != nil {
			return err
		}
	}

	if failed := failedCount(results); failed > 0 {
		return lexFailure(failed, len(results))
	}
	return nil
}
