package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Check that source files lex cleanly",
		Long: `Lex each file without printing tokens. Prints "ok" with the token count
for every clean file and a diagnostic for every failure.`,
		Example: `  casm check *.casm`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args)
		},
	}
}

func runCheck(cmd *cobra.Command, paths []string) error {
	c := NewCommandContext(cmd)

	results, err := c.LexPaths(cmd.Context(), paths)
	if err != nil {
		return err
	}
	return c.reportCheck(results)
}

// reportCheck prints the outcome of every result and returns ErrLexFailed
// when any failed.
func (c *CommandContext) reportCheck(results []LexResult) error {
	for _, res := range results {
		if res.Err != nil {
			c.ReportError(res.Err)
			continue
		}
		c.Renderer.Success(fmt.Sprintf("ok  %s (%d tokens)", res.File.Path, res.Stream.Len()))
	}

	if failed := failedCount(results); failed > 0 {
		return lexFailure(failed, len(results))
	}
	return nil
}
