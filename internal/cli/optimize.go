package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/sqlfrag/internal/alias"
	"github.com/roach88/sqlfrag/internal/optimizer"
)

// maxLoggedQuery bounds how much of a query goes into debug logs.
const maxLoggedQuery = 200

// NewOptimizeCommand creates the optimize command.
func NewOptimizeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize [query | -]",
		Short: "Simplify an assembled SQL query",
		Long: `Simplify an assembled SQL query.

Single-table selects lose redundant table qualifiers, joined selects get
short table aliases, and other statements only have their whitespace
cleaned up. With no argument or "-", the query is read from stdin.

Examples:
  sqlfrag optimize "SELECT Orders.id FROM Orders"
  cat query.sql | sqlfrag optimize -`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runOptimize(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	query, err := readQuery(args, cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(ErrCodeReadInput, "reading query", err)
	}

	o := optimizer.New(alias.New(opts.settings().Escaper()))
	result := o.Optimize(query)

	opts.logger().Debug("optimized query",
		zap.Stringer("shape", result.Shape),
		zap.String("table", result.Table),
		zap.String("query", truncate(query, maxLoggedQuery)))
	formatter.VerboseLog("Shape: %s", result.Shape)

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintln(formatter.Writer, result.SQL)
	return nil
}

func readQuery(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
