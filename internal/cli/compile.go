package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/sqlfrag/internal/compiler"
	"github.com/roach88/sqlfrag/internal/help"
	"github.com/roach88/sqlfrag/internal/ir"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	SourceOptions
	Ref    string // Table::Column reference
	Value  string // raw scalar value
	Pretty bool   // render help answers as styled markdown
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile [--ref Table::Column | --value raw] <command...>",
		Short: "Compile an operand into a SQL fragment",
		Long: `Compile an object reference or a scalar value into a SQL fragment.

The first command word selects the type (f, t, d, n, sql:date, ...).
Words after it run as a first pass over the rendered value; words after
"=>" run as a second pass. With no operand, "?" prints help.

Examples:
  sqlfrag compile --ref Orders::Total f round 2 '=>' as amount
  sqlfrag compile --value 2024-03-09 sql:date
  sqlfrag compile ? types`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Ref, "ref", "", "object reference (Table::Column)")
	cmd.Flags().StringVar(&opts.Value, "value", "", "scalar value")
	cmd.Flags().BoolVar(&opts.Pretty, "pretty", false, "render help as styled markdown")
	opts.bind(cmd)

	return cmd
}

func runCompile(opts *CompileOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if cmd.Flags().Changed("ref") && cmd.Flags().Changed("value") {
		return formatter.Fail(ErrCodeInvalidArgs, "--ref and --value are mutually exclusive", nil)
	}

	var op ir.Operand = ir.NewScalar(opts.Value)
	if cmd.Flags().Changed("ref") {
		op = ir.ParseReference(opts.Ref)
	}

	cat, err := loadCatalog(cmd.Context(), opts.RootOptions, &opts.SourceOptions)
	if err != nil {
		return formatter.Fail(loadErrorCode(err), "loading catalog", err)
	}

	c := compiler.New(
		compiler.WithResolver(cat),
		compiler.WithEscaper(opts.settings().Escaper()),
	)

	command := strings.Join(args, " ")
	result := c.Compile(op, command)

	opts.logger().Debug("compiled fragment",
		zap.String("command", command),
		zap.String("type", result.Type.String()),
		zap.Strings("left", result.Left),
		zap.Strings("right", result.Right))
	formatter.VerboseLog("Tokens: %s", strings.Join(result.Tokens, " "))

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	if result.Help {
		out := result.SQL
		if opts.Pretty {
			styled, err := help.Pretty(out, defaultWidth)
			if err != nil {
				return formatter.Fail(ErrCodeRender, "rendering help", err)
			}
			out = styled
		}
		fmt.Fprint(formatter.Writer, out)
		return nil
	}

	fmt.Fprintln(formatter.Writer, result.SQL)
	return nil
}
