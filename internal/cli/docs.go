package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sqlfrag/internal/help"
)

// defaultWidth is the word-wrap width for styled markdown.
const defaultWidth = 80

// DocsOptions holds flags for the docs command.
type DocsOptions struct {
	*RootOptions
	Pretty bool
	Width  int
}

// DocsPage is the JSON payload of the docs command.
type DocsPage struct {
	Topics   []string `json:"topics"`
	Markdown string   `json:"markdown"`
}

// NewDocsCommand creates the docs command.
func NewDocsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DocsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "docs [topic...]",
		Short: "Show command language documentation",
		Long: `Show the documentation that "?" answers inside a command string.

With no topic the index is shown. Known topics: commands, passes,
references, types.

Examples:
  sqlfrag docs
  sqlfrag docs types passes --pretty`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocs(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Pretty, "pretty", false, "render as styled markdown")
	cmd.Flags().IntVar(&opts.Width, "width", defaultWidth, "word-wrap width for --pretty")

	return cmd
}

func runDocs(opts *DocsOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	markdown := help.Render(args)

	if opts.Format == "json" {
		return formatter.Success(DocsPage{Topics: help.Topics(), Markdown: markdown})
	}

	if opts.Pretty {
		styled, err := help.Pretty(markdown, opts.Width)
		if err != nil {
			return formatter.Fail(ErrCodeRender, "rendering documentation", err)
		}
		markdown = styled
	}
	fmt.Fprint(formatter.Writer, markdown)
	return nil
}
