package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sqlfrag/internal/catalog"
)

// SourceOptions are the catalog flags shared by compile and catalog.
type SourceOptions struct {
	Catalog  string // CUE file or directory
	Database string // SQLite database
}

func (s *SourceOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.Catalog, "catalog", "", "CUE catalog file or directory")
	cmd.Flags().StringVar(&s.Database, "db", "", "SQLite database to read the schema from")
}

// sources merges the flags over the configured catalog.
func (s *SourceOptions) sources(opts *RootOptions) catalog.Sources {
	cfg := opts.settings().Catalog
	src := catalog.Sources{CUE: cfg.Path, Database: cfg.Database}
	if s.Catalog != "" {
		src.CUE = s.Catalog
	}
	if s.Database != "" {
		src.Database = s.Database
	}
	return src
}

// loadCatalog loads the catalog named by the flags and configuration.
// A nil catalog means no source was set.
func loadCatalog(ctx context.Context, opts *RootOptions, s *SourceOptions) (*catalog.Catalog, error) {
	return catalog.Load(ctx, s.sources(opts), opts.logger())
}

// CatalogOptions holds flags for the catalog command.
type CatalogOptions struct {
	*RootOptions
	SourceOptions
}

// CatalogListing is the JSON payload of the catalog command.
type CatalogListing struct {
	Tables []catalog.Table `json:"tables"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the tables references resolve against",
		Long: `Load the catalog from a CUE file or directory and/or a SQLite database
and list its tables and columns. CUE declarations override database
tables of the same name.

Examples:
  sqlfrag catalog --catalog ./schema.cue
  sqlfrag catalog --db ./shop.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(opts, cmd)
		},
	}

	opts.bind(cmd)

	return cmd
}

func runCatalog(opts *CatalogOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cat, err := loadCatalog(cmd.Context(), opts.RootOptions, &opts.SourceOptions)
	if err != nil {
		return formatter.Fail(loadErrorCode(err), "loading catalog", err)
	}

	tables := cat.Tables()
	if opts.Format == "json" {
		if tables == nil {
			tables = []catalog.Table{}
		}
		return formatter.Success(CatalogListing{Tables: tables})
	}

	w := formatter.Writer
	if cat == nil {
		fmt.Fprintln(w, "No catalog configured.")
		return nil
	}

	fmt.Fprintf(w, "%d table(s)\n", len(tables))
	for _, t := range tables {
		fmt.Fprintf(w, "\n%s", t.Name)
		if t.Source != "" {
			fmt.Fprintf(w, " (%s)", t.Source)
		}
		fmt.Fprintln(w)
		if len(t.Columns) == 0 {
			fmt.Fprintln(w, "  any column")
			continue
		}
		for _, c := range t.Columns {
			if c.Type != "" {
				fmt.Fprintf(w, "  %s %s\n", c.Name, c.Type)
			} else {
				fmt.Fprintf(w, "  %s\n", c.Name)
			}
		}
	}
	return nil
}
