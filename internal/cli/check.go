package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/roach88/sqlfrag/internal/casebook"
)

var (
	passMark = color.New(color.FgGreen, color.Bold).Sprint("✓")
	failMark = color.New(color.FgRed, color.Bold).Sprint("✗")
	dimText  = color.New(color.Faint).SprintFunc()
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Filter string // casebook file filter (glob pattern)
}

// CasebookResult holds the outcome of one casebook file.
type CasebookResult struct {
	Name   string                `json:"name"`
	File   string                `json:"file"`
	RunID  string                `json:"run_id,omitempty"`
	Pass   bool                  `json:"pass"`
	Cases  []casebook.CaseResult `json:"cases,omitempty"`
	Errors []string              `json:"errors,omitempty"`
}

// CheckResult holds the overall check result.
type CheckResult struct {
	Casebooks []CasebookResult `json:"casebooks"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <casebook|dir>...",
		Short: "Run casebooks of expected fragments",
		Long: `Run casebooks: YAML files listing compile and optimize cases with the
SQL each one must produce. Directories are searched for .yaml and .yml
files.

Exit codes:
  0 - All cases passed
  1 - One or more cases failed
  2 - Command error (unreadable casebook, broken catalog, etc.)

Examples:
  sqlfrag check ./casebooks
  sqlfrag check orders.yaml --format json
  sqlfrag check ./casebooks --filter "order*"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter casebooks by glob pattern")

	return cmd
}

func runCheck(opts *CheckOptions, paths []string, cmd *cobra.Command) error {
	var files []string
	for _, p := range paths {
		found, err := findCasebookFiles(p, opts.Filter)
		if err != nil {
			return NewExitError(ExitCommandError, fmt.Sprintf("failed to find casebooks: %v", err))
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		if opts.Format == "json" {
			return outputCheckJSON(cmd, CheckResult{Casebooks: []CasebookResult{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No casebooks found.")
		return nil
	}

	runner := casebook.NewRunner(opts.logger())
	runner.Identifiers = opts.settings().Identifiers

	result := CheckResult{
		Casebooks: make([]CasebookResult, 0, len(files)),
		Total:     len(files),
	}
	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		w = io.Discard
	}

	for _, file := range files {
		res := runCasebook(cmd, runner, file, w)
		result.Casebooks = append(result.Casebooks, res)
		if res.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		return outputCheckJSON(cmd, result)
	}
	return outputCheckText(cmd, result)
}

// findCasebookFiles returns path itself when it is a file, or every YAML
// file below it when it is a directory.
func findCasebookFiles(path string, filter string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		ok, err := matchFilter(path, filter)
		if err != nil || !ok {
			return nil, err
		}
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if p != path && info.Name() == "golden" {
				return filepath.SkipDir
			}
			return nil
		}

		// Only process .yaml and .yml files
		ext := filepath.Ext(p)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		ok, err := matchFilter(p, filter)
		if err != nil {
			return err
		}
		if ok {
			files = append(files, p)
		}
		return nil
	})

	return files, err
}

func matchFilter(path, filter string) (bool, error) {
	if filter == "" {
		return true, nil
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	matched, err := filepath.Match(filter, name)
	if err != nil {
		return false, fmt.Errorf("invalid filter pattern: %w", err)
	}
	return matched, nil
}

// runCasebook loads and runs a single casebook, writing progress to w.
func runCasebook(cmd *cobra.Command, runner *casebook.Runner, file string, w io.Writer) CasebookResult {
	name := filepath.Base(file)

	book, err := casebook.Load(file)
	if err != nil {
		fmt.Fprintf(w, "%s %s\n", failMark, name)
		fmt.Fprintf(w, "  Load error: %v\n", err)
		return CasebookResult{
			Name:   name,
			File:   file,
			Errors: []string{fmt.Sprintf("failed to load casebook: %v", err)},
		}
	}

	report, err := runner.Run(cmd.Context(), book)
	if err != nil {
		fmt.Fprintf(w, "%s %s\n", failMark, book.Name)
		fmt.Fprintf(w, "  Run error: %v\n", err)
		return CasebookResult{
			Name:   book.Name,
			File:   file,
			Errors: []string{fmt.Sprintf("failed to run casebook: %v", err)},
		}
	}

	res := CasebookResult{
		Name:  book.Name,
		File:  file,
		RunID: report.RunID,
		Pass:  report.OK(),
		Cases: report.Results,
	}

	if res.Pass {
		fmt.Fprintf(w, "%s %s %s\n", passMark, book.Name, dimText(fmt.Sprintf("(%d case(s))", report.Passed)))
		return res
	}

	fmt.Fprintf(w, "%s %s %s\n", failMark, book.Name, dimText(fmt.Sprintf("(%d passed, %d failed)", report.Passed, report.Failed)))
	for _, c := range report.Results {
		if c.Pass {
			continue
		}
		fmt.Fprintf(w, "  %s %s %s\n", failMark, c.Kind, c.Name)
		fmt.Fprintf(w, "    expect: %s\n", c.Expect)
		fmt.Fprintf(w, "    got:    %s\n", c.Got)
	}
	return res
}

// outputCheckJSON outputs the check result as JSON.
func outputCheckJSON(cmd *cobra.Command, result CheckResult) error {
	status := "ok"
	if result.Failed > 0 {
		status = "error"
	}

	response := CLIResponse{
		Status: status,
		Data:   result,
	}

	if result.Failed > 0 {
		response.Error = &CLIError{
			Code:    ErrCodeCasebook,
			Message: fmt.Sprintf("%d casebook(s) failed", result.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d casebook(s) failed", result.Failed))
	}
	return nil
}

// outputCheckText outputs the check summary as text.
func outputCheckText(cmd *cobra.Command, result CheckResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Check Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d casebook(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "All casebooks passed")
	return nil
}
