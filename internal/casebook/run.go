package casebook

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/sqlfrag/internal/alias"
	"github.com/roach88/sqlfrag/internal/catalog"
	"github.com/roach88/sqlfrag/internal/compiler"
	"github.com/roach88/sqlfrag/internal/config"
	"github.com/roach88/sqlfrag/internal/ir"
	"github.com/roach88/sqlfrag/internal/optimizer"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Got    string `json:"got"`
	Expect string `json:"expect"`
	Pass   bool   `json:"pass"`
}

// Report is the outcome of one casebook run.
type Report struct {
	RunID   string       `json:"run_id"`
	Name    string       `json:"name"`
	Results []CaseResult `json:"results"`
	Passed  int          `json:"passed"`
	Failed  int          `json:"failed"`
}

// OK reports whether every case passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Runner executes casebooks.
type Runner struct {
	// Identifiers are the escaping defaults; a casebook may override them.
	Identifiers config.IdentifiersConfig
	IDs         IDGenerator
	Logger      *zap.Logger
}

// NewRunner creates a Runner with UUIDv7 run ids and lower-case folding.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Identifiers: config.IdentifiersConfig{Fold: "lower", Quote: `"`},
		IDs:         UUIDv7Generator{},
		Logger:      logger,
	}
}

// Run executes every case of book. An error means the casebook could not
// be run at all; failing cases are reported, not returned.
func (r *Runner) Run(ctx context.Context, book *Casebook) (*Report, error) {
	logger := r.logger().With(zap.String("casebook", book.Name))

	var cat *catalog.Catalog
	if book.Catalog != "" {
		loaded, err := catalog.Load(ctx, catalog.Sources{CUE: book.Catalog}, logger)
		if err != nil {
			return nil, fmt.Errorf("load catalog for %s: %w", book.Name, err)
		}
		cat = loaded
	}

	cfg := config.Config{Identifiers: r.identifiers(book), Output: config.OutputConfig{Format: "text"}}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("casebook %s: %w", book.Name, err)
	}
	escaper := cfg.Escaper()

	comp := compiler.New(
		compiler.WithResolver(cat),
		compiler.WithEscaper(escaper),
	)
	opt := optimizer.New(alias.New(escaper))

	report := &Report{RunID: r.ids().Generate(), Name: book.Name}
	for _, c := range book.Cases {
		res := CaseResult{Name: c.Name, Kind: c.Kind(), Expect: c.Expect}
		if c.Compile != nil {
			res.Got = comp.Compile(operand(c.Compile), c.Compile.Command).SQL
		} else {
			res.Got = opt.Optimize(c.Optimize).SQL
		}
		res.Pass = res.Got == c.Expect

		if res.Pass {
			report.Passed++
		} else {
			report.Failed++
			logger.Debug("case failed",
				zap.String("case", c.Name),
				zap.String("got", res.Got),
				zap.String("expect", c.Expect))
		}
		report.Results = append(report.Results, res)
	}

	logger.Debug("casebook finished",
		zap.String("run_id", report.RunID),
		zap.Int("passed", report.Passed),
		zap.Int("failed", report.Failed))
	return report, nil
}

func operand(step *CompileStep) ir.Operand {
	if step.Ref != "" {
		return ir.ParseReference(step.Ref)
	}
	if step.Value == nil {
		return ir.NewScalar("")
	}
	return ir.NewScalar(*step.Value)
}

func (r *Runner) identifiers(book *Casebook) config.IdentifiersConfig {
	ids := r.Identifiers
	if ids.Fold == "" {
		ids.Fold = "lower"
	}
	if ids.Quote == "" {
		ids.Quote = `"`
	}
	if o := book.Identifiers; o != nil {
		if o.Fold != "" {
			ids.Fold = o.Fold
		}
		if o.Quote != "" {
			ids.Quote = o.Quote
		}
		ids.Reserved = append(append([]string(nil), ids.Reserved...), o.Reserved...)
	}
	return ids
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *Runner) ids() IDGenerator {
	if r.IDs == nil {
		return UUIDv7Generator{}
	}
	return r.IDs
}
