// Package compiler renders a single SQL fragment from an operand and a
// command string.
//
// The pipeline is fixed: tokenize, answer help requests, classify, render,
// then run up to two transformer passes split at the "=>" marker, and
// finally clean up whitespace. Every input yields text; nothing here
// returns an error.
package compiler

import (
	"github.com/roach88/sqlfrag/internal/classify"
	"github.com/roach88/sqlfrag/internal/command"
	"github.com/roach88/sqlfrag/internal/help"
	"github.com/roach88/sqlfrag/internal/ir"
	"github.com/roach88/sqlfrag/internal/normalize"
	"github.com/roach88/sqlfrag/internal/render"
	"github.com/roach88/sqlfrag/internal/scalar"
	"github.com/roach88/sqlfrag/internal/transform"
)

// ReferenceResolver maps an object reference to the table path and column
// it names. Unknown objects resolve to ir.MissingTable or ir.MissingColumn.
type ReferenceResolver interface {
	Resolve(ref ir.ObjectReference) ir.ResolvedReference
}

// Transformer is the post-processing step run once per non-empty pass.
type Transformer interface {
	Apply(value string, st ir.SemanticType, args []string, secondPass bool) string
}

// HelpRenderer produces documentation for a help request.
type HelpRenderer interface {
	Render(args []string) string
}

// PassthroughResolver resolves every reference to itself.
type PassthroughResolver struct{}

// Resolve returns the reference's own table and column.
func (PassthroughResolver) Resolve(ref ir.ObjectReference) ir.ResolvedReference {
	return ir.ResolvedReference{TablePath: ref.Table, Column: ref.Column}
}

// Compiler holds the collaborators. Nil fields fall back to the defaults
// in New, so a zero Compiler is usable too.
type Compiler struct {
	Resolver    ReferenceResolver
	Escaper     render.Escaper
	Transformer Transformer
	Help        HelpRenderer
	Host        render.ScalarHost
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithResolver sets the reference resolver.
func WithResolver(r ReferenceResolver) Option {
	return func(c *Compiler) { c.Resolver = r }
}

// WithEscaper sets the identifier escaper.
func WithEscaper(e render.Escaper) Option {
	return func(c *Compiler) { c.Escaper = e }
}

// WithTransformer sets the pass transformer.
func WithTransformer(t Transformer) Option {
	return func(c *Compiler) { c.Transformer = t }
}

// WithHelp sets the help renderer.
func WithHelp(h HelpRenderer) Option {
	return func(c *Compiler) { c.Help = h }
}

// WithHost sets the scalar host.
func WithHost(h render.ScalarHost) Option {
	return func(c *Compiler) { c.Host = h }
}

// New creates a Compiler with default collaborators.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		Resolver:    PassthroughResolver{},
		Transformer: transform.Transformer{},
		Help:        help.Renderer{},
		Host:        scalar.Host{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the outcome of one compile call.
type Result struct {
	SQL    string          `json:"sql"`
	Type   ir.SemanticType `json:"type"`
	Tokens []string        `json:"tokens,omitempty"`
	Left   []string        `json:"left,omitempty"`
	Right  []string        `json:"right,omitempty"`
	Help   bool            `json:"help,omitempty"`
}

// Compile renders op under command.
func (c *Compiler) Compile(op ir.Operand, cmd string) Result {
	tokens := command.Tokenize(cmd)
	texts := ir.Texts(tokens)

	if isHelpRequest(op, tokens) {
		return Result{
			SQL:    c.help().Render(texts[1:]),
			Tokens: texts,
			Help:   true,
		}
	}

	st := classify.ForOperand(op, tokens)
	value := c.render(op, st)

	var rest []string
	if len(texts) > 0 {
		rest = texts[1:]
	}
	left, right := SplitPasses(rest)

	if len(left) > 0 {
		value = c.transformer().Apply(value, st, left, false)
	}
	if len(right) > 0 {
		value = c.transformer().Apply(value, st, right, true)
	}

	return Result{
		SQL:    normalize.Clean(value),
		Type:   st,
		Tokens: texts,
		Left:   left,
		Right:  right,
	}
}

// SplitPasses splits args at the first pass marker. The marker itself
// belongs to neither side.
func SplitPasses(args []string) (left, right []string) {
	for i, a := range args {
		if a == ir.PassMarker {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

// isHelpRequest needs only the first token to be "?"; the tokens after it
// name help topics.
func isHelpRequest(op ir.Operand, tokens []ir.Token) bool {
	return ir.IsEmpty(op) && len(tokens) > 0 && tokens[0].Kind == ir.TokenHelp
}

func (c *Compiler) render(op ir.Operand, st ir.SemanticType) string {
	r := render.Renderer{Escaper: c.Escaper, Host: c.Host}
	if ref, ok := ir.AsReference(op); ok {
		return r.Reference(c.resolver().Resolve(ref), st)
	}
	lit, _ := ir.AsScalar(op)
	return r.Scalar(lit.Raw, st)
}

func (c *Compiler) resolver() ReferenceResolver {
	if c.Resolver == nil {
		return PassthroughResolver{}
	}
	return c.Resolver
}

func (c *Compiler) transformer() Transformer {
	if c.Transformer == nil {
		return transform.Transformer{}
	}
	return c.Transformer
}

func (c *Compiler) help() HelpRenderer {
	if c.Help == nil {
		return help.Renderer{}
	}
	return c.Help
}
