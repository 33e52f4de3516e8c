// Package command turns free-form command text into an ordered token stream.
//
// The lexer is a participle rule table evaluated once per input. Compound
// namespace codes (sql:date, host:time) are a single rule, so they are never
// split on their separator and no escape marker is ever introduced into the
// text that flows downstream.
package command

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/sqlfrag/internal/ir"
	"github.com/roach88/sqlfrag/internal/normalize"
)

// CommandLexer defines the token rules for the command language.
// Order matters: earlier rules win at the same position.
var CommandLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Namespaced", Pattern: `(?i:sql|host):[\p{L}_]+`},
	{Name: "Marker", Pattern: `=>`},
	{Name: "String", Pattern: `'(?:''|[^'])*'?`},
	{Name: "Number", Pattern: `-?\d+(?:\.\d+)?\b`},
	{Name: "Word", Pattern: `[\p{L}\p{N}][\p{L}\p{N}_.:]*|_[\p{L}\p{N}_]+`},
	{Name: "Placeholder", Pattern: `_`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Help", Pattern: `\?`},
	{Name: "Operator", Pattern: `<>|<=|>=|!=|\|\||[=<>+\-*/%()]`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Other", Pattern: `\S`},
})

// sugarPhrases are optional multi-word aliases that carry no meaning.
// Each is matched case-insensitively as a whole token sequence.
var sugarPhrases = [][]string{
	{"of", "field"},
	{"of", "table"},
	{"of", "column"},
	{"in", "field"},
	{"in", "table"},
	{"in", "column"},
}

var kinds map[lexer.TokenType]ir.TokenKind

func init() {
	symbols := CommandLexer.Symbols()
	kinds = map[lexer.TokenType]ir.TokenKind{
		symbols["Namespaced"]:  ir.TokenNamespaced,
		symbols["Marker"]:      ir.TokenMarker,
		symbols["String"]:      ir.TokenString,
		symbols["Number"]:      ir.TokenNumber,
		symbols["Word"]:        ir.TokenWord,
		symbols["Placeholder"]: ir.TokenPlaceholder,
		symbols["Comma"]:       ir.TokenComma,
		symbols["Help"]:        ir.TokenHelp,
		symbols["Operator"]:    ir.TokenOperator,
		symbols["Other"]:       ir.TokenOther,
	}
}

// Tokenize splits a command string into tokens.
// Whitespace (spaces, tabs, line breaks) only separates tokens; sugar
// phrases are dropped. Tokenize never fails: unmatched bytes become
// TokenOther tokens.
func Tokenize(text string) []ir.Token {
	text = norm.NFC.String(normalize.Pad(text))
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lex, err := CommandLexer.Lex("", strings.NewReader(text))
	if err != nil {
		return fallback(text)
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return fallback(text)
	}

	whitespace := CommandLexer.Symbols()["Whitespace"]
	tokens := make([]ir.Token, 0, len(raw))
	for _, tok := range raw {
		if tok.EOF() || tok.Type == whitespace {
			continue
		}
		kind, ok := kinds[tok.Type]
		if !ok {
			kind = ir.TokenOther
		}
		tokens = append(tokens, ir.Token{Kind: kind, Text: tok.Value})
	}
	return dropSugar(tokens)
}

// fallback splits on whitespace. The rule table has a catch-all so this is
// only reached on reader failures.
func fallback(text string) []ir.Token {
	fields := strings.Fields(text)
	tokens := make([]ir.Token, len(fields))
	for i, f := range fields {
		tokens[i] = ir.Token{Kind: ir.TokenWord, Text: f}
	}
	return dropSugar(tokens)
}

// dropSugar removes every sugar phrase from the stream.
func dropSugar(tokens []ir.Token) []ir.Token {
	out := tokens[:0:0]
	for i := 0; i < len(tokens); {
		if n := matchSugar(tokens[i:]); n > 0 {
			i += n
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}

func matchSugar(tokens []ir.Token) int {
	for _, phrase := range sugarPhrases {
		if len(tokens) < len(phrase) {
			continue
		}
		matched := true
		for j, word := range phrase {
			if tokens[j].Kind != ir.TokenWord || Fold(tokens[j].Text) != word {
				matched = false
				break
			}
		}
		if matched {
			return len(phrase)
		}
	}
	return 0
}

// Fold returns the case-folded form used for keyword comparison.
// A Caser is stateful, so each call builds its own.
func Fold(s string) string {
	return cases.Fold().String(s)
}
