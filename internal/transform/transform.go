// Package transform is the default post-processing step applied to a
// rendered value by the command chain.
//
// Arguments are read either as a template, when they contain the _
// placeholder, or as a chain of registered commands. Words that are not
// commands are appended verbatim, so every argument list produces text.
package transform

import (
	"sort"
	"strings"
	"unicode"

	"github.com/roach88/sqlfrag/internal/command"
	"github.com/roach88/sqlfrag/internal/ir"
)

// Placeholder stands for the incoming value in a template.
const Placeholder = "_"

// step applies one command. It receives the arguments following the
// command word and returns the new value and how many arguments it used.
type step func(value string, rest []string) (string, int)

// Command describes a registered command for help output.
type Command struct {
	Name    string
	Usage   string
	Summary string
	apply   step
}

var registry = map[string]Command{}

func register(c Command) {
	registry[c.Name] = c
}

func init() {
	for _, fn := range []string{"upper", "lower", "trim", "length", "abs"} {
		name := fn
		register(Command{Name: name, Usage: name, Summary: "wrap the value in " + strings.ToUpper(name) + "()",
			apply: func(v string, _ []string) (string, int) {
				return strings.ToUpper(name) + "(" + v + ")", 0
			}})
	}
	register(Command{Name: "round", Usage: "round [digits]", Summary: "ROUND(value[, digits])",
		apply: func(v string, rest []string) (string, int) {
			if len(rest) > 0 && isNumber(rest[0]) {
				return "ROUND(" + v + ", " + rest[0] + ")", 1
			}
			return "ROUND(" + v + ")", 0
		}})
	register(Command{Name: "coalesce", Usage: "coalesce <fallback>", Summary: "COALESCE(value, fallback)",
		apply: func(v string, rest []string) (string, int) {
			if len(rest) == 0 {
				return v, 0
			}
			return "COALESCE(" + v + ", " + rest[0] + ")", 1
		}})
	register(Command{Name: "cast", Usage: "cast <type>", Summary: "CAST(value AS type)",
		apply: func(v string, rest []string) (string, int) {
			if len(rest) == 0 {
				return v, 0
			}
			return "CAST(" + v + " AS " + strings.ToUpper(rest[0]) + ")", 1
		}})
	register(Command{Name: "as", Usage: "as <alias>", Summary: "value AS alias",
		apply: func(v string, rest []string) (string, int) {
			if len(rest) == 0 {
				return v, 0
			}
			return v + " AS " + rest[0], 1
		}})
	register(Command{Name: "asc", Usage: "asc", Summary: "value ASC", apply: suffix("ASC")})
	register(Command{Name: "desc", Usage: "desc", Summary: "value DESC", apply: suffix("DESC")})
	register(Command{Name: "isnull", Usage: "isnull", Summary: "value IS NULL", apply: suffix("IS NULL")})
	register(Command{Name: "notnull", Usage: "notnull", Summary: "value IS NOT NULL", apply: suffix("IS NOT NULL")})

	for word, op := range map[string]string{"eq": "=", "ne": "<>", "lt": "<", "le": "<=", "gt": ">", "ge": ">=", "like": "LIKE"} {
		register(Command{Name: word, Usage: word + " <operand>", Summary: "value " + op + " operand", apply: binary(op)})
	}
	register(Command{Name: "in", Usage: "in <a> , <b> ...", Summary: "value IN (a, b, ...)",
		apply: func(v string, rest []string) (string, int) {
			var items []string
			for _, a := range rest {
				if a != "," {
					items = append(items, a)
				}
			}
			if len(items) == 0 {
				return v, len(rest)
			}
			return v + " IN (" + strings.Join(items, ", ") + ")", len(rest)
		}})
}

// Commands returns the registered commands sorted by name.
func Commands() []Command {
	out := make([]Command, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Transformer applies command arguments to a value. The zero value is ready
// to use and safe for concurrent use.
type Transformer struct{}

// Apply transforms value with args. On the second pass the incoming value is
// grouped in parentheses first when it is a compound expression, so right
// pass arguments act on the whole left pass result.
func (Transformer) Apply(value string, _ ir.SemanticType, args []string, secondPass bool) string {
	if len(args) == 0 {
		return value
	}
	if secondPass {
		value = Group(value)
	}
	if hasPlaceholder(args) {
		return Template(value, args)
	}

	for i := 0; i < len(args); {
		cmd, ok := registry[command.Fold(args[i])]
		if !ok {
			value += " " + args[i]
			i++
			continue
		}
		var used int
		value, used = cmd.apply(value, args[i+1:])
		i += 1 + used
	}
	return value
}

// Template replaces every placeholder in args with value and joins the
// result with SQL spacing.
func Template(value string, args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == Placeholder {
			parts[i] = value
		} else {
			parts[i] = a
		}
	}
	return JoinSQL(parts)
}

// spacedBeforeParen lists keywords that keep a space before "(".
var spacedBeforeParen = map[string]bool{
	"AND": true, "AS": true, "EXISTS": true, "IN": true, "NOT": true,
	"ON": true, "OR": true, "SELECT": true, "VALUES": true, "WHERE": true,
}

// JoinSQL joins tokens with single spaces, except before "," and ")", after
// "(", and between a function name and its "(".
func JoinSQL(tokens []string) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && needsSpace(tokens[i-1], tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}
	return b.String()
}

func needsSpace(prev, tok string) bool {
	switch {
	case tok == "," || tok == ")" || prev == "(":
		return false
	case tok == "(":
		return !isName(prev) || spacedBeforeParen[strings.ToUpper(prev)]
	}
	return true
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Group wraps a compound expression in parentheses. Single words, quoted
// literals, function calls and already-parenthesized expressions are
// returned as is.
func Group(v string) string {
	if !strings.ContainsAny(v, " \t\n") || isQuotedLiteral(v) || isParenthesized(v) || isCall(v) {
		return v
	}
	return "(" + v + ")"
}

func isCall(v string) bool {
	open := strings.IndexByte(v, '(')
	return open > 0 && isName(v[:open]) && isParenthesized(v[open:])
}

func isQuotedLiteral(v string) bool {
	if len(v) < 2 || v[0] != '\'' || v[len(v)-1] != '\'' {
		return false
	}
	return !strings.Contains(strings.ReplaceAll(v[1:len(v)-1], "''", ""), "'")
}

func isParenthesized(v string) bool {
	if len(v) < 2 || v[0] != '(' || v[len(v)-1] != ')' {
		return false
	}
	depth := 0
	for i := 0; i < len(v); i++ {
		switch v[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(v)-1 {
				return false
			}
		}
	}
	return depth == 0
}

func hasPlaceholder(args []string) bool {
	for _, a := range args {
		if a == Placeholder {
			return true
		}
	}
	return false
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func suffix(word string) step {
	return func(v string, _ []string) (string, int) {
		return v + " " + word, 0
	}
}

func binary(op string) step {
	return func(v string, rest []string) (string, int) {
		if len(rest) == 0 {
			return v, 0
		}
		return v + " " + op + " " + rest[0], 1
	}
}
