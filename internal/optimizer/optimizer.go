// Package optimizer simplifies assembled SQL queries.
//
// A query is classified by keyword counting alone. Simple single-table
// selects lose the redundant table qualifier on their column references,
// joined selects are handed to an AliasResolver, and everything else
// passes through. Every branch ends with whitespace cleanup.
//
// Qualifier stripping does not look for column-name collisions: a column
// that exists under the same name in a subquery or literal is stripped too.
package optimizer

import (
	"regexp"
	"strings"

	"github.com/roach88/sqlfrag/internal/ir"
	"github.com/roach88/sqlfrag/internal/normalize"
)

// AliasResolver rewrites a joined query to use short table aliases.
type AliasResolver interface {
	ResolveAliases(query string) string
}

// AliasResolverFunc adapts a function to AliasResolver.
type AliasResolverFunc func(string) string

// ResolveAliases calls f(query).
func (f AliasResolverFunc) ResolveAliases(query string) string { return f(query) }

var (
	selectPrefix = regexp.MustCompile(`(?i)^\s*SELECT\b`)
	selectWord   = keyword("SELECT")
	fromWord     = keyword("FROM")
	joinWord     = keyword("JOIN")
	mutatingWord = regexp.MustCompile(`(?i)\b(?:INSERT|UPDATE|DELETE)\b`)
	boundaries   = []*regexp.Regexp{keyword("WHERE"), keyword("ORDER"), keyword("GROUP")}
)

func keyword(word string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + word + `\b`)
}

// Optimizer reduces queries. The zero value passes joined queries through.
type Optimizer struct {
	Aliases AliasResolver
}

// New creates an Optimizer that delegates joined queries to aliases.
func New(aliases AliasResolver) *Optimizer {
	return &Optimizer{Aliases: aliases}
}

// Result is the outcome of one optimize call.
type Result struct {
	SQL   string        `json:"sql"`
	Shape ir.QueryShape `json:"shape"`
	Table string        `json:"table,omitempty"`
}

// Optimize classifies query and applies the matching rewrite.
func (o *Optimizer) Optimize(query string) Result {
	padded := normalize.Pad(query)
	shape := Classify(padded)

	switch shape {
	case ir.SimpleSelect:
		table := TableName(FromClause(padded))
		out := padded
		if table != "" {
			out = StripQualifier(padded, table)
		}
		return Result{SQL: normalize.Clean(out), Shape: shape, Table: table}
	case ir.JoinedSelect:
		out := padded
		if o != nil && o.Aliases != nil {
			out = o.Aliases.ResolveAliases(padded)
		}
		return Result{SQL: normalize.Clean(out), Shape: shape}
	default:
		return Result{SQL: normalize.Clean(padded), Shape: shape}
	}
}

// Classify returns the shape of a padded query.
func Classify(query string) ir.QueryShape {
	isSelect := selectPrefix.MatchString(query) && fromWord.MatchString(query)
	isNested := isSelect && (len(selectWord.FindAllStringIndex(query, 2)) > 1 || mutatingWord.MatchString(query))
	isSimple := !isNested && !joinWord.MatchString(query)

	switch {
	case isSelect && isSimple:
		return ir.SimpleSelect
	case isSelect && !isNested && !isSimple:
		return ir.JoinedSelect
	default:
		return ir.NestedOrMutating
	}
}

// FromClause returns the text from the first FROM keyword up to the first
// following WHERE, ORDER or GROUP keyword, or to the end of the query.
// It returns "" when there is no FROM.
func FromClause(query string) string {
	loc := fromWord.FindStringIndex(query)
	if loc == nil {
		return ""
	}
	start := loc[0]
	end := len(query)
	rest := query[loc[1]:]
	for _, re := range boundaries {
		if b := re.FindStringIndex(rest); b != nil && loc[1]+b[0] < end {
			end = loc[1] + b[0]
		}
	}
	return query[start:end]
}

// TableName returns the word after FROM in a FROM clause. Double-quoted
// names are returned whole, quotes included. Only the first table is taken.
func TableName(clause string) string {
	body := strings.TrimSpace(clause)
	if len(body) < 4 {
		return ""
	}
	body = strings.TrimLeft(body[4:], " \t\r\n")
	if body == "" {
		return ""
	}

	if body[0] == '"' {
		if end := strings.IndexByte(body[1:], '"'); end >= 0 {
			return body[:end+2]
		}
		return ""
	}

	name, _, _ := strings.Cut(body, " ")
	return strings.TrimRight(name, ";,)\r\n\t")
}

// StripQualifier removes every "<table>." that starts a word: at the start
// of the query or after a space or "(". Unquoted names match without
// regard to case.
func StripQualifier(query, table string) string {
	pattern := `(^|[\s(])` + regexp.QuoteMeta(table) + `\.`
	if !strings.HasPrefix(table, `"`) {
		pattern = `(?i)` + pattern
	}
	return regexp.MustCompile(pattern).ReplaceAllString(query, "${1}")
}
