// Package alias gives the tables of a joined query short aliases and
// rewrites qualified column references to use them.
package alias

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"

	"github.com/roach88/sqlfrag/internal/escape"
)

var tableRef = regexp.MustCompile(`(?i)\b(?:FROM|JOIN)\s+("[^"]+"|[\p{L}_][\p{L}\p{N}_]*(?:\.[\p{L}_][\p{L}\p{N}_]*)?)`)

// clauseWords end a table reference; a word from this set after a table
// name is never read as its alias.
var clauseWords = map[string]bool{
	"ON": true, "USING": true, "WHERE": true, "JOIN": true, "INNER": true,
	"LEFT": true, "RIGHT": true, "FULL": true, "CROSS": true, "OUTER": true,
	"NATURAL": true, "ORDER": true, "GROUP": true, "LIMIT": true, "HAVING": true,
	"UNION": true, "OFFSET": true, "WINDOW": true, "EXCEPT": true, "INTERSECT": true,
}

// Table is one table reference found in a query.
type Table struct {
	Name  string
	Alias string
	// Added is true when the alias was generated rather than written.
	Added bool
	end   int
}

// Resolver assigns aliases. The zero value uses the default reserved words.
type Resolver struct {
	Escaper *escape.Escaper
}

// New creates a Resolver.
func New(e *escape.Escaper) *Resolver {
	return &Resolver{Escaper: e}
}

// ResolveAliases inserts an alias after every unaliased table and rewrites
// "<table>." qualifiers to "<alias>.".
func (r *Resolver) ResolveAliases(query string) string {
	tables := r.Tables(query)
	if len(tables) == 0 {
		return query
	}

	out := query
	// Insert from the back so earlier offsets stay valid.
	byEnd := append([]Table(nil), tables...)
	sort.Slice(byEnd, func(i, j int) bool { return byEnd[i].end > byEnd[j].end })
	for _, t := range byEnd {
		if t.Added {
			out = out[:t.end] + " " + t.Alias + out[t.end:]
		}
	}

	seen := make(map[string]bool)
	for _, t := range tables {
		key := strings.ToLower(t.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = requalify(out, t.Name, t.Alias)
	}
	return out
}

// Tables lists the tables referenced after FROM or JOIN, in query order,
// with their existing or generated aliases.
func (r *Resolver) Tables(query string) []Table {
	matches := tableRef.FindAllStringSubmatchIndex(query, -1)
	if matches == nil {
		return nil
	}

	used := make(map[string]bool)
	tables := make([]Table, 0, len(matches))
	for _, m := range matches {
		t := Table{Name: query[m[2]:m[3]], end: m[3]}
		if a := existingAlias(query[m[3]:]); a != "" {
			t.Alias = a
			used[strings.ToLower(a)] = true
		}
		tables = append(tables, t)
	}

	for i := range tables {
		if tables[i].Alias != "" {
			continue
		}
		tables[i].Alias = r.pick(baseAlias(tables[i].Name), used)
		tables[i].Added = true
		used[tables[i].Alias] = true
	}
	return tables
}

// baseAlias is the singular, lower-case last segment of a table name.
func baseAlias(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 && !strings.HasPrefix(name, `"`) {
		name = name[i+1:]
	}
	name = strings.Trim(name, `"`)
	name = strings.ToLower(inflection.Singular(name))

	var b strings.Builder
	for _, r := range name {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 || unicode.IsDigit([]rune(b.String())[0]) {
		return "t" + b.String()
	}
	return b.String()
}

func (r *Resolver) pick(base string, used map[string]bool) string {
	e := r.Escaper
	if e == nil {
		e = escape.New()
	}
	if !used[base] && !e.IsReserved(base) {
		return base
	}
	for n := 2; ; n++ {
		candidate := base + strconv.Itoa(n)
		if !used[candidate] && !e.IsReserved(candidate) {
			return candidate
		}
	}
}

// existingAlias returns the alias written after a table name, if any.
func existingAlias(rest string) string {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	word := fields[0]
	if strings.EqualFold(word, "AS") {
		if len(fields) < 2 {
			return ""
		}
		word = fields[1]
	}
	word = strings.TrimRight(word, ",;)")
	if !isIdentifier(word) || clauseWords[strings.ToUpper(word)] {
		return ""
	}
	return word
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

func requalify(query, table, alias string) string {
	pattern := `(^|[\s(])` + regexp.QuoteMeta(table) + `\.`
	if !strings.HasPrefix(table, `"`) {
		pattern = `(?i)` + pattern
	}
	return regexp.MustCompile(pattern).ReplaceAllString(query, "${1}"+alias+".")
}
