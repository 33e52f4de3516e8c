// Package escape quotes table and column names that are reserved words or
// not plain identifiers.
package escape

import (
	"strings"
	"unicode"
)

// Fold selects case folding applied before quoting decisions.
type Fold string

const (
	FoldNone  Fold = "none"
	FoldLower Fold = "lower"
	FoldUpper Fold = "upper"
)

// ValidFolds defines the allowed fold settings.
var ValidFolds = []Fold{FoldNone, FoldLower, FoldUpper}

// reservedWords is the common ANSI/SQLite core. Extra words come from config.
var reservedWords = []string{
	"ADD", "ALL", "ALTER", "AND", "AS", "ASC", "BETWEEN", "BY", "CASE", "CAST",
	"CHECK", "COLUMN", "CONSTRAINT", "CREATE", "CROSS", "CURRENT", "CURRENT_DATE",
	"CURRENT_TIME", "CURRENT_TIMESTAMP", "DATE", "DEFAULT", "DELETE", "DESC",
	"DISTINCT", "DROP", "ELSE", "END", "EXCEPT", "EXISTS", "FALSE", "FOR",
	"FOREIGN", "FROM", "FULL", "GROUP", "HAVING", "IN", "INDEX", "INNER",
	"INSERT", "INTERSECT", "INTO", "IS", "JOIN", "KEY", "LEFT", "LIKE", "LIMIT",
	"NOT", "NULL", "OFFSET", "ON", "OR", "ORDER", "OUTER", "PRIMARY",
	"REFERENCES", "RIGHT", "ROW", "SELECT", "SET", "TABLE", "THEN", "TIME",
	"TIMESTAMP", "TO", "TRUE", "UNION", "UNIQUE", "UPDATE", "USER", "USING",
	"VALUES", "VIEW", "WHEN", "WHERE", "WITH",
}

// Escaper renders SQL-safe identifiers. Build one with New; the zero value
// quotes with double quotes but treats no word as reserved.
type Escaper struct {
	fold     Fold
	quote    string
	reserved map[string]bool
}

// Option configures an Escaper.
type Option func(*Escaper)

// WithFold sets the case folding.
func WithFold(f Fold) Option {
	return func(e *Escaper) { e.fold = f }
}

// WithQuote sets the quote character(s). A two-character value is read as
// an opening/closing pair ("[]", "``").
func WithQuote(q string) Option {
	return func(e *Escaper) { e.quote = q }
}

// WithReserved adds reserved words.
func WithReserved(words ...string) Option {
	return func(e *Escaper) {
		for _, w := range words {
			w = strings.TrimSpace(w)
			if w != "" {
				e.reserved[strings.ToUpper(w)] = true
			}
		}
	}
}

// New creates an Escaper.
func New(opts ...Option) *Escaper {
	e := &Escaper{
		fold:     FoldNone,
		quote:    `"`,
		reserved: make(map[string]bool, len(reservedWords)),
	}
	for _, w := range reservedWords {
		e.reserved[w] = true
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Escape returns name folded and, when it is reserved or not a plain
// identifier, quoted. Names that are already quoted pass through.
func (e *Escaper) Escape(name string) string {
	if name == "" || e.isQuoted(name) {
		return name
	}

	switch e.fold {
	case FoldLower:
		name = strings.ToLower(name)
	case FoldUpper:
		name = strings.ToUpper(name)
	}

	if e.IsReserved(name) || !IsPlainIdentifier(name) {
		return e.wrap(name)
	}
	return name
}

// IsReserved reports whether name is a reserved word, ignoring case.
func (e *Escaper) IsReserved(name string) bool {
	if e.reserved == nil {
		return false
	}
	return e.reserved[strings.ToUpper(name)]
}

// IsPlainIdentifier reports whether name needs no quoting: a letter or
// underscore followed by letters, digits or underscores.
func IsPlainIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

func (e *Escaper) open() string {
	if len(e.quote) == 2 {
		return e.quote[:1]
	}
	if e.quote == "" {
		return `"`
	}
	return e.quote
}

func (e *Escaper) close() string {
	if len(e.quote) == 2 {
		return e.quote[1:]
	}
	return e.open()
}

func (e *Escaper) wrap(name string) string {
	open, closing := e.open(), e.close()
	return open + strings.ReplaceAll(name, closing, closing+closing) + closing
}

func (e *Escaper) isQuoted(name string) bool {
	open, closing := e.open(), e.close()
	return len(name) >= 2 && strings.HasPrefix(name, open) && strings.HasSuffix(name, closing)
}
