// Package render converts a classified operand into SQL text.
//
// Quoting is decided here and only here: a value is wrapped in single quotes
// exactly when its SemanticType reports Quoted().
package render

import (
	"strings"

	"github.com/roach88/sqlfrag/internal/ir"
	"github.com/roach88/sqlfrag/internal/scalar"
)

// Escaper produces the SQL-safe form of a table or column name.
type Escaper interface {
	Escape(name string) string
}

// EscaperFunc adapts a function to Escaper.
type EscaperFunc func(string) string

// Escape calls f(name).
func (f EscaperFunc) Escape(name string) string { return f(name) }

// ScalarHost provides date/time part extraction and canonical coercion.
type ScalarHost interface {
	DateParts(raw string) (year, month, day int)
	TimeParts(raw string) (hour string, minute, second int)
	Date(raw string) string
	Time(raw string) string
	Timestamp(raw string) string
	Number(raw string) string
}

// Renderer renders operands. A nil Escaper leaves names untouched; a nil
// Host uses scalar.Host{}.
type Renderer struct {
	Escaper Escaper
	Host    ScalarHost
}

// Reference renders a resolved object reference as a Table or Field.
// Dangling references render their placeholder verbatim.
func (r *Renderer) Reference(ref ir.ResolvedReference, st ir.SemanticType) string {
	if ref.TablePath == ir.MissingTable || ref.TablePath == "" {
		return ir.MissingTable
	}
	table := r.escape(ref.TablePath)
	if st == ir.Table {
		return table
	}
	if ref.Column == ir.MissingColumn {
		return ir.MissingColumn
	}
	if ref.Column == "" {
		return table
	}
	return table + "." + r.escape(ref.Column)
}

// Scalar renders a scalar literal for st, quoting when st is quoted.
func (r *Renderer) Scalar(raw string, st ir.SemanticType) string {
	host := r.host()

	var body string
	switch st {
	case ir.Literal:
		return raw
	case ir.Number:
		return host.Number(raw)
	case ir.Date:
		body = host.Date(raw)
	case ir.DateSQL:
		body = sqlDate(host, raw)
	case ir.Time:
		body = host.Time(raw)
	case ir.TimeSQL:
		body = sqlTime(host, raw)
	case ir.Timestamp:
		body = host.Timestamp(raw)
	case ir.TimestampSQL:
		body = sqlDate(host, raw) + " " + sqlTime(host, raw)
	case ir.Table, ir.Field:
		// A scalar never classifies as a reference type; emit it bare.
		return raw
	default:
		body = strings.ReplaceAll(raw, "'", "")
	}
	return Quote(body)
}

// Quote wraps s in single quotes.
func Quote(s string) string {
	return "'" + s + "'"
}

func sqlDate(host ScalarHost, raw string) string {
	year, month, day := host.DateParts(raw)
	return scalar.FormatDate(year, month, day)
}

func sqlTime(host ScalarHost, raw string) string {
	hour, minute, second := host.TimeParts(raw)
	return scalar.FormatClock(scalar.Hour24(hour), minute, second)
}

func (r *Renderer) escape(name string) string {
	if r.Escaper == nil {
		return name
	}
	return r.Escaper.Escape(name)
}

func (r *Renderer) host() ScalarHost {
	if r.Host == nil {
		return scalar.Host{}
	}
	return r.Host
}
