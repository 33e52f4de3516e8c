// Package classify assigns exactly one SemanticType to an operand.
//
// Classification is an ordered table of (predicate, type) rules evaluated
// top to bottom; the first match wins and the last rule always matches.
package classify

import (
	"strings"

	"github.com/roach88/sqlfrag/internal/command"
	"github.com/roach88/sqlfrag/internal/ir"
)

// Input is what a rule inspects: whether the operand is an object
// reference, and the case-folded first command token ("" when absent).
type Input struct {
	Reference  bool
	FirstToken string
}

// Rule maps a predicate to the type it assigns.
type Rule struct {
	Name  string
	Match func(Input) bool
	Type  ir.SemanticType
}

// SQL-literal codes compose the value from extracted parts.
var (
	sqlDateCodes      = codeSet("sql:date", "sqldate", "sd")
	sqlTimeCodes      = codeSet("sql:time", "sqltime", "st")
	sqlTimestampCodes = codeSet("sql:timestamp", "sqltimestamp", "sts")
)

// Host-native codes use the host's canonical text.
var (
	hostTimeCodes      = codeSet("host:time", "time", "tm")
	hostTimestampCodes = codeSet("host:timestamp", "timestamp", "ts")
)

var rules = []Rule{
	{Name: "reference starting with t", Type: ir.Table, Match: func(in Input) bool {
		return in.Reference && strings.HasPrefix(in.FirstToken, "t")
	}},
	{Name: "reference", Type: ir.Field, Match: func(in Input) bool {
		return in.Reference
	}},
	{Name: "sql date code", Type: ir.DateSQL, Match: inSet(sqlDateCodes)},
	{Name: "sql time code", Type: ir.TimeSQL, Match: inSet(sqlTimeCodes)},
	{Name: "sql timestamp code", Type: ir.TimestampSQL, Match: inSet(sqlTimestampCodes)},
	{Name: "host time code", Type: ir.Time, Match: inSet(hostTimeCodes)},
	{Name: "host timestamp code", Type: ir.Timestamp, Match: inSet(hostTimestampCodes)},
	{Name: "starts with d", Type: ir.Date, Match: startsWith("d")},
	{Name: "starts with n", Type: ir.Number, Match: startsWith("n")},
	{Name: "starts with l", Type: ir.Literal, Match: startsWith("l")},
	{Name: "default", Type: ir.Text, Match: func(Input) bool { return true }},
}

// Rules returns a copy of the rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Classify returns the type of the first matching rule.
func Classify(in Input) ir.SemanticType {
	in.FirstToken = command.Fold(in.FirstToken)
	for _, r := range rules {
		if r.Match(in) {
			return r.Type
		}
	}
	// unreachable: the default rule matches everything
	return ir.Text
}

// ForOperand classifies an operand with its token stream.
func ForOperand(op ir.Operand, tokens []ir.Token) ir.SemanticType {
	_, isRef := ir.AsReference(op)
	in := Input{Reference: isRef}
	if len(tokens) > 0 {
		in.FirstToken = tokens[0].Text
	}
	return Classify(in)
}

func codeSet(codes ...string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}

func inSet(set map[string]bool) func(Input) bool {
	return func(in Input) bool { return set[in.FirstToken] }
}

func startsWith(prefix string) func(Input) bool {
	return func(in Input) bool { return strings.HasPrefix(in.FirstToken, prefix) }
}
