package ir

import "fmt"

// SemanticType is the rendering class assigned to an operand.
// Exactly one is chosen per compile call.
type SemanticType int

const (
	Text SemanticType = iota // default: quoted string literal
	Table
	Field
	Literal
	Number
	Date
	Time
	Timestamp
	DateSQL
	TimeSQL
	TimestampSQL
)

var semanticTypeNames = map[SemanticType]string{
	Text:         "text",
	Table:        "table",
	Field:        "field",
	Literal:      "literal",
	Number:       "number",
	Date:         "date",
	Time:         "time",
	Timestamp:    "timestamp",
	DateSQL:      "sql:date",
	TimeSQL:      "sql:time",
	TimestampSQL: "sql:timestamp",
}

// AllSemanticTypes returns the enumerated set in declaration order.
func AllSemanticTypes() []SemanticType {
	return []SemanticType{Text, Table, Field, Literal, Number, Date, Time, Timestamp, DateSQL, TimeSQL, TimestampSQL}
}

// String returns the lower-case name of the type.
func (t SemanticType) String() string {
	if name, ok := semanticTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SemanticType(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler so types read well in JSON.
func (t SemanticType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Quoted reports whether values of this type are wrapped in single quotes.
// Table, Field, Number and Literal are emitted bare; everything else is quoted.
func (t SemanticType) Quoted() bool {
	switch t {
	case Table, Field, Number, Literal:
		return false
	default:
		return true
	}
}

// QueryShape classifies a full SQL query.
type QueryShape int

const (
	NestedOrMutating QueryShape = iota
	SimpleSelect
	JoinedSelect
)

// String returns the shape name.
func (s QueryShape) String() string {
	switch s {
	case SimpleSelect:
		return "simple"
	case JoinedSelect:
		return "joined"
	case NestedOrMutating:
		return "nested"
	default:
		return fmt.Sprintf("QueryShape(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s QueryShape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
