package ir

import "strings"

// ReferenceSeparator separates the table path from the column name in a
// textual object reference ("Orders::Total").
const ReferenceSeparator = "::"

// Placeholders produced by reference resolution for objects that no longer
// exist. The renderer emits them verbatim.
const (
	MissingTable  = "<Table Missing>"
	MissingColumn = "<Field Missing>"
)

// Operand is a sealed interface representing the input of a compile call.
// Only ObjectReference and ScalarLiteral implement it.
type Operand interface {
	operand() // Sealed - only these types implement it
}

// ObjectReference points at a table, or a column of a table, in the data store.
type ObjectReference struct {
	Table  string `json:"table"`
	Column string `json:"column,omitempty"`
}

func (ObjectReference) operand() {}

// String returns the reference in "Table::Column" form.
func (r ObjectReference) String() string {
	if r.Column == "" {
		return r.Table
	}
	return r.Table + ReferenceSeparator + r.Column
}

// HasColumn reports whether the reference names a column.
func (r ObjectReference) HasColumn() bool {
	return r.Column != ""
}

// ScalarLiteral is a raw scalar value (text, number, date, time, timestamp).
type ScalarLiteral struct {
	Raw string `json:"raw"`
}

func (ScalarLiteral) operand() {}

// ParseReference builds an ObjectReference from "Table" or "Table::Column".
// Only the first separator splits; the remainder belongs to the column.
func ParseReference(s string) ObjectReference {
	s = strings.TrimSpace(s)
	table, column, _ := strings.Cut(s, ReferenceSeparator)
	return ObjectReference{
		Table:  strings.TrimSpace(table),
		Column: strings.TrimSpace(column),
	}
}

// NewScalar creates a ScalarLiteral value.
func NewScalar(raw string) ScalarLiteral {
	return ScalarLiteral{Raw: raw}
}

// IsEmpty reports whether the operand carries no value at all.
// A nil operand is empty.
func IsEmpty(op Operand) bool {
	switch v := op.(type) {
	case nil:
		return true
	case ScalarLiteral:
		return v.Raw == ""
	case *ScalarLiteral:
		return v == nil || v.Raw == ""
	default:
		return false
	}
}

// AsReference returns the ObjectReference held by op, if any.
func AsReference(op Operand) (ObjectReference, bool) {
	switch v := op.(type) {
	case ObjectReference:
		return v, true
	case *ObjectReference:
		if v == nil {
			return ObjectReference{}, false
		}
		return *v, true
	default:
		return ObjectReference{}, false
	}
}

// AsScalar returns the ScalarLiteral held by op, if any.
func AsScalar(op Operand) (ScalarLiteral, bool) {
	switch v := op.(type) {
	case ScalarLiteral:
		return v, true
	case *ScalarLiteral:
		if v == nil {
			return ScalarLiteral{}, false
		}
		return *v, true
	default:
		return ScalarLiteral{}, false
	}
}

// ResolvedReference is the result of inspecting an ObjectReference.
// TablePath is MissingTable when the table does not exist; Column is
// MissingColumn when the table exists but the column does not.
type ResolvedReference struct {
	TablePath string `json:"table_path"`
	Column    string `json:"column,omitempty"`
}

// Dangling reports whether the reference points at nothing.
func (r ResolvedReference) Dangling() bool {
	return r.TablePath == MissingTable || r.Column == MissingColumn
}
