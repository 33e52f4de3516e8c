package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		in   string
		want ObjectReference
	}{
		{"Orders::Total", ObjectReference{Table: "Orders", Column: "Total"}},
		{"Orders", ObjectReference{Table: "Orders"}},
		{" Orders :: Total ", ObjectReference{Table: "Orders", Column: "Total"}},
		{"Order Items::Unit Price", ObjectReference{Table: "Order Items", Column: "Unit Price"}},
		{"A::B::C", ObjectReference{Table: "A", Column: "B::C"}},
		{"", ObjectReference{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseReference(tt.in))
		})
	}
}

func TestObjectReferenceString(t *testing.T) {
	assert.Equal(t, "Orders::Total", ObjectReference{Table: "Orders", Column: "Total"}.String())
	assert.Equal(t, "Orders", ObjectReference{Table: "Orders"}.String())
	assert.True(t, ParseReference("a::b").HasColumn())
	assert.False(t, ParseReference("a").HasColumn())
}

func TestIsEmpty(t *testing.T) {
	var nilScalar *ScalarLiteral

	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(NewScalar("")))
	assert.True(t, IsEmpty(nilScalar))
	assert.False(t, IsEmpty(NewScalar("x")))
	assert.False(t, IsEmpty(ObjectReference{}))
}

func TestOperandAccessors(t *testing.T) {
	ref, ok := AsReference(ParseReference("T::c"))
	assert.True(t, ok)
	assert.Equal(t, "T", ref.Table)

	_, ok = AsReference(NewScalar("x"))
	assert.False(t, ok)

	_, ok = AsReference((*ObjectReference)(nil))
	assert.False(t, ok)

	sc, ok := AsScalar(&ScalarLiteral{Raw: "42"})
	assert.True(t, ok)
	assert.Equal(t, "42", sc.Raw)

	_, ok = AsScalar(ObjectReference{Table: "T"})
	assert.False(t, ok)
}

func TestResolvedReferenceDangling(t *testing.T) {
	assert.True(t, ResolvedReference{TablePath: MissingTable}.Dangling())
	assert.True(t, ResolvedReference{TablePath: "orders", Column: MissingColumn}.Dangling())
	assert.False(t, ResolvedReference{TablePath: "orders", Column: "total"}.Dangling())
}
