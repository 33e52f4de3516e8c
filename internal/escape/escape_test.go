package escape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeDefaults(t *testing.T) {
	e := New()
	tests := []struct {
		in   string
		want string
	}{
		{"Orders", "Orders"},
		{"order_items", "order_items"},
		{"Order", `"Order"`},
		{"group", `"group"`},
		{"Order Items", `"Order Items"`},
		{"2fast", `"2fast"`},
		{`we"ird`, `"we""ird"`},
		{`"Already Quoted"`, `"Already Quoted"`},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Escape(tt.in))
		})
	}
}

func TestEscapeFold(t *testing.T) {
	lower := New(WithFold(FoldLower))
	assert.Equal(t, "orders", lower.Escape("Orders"))
	assert.Equal(t, "total", lower.Escape("Total"))
	assert.Equal(t, `"order"`, lower.Escape("ORDER"))

	upper := New(WithFold(FoldUpper))
	assert.Equal(t, "ORDERS", upper.Escape("Orders"))
}

func TestEscapeQuotePair(t *testing.T) {
	e := New(WithQuote("[]"))
	assert.Equal(t, "[Order Items]", e.Escape("Order Items"))
	assert.Equal(t, "[a]]b]", e.Escape("a]b"))
	assert.Equal(t, "[Select]", e.Escape("[Select]"))

	mysql := New(WithQuote("`"))
	assert.Equal(t, "`key`", mysql.Escape("key"))
}

func TestEscapeExtraReserved(t *testing.T) {
	e := New(WithReserved("status", " ", "Level"))
	assert.Equal(t, `"status"`, e.Escape("status"))
	assert.Equal(t, `"LEVEL"`, e.Escape("LEVEL"))
	assert.True(t, e.IsReserved("level"))
	assert.False(t, e.IsReserved("total"))
}

func TestZeroValueEscaper(t *testing.T) {
	var e Escaper
	assert.False(t, e.IsReserved("select"))
	assert.Equal(t, "select", e.Escape("select"))
	assert.Equal(t, `"a b"`, e.Escape("a b"))
}

func TestIsPlainIdentifier(t *testing.T) {
	assert.True(t, IsPlainIdentifier("a1"))
	assert.True(t, IsPlainIdentifier("_x"))
	assert.True(t, IsPlainIdentifier("café"))
	assert.False(t, IsPlainIdentifier("1a"))
	assert.False(t, IsPlainIdentifier("a-b"))
	assert.False(t, IsPlainIdentifier(""))
}
