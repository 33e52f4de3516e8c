package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/sqlfrag/internal/ir"
)

func testCatalog() *Catalog {
	c := New(
		Table{Name: "orders", Columns: []Column{{Name: "id"}, {Name: "Total"}}},
		Table{Name: "Notes"},
	)
	c.AddAlias("Order", "orders")
	return c
}

func TestResolve(t *testing.T) {
	c := testCatalog()
	tests := []struct {
		name string
		ref  string
		want ir.ResolvedReference
	}{
		{"table only", "ORDERS", ir.ResolvedReference{TablePath: "orders"}},
		{"column canonical case", "Orders::total", ir.ResolvedReference{TablePath: "orders", Column: "Total"}},
		{"alias", "order::id", ir.ResolvedReference{TablePath: "orders", Column: "id"}},
		{"unknown column", "Orders::nope", ir.ResolvedReference{TablePath: "orders", Column: ir.MissingColumn}},
		{"unknown table", "Gone::id", ir.ResolvedReference{TablePath: ir.MissingTable}},
		{"open table", "notes::anything", ir.ResolvedReference{TablePath: "Notes", Column: "anything"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Resolve(ir.ParseReference(tt.ref)))
		})
	}
}

func TestNilCatalogPassesThrough(t *testing.T) {
	var c *Catalog
	got := c.Resolve(ir.ParseReference("Orders::Total"))
	assert.Equal(t, ir.ResolvedReference{TablePath: "Orders", Column: "Total"}, got)
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Tables())
}

func TestTablesSorted(t *testing.T) {
	c := testCatalog()
	tables := c.Tables()
	assert.Equal(t, "Notes", tables[0].Name)
	assert.Equal(t, "orders", tables[1].Name)
}

func TestMerge(t *testing.T) {
	c := testCatalog()
	c.Merge(New(Table{Name: "ORDERS", Columns: []Column{{Name: "x"}}}))
	c.Merge(nil)

	tbl, ok := c.Lookup("orders")
	assert.True(t, ok)
	assert.Equal(t, "ORDERS", tbl.Name)
	assert.Equal(t, 2, c.Len())
}
