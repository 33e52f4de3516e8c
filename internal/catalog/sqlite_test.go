package catalog

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlfrag/internal/ir"
)

func createDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE Orders (id INTEGER PRIMARY KEY, Total REAL, customer_id INTEGER);
		CREATE TABLE customers (id INTEGER PRIMARY KEY, name TEXT);
		CREATE VIEW open_orders AS SELECT id FROM Orders;
	`)
	require.NoError(t, err)
	return path
}

func TestLoadSQLite(t *testing.T) {
	c, err := LoadSQLite(context.Background(), createDB(t))
	require.NoError(t, err)

	tables := c.Tables()
	require.Len(t, tables, 3)
	assert.Equal(t, "customers", tables[0].Name)
	assert.Equal(t, "open_orders", tables[1].Name)
	assert.Equal(t, "Orders", tables[2].Name)
	assert.Equal(t, []Column{{"id", "INTEGER"}, {"Total", "REAL"}, {"customer_id", "INTEGER"}}, tables[2].Columns)

	assert.Equal(t,
		ir.ResolvedReference{TablePath: "Orders", Column: "Total"},
		c.Resolve(ir.ParseReference("orders::total")))
	assert.Equal(t,
		ir.ResolvedReference{TablePath: "customers", Column: ir.MissingColumn},
		c.Resolve(ir.ParseReference("Customers::email")))
}

func TestLoadSQLiteMissing(t *testing.T) {
	_, err := LoadSQLite(context.Background(), filepath.Join(t.TempDir(), "none.db"))
	assertCode(t, err, ErrCodeNotFound)
}

func TestLoadMergesCUEOverDatabase(t *testing.T) {
	c, err := Load(context.Background(), Sources{
		CUE:      filepath.Join("testdata", "shop.cue"),
		Database: createDB(t),
	}, nil)
	require.NoError(t, err)

	orders, ok := c.Lookup("orders")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("testdata", "shop.cue"), orders.Source)
	_, ok = c.Lookup("open_orders")
	assert.True(t, ok)
}
