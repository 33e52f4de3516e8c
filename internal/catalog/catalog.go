// Package catalog resolves object references against known tables.
//
// A catalog is built from a CUE file or directory, from the schema of a
// SQLite database, or from both. Names match without regard to case and
// resolve to their declared spelling.
package catalog

import (
	"sort"
	"strings"

	"github.com/roach88/sqlfrag/internal/ir"
)

// Column is a declared column.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Table is a declared table. A table with no columns accepts any column.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns,omitempty"`
	Source  string   `json:"source,omitempty"`
}

// Column returns the declared column matching name, ignoring case.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Column{}, false
}

// Catalog is a set of tables keyed by lower-case name.
type Catalog struct {
	tables  map[string]Table
	aliases map[string]string
}

// New creates a catalog holding tables.
func New(tables ...Table) *Catalog {
	c := &Catalog{
		tables:  make(map[string]Table),
		aliases: make(map[string]string),
	}
	for _, t := range tables {
		c.Add(t)
	}
	return c
}

// Add inserts or replaces a table.
func (c *Catalog) Add(t Table) {
	c.tables[strings.ToLower(t.Name)] = t
}

// AddAlias makes alias resolve to the table named target.
func (c *Catalog) AddAlias(alias, target string) {
	if strings.EqualFold(alias, target) {
		return
	}
	c.aliases[strings.ToLower(alias)] = strings.ToLower(target)
}

// Merge adds every table and alias of other. Tables in other win.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	for k, t := range other.tables {
		c.tables[k] = t
	}
	for k, v := range other.aliases {
		c.aliases[k] = v
	}
}

// Lookup finds a table by name or alias, ignoring case.
func (c *Catalog) Lookup(name string) (Table, bool) {
	if c == nil {
		return Table{}, false
	}
	key := strings.ToLower(name)
	if t, ok := c.tables[key]; ok {
		return t, true
	}
	if target, ok := c.aliases[key]; ok {
		t, ok := c.tables[target]
		return t, ok
	}
	return Table{}, false
}

// Tables returns all tables sorted by name.
func (c *Catalog) Tables() []Table {
	if c == nil {
		return nil
	}
	out := make([]Table, 0, len(c.tables))
	for _, t := range c.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Len returns the number of tables.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tables)
}

// Resolve maps ref onto the catalog. A nil catalog passes ref through.
func (c *Catalog) Resolve(ref ir.ObjectReference) ir.ResolvedReference {
	if c == nil {
		return ir.ResolvedReference{TablePath: ref.Table, Column: ref.Column}
	}

	t, ok := c.Lookup(ref.Table)
	if !ok {
		return ir.ResolvedReference{TablePath: ir.MissingTable}
	}
	out := ir.ResolvedReference{TablePath: t.Name}
	if !ref.HasColumn() {
		return out
	}
	if len(t.Columns) == 0 {
		out.Column = ref.Column
		return out
	}
	if col, ok := t.Column(ref.Column); ok {
		out.Column = col.Name
	} else {
		out.Column = ir.MissingColumn
	}
	return out
}
