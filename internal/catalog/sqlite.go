package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// LoadSQLite reads the table and column names of the SQLite database at
// path. The database is opened read-only and never modified.
func LoadSQLite(ctx context.Context, path string) (*Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("database not found: %s", path)}
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDatabase, Message: fmt.Sprintf("failed to open database: %v", err)}
	}
	defer db.Close()

	// One connection is enough for a handful of catalog reads.
	db.SetMaxOpenConns(1)

	return FromDB(ctx, db, path)
}

// FromDB builds a catalog from the schema visible through db.
func FromDB(ctx context.Context, db *sql.DB, source string) (*Catalog, error) {
	names, err := tableNames(ctx, db)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDatabase, Message: fmt.Sprintf("list tables: %v", err)}
	}

	c := New()
	for _, name := range names {
		cols, err := tableColumns(ctx, db, name)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeDatabase, Message: fmt.Sprintf("read columns of %s: %v", name, err)}
		}
		c.Add(Table{Name: name, Columns: cols, Source: source})
	}
	return c, nil
}

func tableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func tableColumns(ctx context.Context, db *sql.DB, table string) ([]Column, error) {
	rows, err := db.QueryContext(ctx, `SELECT name, type FROM pragma_table_info(?) ORDER BY cid`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var col Column
		if err := rows.Scan(&col.Name, &col.Type); err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, rows.Err()
}
