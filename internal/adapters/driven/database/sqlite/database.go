// Package sqlite provides a read-only adapter over the business
// database. Queries are vetted in the domain layer before they arrive
// here; the connection is additionally opened in read-only mode as
// defence in depth.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
)

// Ensure Database implements the interface.
var _ driven.ReadOnlyDatabase = (*Database)(nil)

// Database executes read-only queries against a SQLite file.
type Database struct {
	db   *sql.DB
	path string
}

// Open opens the database file read-only. The file must exist; a
// missing path would otherwise be created empty and every query would
// fail with a confusing "no such table".
func Open(path string) (*Database, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database file: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &Database{db: db, path: path}, nil
}

// Path returns the database file path.
func (d *Database) Path() string {
	return d.path
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// Query executes one SELECT statement. Rows are capped at
// domain.MaxQueryRows; the Truncated flag reports whether the cap was
// hit. Cell values come back as the driver's native Go types.
func (d *Database) Query(ctx context.Context, query string) (domain.QueryResult, error) {
	var result domain.QueryResult

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return result, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return result, fmt.Errorf("reading columns: %w", err)
	}
	result.Columns = columns

	for rows.Next() {
		if len(result.Rows) >= domain.MaxQueryRows {
			result.Truncated = true
			break
		}

		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return result, fmt.Errorf("scanning row: %w", err)
		}

		// Byte slices alias driver buffers and are invalidated by the
		// next Scan, so copy them out as strings.
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("iterating rows: %w", err)
	}

	result.Success = true
	result.RowCount = len(result.Rows)
	return result, nil
}

// Schema introspects every user table: columns via PRAGMA table_info
// plus the current row count.
func (d *Database) Schema(ctx context.Context) (map[string]domain.TableSchema, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tables: %w", err)
	}

	schema := make(map[string]domain.TableSchema, len(tables))
	for _, table := range tables {
		tableSchema, err := d.tableSchema(ctx, table)
		if err != nil {
			return nil, err
		}
		schema[table] = tableSchema
	}

	return schema, nil
}

func (d *Database) tableSchema(ctx context.Context, table string) (domain.TableSchema, error) {
	var schema domain.TableSchema

	rows, err := d.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return schema, fmt.Errorf("introspecting %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &primaryKey); err != nil {
			return schema, fmt.Errorf("scanning column of %s: %w", table, err)
		}
		schema.Columns = append(schema.Columns, domain.ColumnSchema{
			Name:       name,
			Type:       typ,
			Nullable:   notNull == 0,
			PrimaryKey: primaryKey > 0,
		})
	}
	if err := rows.Err(); err != nil {
		return schema, fmt.Errorf("iterating columns of %s: %w", table, err)
	}

	row := d.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %q", table))
	if err := row.Scan(&schema.RowCount); err != nil {
		return schema, fmt.Errorf("counting rows of %s: %w", table, err)
	}

	return schema, nil
}
