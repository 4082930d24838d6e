package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
)

func seedDatabase(t *testing.T, rows int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE customers (
			customer_id INTEGER PRIMARY KEY,
			first_name TEXT NOT NULL,
			email TEXT,
			city TEXT
		)
	`)
	require.NoError(t, err)

	for i := 1; i <= rows; i++ {
		_, err = db.Exec(
			`INSERT INTO customers (customer_id, first_name, email, city) VALUES (?, ?, ?, ?)`,
			i, fmt.Sprintf("customer%d", i), fmt.Sprintf("c%d@example.com", i), "Austin")
		require.NoError(t, err)
	}

	return path
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
}

func TestQuery_ReturnsColumnsAndRows(t *testing.T) {
	db, err := Open(seedDatabase(t, 3))
	require.NoError(t, err)
	defer db.Close()

	result, err := db.Query(context.Background(),
		"SELECT customer_id, first_name FROM customers ORDER BY customer_id")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []string{"customer_id", "first_name"}, result.Columns)
	require.Equal(t, 3, result.RowCount)
	assert.False(t, result.Truncated)
	assert.Equal(t, "customer1", result.Rows[0][1])
}

func TestQuery_CapsRows(t *testing.T) {
	db, err := Open(seedDatabase(t, domain.MaxQueryRows+20))
	require.NoError(t, err)
	defer db.Close()

	result, err := db.Query(context.Background(), "SELECT * FROM customers")

	require.NoError(t, err)
	assert.Equal(t, domain.MaxQueryRows, result.RowCount)
	assert.True(t, result.Truncated)
}

func TestQuery_ExecutionError(t *testing.T) {
	db, err := Open(seedDatabase(t, 1))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Query(context.Background(), "SELECT * FROM refunds")
	require.Error(t, err)
}

func TestQuery_WriteRejectedByReadOnlyConnection(t *testing.T) {
	db, err := Open(seedDatabase(t, 1))
	require.NoError(t, err)
	defer db.Close()

	// The domain guard blocks this first in production; the connection
	// itself is the second line of defence.
	_, err = db.Query(context.Background(), "DELETE FROM customers")
	require.Error(t, err)
}

func TestSchema_Introspection(t *testing.T) {
	db, err := Open(seedDatabase(t, 5))
	require.NoError(t, err)
	defer db.Close()

	schema, err := db.Schema(context.Background())

	require.NoError(t, err)
	require.Contains(t, schema, "customers")
	customers := schema["customers"]
	assert.Equal(t, 5, customers.RowCount)
	require.Len(t, customers.Columns, 4)

	assert.Equal(t, "customer_id", customers.Columns[0].Name)
	assert.True(t, customers.Columns[0].PrimaryKey)
	assert.Equal(t, "first_name", customers.Columns[1].Name)
	assert.False(t, customers.Columns[1].Nullable)
	assert.True(t, customers.Columns[2].Nullable)
}
