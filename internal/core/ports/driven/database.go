package driven

import (
	"context"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
)

// ReadOnlyDatabase executes vetted SELECT queries against the business
// database. Safety vetting happens in the domain layer before a query
// reaches this port; implementations additionally open the connection
// read-only as defence in depth.
type ReadOnlyDatabase interface {
	// Query executes one SELECT statement and returns columns and rows,
	// capped at domain.MaxQueryRows with the Truncated flag set when the
	// cap is hit. Execution failures are returned as errors and mapped
	// to structured results by the caller.
	Query(ctx context.Context, query string) (domain.QueryResult, error)

	// Schema introspects the database: per table, its columns
	// (name, type, nullable, primary key) and row count.
	Schema(ctx context.Context) (map[string]domain.TableSchema, error)

	// Close releases the connection.
	Close() error
}
