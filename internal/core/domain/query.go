package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxQueryRows caps the rows returned from a read-only query.
const MaxQueryRows = 100

// mutatingKeywords are rejected anywhere in a query, matched as whole
// words after comment stripping. The list covers mutating and
// administrative SQL.
var mutatingKeywords = []string{
	"DROP", "DELETE", "TRUNCATE", "ALTER", "CREATE", "INSERT", "UPDATE",
	"REPLACE", "RENAME", "GRANT", "REVOKE", "COMMIT", "ROLLBACK",
	"ATTACH", "DETACH", "VACUUM", "REINDEX", "PRAGMA",
}

var (
	lineCommentRe  = regexp.MustCompile(`(?m)--.*$`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)

	keywordRes = func() map[string]*regexp.Regexp {
		res := make(map[string]*regexp.Regexp, len(mutatingKeywords))
		for _, kw := range mutatingKeywords {
			res[kw] = regexp.MustCompile(`\b` + kw + `\b`)
		}
		return res
	}()
)

// IsSafeQuery reports whether a SQL query may be executed read-only.
// Comments are stripped before the keyword scan, so a forbidden keyword
// inside a comment does not cause rejection. The returned string is a
// human-readable reason suitable for surfacing to the model.
func IsSafeQuery(query string) (bool, string) {
	normalised := strings.ToUpper(strings.TrimSpace(query))
	normalised = lineCommentRe.ReplaceAllString(normalised, "")
	normalised = blockCommentRe.ReplaceAllString(normalised, "")
	normalised = strings.TrimSpace(normalised)

	if !strings.HasPrefix(normalised, "SELECT") {
		return false, "Only SELECT queries are allowed. This query does not start with SELECT."
	}

	for _, kw := range mutatingKeywords {
		if keywordRes[kw].MatchString(normalised) {
			return false, fmt.Sprintf("Query contains forbidden keyword: %s. Only read-only SELECT queries are allowed.", kw)
		}
	}

	statements := 0
	for _, part := range strings.Split(query, ";") {
		if strings.TrimSpace(part) != "" {
			statements++
		}
	}
	if statements > 1 {
		return false, "Multiple SQL statements are not allowed. Please submit one query at a time."
	}

	return true, "Query is safe to execute."
}

// QueryResult is the structured outcome of a read-only query. Unsafe or
// failing queries produce a result with Success false; nothing is raised.
type QueryResult struct {
	// Success reports whether the query executed.
	Success bool `json:"success"`

	// Columns are the result column names.
	Columns []string `json:"columns,omitempty"`

	// Rows are the result rows, capped at MaxQueryRows.
	Rows [][]any `json:"rows,omitempty"`

	// RowCount is the number of returned rows after capping.
	RowCount int `json:"row_count"`

	// Truncated is set when the row cap was hit.
	Truncated bool `json:"truncated"`

	// Error holds the rejection or execution failure reason.
	Error string `json:"error,omitempty"`
}

// ColumnSchema describes one column of a database table.
type ColumnSchema struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Nullable   bool   `json:"nullable"`
	PrimaryKey bool   `json:"primary_key"`
}

// TableSchema describes one table: its columns and current row count.
type TableSchema struct {
	Columns  []ColumnSchema `json:"columns"`
	RowCount int            `json:"row_count"`
}
