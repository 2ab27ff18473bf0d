package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

type ErrorKind string

const (
	// KindDatabase covers errors reported by the database engine itself.
	KindDatabase ErrorKind = "database"
	// KindExecution covers everything else: missing database files, scan
	// failures, result shaping.
	KindExecution ErrorKind = "execution"
)

type QueryError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *QueryError) Error() string { return e.Message }

// Row maps a column name to its stringified value; NULL stays a nil pointer
// so it can never be confused with a literal string.
type Row map[string]*string

// QueryResult is the tagged outcome of one statement. Read statements carry
// Rows (non-nil, possibly empty); write statements carry RowsAffected and a
// nil Rows slice; failures carry Err and nothing else.
type QueryResult struct {
	Rows         []Row       `json:"rows,omitempty"`
	RowsAffected int64       `json:"rows_affected,omitempty"`
	Err          *QueryError `json:"error,omitempty"`
}

func (r QueryResult) Failed() bool { return r.Err != nil }

// Observation renders the result as the textual observation fed back to the
// model: JSON rows, a fixed no-results sentinel, an affected-rows note for
// writes, or an error-prefixed string.
func (r QueryResult) Observation() string {
	if r.Err != nil {
		if r.Err.Kind == KindDatabase {
			return fmt.Sprintf("Database error: %s", r.Err.Message)
		}
		return fmt.Sprintf("Error executing query: %s", r.Err.Message)
	}
	if r.Rows == nil {
		return fmt.Sprintf("Query executed successfully. %d row(s) affected.", r.RowsAffected)
	}
	if len(r.Rows) == 0 {
		return "Query executed successfully but returned no results."
	}
	out, err := json.MarshalIndent(r.Rows, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error executing query: %s", err.Error())
	}
	return string(out)
}

type Interface interface {
	// ExecuteQuery runs one statement against the named database. The
	// database is selected per call; there is no shared current-database
	// state between runs.
	ExecuteQuery(ctx context.Context, dbName, query string) QueryResult
	ListDatabases() ([]string, error)
	Tables(ctx context.Context, dbName string) QueryResult
	TableInfo(ctx context.Context, dbName, table string) QueryResult
	SampleRows(ctx context.Context, dbName, table string, limit int) QueryResult
}
