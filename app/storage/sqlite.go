package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

var _ Interface = &SpiderStore{}

// SpiderStore executes statements against the Spider benchmark layout: one
// SQLite file per database at <root>/<name>/<name>.sqlite. A connection is
// opened per call and always closed on return.
type SpiderStore struct {
	root    string
	timeout time.Duration
}

func NewSpiderStore(root string, timeout time.Duration) *SpiderStore {
	return &SpiderStore{root: root, timeout: timeout}
}

func (s *SpiderStore) databasePath(dbName string) (string, *QueryError) {
	path := filepath.Join(s.root, dbName, dbName+".sqlite")
	if _, err := os.Stat(path); err != nil {
		return "", &QueryError{Kind: KindExecution, Message: fmt.Sprintf("Database %s not found at %s", dbName, path)}
	}
	return path, nil
}

func isReadStatement(query string) bool {
	upper := strings.ToUpper(strings.TrimSpace(query))
	return strings.HasPrefix(upper, "SELECT") || strings.HasPrefix(upper, "PRAGMA")
}

func (s *SpiderStore) ExecuteQuery(ctx context.Context, dbName, query string) QueryResult {
	path, qerr := s.databasePath(dbName)
	if qerr != nil {
		return QueryResult{Err: qerr}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return QueryResult{Err: &QueryError{Kind: KindExecution, Message: err.Error()}}
	}
	defer db.Close()

	if isReadStatement(query) {
		return readRows(ctx, db, query)
	}
	return execStatement(ctx, db, query)
}

func readRows(ctx context.Context, db *sql.DB, query string) QueryResult {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return QueryResult{Err: &QueryError{Kind: KindDatabase, Message: err.Error()}}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return QueryResult{Err: &QueryError{Kind: KindExecution, Message: err.Error()}}
	}

	results := []Row{}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err = rows.Scan(pointers...); err != nil {
			return QueryResult{Err: &QueryError{Kind: KindExecution, Message: err.Error()}}
		}

		row := Row{}
		for i, column := range columns {
			row[column] = stringify(values[i])
		}
		results = append(results, row)
	}
	if err = rows.Err(); err != nil {
		return QueryResult{Err: &QueryError{Kind: KindDatabase, Message: err.Error()}}
	}
	return QueryResult{Rows: results}
}

func execStatement(ctx context.Context, db *sql.DB, query string) QueryResult {
	res, err := db.ExecContext(ctx, query)
	if err != nil {
		return QueryResult{Err: &QueryError{Kind: KindDatabase, Message: err.Error()}}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return QueryResult{Err: &QueryError{Kind: KindExecution, Message: err.Error()}}
	}
	return QueryResult{RowsAffected: affected}
}

func stringify(value any) *string {
	if value == nil {
		return nil
	}
	var out string
	switch v := value.(type) {
	case []byte:
		out = string(v)
	case string:
		out = v
	default:
		out = fmt.Sprintf("%v", v)
	}
	return &out
}

func (s *SpiderStore) ListDatabases() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read spider directory %s: %w", s.root, err)
	}

	var databases []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sqliteFile := filepath.Join(s.root, entry.Name(), entry.Name()+".sqlite")
		if _, err := os.Stat(sqliteFile); err == nil {
			databases = append(databases, entry.Name())
		}
	}
	sort.Strings(databases)
	return databases, nil
}

func (s *SpiderStore) Tables(ctx context.Context, dbName string) QueryResult {
	return s.ExecuteQuery(ctx, dbName, "SELECT name FROM sqlite_master WHERE type='table'")
}

func (s *SpiderStore) TableInfo(ctx context.Context, dbName, table string) QueryResult {
	return s.ExecuteQuery(ctx, dbName, fmt.Sprintf("PRAGMA table_info(%s)", table))
}

func (s *SpiderStore) SampleRows(ctx context.Context, dbName, table string, limit int) QueryResult {
	return s.ExecuteQuery(ctx, dbName, fmt.Sprintf("SELECT * FROM %s LIMIT %d", table, limit))
}
