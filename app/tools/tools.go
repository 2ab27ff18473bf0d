package tools

import (
	"context"

	"SpiderSQLAgent/app/storage"
)

const SQLQueryName = "SQLQuery"

// Tool is one capability the agent may invoke. HandlerFunc never returns an
// error: failures are rendered as observation text so the model can
// self-correct.
type Tool struct {
	Name        string
	Description string
	HandlerFunc func(ctx context.Context, input string) string
}

// NewSQLQueryTool binds the SQLQuery tool to one database for the lifetime of
// a run. The database name travels with the closure, never through shared
// state.
func NewSQLQueryTool(store storage.Interface, dbName string) Tool {
	return Tool{
		Name:        SQLQueryName,
		Description: "Execute SQL queries against the database",
		HandlerFunc: func(ctx context.Context, input string) string {
			return store.ExecuteQuery(ctx, dbName, input).Observation()
		},
	}
}

// Toolkit builds the per-run tool map handed to the reasoning loop.
func Toolkit(store storage.Interface, dbName string) map[string]Tool {
	sqlQuery := NewSQLQueryTool(store, dbName)
	return map[string]Tool{sqlQuery.Name: sqlQuery}
}
