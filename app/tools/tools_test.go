package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"SpiderSQLAgent/app/storage"
)

func TestSQLQueryToolBindsDatabase(t *testing.T) {
	store := &storage.MockStore{}
	store.On("ExecuteQuery", mock.Anything, "concert_singer", "SELECT 1").
		Return(storage.QueryResult{Err: &storage.QueryError{Kind: storage.KindDatabase, Message: "no such table: t"}})

	tool := NewSQLQueryTool(store, "concert_singer")
	observation := tool.HandlerFunc(context.Background(), "SELECT 1")

	assert.Equal(t, "Database error: no such table: t", observation)
	store.AssertExpectations(t)
}

func TestToolkitContainsSQLQuery(t *testing.T) {
	kit := Toolkit(&storage.MockStore{}, "pets_1")

	tool, ok := kit[SQLQueryName]
	assert.True(t, ok)
	assert.Equal(t, SQLQueryName, tool.Name)
	assert.Len(t, kit, 1)
}
