package explorer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"SpiderSQLAgent/app/storage"
)

func strPtr(s string) *string { return &s }

func tableListResult(names ...string) storage.QueryResult {
	rows := make([]storage.Row, 0, len(names))
	for _, n := range names {
		rows = append(rows, storage.Row{"name": strPtr(n)})
	}
	return storage.QueryResult{Rows: rows}
}

func columnInfo(name, colType, pk string) storage.Row {
	return storage.Row{"name": strPtr(name), "type": strPtr(colType), "pk": strPtr(pk)}
}

func TestListDatabases(t *testing.T) {
	store := &storage.MockStore{}
	store.On("ListDatabases").Return([]string{"concert_singer", "pets_1"}, nil)

	var out bytes.Buffer
	err := New(store, &out).ListDatabases()

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Found 2 Spider databases")
	assert.Contains(t, out.String(), "concert_singer")
	assert.Contains(t, out.String(), "pets_1")
}

func TestExplorePrintsSchemaAndSamples(t *testing.T) {
	store := &storage.MockStore{}
	store.On("Tables", mock.Anything, "concert_singer").
		Return(tableListResult("singer"))
	store.On("TableInfo", mock.Anything, "concert_singer", "singer").
		Return(storage.QueryResult{Rows: []storage.Row{
			columnInfo("Singer_ID", "INTEGER", "1"),
			columnInfo("Name", "TEXT", "0"),
		}})
	store.On("SampleRows", mock.Anything, "concert_singer", "singer", 3).
		Return(storage.QueryResult{Rows: []storage.Row{
			{"Singer_ID": strPtr("1"), "Name": strPtr("Joe Sharp")},
			{"Singer_ID": strPtr("2"), "Name": nil},
		}})

	var out bytes.Buffer
	err := New(store, &out).Explore(context.Background(), "concert_singer")

	assert.NoError(t, err)
	text := out.String()
	assert.Contains(t, text, "Exploring database: concert_singer (1 tables)")
	assert.Contains(t, text, "Singer_ID INTEGER PK")
	assert.Contains(t, text, "Name TEXT")
	assert.Contains(t, text, "Joe Sharp")
	assert.Contains(t, text, "NULL")
}

func TestQuickLimitsTables(t *testing.T) {
	store := &storage.MockStore{}
	store.On("Tables", mock.Anything, "concert_singer").
		Return(tableListResult("singer", "concert", "stadium", "singer_in_concert"))
	store.On("TableInfo", mock.Anything, "concert_singer", mock.Anything).
		Return(storage.QueryResult{Rows: []storage.Row{columnInfo("ID", "INTEGER", "0")}})
	store.On("SampleRows", mock.Anything, "concert_singer", mock.Anything, 2).
		Return(storage.QueryResult{})

	var out bytes.Buffer
	err := New(store, &out).Quick(context.Background(), "concert_singer", 2)

	assert.NoError(t, err)
	text := out.String()
	assert.Contains(t, text, "... and 2 more tables")
	assert.Contains(t, text, "(no rows)")
	store.AssertNumberOfCalls(t, "SampleRows", 2)
}

func TestExploreFailedTableListing(t *testing.T) {
	store := &storage.MockStore{}
	store.On("Tables", mock.Anything, "missing").Return(storage.QueryResult{
		Err: &storage.QueryError{Kind: storage.KindExecution, Message: "Database missing not found"},
	})

	var out bytes.Buffer
	err := New(store, &out).Explore(context.Background(), "missing")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Database missing not found")
}
