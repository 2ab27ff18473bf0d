package storage

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ExecuteQuery(ctx context.Context, dbName, query string) QueryResult {
	args := m.Called(ctx, dbName, query)
	return args.Get(0).(QueryResult)
}

func (m *MockStore) ListDatabases() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) Tables(ctx context.Context, dbName string) QueryResult {
	args := m.Called(ctx, dbName)
	return args.Get(0).(QueryResult)
}

func (m *MockStore) TableInfo(ctx context.Context, dbName, table string) QueryResult {
	args := m.Called(ctx, dbName, table)
	return args.Get(0).(QueryResult)
}

func (m *MockStore) SampleRows(ctx context.Context, dbName, table string, limit int) QueryResult {
	args := m.Called(ctx, dbName, table, limit)
	return args.Get(0).(QueryResult)
}
