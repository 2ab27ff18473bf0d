package models

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockModel struct {
	mock.Mock
}

func (m *MockModel) Completion(ctx context.Context, messages []Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}
