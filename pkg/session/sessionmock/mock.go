package sessionmock

import (
	"context"

	"github.com/loadlens/loadlens/pkg/session"
	"github.com/loadlens/loadlens/pkg/types"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

var _ session.Store = (*MockStore)(nil)

func (m *MockStore) Get(ctx context.Context, sessionID string) (types.SessionState, error) {
	args := m.Called(ctx, sessionID)
	if len(args) > 0 {
		return args.Get(0).(types.SessionState), args.Error(1)
	}
	return types.SessionState{}, nil
}

func (m *MockStore) Put(ctx context.Context, sessionID string, state types.SessionState) error {
	args := m.Called(ctx, sessionID, state)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
