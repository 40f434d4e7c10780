package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/pokerdash/internal/models"
)

// MockPokerClient is a mock implementation of pokerapi.ClientInterface
type MockPokerClient struct {
	mock.Mock
}

func (m *MockPokerClient) GetUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockPokerClient) GetUserActions(ctx context.Context, userID int64) ([]models.Action, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Action), args.Error(1)
}
