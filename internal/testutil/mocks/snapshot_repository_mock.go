package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/pokerdash/internal/models"
	"github.com/vytor/pokerdash/internal/repository"
)

// MockSnapshotRepository is a mock implementation of repository.SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) SaveUser(ctx context.Context, user models.User, fetchedAt time.Time) error {
	args := m.Called(ctx, user, fetchedAt)
	return args.Error(0)
}

func (m *MockSnapshotRepository) UserActions(ctx context.Context, userID int64) ([]models.Action, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]models.Action), args.Bool(1), args.Error(2)
}

func (m *MockSnapshotRepository) ListUsers(ctx context.Context) ([]repository.StoredUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.StoredUser), args.Error(1)
}
