package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/pokerdash/internal/models"
)

// MockSnapshotService is a mock implementation of services.SnapshotService
type MockSnapshotService struct {
	mock.Mock
}

func (m *MockSnapshotService) Load(ctx context.Context) (*models.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Snapshot), args.Error(1)
}

func (m *MockSnapshotService) Current(ctx context.Context) (*models.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Snapshot), args.Error(1)
}

func (m *MockSnapshotService) Refresh(ctx context.Context) (*models.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Snapshot), args.Error(1)
}

func (m *MockSnapshotService) Ready() bool {
	args := m.Called()
	return args.Bool(0)
}
