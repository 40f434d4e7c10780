package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/pokerdash/internal/dashboard"
)

// MockRenderer is a mock implementation of dashboard.Renderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Draw(x []string, y []float64, title string) (dashboard.Chart, error) {
	args := m.Called(x, y, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(dashboard.Chart), args.Error(1)
}

// MockChart is a mock implementation of dashboard.Chart
type MockChart struct {
	mock.Mock
}

func (m *MockChart) Destroy() {
	m.Called()
}
