package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueMigration(gameType string) error {
	args := m.Called(gameType)
	return args.Error(0)
}

func (m *MockJobQueue) EnqueueSummaryRefresh(gameType string) error {
	args := m.Called(gameType)
	return args.Error(0)
}
