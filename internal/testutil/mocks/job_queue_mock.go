package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/leitnerbox/internal/leitner"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueImport(profileID int64, records []leitner.Record) error {
	args := m.Called(profileID, records)
	return args.Error(0)
}
