package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/leitnerbox/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) InsertSessionScore(ctx context.Context, score models.SessionScore) (int64, error) {
	args := m.Called(ctx, score)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) RecentScores(ctx context.Context, profileID int64, limit int) ([]models.SessionScore, error) {
	args := m.Called(ctx, profileID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SessionScore), args.Error(1)
}

func (m *MockStatsRepository) AddFocusSeconds(ctx context.Context, profileID int64, seconds int64) (int64, error) {
	args := m.Called(ctx, profileID, seconds)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) FocusSeconds(ctx context.Context, profileID int64) (int64, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).(int64), args.Error(1)
}
