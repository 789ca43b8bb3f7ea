package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/leitnerbox/internal/errors"
	"github.com/vytor/leitnerbox/internal/models"
	"github.com/vytor/leitnerbox/internal/services"
	"github.com/vytor/leitnerbox/internal/testutil/mocks"
)

func TestStatsService_Summary(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepository)
	cardRepo := new(mocks.MockCardRepository)

	cardRepo.On("CountByBox", mock.Anything, int64(1)).Return([]models.BoxCount{
		{Box: 1, Total: 10}, {Box: 2, Total: 5}, {Box: 3, Total: 0}, {Box: 4, Total: 2}, {Box: 5, Total: 1},
	}, nil)
	statsRepo.On("RecentScores", mock.Anything, int64(1), models.RecentScoreLimit).Return([]models.SessionScore{
		{Score: 50}, {Score: 100},
	}, nil)
	statsRepo.On("FocusSeconds", mock.Anything, int64(1)).Return(int64(3000), nil)

	svc := services.NewStatsService(statsRepo, cardRepo)
	summary, err := svc.Summary(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 18, summary.TotalCards)
	assert.Equal(t, 75.0, summary.AverageScore)
	assert.Equal(t, int64(3000), summary.FocusSeconds)
	assert.Len(t, summary.Boxes, 5)
}

func TestStatsService_SummaryWithoutScores(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepository)
	cardRepo := new(mocks.MockCardRepository)

	cardRepo.On("CountByBox", mock.Anything, int64(1)).Return([]models.BoxCount{}, nil)
	statsRepo.On("RecentScores", mock.Anything, int64(1), models.RecentScoreLimit).Return(nil, nil)
	statsRepo.On("FocusSeconds", mock.Anything, int64(1)).Return(int64(0), nil)

	svc := services.NewStatsService(statsRepo, cardRepo)
	summary, err := svc.Summary(context.Background(), 1)

	require.NoError(t, err)
	assert.NotNil(t, summary.RecentScores)
	assert.Zero(t, summary.AverageScore)
}

func TestStatsService_AddFocus(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepository)
	statsRepo.On("AddFocusSeconds", mock.Anything, int64(1), int64(1500)).Return(int64(4500), nil)

	svc := services.NewStatsService(statsRepo, new(mocks.MockCardRepository))

	total, err := svc.AddFocus(context.Background(), 1, 1500)
	require.NoError(t, err)
	assert.Equal(t, int64(4500), total)

	_, err = svc.AddFocus(context.Background(), 1, 0)
	assert.Equal(t, errors.ErrCodeValidation, appErrorCode(t, err))

	_, err = svc.AddFocus(context.Background(), 1, 90000)
	assert.Equal(t, errors.ErrCodeValidation, appErrorCode(t, err))
}
