package services

import (
	"context"

	"github.com/vytor/leitnerbox/internal/errors"
	"github.com/vytor/leitnerbox/internal/logger"
	"github.com/vytor/leitnerbox/internal/models"
	"github.com/vytor/leitnerbox/internal/repository"
)

// maxFocusSeconds bounds a single focus report to one day.
const maxFocusSeconds = 24 * 60 * 60

// StatsService handles statistics-related business logic
type StatsService interface {
	Summary(ctx context.Context, profileID int64) (*models.StatsSummary, error)
	AddFocus(ctx context.Context, profileID int64, seconds int64) (int64, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
	cardRepo  repository.CardRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository, cardRepo repository.CardRepository) StatsService {
	return &statsService{statsRepo: statsRepo, cardRepo: cardRepo}
}

func (s *statsService) Summary(ctx context.Context, profileID int64) (*models.StatsSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("building stats summary: profile_id=%d", profileID)

	boxes, err := s.cardRepo.CountByBox(ctx, profileID)
	if err != nil {
		log.Error("failed to count cards by box: %v", err)
		return nil, errors.NewInternalError(err)
	}

	scores, err := s.statsRepo.RecentScores(ctx, profileID, models.RecentScoreLimit)
	if err != nil {
		log.Error("failed to get recent scores: %v", err)
		return nil, errors.NewInternalError(err)
	}

	focus, err := s.statsRepo.FocusSeconds(ctx, profileID)
	if err != nil {
		log.Error("failed to get focus time: %v", err)
		return nil, errors.NewInternalError(err)
	}

	summary := &models.StatsSummary{
		ProfileID:    profileID,
		Boxes:        boxes,
		RecentScores: scores,
		FocusSeconds: focus,
	}
	if summary.RecentScores == nil {
		summary.RecentScores = []models.SessionScore{}
	}
	for _, b := range boxes {
		summary.TotalCards += b.Total
	}
	if len(scores) > 0 {
		var sum float64
		for _, sc := range scores {
			sum += sc.Score
		}
		summary.AverageScore = sum / float64(len(scores))
	}

	return summary, nil
}

func (s *statsService) AddFocus(ctx context.Context, profileID int64, seconds int64) (int64, error) {
	log := logger.FromContext(ctx)
	log.Debug("adding focus time: profile_id=%d, seconds=%d", profileID, seconds)

	if seconds <= 0 || seconds > maxFocusSeconds {
		return 0, errors.NewValidationError("seconds", "must be between 1 and 86400")
	}

	total, err := s.statsRepo.AddFocusSeconds(ctx, profileID, seconds)
	if err != nil {
		log.Error("failed to add focus time: %v", err)
		return 0, errors.NewInternalError(err)
	}

	return total, nil
}
