package repository

import (
	"context"

	"github.com/vytor/leitnerbox/internal/models"
)

// StatsRepository handles session score and focus time data access
type StatsRepository interface {
	InsertSessionScore(ctx context.Context, score models.SessionScore) (int64, error)
	// RecentScores returns the latest limit scores, oldest first.
	RecentScores(ctx context.Context, profileID int64, limit int) ([]models.SessionScore, error)
	AddFocusSeconds(ctx context.Context, profileID int64, seconds int64) (int64, error)
	FocusSeconds(ctx context.Context, profileID int64) (int64, error)
}
