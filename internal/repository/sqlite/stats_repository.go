package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/leitnerbox/internal/logger"
	"github.com/vytor/leitnerbox/internal/models"
	"github.com/vytor/leitnerbox/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) InsertSessionScore(ctx context.Context, s models.SessionScore) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("recording session score: profile_id=%d, size=%d, correct=%d", s.ProfileID, s.Size, s.Correct)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO session_scores (profile_id, size, correct, score)
VALUES (?, ?, ?, ?)
`, s.ProfileID, s.Size, s.Correct, s.Score)
	if err != nil {
		log.Error("failed to insert session score: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *statsRepository) RecentScores(ctx context.Context, profileID int64, limit int) ([]models.SessionScore, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("listing recent scores: profile_id=%d, limit=%d", profileID, limit)

	if limit <= 0 {
		limit = models.RecentScoreLimit
	}

	query, args, err := sqlBuilder.
		Select("id", "profile_id", "size", "correct", "score", "created_at").
		From("session_scores").
		Where(squirrel.Eq{"profile_id": profileID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list scores: %v", err)
		return nil, err
	}
	defer rows.Close()

	var scores []models.SessionScore
	for rows.Next() {
		var s models.SessionScore
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.Size, &s.Correct, &s.Score, &s.CreatedAt); err != nil {
			log.Error("failed to scan score row: %v", err)
			return nil, err
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// oldest first
	for i, j := 0, len(scores)-1; i < j; i, j = i+1, j-1 {
		scores[i], scores[j] = scores[j], scores[i]
	}
	return scores, nil
}

func (r *statsRepository) AddFocusSeconds(ctx context.Context, profileID int64, seconds int64) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("adding focus time: profile_id=%d, seconds=%d", profileID, seconds)

	var total int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO focus_time (profile_id, seconds)
VALUES (?, ?)
ON CONFLICT(profile_id) DO UPDATE SET seconds = focus_time.seconds + excluded.seconds
RETURNING seconds
`, profileID, seconds).Scan(&total)
	if err != nil {
		log.Error("failed to add focus time: %v", err)
		return 0, err
	}
	return total, nil
}

func (r *statsRepository) FocusSeconds(ctx context.Context, profileID int64) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("getting focus time: profile_id=%d", profileID)

	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT seconds FROM focus_time WHERE profile_id = ?`, profileID).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		log.Error("failed to get focus time: %v", err)
		return 0, err
	}
	return total, nil
}
