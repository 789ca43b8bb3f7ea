package models

import "time"

// RecentScoreLimit is how many session scores the summary keeps.
const RecentScoreLimit = 40

type SessionScore struct {
	ID        int64     `json:"id"`
	ProfileID int64     `json:"profile_id"`
	Size      int       `json:"size"`
	Correct   int       `json:"correct"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// BoxCount is the number of stored cards in one box.
type BoxCount struct {
	Box        int `json:"box"`
	Total      int `json:"total"`
	CheckedOut int `json:"checked_out"`
}

type StatsSummary struct {
	ProfileID    int64          `json:"profile_id"`
	Boxes        []BoxCount     `json:"boxes"`
	TotalCards   int            `json:"total_cards"`
	RecentScores []SessionScore `json:"recent_scores"`
	AverageScore float64        `json:"average_score"`
	FocusSeconds int64          `json:"focus_seconds"`
}
