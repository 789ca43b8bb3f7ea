package models

import "time"

// DeckSummary describes a profile's in-memory working set.
type DeckSummary struct {
	ProfileID int64 `json:"profile_id"`
	Boxes     []int `json:"boxes"`
	Total     int   `json:"total"`
}

// Prompt is one card of a session as shown to the user.
type Prompt struct {
	CardID   string   `json:"card_id"`
	Kind     string   `json:"kind"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
}

type Session struct {
	ID        string    `json:"id"`
	ProfileID int64     `json:"profile_id"`
	Size      int       `json:"size"`
	Prompts   []Prompt  `json:"prompts"`
	StartedAt time.Time `json:"started_at"`
}

type AnswerResult struct {
	CardID    string `json:"card_id"`
	Correct   bool   `json:"correct"`
	Expected  string `json:"expected"`
	Answered  int    `json:"answered"`
	Remaining int    `json:"remaining"`
}

// BoxMove records a card changing box after a session.
type BoxMove struct {
	CardID string `json:"card_id"`
	From   int    `json:"from"`
	To     int    `json:"to"`
}

type SessionResult struct {
	SessionID string      `json:"session_id"`
	Size      int         `json:"size"`
	Drawn     int         `json:"drawn"`
	Answered  int         `json:"answered"`
	Correct   int         `json:"correct"`
	Score     float64     `json:"score"`
	Moves     []BoxMove   `json:"moves"`
	Deck      DeckSummary `json:"deck"`
}

type ImportResult struct {
	Received int `json:"received"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}
